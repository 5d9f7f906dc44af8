// Package cache keeps one connector per probe target alive across scrapes,
// so the device session and the statistics baseline survive between polls
// instead of being rebuilt (and re-logged-in) on every request.
package cache

import (
	"sync"

	"github.com/ckarrie/ha-netgear-plus/connector"
)

type Cache struct {
	connectors map[string]*connector.Connector
	mutex      sync.Mutex
}

func New() Cache {
	return Cache{
		connectors: map[string]*connector.Connector{},
	}
}

// GetOrCreate returns the cached connector for the target, creating it via
// the callback on first use. The callback runs under the cache lock, at
// most once per target.
func (c *Cache) GetOrCreate(target string, create func() *connector.Connector) *connector.Connector {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	conn, ok := c.connectors[target]
	if !ok {
		conn = create()
		c.connectors[target] = conn
	}
	return conn
}

// Remove drops the cached connector so the next probe starts from a fresh
// detection and login.
func (c *Cache) Remove(target string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.connectors, target)
}
