package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ckarrie/ha-netgear-plus/connector"
)

func newConn(host string) func() *connector.Connector {
	return func() *connector.Connector {
		return connector.New(host, "pw", zap.NewNop(), connector.Options{})
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New()

	first := c.GetOrCreate("switch1", newConn("10.0.0.2"))
	again := c.GetOrCreate("switch1", newConn("10.0.0.2"))
	assert.Same(t, first, again)

	other := c.GetOrCreate("switch2", newConn("10.0.0.3"))
	assert.NotSame(t, first, other)
	assert.Equal(t, "10.0.0.3", other.Host())
}

func TestRemove(t *testing.T) {
	c := New()

	first := c.GetOrCreate("switch1", newConn("10.0.0.2"))
	c.Remove("switch1")
	fresh := c.GetOrCreate("switch1", newConn("10.0.0.2"))
	assert.NotSame(t, first, fresh)

	// removing an unknown target is a no-op
	c.Remove("nope")
}
