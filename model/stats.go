package model

import (
	"fmt"
	"strings"
)

// LinkSpeed is the negotiated link speed in Mbit/s, 0 when the link is down.
type LinkSpeed int

const (
	LinkDown  LinkSpeed = 0
	Link10M   LinkSpeed = 10
	Link100M  LinkSpeed = 100
	Link1000M LinkSpeed = 1000
	Link2500M LinkSpeed = 2500
	Link5G    LinkSpeed = 5000
	Link10G   LinkSpeed = 10000
)

var linkSpeedNames = map[string]LinkSpeed{
	"10M":   Link10M,
	"100M":  Link100M,
	"1000M": Link1000M,
	"1G":    Link1000M,
	"2.5G":  Link2500M,
	"5G":    Link5G,
	"10G":   Link10G,
}

// ParseLinkSpeed maps the speed label rendered by the web console to a
// LinkSpeed. Unknown or empty labels map to LinkDown.
func ParseLinkSpeed(text string) LinkSpeed {
	if speed, ok := linkSpeedNames[strings.ToUpper(strings.TrimSpace(text))]; ok {
		return speed
	}
	return LinkDown
}

func (s LinkSpeed) String() string {
	if s == LinkDown {
		return "down"
	}
	if s >= 1000 && s%1000 == 0 {
		return fmt.Sprintf("%dG", int(s)/1000)
	}
	if s == Link2500M {
		return "2.5G"
	}
	return fmt.Sprintf("%dM", int(s))
}

// PortStats is the derived per-port output of one refresh cycle. The Sum
// fields are maintained by the statistics engine and never decrease for the
// life of a connector, regardless of device-side counter wraps or resets.
type PortStats struct {
	SpeedRxBytesPerSec float64
	SpeedTxBytesPerSec float64

	// Deltas over the sampling window.
	TrafficRxBytes   uint64
	TrafficTxBytes   uint64
	TrafficCRCErrors uint64

	// Cumulative since the engine's epoch.
	SumRxBytes   uint64
	SumTxBytes   uint64
	SumCRCErrors uint64

	LinkSpeed LinkSpeed
}

// AggregateStats sums the per-port stats across the whole switch.
type AggregateStats struct {
	SpeedRxBytesPerSec float64
	SpeedTxBytesPerSec float64
	TrafficRxBytes     uint64
	TrafficTxBytes     uint64
	SumRxBytes         uint64
	SumTxBytes         uint64
	SumCRCErrors       uint64

	// ResponseTime is the wall-clock duration of the sampling window in
	// seconds.
	ResponseTime float64
}
