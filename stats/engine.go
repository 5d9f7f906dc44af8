// Package stats folds successive raw counter samples into rate and
// cumulative statistics, handling counter wraparound and device resets.
package stats

import (
	"math"

	"github.com/ckarrie/ha-netgear-plus/model"
)

// minWindowSeconds floors the sampling window so a near-zero gap between
// fetches cannot blow up the rate computation.
const minWindowSeconds = 0.001

// CounterDelta computes the traffic between two readings of a counter of
// the given bit width. A numerically smaller current value is treated as
// wraparound of the native width. A device reboot that resets the counter
// is indistinguishable from wraparound without an uptime signal, and the
// supported pages expose none, so it is folded into the same case.
func CounterDelta(prev, cur uint64, width int) uint64 {
	if width == 32 {
		prev &= math.MaxUint32
		cur &= math.MaxUint32
	}
	if cur >= prev {
		return cur - prev
	}
	if width == 32 {
		return (math.MaxUint32 - prev) + cur + 1
	}
	return (math.MaxUint64 - prev) + cur + 1
}

type cumulative struct {
	rx, tx, crc uint64
}

// Engine derives per-port and aggregate statistics from successive raw
// samples. It owns the retained previous sample and the monotonic
// cumulative totals; callers feed it only samples that parsed successfully,
// so a malformed cycle never advances the baseline.
//
// Engine is not safe for concurrent use; the connector serializes access.
type Engine struct {
	profile model.Profile
	prev    *model.RawSample
	sums    map[int]*cumulative
}

func NewEngine(profile model.Profile) *Engine {
	return &Engine{
		profile: profile,
		sums:    make(map[int]*cumulative, profile.PortCount),
	}
}

// Fold consumes the current sample and returns the derived statistics. On
// the first call there is no baseline: all speeds and deltas are zero and
// the cumulative totals start at zero.
func (e *Engine) Fold(current model.RawSample) (model.AggregateStats, map[int]model.PortStats) {
	ports := make(map[int]model.PortStats, e.profile.PortCount)
	var agg model.AggregateStats

	prev := e.prev
	e.prev = &current

	if prev == nil {
		for port := 1; port <= e.profile.PortCount; port++ {
			ports[port] = model.PortStats{}
		}
		return agg, ports
	}

	window := current.CapturedAt.Sub(prev.CapturedAt).Seconds()
	if window < minWindowSeconds {
		window = minWindowSeconds
	}
	agg.ResponseTime = window

	width := e.profile.CounterWidth
	for port := 1; port <= e.profile.PortCount; port++ {
		sum := e.sums[port]
		if sum == nil {
			sum = &cumulative{}
			e.sums[port] = sum
		}

		var ps model.PortStats
		prevC, okPrev := prev.Ports[port]
		curC, okCur := current.Ports[port]
		if okPrev && okCur {
			ps.TrafficRxBytes = CounterDelta(prevC.RxBytes, curC.RxBytes, width)
			ps.TrafficTxBytes = CounterDelta(prevC.TxBytes, curC.TxBytes, width)
			ps.TrafficCRCErrors = CounterDelta(prevC.CRCErrors, curC.CRCErrors, width)
			ps.SpeedRxBytesPerSec = float64(ps.TrafficRxBytes) / window
			ps.SpeedTxBytesPerSec = float64(ps.TrafficTxBytes) / window

			sum.rx += ps.TrafficRxBytes
			sum.tx += ps.TrafficTxBytes
			sum.crc += ps.TrafficCRCErrors
		}
		ps.SumRxBytes = sum.rx
		ps.SumTxBytes = sum.tx
		ps.SumCRCErrors = sum.crc
		ports[port] = ps

		agg.TrafficRxBytes += ps.TrafficRxBytes
		agg.TrafficTxBytes += ps.TrafficTxBytes
		agg.SpeedRxBytesPerSec += ps.SpeedRxBytesPerSec
		agg.SpeedTxBytesPerSec += ps.SpeedTxBytesPerSec
		agg.SumRxBytes += ps.SumRxBytes
		agg.SumTxBytes += ps.SumTxBytes
		agg.SumCRCErrors += ps.SumCRCErrors
	}

	return agg, ports
}

// HasBaseline reports whether a previous sample is retained.
func (e *Engine) HasBaseline() bool { return e.prev != nil }
