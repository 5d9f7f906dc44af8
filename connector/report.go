package connector

import (
	"fmt"

	"github.com/ckarrie/ha-netgear-plus/model"
)

// Report is the outcome of one successful refresh cycle: the switch
// identity plus derived per-port and aggregate statistics, and PoE state on
// capable models.
type Report struct {
	SwitchIP  string
	Identity  model.Identity
	Aggregate model.AggregateStats
	Ports     map[int]model.PortStats
	Status    map[int]model.PortStatus
	PoE       map[int]model.PoEStatus
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Flatten renders the report as a flat metric map keyed in the
// port_<n>_<metric> / sum_port_<metric> convention consumers expect.
func (r *Report) Flatten() map[string]float64 {
	out := make(map[string]float64, len(r.Ports)*8+8)

	for port, ps := range r.Ports {
		p := fmt.Sprintf("port_%d_", port)
		out[p+"traffic_rx_bytes"] = float64(ps.TrafficRxBytes)
		out[p+"traffic_tx_bytes"] = float64(ps.TrafficTxBytes)
		out[p+"speed_rx_bytes_per_s"] = ps.SpeedRxBytesPerSec
		out[p+"speed_tx_bytes_per_s"] = ps.SpeedTxBytesPerSec
		out[p+"speed_io_bytes_per_s"] = ps.SpeedRxBytesPerSec + ps.SpeedTxBytesPerSec
		out[p+"sum_rx_bytes"] = float64(ps.SumRxBytes)
		out[p+"sum_tx_bytes"] = float64(ps.SumTxBytes)
		out[p+"crc_errors"] = float64(ps.SumCRCErrors)
		out[p+"speed_mbit"] = float64(ps.LinkSpeed)
	}

	for port, st := range r.Status {
		p := fmt.Sprintf("port_%d_", port)
		out[p+"status"] = boolGauge(st.Connected)
	}

	for port, poe := range r.PoE {
		p := fmt.Sprintf("port_%d_poe_", port)
		out[p+"power_active"] = boolGauge(poe.Delivering)
		out[p+"output_power"] = poe.PowerWatts
		out[p+"admin_mode"] = boolGauge(poe.AdminEnabled)
	}

	out["sum_port_traffic_rx"] = float64(r.Aggregate.TrafficRxBytes)
	out["sum_port_traffic_tx"] = float64(r.Aggregate.TrafficTxBytes)
	out["sum_port_speed_bps_rx"] = r.Aggregate.SpeedRxBytesPerSec
	out["sum_port_speed_bps_tx"] = r.Aggregate.SpeedTxBytesPerSec
	out["sum_port_speed_bps_io"] = r.Aggregate.SpeedRxBytesPerSec + r.Aggregate.SpeedTxBytesPerSec
	out["sum_port_sum_rx"] = float64(r.Aggregate.SumRxBytes)
	out["sum_port_sum_tx"] = float64(r.Aggregate.SumTxBytes)
	out["sum_port_crc_errors"] = float64(r.Aggregate.SumCRCErrors)
	out["response_time_s"] = r.Aggregate.ResponseTime

	return out
}
