package collector

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ckarrie/ha-netgear-plus/config"
	"github.com/ckarrie/ha-netgear-plus/connector"
)

func AddMetrics(registry prometheus.Registerer, report *connector.Report, options config.Options) {
	addMetricsPorts(prometheus.WrapRegistererWithPrefix("port_", registry), report, options)
	addMetricsSwitch(registry, report, options)
	if options.ExportPoE && len(report.PoE) > 0 {
		addMetricsPoE(prometheus.WrapRegistererWithPrefix("poe_port_", registry), report)
	}
}

func addMetricsPorts(registry prometheus.Registerer, report *connector.Report, options config.Options) {
	trafficRxCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sum_rx_bytes",
	}, []string{"port"})
	registry.MustRegister(trafficRxCounterVec)
	trafficTxCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sum_tx_bytes",
	}, []string{"port"})
	registry.MustRegister(trafficTxCounterVec)
	crcErrorsCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crc_errors",
	}, []string{"port"})
	registry.MustRegister(crcErrorsCounterVec)

	speedRxGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "speed_rx_bytes_per_second",
	}, []string{"port"})
	registry.MustRegister(speedRxGaugeVec)
	speedTxGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "speed_tx_bytes_per_second",
	}, []string{"port"})
	registry.MustRegister(speedTxGaugeVec)

	for port, ps := range report.Ports {
		label := strconv.Itoa(port)
		trafficRxCounterVec.WithLabelValues(label).Add(float64(ps.SumRxBytes))
		trafficTxCounterVec.WithLabelValues(label).Add(float64(ps.SumTxBytes))
		crcErrorsCounterVec.WithLabelValues(label).Add(float64(ps.SumCRCErrors))
		speedRxGaugeVec.WithLabelValues(label).Set(ps.SpeedRxBytesPerSec)
		speedTxGaugeVec.WithLabelValues(label).Set(ps.SpeedTxBytesPerSec)
	}

	if !options.ExportStatus {
		return
	}

	statusGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "up",
	}, []string{"port"})
	registry.MustRegister(statusGaugeVec)
	linkSpeedGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "link_speed_mbit",
	}, []string{"port"})
	registry.MustRegister(linkSpeedGaugeVec)

	for port, st := range report.Status {
		label := strconv.Itoa(port)
		var up float64
		if st.Connected {
			up = 1
		}
		statusGaugeVec.WithLabelValues(label).Set(up)
		linkSpeedGaugeVec.WithLabelValues(label).Set(float64(st.LinkSpeed))
	}
}

func addMetricsSwitch(registry prometheus.Registerer, report *connector.Report, options config.Options) {
	responseTimeGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "response_time_seconds",
	})
	registry.MustRegister(responseTimeGauge)
	responseTimeGauge.Set(report.Aggregate.ResponseTime)

	sumRxCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sum_rx_bytes",
	})
	registry.MustRegister(sumRxCounter)
	sumRxCounter.Add(float64(report.Aggregate.SumRxBytes))
	sumTxCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sum_tx_bytes",
	})
	registry.MustRegister(sumTxCounter)
	sumTxCounter.Add(float64(report.Aggregate.SumTxBytes))

	speedRxGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "speed_rx_bytes_per_second",
	})
	registry.MustRegister(speedRxGauge)
	speedRxGauge.Set(report.Aggregate.SpeedRxBytesPerSec)
	speedTxGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "speed_tx_bytes_per_second",
	})
	registry.MustRegister(speedTxGauge)
	speedTxGauge.Set(report.Aggregate.SpeedTxBytesPerSec)

	if !options.ExportIdentity {
		return
	}

	infoGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "switch_info",
	}, []string{"name", "model", "firmware", "serial", "mac"})
	registry.MustRegister(infoGaugeVec)
	id := report.Identity
	infoGaugeVec.WithLabelValues(id.Name, id.Model, id.Firmware, id.Serial, id.MAC).Set(1)
}

func addMetricsPoE(registry prometheus.Registerer, report *connector.Report) {
	powerGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "output_power_watts",
	}, []string{"port"})
	registry.MustRegister(powerGaugeVec)
	deliveringGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "delivering",
	}, []string{"port"})
	registry.MustRegister(deliveringGaugeVec)
	adminGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "admin_enabled",
	}, []string{"port"})
	registry.MustRegister(adminGaugeVec)

	for port, poe := range report.PoE {
		label := strconv.Itoa(port)
		powerGaugeVec.WithLabelValues(label).Set(poe.PowerWatts)

		var delivering float64
		if poe.Delivering {
			delivering = 1
		}
		deliveringGaugeVec.WithLabelValues(label).Set(delivering)

		var admin float64
		if poe.AdminEnabled {
			admin = 1
		}
		adminGaugeVec.WithLabelValues(label).Set(admin)
	}
}
