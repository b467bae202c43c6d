// Package observability holds the Prometheus instrumentation used by the
// bridge daemon. The library packages carry no metrics of their own; the
// daemon taps the byte stream and records what it sees here.
package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	bridgedBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "umsg",
			Subsystem: "bridge",
			Name:      "bytes_total",
			Help:      "Bytes forwarded across the bridge.",
		},
		[]string{"direction"},
	)
	observedPackets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "umsg",
			Subsystem: "bridge",
			Name:      "packets_total",
			Help:      "Complete wire packets observed on the stream.",
		},
		[]string{"direction"},
	)
	frameErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "umsg",
			Subsystem: "bridge",
			Name:      "frame_errors_total",
			Help:      "Framing, COBS, and CRC errors observed on the stream.",
		},
		[]string{"direction", "kind"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(bridgedBytes, observedPackets, frameErrors)
	})
}

func RecordBytes(direction string, n int) {
	RegisterMetrics()
	bridgedBytes.WithLabelValues(direction).Add(float64(n))
}

func RecordPacket(direction string) {
	RegisterMetrics()
	observedPackets.WithLabelValues(direction).Inc()
}

func RecordFrameError(direction, kind string) {
	RegisterMetrics()
	frameErrors.WithLabelValues(direction, kind).Inc()
}
