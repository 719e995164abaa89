package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Snapshot preparation metrics. Counters only: preparation happens at
// process start and on config reload, so rates and latencies carry little
// signal here.
var (
	SnapshotPreparations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentden_snapshot_preparations_total",
		Help: "Snapshot preparation attempts by outcome.",
	}, []string{"status"})

	SnapshotWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agentden_snapshot_warnings_total",
		Help: "Plaintext-overwrite warnings emitted across preparations.",
	})
)
