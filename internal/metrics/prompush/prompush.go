// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// This package adapts the generic metrics.Backend interface to Prometheus
// by:
//
//   - Using client_golang CounterVec and SummaryVec collectors.
//   - Mapping the common pipeline labels (job, stage, status) onto
//     Prometheus labels.
//   - Pushing collected metrics to a Prometheus Pushgateway instance instead
//     of exposing an HTTP scrape endpoint; a batch job has nothing to scrape
//     once it exits.
//
// The package intentionally contains all Prometheus-specific dependencies so
// the rest of the project remains decoupled from Prometheus.
package prompush

import (
	"fmt"

	"i94etl/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	stageCounter  *prometheus.CounterVec // "etl_stage_total"
	stageDuration *prometheus.SummaryVec // "etl_stage_duration_seconds"
	rowCounter    *prometheus.CounterVec // "etl_rows_total"
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName: the Pushgateway "job" name (often same as the pipeline job).
// gatewayURL: base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "i94etl"
	}

	reg := prometheus.NewRegistry()

	stageCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_stage_total",
			Help: "Total number of pipeline stage executions, partitioned by stage and status.",
		},
		[]string{"stage", "status"},
	)
	stageDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "etl_stage_duration_seconds",
			Help:       "Duration of pipeline stages in seconds, partitioned by stage and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"stage", "status"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_rows_total",
			Help: "Row-level counts per kind (facts, mapping_skipped, uploaded_files, etc.).",
		},
		[]string{"kind"},
	)

	if err := reg.Register(stageCounter); err != nil {
		return nil, fmt.Errorf("prompush: register stage counter: %w", err)
	}
	if err := reg.Register(stageDuration); err != nil {
		return nil, fmt.Errorf("prompush: register stage summary: %w", err)
	}
	if err := reg.Register(rowCounter); err != nil {
		return nil, fmt.Errorf("prompush: register row counter: %w", err)
	}

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		stageCounter:  stageCounter,
		stageDuration: stageDuration,
		rowCounter:    rowCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "etl_stage_total":
		if b.stageCounter == nil {
			return
		}
		b.stageCounter.WithLabelValues(labels["stage"], labels["status"]).Add(delta)

	case "etl_rows_total":
		if b.rowCounter == nil {
			return
		}
		b.rowCounter.WithLabelValues(labels["kind"]).Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveDuration(name string, value float64, labels metrics.Labels) {
	if name != "etl_stage_duration_seconds" || b.stageDuration == nil {
		return
	}
	b.stageDuration.WithLabelValues(labels["stage"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
