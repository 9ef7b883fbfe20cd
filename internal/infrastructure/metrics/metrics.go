package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal tracks batch change submissions by outcome.
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batchchange_submissions_total",
		Help: "Total number of batch change submissions processed",
	}, []string{"outcome"}) // outcome: accepted, rejected, error

	// ValidationErrorsTotal tracks per-change validation failures by error code.
	ValidationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batchchange_validation_errors_total",
		Help: "Total number of single-change validation errors, by error type",
	}, []string{"error_type"})

	// PipelineDuration tracks wall-clock time spent in each pipeline stage.
	PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "batchchange_pipeline_duration_seconds",
		Help:    "Histogram of batch change pipeline stage duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	// DBConnectionsActive tracks database connections currently in use.
	DBConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "batchchange_db_connections_active",
		Help: "Number of active database connections",
	})

	// ConverterEnqueueTotal tracks hand-offs to the downstream converter queue.
	ConverterEnqueueTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batchchange_converter_enqueue_total",
		Help: "Total number of accepted batches handed to the converter queue",
	}, []string{"result"}) // result: ok, error
)
