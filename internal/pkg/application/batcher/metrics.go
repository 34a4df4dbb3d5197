package batcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsQueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataverse_gateway_operations_queued_total",
			Help: "Total number of operations added to a batch",
		},
		[]string{"operation"},
	)
	operationsFlushed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dataverse_gateway_operations_flushed_total",
			Help: "Total number of operations sent to the service as part of a successful batch",
		},
	)
	flushFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dataverse_gateway_flush_failures_total",
			Help: "Total number of batches that the service rejected or that could not be sent",
		},
	)
)
