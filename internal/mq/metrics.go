package mq

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus метрики пакета. Экспортируются через /metrics
// endpoint consumer-процесса.
var (
	publishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courier_published_total",
		Help: "Total messages published to the broker",
	})

	consumedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courier_consumed_total",
		Help: "Total messages received from the broker",
	})

	reconnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courier_reconnects_total",
		Help: "Total broker reconnects after a dropped connection",
	})
)
