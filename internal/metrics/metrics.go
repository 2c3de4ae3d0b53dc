package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ExchangesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "exchanges_total",
			Help: "Committed exchanges",
		},
	)
	ExchangesFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchanges_failed_total",
			Help: "Failed exchanges by reason",
		},
		[]string{"reason"},
	)
	ProviderRequestSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "provider_request_seconds",
			Help:    "Latency of rate provider calls",
			Buckets: prometheus.DefBuckets,
		},
	)
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Audit worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(ExchangesTotal)
	prometheus.MustRegister(ExchangesFailedTotal)
	prometheus.MustRegister(ProviderRequestSeconds)
	prometheus.MustRegister(WorkerQueueDepth)
}
