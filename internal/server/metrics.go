package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests      *prometheus.CounterVec
	parseFailures *prometheus.CounterVec
	openConns     prometheus.Gauge
	bytesServed   prometheus.Counter
}

func newMetrics(r prometheus.Registerer) *metrics {
	return &metrics{
		requests: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "tinyjson_http_requests_total",
			Help: "Total number of HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		parseFailures: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "tinyjson_parse_failures_total",
			Help: "Total number of JSON documents that failed to parse, by error kind.",
		}, []string{"kind"}),
		openConns: promauto.With(r).NewGauge(prometheus.GaugeOpts{
			Name: "tinyjson_open_connections",
			Help: "Number of currently open client connections.",
		}),
		bytesServed: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "tinyjson_http_response_bytes_total",
			Help: "Total number of response body bytes written.",
		}),
	}
}
