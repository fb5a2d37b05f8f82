package core

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quka-ai/quka-client/pkg/metrics"
)

type Metrics struct {
	requestTime     *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
	apiResponseTime *prometheus.HistogramVec
	apiErrorCounter *prometheus.CounterVec
	streamChunks    *prometheus.CounterVec
}

func NewMetrics(ns, system string) *Metrics {
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	return &Metrics{
		requestTime:     metrics.NewHistogramVec("client_request_time", []string{"api", "method"}),
		requestErrors:   metrics.NewCounterVec("client_request_error", []string{"api", "method", "status"}),
		apiResponseTime: metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter: metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		streamChunks:    metrics.NewCounterVec("stream_chunks", []string{"api"}),
	}
}

// ObserveRequest records one outbound reqapi round trip. status 0 means the
// request never got a response.
func (m *Metrics) ObserveRequest(api, method string, status int, elapsed time.Duration) {
	m.requestTime.WithLabelValues(api, method).Observe(elapsed.Seconds())
	if status == 0 || status >= 400 {
		m.requestErrors.WithLabelValues(api, method, strconv.Itoa(status)).Inc()
	}
}

func (m *Metrics) StreamChunkInc(api string) {
	m.streamChunks.WithLabelValues(api).Inc()
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}
