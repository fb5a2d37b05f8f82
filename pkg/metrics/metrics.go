package metrics

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type manager struct {
	namespace string
	system    string
	registry  *prometheus.Registry
}

var (
	mu             sync.RWMutex
	defaultManager = &manager{
		namespace: "default",
		system:    "default",
		registry:  prometheus.NewRegistry(),
	}
)

func SetupMetricsManager(ns, system string, registry *prometheus.Registry) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	registry.Register(collectors.NewGoCollector())

	mu.Lock()
	defaultManager = &manager{
		namespace: ns,
		system:    system,
		registry:  registry,
	}
	mu.Unlock()
}

func current() *manager {
	mu.RLock()
	defer mu.RUnlock()
	return defaultManager
}

func Registry() *prometheus.Registry {
	return current().registry
}

func NewCounterVec(name string, labels []string) *prometheus.CounterVec {
	m := current()
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: FmtFixer(m.namespace),
			Subsystem: FmtFixer(m.system),
			Name:      FmtFixer(name),
			Help:      fmt.Sprintf("%s count of /%s/%s", name, m.namespace, m.system),
		},
		labels,
	)
	return register(m, vec).(*prometheus.CounterVec)
}

func NewHistogramVec(name string, labels []string) *prometheus.HistogramVec {
	m := current()
	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: FmtFixer(m.namespace),
			Subsystem: FmtFixer(m.system),
			Name:      FmtFixer(name),
			Help:      fmt.Sprintf("%s duration of /%s/%s", name, m.namespace, m.system),
		},
		labels,
	)
	return register(m, vec).(*prometheus.HistogramVec)
}

// register returns the already registered collector when the same metric
// is created twice, e.g. by a second Core in tests.
func register(m *manager, c prometheus.Collector) prometheus.Collector {
	if err := m.registry.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
	}
	return c
}

func DefaultExportHandler() gin.HandlerFunc {
	registry := current().registry
	h := promhttp.InstrumentMetricHandler(registry, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func FmtFixer(in string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(in)
}
