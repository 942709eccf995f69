package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "abacus"

// Verification results.
const (
	ResultCorrect   = "correct"
	ResultIncorrect = "incorrect"
)

// Collectors owns a private registry with the engine counters.
type Collectors struct {
	registry      *prometheus.Registry
	tasks         *prometheus.CounterVec
	verifications *prometheus.CounterVec
	overflows     prometheus.Counter
	requests      *prometheus.CounterVec
}

// New registers the engine counters plus Go runtime and process collectors
// on a fresh registry.
func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_generated_total",
			Help:      "Practice tasks generated, by mode.",
		}, []string{"mode"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Answers verified, by mode and result.",
		}, []string{"mode", "result"}),
		overflows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encode_overflow_total",
			Help:      "Encodes whose value exceeded the rod capacity and was truncated.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP API requests, by route and status code.",
		}, []string{"route", "code"}),
	}
	c.registry.MustRegister(
		c.tasks,
		c.verifications,
		c.overflows,
		c.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// TaskGenerated counts one generated task.
func (c *Collectors) TaskGenerated(mode string) {
	if c == nil {
		return
	}
	c.tasks.WithLabelValues(mode).Inc()
}

// Verified counts one verification.
func (c *Collectors) Verified(mode string, correct bool) {
	if c == nil {
		return
	}
	result := ResultIncorrect
	if correct {
		result = ResultCorrect
	}
	c.verifications.WithLabelValues(mode, result).Inc()
}

// EncodeOverflowed counts one truncated encode.
func (c *Collectors) EncodeOverflowed() {
	if c == nil {
		return
	}
	c.overflows.Inc()
}

// Request counts one HTTP request.
func (c *Collectors) Request(route string, status int) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Registry exposes the underlying registry for tests and extra collectors.
func (c *Collectors) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the registry in Prometheus text format. A nil receiver
// serves 404.
func (c *Collectors) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
