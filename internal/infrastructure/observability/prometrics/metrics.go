// Package prometrics adapts client_golang vectors to the observability ports.
package prometrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
)

// Registry creates instruments on a private prometheus.Registry. Asking for
// a name twice returns the vector registered first.
type Registry interface {
	Counter(name string, help string, labelKeys ...string) observability.Counter
	Histogram(name string, help string, buckets []float64, labelKeys ...string) observability.Histogram
	Gauge(name string, help string, labelKeys ...string) observability.Gauge
	Gatherer() prometheus.Gatherer
}

// registry is not safe for concurrent registration; instruments are created
// once in main before the session starts.
type registry struct {
	reg        *prometheus.Registry
	namespace  string
	subsystem  string
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	gauges     map[string]*prometheus.GaugeVec
}

func New(namespace, subsystem string) Registry {
	return &registry{
		reg:        prometheus.NewRegistry(),
		namespace:  namespace,
		subsystem:  subsystem,
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}
}

func (r *registry) Gatherer() prometheus.Gatherer { return r.reg }

func (r *registry) Counter(name string, help string, labelKeys ...string) observability.Counter {
	cv, ok := r.counters[name]
	if !ok {
		cv = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: r.namespace,
			Subsystem: r.subsystem,
			Name:      name,
			Help:      help,
		}, labelKeys)
		r.reg.MustRegister(cv)
		r.counters[name] = cv
	}
	return counter{vec: cv}
}

func (r *registry) Histogram(name string, help string, buckets []float64, labelKeys ...string) observability.Histogram {
	hv, ok := r.histograms[name]
	if !ok {
		hv = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: r.namespace,
			Subsystem: r.subsystem,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		}, labelKeys)
		r.reg.MustRegister(hv)
		r.histograms[name] = hv
	}
	return histogram{vec: hv}
}

func (r *registry) Gauge(name string, help string, labelKeys ...string) observability.Gauge {
	gv, ok := r.gauges[name]
	if !ok {
		gv = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: r.namespace,
			Subsystem: r.subsystem,
			Name:      name,
			Help:      help,
		}, labelKeys)
		r.reg.MustRegister(gv)
		r.gauges[name] = gv
	}
	return gauge{vec: gv}
}

type counter struct{ vec *prometheus.CounterVec }

func (c counter) Add(delta float64, labels ...observability.Label) {
	c.vec.With(toLabels(labels)).Add(delta)
}

// Bind resolves the child series up front.
func (c counter) Bind(labels ...observability.Label) observability.BoundCounter {
	return c.vec.With(toLabels(labels))
}

type histogram struct{ vec *prometheus.HistogramVec }

func (h histogram) Observe(v float64, labels ...observability.Label) {
	h.vec.With(toLabels(labels)).Observe(v)
}

func (h histogram) Bind(labels ...observability.Label) observability.BoundHistogram {
	return h.vec.With(toLabels(labels))
}

type gauge struct{ vec *prometheus.GaugeVec }

func (g gauge) Set(v float64, labels ...observability.Label) {
	g.vec.With(toLabels(labels)).Set(v)
}

func (g gauge) Delete(labels ...observability.Label) {
	g.vec.Delete(toLabels(labels))
}

func toLabels(ls []observability.Label) prometheus.Labels {
	out := make(prometheus.Labels, len(ls))
	for _, l := range ls {
		out[l.Key] = l.Value
	}
	return out
}

// WriteTextfile dumps every registered metric in the Prometheus text format.
func WriteTextfile(r Registry, path string) error {
	return prometheus.WriteToTextfile(path, r.Gatherer())
}
