// Package metrics exposes routing activity as Prometheus counters. The
// collector is a journal Observer: attach it to a router with AddObserver
// and register it with a prometheus.Registerer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trickstertwo/xjournal"
)

const subsystem = "journal"

// Collector counts dispatched events by severity. It implements both
// xjournal.Observer and prometheus.Collector.
type Collector struct {
	errorCount prometheus.Counter
	warnCount  prometheus.Counter
	infoCount  prometheus.Counter
	traceCount prometheus.Counter
}

// New returns a collector ready to observe a router. namespace scopes the
// metric names; empty is allowed.
func New(namespace string) *Collector {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}
	return &Collector{
		errorCount: counter("error_count", "Number of dispatched ERROR events."),
		warnCount:  counter("warn_count", "Number of dispatched WARN events."),
		infoCount:  counter("info_count", "Number of dispatched INFO events."),
		traceCount: counter("trace_count", "Number of dispatched TRACE events."),
	}
}

// OnEvent implements xjournal.Observer.
func (c *Collector) OnEvent(ev *xjournal.Event) {
	switch ev.Severity() {
	case xjournal.SeverityError:
		c.errorCount.Inc()
	case xjournal.SeverityWarn:
		c.warnCount.Inc()
	case xjournal.SeverityInfo:
		c.infoCount.Inc()
	default:
		c.traceCount.Inc()
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.errorCount.Describe(ch)
	c.warnCount.Describe(ch)
	c.infoCount.Describe(ch)
	c.traceCount.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.errorCount.Collect(ch)
	c.warnCount.Collect(ch)
	c.infoCount.Collect(ch)
	c.traceCount.Collect(ch)
}

// Register registers c with reg (prometheus.DefaultRegisterer when nil) and
// returns c for chaining into AddObserver.
func Register(c *Collector, reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}
