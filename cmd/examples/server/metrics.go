package server

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thesyncim/uicontracts/pkg/contract"
)

// metrics uses a private registry so several servers can coexist in one
// test binary.
type metrics struct {
	registry *prometheus.Registry
	events   *prometheus.CounterVec
	errors   *prometheus.CounterVec
	sessions *prometheus.GaugeVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uicontracts_events_total",
			Help: "User events handled, by app and event type.",
		}, []string{"app", "type"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uicontracts_event_errors_total",
			Help: "Events rejected by the view-model, by app.",
		}, []string{"app"}),
		sessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "uicontracts_sessions_active",
			Help: "Open page sessions, by app.",
		}, []string{"app"}),
	}
	m.registry.MustRegister(m.events, m.errors, m.sessions)
	return m
}

func (m *metrics) sessionOpened(app contract.App) {
	m.sessions.WithLabelValues(string(app)).Inc()
}

func (m *metrics) sessionClosed(app contract.App) {
	m.sessions.WithLabelValues(string(app)).Dec()
}

func (m *metrics) event(app contract.App, ev Event, err error) {
	typ := ev.Type
	if errors.Is(err, ErrUnknownEvent) {
		typ = "unknown" // keep label cardinality bounded
	}
	m.events.WithLabelValues(string(app), typ).Inc()
	if err != nil {
		m.errors.WithLabelValues(string(app)).Inc()
	}
}
