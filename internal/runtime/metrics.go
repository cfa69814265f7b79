package runtime

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// ExtractionMetrics counts extraction outcomes per mode.
type ExtractionMetrics struct {
	extractionsTotal *prometheus.CounterVec

	registerer prometheus.Registerer
	mu         sync.Mutex
	registered bool
}

// NewExtractionMetrics creates the collectors without registering them; call
// Register once. A nil registerer falls back to the Prometheus default
// registerer.
func NewExtractionMetrics(registerer prometheus.Registerer) *ExtractionMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &ExtractionMetrics{
		extractionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "protostamp",
				Name:      "extractions_total",
				Help:      "Timestamp extraction attempts by mode and outcome.",
			},
			[]string{"mode", "outcome"},
		),
		registerer: registerer,
	}
}

// Register attaches the collectors to the registerer. Safe to call more than
// once; a collector already registered elsewhere in the process is tolerated
// so multiple extractors can share one registry.
func (m *ExtractionMetrics) Register() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.registered {
		return nil
	}
	if err := m.registerer.Register(m.extractionsTotal); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return err
		}
		if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
			m.extractionsTotal = existing
		}
	}
	m.registered = true
	return nil
}

func (m *ExtractionMetrics) observe(mode Mode, err error) {
	if m == nil {
		return
	}
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}
	m.extractionsTotal.WithLabelValues(string(mode), outcome).Inc()
}
