package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReplayCollector bundles Prometheus metrics for the telemetry replay
// and provides a ready-to-serve /metrics handler. It implements the
// core.Metrics interface so the coordinator can drive it without
// importing Prometheus.
type ReplayCollector struct {
	gatherer prometheus.Gatherer

	Ticks            prometheus.Counter
	StageTransitions *prometheus.CounterVec
	AntennaSwitches  prometheus.Counter
	DerivationErrors *prometheus.CounterVec
	TableRows        *prometheus.GaugeVec
}

// NewReplayCollector registers replay Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry
// when nil.
func NewReplayCollector(reg prometheus.Registerer) (*ReplayCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "replay_ticks_total",
		Help: "Total number of processed simulation index updates.",
	}), "replay_ticks_total")
	if err != nil {
		return nil, err
	}

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "replay_stage_transitions_total",
		Help: "Total number of mission stage transitions, labeled by the stage entered.",
	}, []string{"stage"})
	transitions, err = registerCounterVec(reg, transitions, "replay_stage_transitions_total")
	if err != nil {
		return nil, err
	}

	switches, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "replay_antenna_switches_total",
		Help: "Total number of accepted prioritized-antenna changes.",
	}), "replay_antenna_switches_total")
	if err != nil {
		return nil, err
	}

	derivationErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "replay_derivation_errors_total",
		Help: "Total number of recoverable per-tick derivation failures, labeled by kind.",
	}, []string{"kind"})
	derivationErrors, err = registerCounterVec(reg, derivationErrors, "replay_derivation_errors_total")
	if err != nil {
		return nil, err
	}

	tableRows := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "replay_table_rows",
		Help: "Number of data rows loaded per telemetry table.",
	}, []string{"table"})
	tableRows, err = registerGaugeVec(reg, tableRows, "replay_table_rows")
	if err != nil {
		return nil, err
	}

	return &ReplayCollector{
		gatherer:         gatherer,
		Ticks:            ticks,
		StageTransitions: transitions,
		AntennaSwitches:  switches,
		DerivationErrors: derivationErrors,
		TableRows:        tableRows,
	}, nil
}

// IncTick satisfies core.Metrics.
func (c *ReplayCollector) IncTick() {
	if c == nil || c.Ticks == nil {
		return
	}
	c.Ticks.Inc()
}

// IncStageTransition satisfies core.Metrics.
func (c *ReplayCollector) IncStageTransition(stage string) {
	if c == nil || c.StageTransitions == nil {
		return
	}
	c.StageTransitions.WithLabelValues(stage).Inc()
}

// IncAntennaSwitch satisfies core.Metrics.
func (c *ReplayCollector) IncAntennaSwitch() {
	if c == nil || c.AntennaSwitches == nil {
		return
	}
	c.AntennaSwitches.Inc()
}

// IncDerivationError satisfies core.Metrics.
func (c *ReplayCollector) IncDerivationError(kind string) {
	if c == nil || c.DerivationErrors == nil {
		return
	}
	c.DerivationErrors.WithLabelValues(kind).Inc()
}

// SetTableRows satisfies core.Metrics.
func (c *ReplayCollector) SetTableRows(table string, rows int) {
	if c == nil || c.TableRows == nil {
		return
	}
	c.TableRows.WithLabelValues(table).Set(float64(rows))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ReplayCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
