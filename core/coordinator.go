package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/signalsfoundry/mission-replay/internal/logging"
	"github.com/signalsfoundry/mission-replay/model"
)

// EventType indicates what kind of change the coordinator is reporting.
type EventType int

const (
	// EventDataLoaded is published exactly once, after all telemetry
	// tables have loaded. It carries the three derivation tables and
	// the initial stage.
	EventDataLoaded EventType = iota
	// EventStageUpdated is published once per stage transition, never
	// redundantly for the same stage.
	EventStageUpdated
)

// Event is delivered to subscribers when derived mission state changes.
type Event struct {
	Type EventType

	// Set for EventDataLoaded.
	Nominal    model.Table
	OffNominal model.Table
	Antenna    model.Table

	// The initial stage (EventDataLoaded) or the newly entered stage
	// (EventStageUpdated).
	Stage model.StageDefinition
}

// Metrics receives derivation counters from the coordinator. The
// Prometheus-backed implementation lives in internal/observability;
// core only depends on this interface.
type Metrics interface {
	IncTick()
	IncStageTransition(stage string)
	IncAntennaSwitch()
	IncDerivationError(kind string)
	SetTableRows(table string, rows int)
}

type nopMetrics struct{}

func (nopMetrics) IncTick()                  {}
func (nopMetrics) IncStageTransition(string) {}
func (nopMetrics) IncAntennaSwitch()         {}
func (nopMetrics) IncDerivationError(string) {}
func (nopMetrics) SetTableRows(string, int)  {}

// NopMetrics returns a Metrics implementation that drops everything.
func NopMetrics() Metrics { return nopMetrics{} }

// Config names the four telemetry table sources and the stage table
// driving stage resolution.
type Config struct {
	NominalPath    string
	OffNominalPath string
	AntennaPath    string
	LinkBudgetPath string

	Stages StageTable
}

// TelemetryCoordinator owns the replayed telemetry tables and derives
// live mission state from them: the current mission stage and the
// currently prioritized ground antenna. It is passively driven by
// OnSimulationIndexUpdated from a single sequential timeline and does
// all derivation synchronously; there is no internal locking because
// there is no concurrent access to its state.
type TelemetryCoordinator struct {
	cfg     Config
	log     logging.Logger
	metrics Metrics

	nominal    model.Table
	offNominal model.Table
	antenna    model.Table
	linkBudget model.Table

	loaded bool

	currentStage   model.StageDefinition
	currentAntenna string
	lastIndex      int

	subs []func(Event)
}

// NewTelemetryCoordinator constructs a coordinator. Call Load before
// feeding it index updates.
func NewTelemetryCoordinator(cfg Config, log logging.Logger, metrics Metrics) *TelemetryCoordinator {
	if log == nil {
		log = logging.Noop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &TelemetryCoordinator{
		cfg:     cfg,
		log:     log,
		metrics: metrics,
	}
}

// Subscribe registers a callback invoked for every published event.
// Subscribers that want the DataLoaded event must register before Load.
func (c *TelemetryCoordinator) Subscribe(fn func(Event)) {
	c.subs = append(c.subs, fn)
}

func (c *TelemetryCoordinator) publish(ev Event) {
	for _, fn := range c.subs {
		fn(ev)
	}
}

// Load reads all four telemetry tables, validates the stage table,
// seeds the derived state with the first stage, and publishes the
// one-time DataLoaded event. Any table load failure is fatal: no state
// is seeded and no event is published.
func (c *TelemetryCoordinator) Load(ctx context.Context) error {
	if c.loaded {
		return fmt.Errorf("telemetry already loaded")
	}

	var err error
	if c.nominal, err = LoadTableFile(c.cfg.NominalPath); err != nil {
		return fmt.Errorf("load nominal trajectory: %w", err)
	}
	if c.offNominal, err = LoadTableFile(c.cfg.OffNominalPath); err != nil {
		return fmt.Errorf("load off-nominal trajectory: %w", err)
	}
	if c.antenna, err = LoadTableFile(c.cfg.AntennaPath); err != nil {
		return fmt.Errorf("load antenna availability: %w", err)
	}
	if c.linkBudget, err = LoadTableFile(c.cfg.LinkBudgetPath); err != nil {
		return fmt.Errorf("load link budget: %w", err)
	}

	if err := c.cfg.Stages.Validate(); err != nil {
		return fmt.Errorf("stage configuration: %w", err)
	}

	c.currentStage = c.cfg.Stages[0]
	c.currentAntenna = ""
	c.lastIndex = 0
	if len(c.antenna) > 0 {
		ant, err := SelectAntenna(c.antenna, 0)
		if err != nil {
			c.log.Warn(ctx, "initial antenna derivation failed",
				logging.String("error", err.Error()))
			c.metrics.IncDerivationError(derivationErrorKind(err))
		} else {
			c.currentAntenna = ant
		}
	}
	c.loaded = true

	c.metrics.SetTableRows("nominal", len(c.nominal))
	c.metrics.SetTableRows("off_nominal", len(c.offNominal))
	c.metrics.SetTableRows("antenna", len(c.antenna))
	c.metrics.SetTableRows("link_budget", len(c.linkBudget))

	c.log.Info(ctx, "telemetry loaded",
		logging.Int("nominal_rows", len(c.nominal)),
		logging.Int("off_nominal_rows", len(c.offNominal)),
		logging.Int("antenna_rows", len(c.antenna)),
		logging.Int("link_budget_rows", len(c.linkBudget)),
		logging.String("initial_stage", c.currentStage.Stage.String()),
	)

	c.publish(Event{
		Type:       EventDataLoaded,
		Nominal:    c.nominal,
		OffNominal: c.offNominal,
		Antenna:    c.antenna,
		Stage:      c.currentStage,
	})
	return nil
}

// OnSimulationIndexUpdated is the sole per-tick trigger. It resolves
// the mission stage (publishing StageUpdated only on change) and
// unconditionally recomputes the prioritized antenna. A derivation
// failure for either holds the last good value and surfaces a
// diagnostic; it never crashes the tick loop or reads out of bounds.
func (c *TelemetryCoordinator) OnSimulationIndexUpdated(ctx context.Context, index int) {
	if !c.loaded {
		c.log.Warn(ctx, "index update before telemetry load", logging.Int("index", index))
		return
	}

	stage, err := c.cfg.Stages.Resolve(index)
	switch {
	case err != nil:
		c.log.Warn(ctx, "stage resolution failed",
			logging.Int("index", index),
			logging.String("error", err.Error()))
		c.metrics.IncDerivationError("stage_not_found")
	case !stage.Equal(c.currentStage):
		c.currentStage = stage
		c.metrics.IncStageTransition(stage.Stage.String())
		c.log.Info(ctx, "mission stage changed",
			logging.Int("index", index),
			logging.String("stage", stage.Stage.String()))
		c.publish(Event{Type: EventStageUpdated, Stage: stage})
	}

	ant, err := SelectAntenna(c.antenna, index)
	if err != nil {
		c.log.Warn(ctx, "antenna derivation failed",
			logging.Int("index", index),
			logging.String("error", err.Error()))
		c.metrics.IncDerivationError(derivationErrorKind(err))
	} else {
		if ant != c.currentAntenna && c.currentAntenna != "" {
			c.metrics.IncAntennaSwitch()
		}
		c.currentAntenna = ant
	}

	c.lastIndex = index
	c.metrics.IncTick()
}

// CurrentMissionStage returns the most recently derived mission stage.
func (c *TelemetryCoordinator) CurrentMissionStage() model.StageDefinition {
	return c.currentStage
}

// CurrentPrioritizedAntenna returns the most recently derived antenna
// identifier, or "" before any successful derivation.
func (c *TelemetryCoordinator) CurrentPrioritizedAntenna() string {
	return c.currentAntenna
}

// LastIndex returns the index of the most recent update.
func (c *TelemetryCoordinator) LastIndex() int { return c.lastIndex }

// LinkBudgetTable exposes the link-budget table. Nothing is derived
// from it in-core, so it is a plain accessor rather than part of the
// DataLoaded event.
func (c *TelemetryCoordinator) LinkBudgetTable() model.Table { return c.linkBudget }

// NominalTrajectoryTable exposes the nominal trajectory for
// presentation-side position lookups.
func (c *TelemetryCoordinator) NominalTrajectoryTable() model.Table { return c.nominal }

func derivationErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, ErrMalformedRow):
		return "malformed_row"
	default:
		return "other"
	}
}
