// cmd/replay/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/mission-replay/core"
	"github.com/signalsfoundry/mission-replay/internal/logging"
	"github.com/signalsfoundry/mission-replay/internal/observability"
	"github.com/signalsfoundry/mission-replay/internal/tui"
	"github.com/signalsfoundry/mission-replay/timectrl"
)

var (
	nominalPath    string
	offNominalPath string
	antennaPath    string
	linkBudgetPath string
	stagesPath     string

	tickInterval time.Duration
	accelerated  bool
	maxIndex     int
	metricsAddr  string
	useTUI       bool
)

var rootCmd = &cobra.Command{
	Use:   "mission-replay",
	Short: "Replays recorded mission telemetry and derives live mission state.",
	Long: `mission-replay drives a visualization of a spacecraft mission by replaying
pre-recorded telemetry tables (trajectory, antenna availability, link budget)
indexed by a discrete simulation step. On every tick it derives the current
mission stage and the currently prioritized ground antenna.`,
	RunE: runReplay,
}

func init() {
	rootCmd.Flags().StringVar(&nominalPath, "nominal", "data/trajectory_nominal.csv", "nominal trajectory table (CSV)")
	rootCmd.Flags().StringVar(&offNominalPath, "off-nominal", "data/trajectory_offnominal.csv", "off-nominal trajectory table (CSV)")
	rootCmd.Flags().StringVar(&antennaPath, "antenna", "data/antenna_availability.csv", "antenna availability table (CSV)")
	rootCmd.Flags().StringVar(&linkBudgetPath, "link-budget", "data/link_budget.csv", "link budget table (CSV)")
	rootCmd.Flags().StringVar(&stagesPath, "stages", "configs/stages.json", "mission stage configuration (JSON)")

	rootCmd.Flags().DurationVar(&tickInterval, "tick", time.Second, "tick interval in real-time mode")
	rootCmd.Flags().BoolVar(&accelerated, "accelerated", false, "advance the index as fast as possible")
	rootCmd.Flags().IntVar(&maxIndex, "max-index", 0, "last simulation index to replay (0 = last antenna row)")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "listen address for /metrics (empty = disabled)")
	rootCmd.Flags().BoolVar(&useTUI, "tui", false, "show a live terminal status view")
}

func runReplay(cmd *cobra.Command, args []string) error {
	log := logging.NewFromEnv()
	ctx, log := logging.WithRunLogger(cmd.Context(), log)

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdown, log)

	collector, err := observability.NewReplayCollector(nil)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Error(ctx, "metrics server failed", logging.String("error", err.Error()))
			}
		}()
		log.Info(ctx, "serving metrics", logging.String("addr", metricsAddr))
	}

	f, err := os.Open(stagesPath)
	if err != nil {
		return fmt.Errorf("open stage configuration %q: %w", stagesPath, err)
	}
	stages, err := core.LoadStageConfig(f)
	f.Close()
	if err != nil {
		return err
	}

	coord := core.NewTelemetryCoordinator(core.Config{
		NominalPath:    nominalPath,
		OffNominalPath: offNominalPath,
		AntennaPath:    antennaPath,
		LinkBudgetPath: linkBudgetPath,
		Stages:         stages,
	}, log, collector)

	var loaded tui.DataLoadedMsg
	coord.Subscribe(func(ev core.Event) {
		if ev.Type == core.EventDataLoaded {
			loaded = tui.DataLoadedMsg{
				NominalRows: ev.Nominal.Len(),
				AntennaRows: ev.Antenna.Len(),
				Stage:       ev.Stage,
			}
		}
	})

	if err := coord.Load(ctx); err != nil {
		return err
	}

	last := maxIndex
	if last <= 0 {
		last = coord.NominalTrajectoryTable().Len() - 1
	}
	if last < 0 {
		last = 0
	}

	mode := timectrl.RealTime
	if accelerated {
		mode = timectrl.Accelerated
	}
	controller := timectrl.NewIndexController(0, tickInterval, mode)

	var program *tea.Program
	if useTUI {
		program = tea.NewProgram(tui.NewModel(loaded))
	}

	tracer := otel.Tracer("mission-replay")
	controller.AddListener(func(index int) {
		tctx, span := tracer.Start(ctx, "replay.tick",
			trace.WithAttributes(attribute.Int("sim.index", index)))
		coord.OnSimulationIndexUpdated(tctx, index)
		span.SetAttributes(
			attribute.String("mission.stage", coord.CurrentMissionStage().Stage.String()),
			attribute.String("mission.antenna", coord.CurrentPrioritizedAntenna()),
		)
		span.End()

		if program != nil {
			pos, ok := core.PositionAt(coord.NominalTrajectoryTable(), index)
			program.Send(tui.TickMsg{
				Index:       index,
				Stage:       coord.CurrentMissionStage(),
				Antenna:     coord.CurrentPrioritizedAntenna(),
				Position:    pos,
				HasPosition: ok,
			})
		}
	})

	done := controller.Run(last)

	if program != nil {
		go func() {
			<-done
			program.Send(tui.DoneMsg{})
		}()
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
	} else {
		<-done
	}

	log.Info(ctx, "replay finished",
		logging.Int("last_index", coord.LastIndex()),
		logging.String("stage", coord.CurrentMissionStage().Stage.String()),
		logging.String("antenna", coord.CurrentPrioritizedAntenna()),
	)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
