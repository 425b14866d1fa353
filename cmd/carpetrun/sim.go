package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/carpetrun/internal/carpet"
	"github.com/vovakirdan/carpetrun/internal/config"
)

var (
	flagFast     bool
	flagDuration time.Duration
	flagMaxTicks uint64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless game steered by the autopilot",
	Long: `Run a game without a terminal UI. The autopilot steers the carpet away
from incoming weapons until it crashes.

By default the game runs in real time at the configured tick rates. With
--fast the ticks are stepped back to back, which is useful for checking
that a seed and config behave the same way every time.

Examples:
  carpetrun sim --seed 42
  carpetrun sim --fast --seed 7 --log-level debug
  carpetrun sim --duration 30s`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().BoolVar(&flagFast, "fast", false, "Step ticks without waiting for the clock")
	simCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Stop after this long in real time (0 = until crash)")
	simCmd.Flags().Uint64Var(&flagMaxTicks, "max-ticks", 1_000_000, "Stop after this many simulation ticks in --fast mode")
}

func runSim(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Simulation started", "seed", seed, "fast", flagFast)

	var snap carpet.Snapshot
	if flagFast {
		snap = simulateFast(cfg.ToParams(), seed, flagMaxTicks, logger)
	} else {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if flagDuration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, flagDuration)
			defer cancel()
		}
		snap, err = simulateRealtime(ctx, cfg, seed, logger)
		if err != nil {
			return err
		}
	}

	logger.Info("Simulation finished", "score", snap.Score, "crashed", snap.GameOver)
	fmt.Fprintf(cmd.OutOrStdout(), "Final score: %d (speed %.3f, crashed: %v)\n", snap.Score, snap.Speed, snap.GameOver)
	return nil
}

// newAutopilotRunner wires the autopilot into a runner as its observer. After
// each simulation tick it re-steers the carpet for the motion ticks that follow.
func newAutopilotRunner(params carpet.Params, seed int64, rc carpet.RunnerConfig, logger *log.Logger) *carpet.Runner {
	engine := carpet.NewEngine(params, rand.New(rand.NewSource(seed)))
	pilot := carpet.NewAutopilot()

	var r *carpet.Runner
	rc.Observer = func(ev carpet.Event) {
		if ev.Kind != carpet.EventSimulation {
			return
		}
		if ev.Result.Spawned {
			last := ev.Snapshot.Obstacles[len(ev.Snapshot.Obstacles)-1]
			logger.Debug("Obstacle spawned", "tick", ev.Snapshot.SimTicks, "y", last.Y)
		}
		if ev.Result.Collided {
			logger.Info("Collision", "score", ev.Snapshot.Score, "speed", ev.Snapshot.Speed)
			return
		}
		up, down := pilot.Decide(&ev.Snapshot.Session, params)
		r.SetMoving(carpet.DirUp, up)
		r.SetMoving(carpet.DirDown, down)
	}
	r = carpet.NewRunner(engine, rc)
	return r
}

// simulateFast alternates simulation and motion ticks without a clock until the
// carpet crashes or maxTicks simulation ticks have run.
func simulateFast(params carpet.Params, seed int64, maxTicks uint64, logger *log.Logger) carpet.Snapshot {
	r := newAutopilotRunner(params, seed, carpet.RunnerConfig{}, logger)
	for {
		res := r.StepSimulation()
		if res.Collided || !res.Advanced {
			break
		}
		r.StepMotion()
		if maxTicks > 0 && r.Snapshot().SimTicks >= maxTicks {
			break
		}
	}
	return r.Snapshot()
}

// simulateRealtime drives the runner on the wall clock until the carpet crashes
// or ctx ends.
func simulateRealtime(ctx context.Context, cfg config.CarpetConfig, seed int64, logger *log.Logger) (carpet.Snapshot, error) {
	r := newAutopilotRunner(cfg.ToParams(), seed, carpet.RunnerConfig{
		SimInterval:    cfg.Timing.SimInterval(),
		MotionInterval: cfg.Timing.MotionInterval,
		StopOnGameOver: true,
	}, logger)

	err := r.Run(ctx)
	if err != nil && ctx.Err() == nil {
		return r.Snapshot(), fmt.Errorf("simulation: %w", err)
	}
	return r.Snapshot(), nil
}
