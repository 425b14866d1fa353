package carpet

import (
	"context"
	"sync"
	"time"
)

// Default tick intervals: the simulation runs at 60 Hz, motion every 16ms.
const (
	DefaultSimInterval    = time.Second / 60
	DefaultMotionInterval = 16 * time.Millisecond
)

// EventKind identifies which tick stream produced an Event.
type EventKind int

const (
	EventSimulation EventKind = iota
	EventMotion
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventSimulation:
		return "simulation"
	case EventMotion:
		return "motion"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is published to the observer after every tick or reset.
type Event struct {
	Kind     EventKind
	Result   TickResult // zero except for EventSimulation
	Snapshot Snapshot
}

// Observer receives events. It runs on the runner's goroutine without the lock
// held, so it may call back into the runner.
type Observer func(Event)

// Snapshot is a point-in-time copy of a session plus tick counters.
type Snapshot struct {
	Session
	SimTicks    uint64
	MotionTicks uint64
}

// RunnerConfig configures a Runner. Zero values pick the defaults.
type RunnerConfig struct {
	SimInterval    time.Duration
	MotionInterval time.Duration
	Clock          Clock
	Observer       Observer

	// StopOnGameOver makes Run return once the session ends instead of idling
	// until the context is cancelled.
	StopOnGameOver bool
}

// Runner owns a session on hosts where ticks and input arrive from different
// goroutines. Every access to the session goes through its mutex.
type Runner struct {
	engine *Engine
	cfg    RunnerConfig

	mu          sync.Mutex
	session     *Session
	simTicks    uint64
	motionTicks uint64
}

// NewRunner creates a runner with a fresh session.
func NewRunner(engine *Engine, cfg RunnerConfig) *Runner {
	if cfg.SimInterval <= 0 {
		cfg.SimInterval = DefaultSimInterval
	}
	if cfg.MotionInterval <= 0 {
		cfg.MotionInterval = DefaultMotionInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	return &Runner{
		engine:  engine,
		cfg:     cfg,
		session: engine.NewSession(),
	}
}

// Run drives both tick streams until ctx is done, or until the game ends when
// StopOnGameOver is set. Stopping returns nil on game over and ctx.Err() otherwise.
func (r *Runner) Run(ctx context.Context) error {
	sim := r.cfg.Clock.NewTicker(r.cfg.SimInterval)
	defer sim.Stop()
	motion := r.cfg.Clock.NewTicker(r.cfg.MotionInterval)
	defer motion.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sim.C():
			res := r.StepSimulation()
			if r.cfg.StopOnGameOver && (res.Collided || !res.Advanced) {
				return nil
			}
		case <-motion.C():
			r.StepMotion()
		}
	}
}

// StepSimulation runs one simulation tick immediately.
func (r *Runner) StepSimulation() TickResult {
	r.mu.Lock()
	res := r.engine.SimulationTick(r.session)
	if res.Advanced {
		r.simTicks++
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.publish(Event{Kind: EventSimulation, Result: res, Snapshot: snap})
	return res
}

// StepMotion runs one motion tick immediately.
func (r *Runner) StepMotion() {
	r.mu.Lock()
	if !r.session.GameOver {
		r.engine.MotionTick(r.session)
		r.motionTicks++
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.publish(Event{Kind: EventMotion, Snapshot: snap})
}

// SetMoving forwards a directional intent to the session.
func (r *Runner) SetMoving(d Direction, active bool) {
	r.mu.Lock()
	r.session.SetMoving(d, active)
	r.mu.Unlock()
}

// Reset starts a new run in place.
func (r *Runner) Reset() {
	r.mu.Lock()
	r.engine.Reset(r.session)
	r.simTicks = 0
	r.motionTicks = 0
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.publish(Event{Kind: EventReset, Snapshot: snap})
}

// Snapshot returns a deep copy of the current state.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Runner) snapshotLocked() Snapshot {
	return Snapshot{
		Session:     *r.session.Clone(),
		SimTicks:    r.simTicks,
		MotionTicks: r.motionTicks,
	}
}

func (r *Runner) publish(ev Event) {
	if r.cfg.Observer != nil {
		r.cfg.Observer(ev)
	}
}
