package carpet

import (
	"math/rand"

	"github.com/vovakirdan/carpetrun/internal/core"
)

// Game binds an engine and its session for single-goroutine hosts such as the
// Bubble Tea platform, where both tick streams and input are already serialized.
type Game struct {
	params  Params
	engine  *Engine
	session *Session
	runtime core.RuntimeConfig
	paused  bool
}

// New creates a game with the given parameters. Call Reset before ticking.
func New(params Params) *Game {
	return &Game{params: params}
}

// ID returns the identifier used for screenshots and logs.
func (g *Game) ID() string {
	return "carpet"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Carpet Run"
}

// Reset starts a fresh run. The spawn RNG is reseeded from the runtime config so
// runs with the same seed and inputs are identical.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.engine = NewEngine(g.params, rand.New(rand.NewSource(runtime.Seed)))
	if g.session == nil {
		g.session = g.engine.NewSession()
	} else {
		g.engine.Reset(g.session)
	}
	g.paused = false
}

// SimulationTick advances the simulation unless paused.
func (g *Game) SimulationTick() TickResult {
	if g.paused {
		return TickResult{HitIndex: -1}
	}
	return g.engine.SimulationTick(g.session)
}

// MotionTick moves the carpet unless paused.
func (g *Game) MotionTick() {
	if g.paused {
		return
	}
	g.engine.MotionTick(g.session)
}

// SetMoving forwards a directional intent to the session.
func (g *Game) SetMoving(d Direction, active bool) {
	g.session.SetMoving(d, active)
}

// TogglePause pauses or resumes both tick streams. A finished game stays unpaused.
func (g *Game) TogglePause() {
	if g.session.GameOver {
		return
	}
	g.paused = !g.paused
}

// Session exposes the live session for read access by renderers.
func (g *Game) Session() *Session {
	return g.session
}

// State returns the platform-level summary of the session.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score,
		Speed:    g.session.Speed,
		GameOver: g.session.GameOver,
		Paused:   g.paused,
	}
}
