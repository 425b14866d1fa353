package carpet

// Rand is the randomness source used for spawning. *math/rand.Rand satisfies it.
type Rand interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
}

// TickResult reports what a SimulationTick did, for collaborators that react to
// events (audio, logging) rather than to state.
type TickResult struct {
	Advanced bool // false when the session was already over
	Spawned  bool
	Removed  int  // obstacles dropped after leaving the screen
	Collided bool // this tick ended the game
	HitIndex int  // index into Session.Obstacles of the obstacle that hit, or -1
}

// Engine advances sessions. It holds parameters and the spawn RNG, never session state.
type Engine struct {
	params Params
	rng    Rand
}

// NewEngine creates an engine with the given parameters and randomness source.
func NewEngine(params Params, rng Rand) *Engine {
	return &Engine{params: params, rng: rng}
}

// Params returns the engine's parameters.
func (e *Engine) Params() Params {
	return e.params
}

// NewSession returns a fresh session with the carpet centered vertically.
func (e *Engine) NewSession() *Session {
	s := &Session{}
	e.Reset(s)
	return s
}

// Reset restores s to its initial state, discarding obstacles, score and speed.
func (e *Engine) Reset(s *Session) {
	*s = Session{
		Player: Player{
			X:    e.params.PlayerX,
			Y:    e.params.GameHeight / 2,
			Size: e.params.CarpetSize,
		},
		Obstacles: s.Obstacles[:0],
		Speed:     e.params.InitialSpeed,
	}
}

// SimulationTick advances score, speed and obstacles by one step and checks for
// collisions. It does nothing once the game is over.
func (e *Engine) SimulationTick(s *Session) TickResult {
	res := TickResult{HitIndex: -1}
	if s.GameOver {
		return res
	}
	res.Advanced = true

	// Obstacles move by the speed in effect when the tick started.
	speed := s.Speed
	s.Score++
	s.Speed += e.params.SpeedIncrement

	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		if o.X <= -o.Size {
			res.Removed++
			continue
		}
		o.X -= speed
		o.Rotation += e.params.RotationStep
		kept = append(kept, o)
	}
	s.Obstacles = kept

	if e.rng.Float64() < e.params.SpawnRate {
		s.Obstacles = append(s.Obstacles, Obstacle{
			X:    e.params.GameWidth,
			Y:    e.rng.Float64() * e.params.maxSpawnY(),
			Size: e.params.WeaponSize,
		})
		res.Spawned = true
	}

	for i, o := range s.Obstacles {
		if Collides(s.Player, o) {
			s.GameOver = true
			res.Collided = true
			res.HitIndex = i
			break
		}
	}
	return res
}

// MotionTick moves the carpet according to the motion flags. Both adjustments
// start from the current position and down overrides up when both flags are set.
func (e *Engine) MotionTick(s *Session) {
	if s.GameOver {
		return
	}
	y := s.Player.Y
	if s.MovingUp {
		y = max(0, s.Player.Y-e.params.MoveSpeed)
	}
	if s.MovingDown {
		y = min(e.params.maxPlayerY(), s.Player.Y+e.params.MoveSpeed)
	}
	s.Player.Y = y
}
