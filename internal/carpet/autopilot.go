package carpet

// Autopilot steers the carpet away from the nearest incoming obstacle.
// It drives the headless simulation and only looks at one threat at a time.
type Autopilot struct {
	// LookaheadTicks is how many simulation ticks ahead an obstacle counts as a threat.
	LookaheadTicks float64
	// Margin widens each obstacle vertically when deciding whether it is in the way.
	Margin float64
}

// NewAutopilot returns an autopilot with workable defaults.
func NewAutopilot() Autopilot {
	return Autopilot{LookaheadTicks: 45, Margin: 15}
}

// Decide returns the motion flags to apply for the next motion ticks.
func (a Autopilot) Decide(s *Session, p Params) (up, down bool) {
	pl := s.Player
	horizon := pl.X + pl.Size + s.Speed*a.LookaheadTicks

	threat := -1
	for i, o := range s.Obstacles {
		if o.X+o.Size < pl.X || o.X > horizon {
			continue
		}
		if o.Y+o.Size+a.Margin < pl.Y || o.Y-a.Margin > pl.Y+pl.Size {
			continue
		}
		if threat < 0 || o.X < s.Obstacles[threat].X {
			threat = i
		}
	}
	if threat < 0 {
		return false, false
	}

	o := s.Obstacles[threat]
	obstacleMid := o.Y + o.Size/2
	playerMid := pl.Y + pl.Size/2

	// Dodge away from the obstacle unless a wall is in the way.
	goDown := obstacleMid < playerMid
	if goDown && pl.Y >= p.maxPlayerY() {
		goDown = false
	} else if !goDown && pl.Y <= 0 {
		goDown = true
	}
	return !goDown, goDown
}
