package carpet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDirection is returned by ParseDirection for anything other than "up" or "down".
var ErrUnknownDirection = errors.New("carpet: unknown direction")

// Direction is a vertical movement intent.
type Direction int

const (
	DirUp Direction = iota
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection converts an external direction name into a Direction.
// Input boundaries (key maps, scripted input) use it to reject bad names before
// they reach the session.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownDirection, s)
}

// Player is the carpet. Only Y changes after initialization.
type Player struct {
	X    float64
	Y    float64
	Size float64 // side of the square bounding box
}

// Obstacle is a spinning weapon scrolling towards the player.
type Obstacle struct {
	X        float64
	Y        float64
	Rotation float64 // degrees, cosmetic only
	Size     float64
}

// Session is the authoritative state of one run, from start or reset until game over.
type Session struct {
	Player     Player
	Obstacles  []Obstacle
	Score      int
	Speed      float64
	GameOver   bool
	MovingUp   bool
	MovingDown bool
}

// SetMoving records a directional intent. Position only changes on the next MotionTick.
func (s *Session) SetMoving(d Direction, active bool) {
	switch d {
	case DirUp:
		s.MovingUp = active
	case DirDown:
		s.MovingDown = active
	}
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s *Session) Clone() *Session {
	c := *s
	c.Obstacles = make([]Obstacle, len(s.Obstacles))
	copy(c.Obstacles, s.Obstacles)
	return &c
}
