// Package carpet implements the flying-carpet avoider: the player moves vertically
// to dodge spinning obstacles that scroll in from the right edge of the world.
//
// The package holds pure simulation logic with no terminal or timer dependencies.
// Hosts drive it by calling SimulationTick and MotionTick at fixed rates.
package carpet

// World and gameplay defaults. Coordinates are in world pixels with the origin
// at the top-left corner.
const (
	GameWidth      = 1100.0
	GameHeight     = 700.0
	CarpetSize     = 100.0
	WeaponSize     = 40.0
	PlayerX        = 100.0
	InitialSpeed   = 8.0
	SpeedIncrement = 0.001
	SpawnRate      = 0.04
	MoveSpeed      = 10.0
	RotationStep   = 5.0 // degrees per simulation tick
)

// Params holds the tunable simulation parameters.
type Params struct {
	GameWidth      float64
	GameHeight     float64
	CarpetSize     float64
	WeaponSize     float64
	PlayerX        float64
	InitialSpeed   float64
	SpeedIncrement float64
	SpawnRate      float64 // probability of a spawn per simulation tick
	MoveSpeed      float64 // pixels per motion tick
	RotationStep   float64
}

// DefaultParams returns the stock gameplay parameters.
func DefaultParams() Params {
	return Params{
		GameWidth:      GameWidth,
		GameHeight:     GameHeight,
		CarpetSize:     CarpetSize,
		WeaponSize:     WeaponSize,
		PlayerX:        PlayerX,
		InitialSpeed:   InitialSpeed,
		SpeedIncrement: SpeedIncrement,
		SpawnRate:      SpawnRate,
		MoveSpeed:      MoveSpeed,
		RotationStep:   RotationStep,
	}
}

// maxPlayerY is the lowest position the carpet can reach.
func (p Params) maxPlayerY() float64 {
	return p.GameHeight - p.CarpetSize
}

// maxSpawnY is the exclusive upper bound for a new obstacle's Y.
func (p Params) maxSpawnY() float64 {
	return p.GameHeight - p.WeaponSize
}
