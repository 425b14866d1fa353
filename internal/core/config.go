package core

// RuntimeConfig is what the platform hands a game when it starts or restarts.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed, 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is the summary the platform reads after each tick.
type GameState struct {
	Score    int
	Speed    float64
	GameOver bool
	Paused   bool
}
