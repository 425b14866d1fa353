package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/carpetrun/internal/carpet"
)

//go:embed defaults/carpet.yaml
var defaultCarpetYAML []byte

// DefaultConfig returns the hardcoded configuration. It matches the embedded YAML.
func DefaultConfig() CarpetConfig {
	return CarpetConfig{
		Physics: PhysicsConfig{
			InitialSpeed:   carpet.InitialSpeed,
			SpeedIncrement: carpet.SpeedIncrement,
			SpawnRate:      carpet.SpawnRate,
			MoveSpeed:      carpet.MoveSpeed,
			RotationStep:   carpet.RotationStep,
		},
		World: WorldConfig{
			Width:      carpet.GameWidth,
			Height:     carpet.GameHeight,
			PlayerX:    carpet.PlayerX,
			CarpetSize: carpet.CarpetSize,
			WeaponSize: carpet.WeaponSize,
		},
		Timing: TimingConfig{
			SimHz:          60,
			MotionInterval: carpet.DefaultMotionInterval,
			KeyHold:        300 * time.Millisecond,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Render: RenderConfig{
			Color: true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultCarpetYAML
}
