// Package config provides YAML-based configuration loading for Carpet Run.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/carpetrun/internal/carpet"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// CarpetConfig contains all configuration for the game.
type CarpetConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	World   WorldConfig   `yaml:"world"`
	Timing  TimingConfig  `yaml:"timing"`
	Audio   AudioConfig   `yaml:"audio"`
	Render  RenderConfig  `yaml:"render"`
}

// PhysicsConfig defines movement and spawning parameters.
type PhysicsConfig struct {
	InitialSpeed   float64 `yaml:"initial_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"`
	SpawnRate      float64 `yaml:"spawn_rate"`
	MoveSpeed      float64 `yaml:"move_speed"`
	RotationStep   float64 `yaml:"rotation_step"`
}

// WorldConfig defines the playfield and entity sizes in world pixels.
type WorldConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	PlayerX    float64 `yaml:"player_x"`
	CarpetSize float64 `yaml:"carpet_size"`
	WeaponSize float64 `yaml:"weapon_size"`
}

// TimingConfig defines tick rates.
type TimingConfig struct {
	SimHz          int           `yaml:"sim_hz"`
	MotionInterval time.Duration `yaml:"motion_interval"`
	KeyHold        time.Duration `yaml:"key_hold"`
}

// AudioConfig defines background music.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Music   string  `yaml:"music"`
	Volume  float64 `yaml:"volume"`
}

// RenderConfig defines terminal output options.
type RenderConfig struct {
	Color bool `yaml:"color"`
}

// SimInterval returns the period of the simulation tick.
func (t TimingConfig) SimInterval() time.Duration {
	if t.SimHz <= 0 {
		return carpet.DefaultSimInterval
	}
	return time.Second / time.Duration(t.SimHz)
}

// ToParams converts the physics and world sections into engine parameters.
func (c CarpetConfig) ToParams() carpet.Params {
	return carpet.Params{
		GameWidth:      c.World.Width,
		GameHeight:     c.World.Height,
		CarpetSize:     c.World.CarpetSize,
		WeaponSize:     c.World.WeaponSize,
		PlayerX:        c.World.PlayerX,
		InitialSpeed:   c.Physics.InitialSpeed,
		SpeedIncrement: c.Physics.SpeedIncrement,
		SpawnRate:      c.Physics.SpawnRate,
		MoveSpeed:      c.Physics.MoveSpeed,
		RotationStep:   c.Physics.RotationStep,
	}
}

// Validate reports the first problem found, wrapped in ErrInvalid.
func (c CarpetConfig) Validate() error {
	w := c.World
	p := c.Physics
	t := c.Timing

	switch {
	case w.Width <= 0 || w.Height <= 0:
		return fmt.Errorf("%w: world size %vx%v must be positive", ErrInvalid, w.Width, w.Height)
	case w.CarpetSize <= 0 || w.WeaponSize <= 0:
		return fmt.Errorf("%w: carpet_size and weapon_size must be positive", ErrInvalid)
	case w.CarpetSize > w.Height || w.WeaponSize > w.Height:
		return fmt.Errorf("%w: sprites do not fit a world %v pixels high", ErrInvalid, w.Height)
	case w.PlayerX < 0 || w.PlayerX+w.CarpetSize > w.Width:
		return fmt.Errorf("%w: player_x %v puts the carpet outside the world", ErrInvalid, w.PlayerX)
	case p.SpawnRate < 0 || p.SpawnRate > 1:
		return fmt.Errorf("%w: spawn_rate %v outside [0, 1]", ErrInvalid, p.SpawnRate)
	case p.InitialSpeed < 0 || p.SpeedIncrement < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalid)
	case p.MoveSpeed <= 0:
		return fmt.Errorf("%w: move_speed must be positive", ErrInvalid)
	case t.SimHz <= 0:
		return fmt.Errorf("%w: sim_hz must be positive", ErrInvalid)
	case t.MotionInterval <= 0:
		return fmt.Errorf("%w: motion_interval must be positive", ErrInvalid)
	case t.KeyHold <= 0:
		return fmt.Errorf("%w: key_hold must be positive", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: volume %v outside [0, 1]", ErrInvalid, c.Audio.Volume)
	}
	return nil
}
