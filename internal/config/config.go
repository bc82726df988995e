// Package config loads the viewer settings from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned for settings that fail validation.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Window    WindowConfig    `toml:"window"`
	Camera    CameraConfig    `toml:"camera"`
	Light     LightConfig     `toml:"light"`
	Behaviour BehaviourConfig `toml:"behaviour"`
}

type WindowConfig struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Title      string     `toml:"title"`
	FPSLimit   int        `toml:"fps_limit"`
	Background [4]float32 `toml:"background"`
}

type CameraConfig struct {
	Position [3]float32 `toml:"position"`
	Target   [3]float32 `toml:"target"`
	Up       [3]float32 `toml:"up"`
	FOV      float32    `toml:"fov"`
	// radians per tick, 0 disables the automatic orbit
	OrbitStep float32 `toml:"orbit_step"`
}

type LightConfig struct {
	Position     [3]float32 `toml:"position"`
	FollowCamera bool       `toml:"follow_camera"`
	Offset       [3]float32 `toml:"offset"`
}

type BehaviourConfig struct {
	// ticks between object additions or group swaps
	Interval int `toml:"interval"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:      900,
			Height:     600,
			Title:      "viz3d",
			FPSLimit:   60,
			Background: [4]float32{1, 1, 1, 1},
		},
		Camera: CameraConfig{
			Position: [3]float32{-2, -2, -2},
			Up:       [3]float32{0, 0, 1},
			FOV:      45,
		},
		Light: LightConfig{
			Position:     [3]float32{-0.5, -0.8, -2},
			FollowCamera: true,
		},
		Behaviour: BehaviourConfig{Interval: 30},
	}
}

// Load reads a TOML file on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML into cfg, keeping the fields the document does not set,
// then validates the result.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg.Validate()
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("%w: fov %v outside (0,180)", ErrInvalidConfig, c.Camera.FOV)
	}
	if c.Camera.Up == [3]float32{} {
		return fmt.Errorf("%w: camera up vector is zero", ErrInvalidConfig)
	}
	if c.Camera.Position == c.Camera.Target {
		return fmt.Errorf("%w: camera position equals its target", ErrInvalidConfig)
	}
	if c.Behaviour.Interval < 0 {
		return fmt.Errorf("%w: behaviour interval %d", ErrInvalidConfig, c.Behaviour.Interval)
	}
	return nil
}

// FrameLimit returns the frame rate cap clamped to [10,500], or 0 when the
// configured limit is not positive and the loop runs uncapped.
func (w WindowConfig) FrameLimit() int {
	switch {
	case w.FPSLimit <= 0:
		return 0
	case w.FPSLimit < 10:
		return 10
	case w.FPSLimit > 500:
		return 500
	}
	return w.FPSLimit
}
