package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Settings holds runtime options for one orrery process. Values are populated
// from .orrery.yaml, ORRERY_* env vars, and CLI flags.
type Settings struct {
	System      string `mapstructure:"system"`
	FPS         int    `mapstructure:"fps"`
	Frames      int    `mapstructure:"frames"`     // simulate
	RunFrames   int    `mapstructure:"run_frames"` // run; 0 keeps the window open
	MetricsAddr string `mapstructure:"metrics_addr"`
	Width       int    `mapstructure:"width"`
	Height      int    `mapstructure:"height"`
	Camera      string `mapstructure:"camera"`
	DebugUI     bool   `mapstructure:"debug_ui"`
	Verbose     bool   `mapstructure:"verbose"`
}

// LoadSettings reads settings from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func LoadSettings() (Settings, error) {
	viper.SetDefault("system", "classic")
	viper.SetDefault("fps", 60)
	viper.SetDefault("frames", 600)
	viper.SetDefault("run_frames", 0)
	viper.SetDefault("metrics_addr", "")
	viper.SetDefault("width", 1280)
	viper.SetDefault("height", 720)
	viper.SetDefault("camera", "main")
	viper.SetDefault("debug_ui", false)
	viper.SetDefault("verbose", false)

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}

	switch {
	case s.FPS <= 0:
		return Settings{}, fmt.Errorf("%w: fps %d", ErrInvalidSettings, s.FPS)
	case s.Width <= 0 || s.Height <= 0:
		return Settings{}, fmt.Errorf("%w: window %dx%d", ErrInvalidSettings, s.Width, s.Height)
	case s.Frames < 0 || s.RunFrames < 0:
		return Settings{}, fmt.Errorf("%w: frames %d, run frames %d", ErrInvalidSettings, s.Frames, s.RunFrames)
	}
	return s, nil
}
