// Package config provides YAML-based configuration for the game: display
// and input timing, animation, audio, level and storage locations, and
// logging.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/audio"
	"github.com/vovakirdan/tui-sokoban/internal/render"
	"github.com/vovakirdan/tui-sokoban/internal/screens"
)

// Config contains all game configuration.
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Gameplay  GameplayConfig  `yaml:"gameplay"`
	Animation AnimationConfig `yaml:"animation"`
	Audio     AudioConfig     `yaml:"audio"`
	Levels    LevelsConfig    `yaml:"levels"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

// DisplayConfig defines the terminal presentation.
// Width and height of 0 follow the terminal size.
type DisplayConfig struct {
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       bool `yaml:"msaa"`
	ShowFPS    bool `yaml:"show_fps"`
	ShowGrid   bool `yaml:"show_grid"`
	TargetFPS  int  `yaml:"target_fps"`
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
}

// GameplayConfig defines input timing in seconds.
type GameplayConfig struct {
	MovementCooldown   float64 `yaml:"movement_cooldown"`
	FailedMoveCooldown float64 `yaml:"failed_move_cooldown"`
	CommandCooldown    float64 `yaml:"command_cooldown"`
	RestartCooldown    float64 `yaml:"restart_cooldown"`
	MenuInputDelay     float64 `yaml:"menu_input_delay"`
	PauseFade          float64 `yaml:"pause_fade"`
}

// AnimationConfig defines tween lengths in seconds. Speed divides them.
type AnimationConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Speed        float64 `yaml:"speed"`
	WalkDuration float64 `yaml:"walk_duration"`
	PushDuration float64 `yaml:"push_duration"`
}

// AudioConfig defines volumes in [0, 1] and the output sample rate.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
	MusicVolume  float64 `yaml:"music_volume"`
	SfxVolume    float64 `yaml:"sfx_volume"`
	SampleRate   int     `yaml:"sample_rate"`
}

// LevelsConfig locates level files.
type LevelsConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// StorageConfig locates the results database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines log level and file. An empty file logs to stderr.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Display.TargetFPS <= 0 {
		return fmt.Errorf("config: display.target_fps must be positive, got %d", c.Display.TargetFPS)
	}
	if c.Display.Width < 0 || c.Display.Height < 0 {
		return fmt.Errorf("config: display size must not be negative, got %dx%d", c.Display.Width, c.Display.Height)
	}

	cooldowns := map[string]float64{
		"movement_cooldown":    c.Gameplay.MovementCooldown,
		"failed_move_cooldown": c.Gameplay.FailedMoveCooldown,
		"command_cooldown":     c.Gameplay.CommandCooldown,
		"restart_cooldown":     c.Gameplay.RestartCooldown,
		"menu_input_delay":     c.Gameplay.MenuInputDelay,
		"pause_fade":           c.Gameplay.PauseFade,
		"walk_duration":        c.Animation.WalkDuration,
		"push_duration":        c.Animation.PushDuration,
	}
	for name, v := range cooldowns {
		if v < 0 {
			return fmt.Errorf("config: %s must not be negative, got %v", name, v)
		}
	}
	if c.Animation.Speed <= 0 {
		return fmt.Errorf("config: animation.speed must be positive, got %v", c.Animation.Speed)
	}

	volumes := map[string]float64{
		"master_volume": c.Audio.MasterVolume,
		"music_volume":  c.Audio.MusicVolume,
		"sfx_volume":    c.Audio.SfxVolume,
	}
	for name, v := range volumes {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: audio.%s must be in [0, 1], got %v", name, v)
		}
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("config: audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	return nil
}

// ScreenSettings maps gameplay and animation timing onto the screens.
// Disabled animations become zero-length tweens.
func (c Config) ScreenSettings() screens.Settings {
	s := screens.Settings{
		MovementCooldown:   c.Gameplay.MovementCooldown,
		FailedMoveCooldown: c.Gameplay.FailedMoveCooldown,
		CommandCooldown:    c.Gameplay.CommandCooldown,
		RestartCooldown:    c.Gameplay.RestartCooldown,
		MenuInputDelay:     c.Gameplay.MenuInputDelay,
		PauseFade:          c.Gameplay.PauseFade,
		ShowFPS:            c.Display.ShowFPS,
	}
	if c.Animation.Enabled && c.Animation.Speed > 0 {
		s.WalkDuration = c.Animation.WalkDuration / c.Animation.Speed
		s.PushDuration = c.Animation.PushDuration / c.Animation.Speed
	}
	if !c.Animation.Enabled {
		s.PauseFade = 0
	}
	return s
}

// AudioSettings maps the audio section onto the audio engine.
func (c Config) AudioSettings() audio.Config {
	return audio.Config{
		Enabled:      c.Audio.Enabled,
		MasterVolume: c.Audio.MasterVolume,
		MusicVolume:  c.Audio.MusicVolume,
		SfxVolume:    c.Audio.SfxVolume,
		SampleRate:   c.Audio.SampleRate,
	}
}

// RenderOptions maps display flags onto the terminal renderer.
// MSAA stands for half-cell smoothing of moving entities.
func (c Config) RenderOptions() render.Options {
	return render.Options{Smooth: c.Display.MSAA, ShowGrid: c.Display.ShowGrid}
}

// TickRate returns frames per second. Without vsync the loop runs at twice
// the target rate.
func (c Config) TickRate() int {
	if !c.Display.VSync {
		return c.Display.TargetFPS * 2
	}
	return c.Display.TargetFPS
}

// ParseResolution parses "WxH" into cell dimensions.
func ParseResolution(s string) (w, h int, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("config: resolution %q is not WxH", s)
	}
	if w, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("config: resolution width %q: %w", parts[0], err)
	}
	if h, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("config: resolution height %q: %w", parts[1], err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, errors.New("config: resolution must be positive")
	}
	return w, h, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
