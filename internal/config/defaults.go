package config

import (
	_ "embed"
)

//go:embed defaults/sokoban.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			VSync:     true,
			MSAA:      true,
			TargetFPS: 60,
		},
		Gameplay: GameplayConfig{
			MovementCooldown:   0.12,
			FailedMoveCooldown: 0.03,
			CommandCooldown:    0.2,
			RestartCooldown:    0.3,
			MenuInputDelay:     0.15,
			PauseFade:          0.2,
		},
		Animation: AnimationConfig{
			Enabled:      true,
			Speed:        1.0,
			WalkDuration: 0.12,
			PushDuration: 0.16,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.7,
			MusicVolume:  0.5,
			SfxVolume:    0.8,
			SampleRate:   44100,
		},
		Levels: LevelsConfig{
			Dir: "~/.sokoban/levels",
		},
		Storage: StorageConfig{
			DBPath: "~/.sokoban/sokoban.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.sokoban/sokoban.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
