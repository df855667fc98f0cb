// Package screens holds the three screens driven by the application state
// machine: the gameplay orchestrator, the main menu and the pause overlay.
// Screens never switch state themselves; they raise flags or return
// actions that the caller consumes.
package screens

import (
	"fmt"
	"time"
)

// Settings tune input timing and animation. All durations are in seconds.
type Settings struct {
	MovementCooldown   float64
	FailedMoveCooldown float64
	CommandCooldown    float64
	RestartCooldown    float64
	MenuInputDelay     float64
	PauseFade          float64

	WalkDuration float64
	PushDuration float64

	ShowFPS bool
}

// DefaultSettings returns the stock timings.
func DefaultSettings() Settings {
	return Settings{
		MovementCooldown:   0.12,
		FailedMoveCooldown: 0.03,
		CommandCooldown:    0.2,
		RestartCooldown:    0.3,
		MenuInputDelay:     0.15,
		PauseFade:          0.2,
		WalkDuration:       0.12,
		PushDuration:       0.16,
	}
}

// Records persists completed levels. Implementations must tolerate being
// called from the frame loop.
type Records interface {
	RecordResult(levelID, levelName string, moves int, elapsed time.Duration) error
	BestMoves(levelID string) (moves int, elapsed time.Duration, ok bool)
}

// formatClock renders seconds as m:ss.
func formatClock(seconds float64) string {
	d := elapsedDuration(seconds)
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}

// elapsedDuration converts seconds to a time.Duration.
func elapsedDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
