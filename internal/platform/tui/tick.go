// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, the results browser and
// the SSH server.
package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// maxFrameDelta caps the step after a stall so tweens and timers do not jump.
const maxFrameDelta = 0.1

// frameDelta returns the seconds between two ticks, falling back to the
// nominal step for the first tick.
func frameDelta(last, now time.Time, nominal float64) float64 {
	if last.IsZero() || !now.After(last) {
		return nominal
	}
	return min(now.Sub(last).Seconds(), maxFrameDelta)
}

// fpsWindow is the span one fps reading averages over.
const fpsWindow = 500 * time.Millisecond

// fpsCounter averages frame rate over half-second windows. Time is kept in
// whole nanoseconds so a window of exact steps closes on its last frame.
type fpsCounter struct {
	frames  int
	elapsed time.Duration
	value   float64
}

func (c *fpsCounter) add(dt float64) float64 {
	c.frames++
	c.elapsed += time.Duration(math.Round(dt * float64(time.Second)))
	if c.elapsed >= fpsWindow {
		c.value = float64(c.frames) / c.elapsed.Seconds()
		c.frames = 0
		c.elapsed = 0
	}
	return c.value
}
