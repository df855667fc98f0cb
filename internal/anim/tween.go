package anim

import "github.com/vovakirdan/tui-sokoban/internal/core"

// Tween interpolates a world position over a fixed duration.
// The zero value is an idle tween sitting at the origin.
type Tween struct {
	from     core.Vec3
	to       core.Vec3
	duration float64
	elapsed  float64
	ease     Ease
	active   bool
}

// Start begins a transition from -> to. A non-positive duration still
// runs for one Update so the caller observes completion.
func (t *Tween) Start(from, to core.Vec3, duration float64, ease Ease) {
	t.from = from
	t.to = to
	t.duration = duration
	if t.duration < 0 {
		t.duration = 0
	}
	t.elapsed = 0
	t.ease = ease
	t.active = true
}

// Snap places the tween at p with no transition in flight.
func (t *Tween) Snap(p core.Vec3) {
	t.from = p
	t.to = p
	t.elapsed = 0
	t.duration = 0
	t.active = false
}

// Update advances the tween by dt seconds.
// It returns true exactly once, on the frame the transition finishes.
func (t *Tween) Update(dt float64) bool {
	if !t.active {
		return false
	}
	t.elapsed += dt
	if t.elapsed >= t.duration {
		t.elapsed = t.duration
		t.active = false
		return true
	}
	return false
}

// Active reports whether a transition is in flight.
func (t *Tween) Active() bool {
	return t.active
}

// Progress returns linear progress in [0, 1].
func (t *Tween) Progress() float64 {
	if !t.active || t.duration <= 0 {
		if t.active {
			return 0
		}
		return 1
	}
	return core.ClampF(t.elapsed/t.duration, 0, 1)
}

// Position returns the eased position for the current progress.
func (t *Tween) Position() core.Vec3 {
	return core.Lerp(t.from, t.to, t.ease.Apply(t.Progress()))
}

// Target returns the end position of the current or last transition.
func (t *Tween) Target() core.Vec3 {
	return t.to
}
