// Package anim provides easing curves and a polled tween for moving
// entities between grid cells. Tweens report completion through the
// return value of Update instead of callbacks.
package anim

import "math"

// Ease selects an easing curve.
type Ease int

const (
	EaseLinear Ease = iota
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseOutBack
)

// Apply maps linear progress t in [0, 1] onto the curve.
// Values outside [0, 1] are clamped.
func (e Ease) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	switch e {
	case EaseInQuad:
		return t * t
	case EaseOutQuad:
		return 1 - (1-t)*(1-t)
	case EaseInOutQuad:
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - math.Pow(-2*t+2, 2)/2
	case EaseOutBack:
		const c1 = 1.70158
		const c3 = c1 + 1
		return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
	default:
		return t
	}
}

// String returns the curve name.
func (e Ease) String() string {
	switch e {
	case EaseLinear:
		return "linear"
	case EaseInQuad:
		return "in-quad"
	case EaseOutQuad:
		return "out-quad"
	case EaseInOutQuad:
		return "in-out-quad"
	case EaseOutBack:
		return "out-back"
	default:
		return "unknown"
	}
}
