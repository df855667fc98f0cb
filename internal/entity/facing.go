// Package entity implements the player and box movement rules on top of a
// level.Level. Logical grid positions change immediately on an accepted
// move; the world positions used for drawing follow through anim tweens.
package entity

import "github.com/vovakirdan/tui-sokoban/internal/core"

// Facing is the four-way orientation of the player.
type Facing int

const (
	FacingUp Facing = iota
	FacingDown
	FacingLeft
	FacingRight
)

// FacingOf returns the orientation for a move direction.
// Non-unit directions keep FacingUp.
func FacingOf(dir core.Point) Facing {
	switch dir {
	case core.DirDown:
		return FacingDown
	case core.DirLeft:
		return FacingLeft
	case core.DirRight:
		return FacingRight
	default:
		return FacingUp
	}
}

// Rotation returns the yaw in degrees around the world up axis.
func (f Facing) Rotation() float64 {
	switch f {
	case FacingRight:
		return 90
	case FacingLeft:
		return -90
	case FacingDown:
		return 180
	default:
		return 0
	}
}

// Dir returns the unit grid direction the facing points to.
func (f Facing) Dir() core.Point {
	switch f {
	case FacingDown:
		return core.DirDown
	case FacingLeft:
		return core.DirLeft
	case FacingRight:
		return core.DirRight
	default:
		return core.DirUp
	}
}

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingDown:
		return "down"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "unknown"
	}
}
