package entity

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/anim"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/level"
)

// BoxState tells whether a box currently rests on a target.
type BoxState int

const (
	BoxNormal BoxState = iota
	BoxOnTarget
)

func (s BoxState) String() string {
	if s == BoxOnTarget {
		return "on-target"
	}
	return "normal"
}

const (
	// DefaultPushDuration is the slide time of a pushed box, in seconds.
	DefaultPushDuration = 0.16

	hopHeight = 0.1
	glowSpeed = 4.0
)

// Box is the entity for one box on the grid. The level remains the
// authority on occupancy; a Box mirrors one occupied cell.
type Box struct {
	grid     core.Point
	state    BoxState
	tween    anim.Tween
	duration float64
	glowTime float64

	level  *level.Level
	logger *log.Logger
}

// NewBox creates a box entity at p. The cell is expected to hold a box in l.
func NewBox(l *level.Level, p core.Point, logger *log.Logger) *Box {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &Box{
		grid:     p,
		duration: DefaultPushDuration,
		level:    l,
		logger:   logger,
	}
	b.tween.Snap(level.GridToWorld(p))
	b.refreshState()
	return b
}

// SetDuration overrides the slide time. Negative values become zero.
func (b *Box) SetDuration(d float64) {
	b.duration = math.Max(d, 0)
}

// GridPosition returns the logical cell of the box.
func (b *Box) GridPosition() core.Point { return b.grid }

// State returns whether the box rests on a target.
func (b *Box) State() BoxState { return b.state }

// IsMoving reports whether the slide tween is still running.
func (b *Box) IsMoving() bool { return b.tween.Active() }

// CanPush reports whether a push in dir would be accepted.
func (b *Box) CanPush(dir core.Point) bool {
	if b.level == nil {
		return false
	}
	to := b.grid.Add(dir)
	return b.level.IsValidPosition(to) &&
		b.level.GetTileType(to) != level.TileWall &&
		!b.level.HasBox(to)
}

// OnPushed moves the box one cell in dir. The level relocates the box in a
// single MoveBox call; on success the box starts its slide and re-evaluates
// its target state.
func (b *Box) OnPushed(dir core.Point) bool {
	if !b.CanPush(dir) {
		b.logger.Debug("push rejected", "box", b.grid, "dir", dir)
		return false
	}
	from, to := b.grid, b.grid.Add(dir)
	if !b.level.MoveBox(from, to) {
		return false
	}
	b.slide(from, to, b.duration)
	return true
}

// Restore moves the box back to p without the push rules beyond the level's
// own MoveBox preconditions. The box snaps into place.
func (b *Box) Restore(p core.Point) bool {
	if b.level == nil || !b.level.MoveBox(b.grid, p) {
		return false
	}
	b.grid = p
	b.tween.Snap(level.GridToWorld(p))
	b.refreshState()
	return true
}

// Update advances the slide and glow. It returns true on the frame the
// slide finishes.
func (b *Box) Update(dt float64) bool {
	if b.state == BoxOnTarget {
		b.glowTime += dt
	}
	return b.tween.Update(dt)
}

// Position returns the world position, including the hop while sliding.
func (b *Box) Position() core.Vec3 {
	p := b.tween.Position()
	if b.tween.Active() {
		p.Y += math.Sin(b.tween.Progress()*math.Pi) * hopHeight
	}
	return p
}

// Glow returns a pulse intensity in [0, 1] for boxes on a target, else 0.
func (b *Box) Glow() float64 {
	if b.state != BoxOnTarget {
		return 0
	}
	return 0.5 + 0.5*math.Sin(b.glowTime*glowSpeed)
}

func (b *Box) slide(from, to core.Point, d float64) {
	b.grid = to
	b.tween.Start(level.GridToWorld(from), level.GridToWorld(to), d, anim.EaseOutQuad)
	b.refreshState()
}

func (b *Box) refreshState() {
	prev := b.state
	if b.level != nil && b.level.IsTarget(b.grid) {
		b.state = BoxOnTarget
	} else {
		b.state = BoxNormal
	}
	if prev != b.state {
		b.glowTime = 0
	}
}

// BoxSet looks up box entities by cell.
type BoxSet interface {
	BoxAt(p core.Point) *Box
}

// Boxes is a BoxSet backed by a slice.
type Boxes []*Box

// BoxAt returns the box whose logical cell is p, or nil.
func (bs Boxes) BoxAt(p core.Point) *Box {
	for _, b := range bs {
		if b.grid == p {
			return b
		}
	}
	return nil
}

// Update advances every box and reports how many settled this frame.
func (bs Boxes) Update(dt float64) int {
	settled := 0
	for _, b := range bs {
		if b.Update(dt) {
			settled++
		}
	}
	return settled
}

// FromLevel creates one box entity for every cell of l flagged with a box.
func FromLevel(l *level.Level, logger *log.Logger) Boxes {
	positions := l.BoxPositions()
	bs := make(Boxes, 0, len(positions))
	for _, p := range positions {
		bs = append(bs, NewBox(l, p, logger))
	}
	return bs
}
