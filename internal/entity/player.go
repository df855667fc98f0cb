package entity

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/anim"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/level"
)

// Phase is the physical state of the player.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWalking
	PhasePushing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWalking:
		return "walking"
	case PhasePushing:
		return "pushing"
	default:
		return "unknown"
	}
}

// DefaultWalkDuration is the step time of a plain move, in seconds.
const DefaultWalkDuration = 0.12

// MoveResult describes an accepted or rejected TryMove.
// BoxFrom and BoxTo are set only when Pushed is true.
type MoveResult struct {
	Moved   bool
	Pushed  bool
	From    core.Point
	To      core.Point
	BoxFrom core.Point
	BoxTo   core.Point
	Facing  Facing // facing before the move
}

// Player is the controllable entity.
type Player struct {
	grid   core.Point
	facing Facing
	phase  Phase
	tween  anim.Tween

	walkDuration float64
	pushDuration float64

	level  *level.Level
	logger *log.Logger
}

// NewPlayer creates an unbound player. A nil logger discards output.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		walkDuration: DefaultWalkDuration,
		pushDuration: DefaultPushDuration,
		logger:       logger,
	}
}

// Bind attaches the player to l. TryMove rejects every move until bound.
func (p *Player) Bind(l *level.Level) {
	p.level = l
}

// Spawn places the player at cell c facing down, with no tween in flight.
func (p *Player) Spawn(c core.Point) {
	p.grid = c
	p.facing = FacingDown
	p.phase = PhaseIdle
	p.tween.Snap(level.GridToWorld(c))
}

// SetDurations overrides the walk and push tween lengths.
func (p *Player) SetDurations(walk, push float64) {
	p.walkDuration = math.Max(walk, 0)
	p.pushDuration = math.Max(push, 0)
}

// GridPosition returns the logical cell.
func (p *Player) GridPosition() core.Point { return p.grid }

// Facing returns the current orientation.
func (p *Player) Facing() Facing { return p.facing }

// Phase returns the physical state.
func (p *Player) Phase() Phase { return p.phase }

// IsMoving reports whether the last accepted move is still animating.
func (p *Player) IsMoving() bool { return p.tween.Active() }

// Position returns the interpolated world position.
func (p *Player) Position() core.Vec3 { return p.tween.Position() }

// Rotation returns the facing yaw in degrees.
func (p *Player) Rotation() float64 { return p.facing.Rotation() }

// TryMove validates and applies one step in dir. A box in the destination
// cell is pushed one cell further; the whole move is rejected when the box
// cannot go there. The box is relocated in the level before the player's
// own position is committed.
func (p *Player) TryMove(dir core.Point, boxes BoxSet) MoveResult {
	res := MoveResult{From: p.grid, To: p.grid, Facing: p.facing}
	if p.level == nil || p.IsMoving() {
		return res
	}

	next := p.grid.Add(dir)
	if !p.level.IsValidPosition(next) || !p.level.GetTileType(next).Walkable() {
		return res
	}

	phase, duration := PhaseWalking, p.walkDuration
	if p.level.HasBox(next) {
		beyond := next.Add(dir)
		if !p.level.IsValidPosition(beyond) ||
			p.level.GetTileType(beyond) == level.TileWall ||
			p.level.HasBox(beyond) {
			return res
		}

		var pushed bool
		if b := boxAt(boxes, next); b != nil {
			pushed = b.OnPushed(dir)
		} else {
			pushed = p.level.MoveBox(next, beyond)
		}
		if !pushed {
			return res
		}
		res.Pushed = true
		res.BoxFrom, res.BoxTo = next, beyond
		phase, duration = PhasePushing, p.pushDuration
	} else if !p.level.CanMoveToTile(next) {
		return res
	}

	p.facing = FacingOf(dir)
	p.grid = next
	p.phase = phase
	p.tween.Start(level.GridToWorld(res.From), level.GridToWorld(next), duration, anim.EaseOutQuad)

	res.Moved = true
	res.To = next
	p.logger.Debug("player moved", "from", res.From, "to", next, "pushed", res.Pushed)
	return res
}

// Restore snaps the player back to c with facing f, for undo.
func (p *Player) Restore(c core.Point, f Facing) {
	p.grid = c
	p.facing = f
	p.phase = PhaseIdle
	p.tween.Snap(level.GridToWorld(c))
}

// Update advances the move tween. It returns true on the frame the
// transition finishes, after which the player is idle again.
func (p *Player) Update(dt float64) bool {
	if !p.tween.Update(dt) {
		return false
	}
	p.phase = PhaseIdle
	return true
}

func boxAt(boxes BoxSet, c core.Point) *Box {
	if boxes == nil {
		return nil
	}
	return boxes.BoxAt(c)
}
