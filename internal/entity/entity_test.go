package entity

import (
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/level"
)

func load(t *testing.T, rows ...string) (*level.Level, *Player, Boxes) {
	t.Helper()
	l := level.New(nil)
	def := level.Definition{Name: "test", Width: len(rows[0]), Height: len(rows), Grid: rows}
	if !l.LoadFromDefinition(def) {
		t.Fatalf("LoadFromDefinition failed")
	}
	p := NewPlayer(nil)
	p.Bind(l)
	p.Spawn(l.PlayerStart())
	return l, p, FromLevel(l, nil)
}

// settle runs updates until nothing is animating.
func settle(p *Player, boxes Boxes) {
	for i := 0; i < 100 && (p.IsMoving() || anyMoving(boxes)); i++ {
		p.Update(0.05)
		boxes.Update(0.05)
	}
}

func anyMoving(boxes Boxes) bool {
	for _, b := range boxes {
		if b.IsMoving() {
			return true
		}
	}
	return false
}

func TestPushIntoWallRejected(t *testing.T) {
	l, p, boxes := load(t,
		"#####",
		"#@$##",
		"#  .#",
		"#####",
	)

	res := p.TryMove(core.DirRight, boxes)
	if res.Moved {
		t.Fatal("TryMove into box against wall should fail")
	}
	if p.GridPosition() != core.Pt(1, 1) {
		t.Errorf("player = %v, want (1,1)", p.GridPosition())
	}
	if !l.HasBox(core.Pt(2, 1)) || boxes[0].GridPosition() != core.Pt(2, 1) {
		t.Errorf("box moved, want it at (2,1)")
	}
	if p.IsMoving() {
		t.Error("rejected move should not start a tween")
	}
}

func TestPlainStepLeavesBoxes(t *testing.T) {
	l, p, boxes := load(t,
		"######",
		"#@ $.#",
		"#    #",
		"######",
	)
	before := l.BoxPositions()

	res := p.TryMove(core.DirDown, boxes)
	if !res.Moved || res.Pushed {
		t.Fatalf("TryMove(down) = %+v, want plain move", res)
	}
	if p.GridPosition() != core.Pt(1, 2) {
		t.Errorf("player = %v, want (1,2)", p.GridPosition())
	}
	if p.Phase() != PhaseWalking {
		t.Errorf("Phase() = %v, want walking", p.Phase())
	}
	after := l.BoxPositions()
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("boxes = %v, want %v", after, before)
	}
}

func TestPushOntoTarget(t *testing.T) {
	l, p, boxes := load(t,
		"######",
		"#@$. #",
		"######",
	)

	res := p.TryMove(core.DirRight, boxes)
	if !res.Pushed || res.BoxFrom != core.Pt(2, 1) || res.BoxTo != core.Pt(3, 1) {
		t.Fatalf("TryMove(right) = %+v, want push (2,1)->(3,1)", res)
	}
	if p.Phase() != PhasePushing {
		t.Errorf("Phase() = %v, want pushing", p.Phase())
	}
	if !l.HasBox(core.Pt(3, 1)) || l.HasBox(core.Pt(2, 1)) {
		t.Error("level box not relocated")
	}
	if boxes[0].State() != BoxOnTarget {
		t.Errorf("box state = %v, want on-target", boxes[0].State())
	}
	if !l.IsCompleted() {
		t.Error("IsCompleted() = false, want true")
	}
}

func TestRejectsWhileMoving(t *testing.T) {
	_, p, boxes := load(t,
		"#####",
		"#@  #",
		"#####",
	)

	if !p.TryMove(core.DirRight, boxes).Moved {
		t.Fatal("first move rejected")
	}
	if p.TryMove(core.DirRight, boxes).Moved {
		t.Error("second move accepted mid-animation")
	}

	settle(p, boxes)
	if p.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v after settle, want idle", p.Phase())
	}
	if !p.TryMove(core.DirRight, boxes).Moved {
		t.Error("move after settle rejected")
	}
}

func TestRejectsTwoBoxes(t *testing.T) {
	_, p, boxes := load(t,
		"#######",
		"#@$$. #",
		"#######",
	)
	if p.TryMove(core.DirRight, boxes).Moved {
		t.Error("pushing two boxes should fail")
	}
}

func TestUnboundPlayer(t *testing.T) {
	p := NewPlayer(nil)
	if p.TryMove(core.DirRight, nil).Moved {
		t.Error("unbound player should not move")
	}
}

func TestTryMoveIntoBoxCell(t *testing.T) {
	tests := []struct {
		name       string
		rows       []string
		dir        core.Point
		entities   bool
		wantPushed bool
		wantPlayer core.Point
		wantBox    core.Point
		wantDone   bool
	}{
		{"single push completes", []string{"#####", "#@$.#", "#####"}, core.DirRight, true, true, core.Pt(2, 1), core.Pt(3, 1), true},
		{"single push without entities", []string{"#####", "#@$.#", "#####"}, core.DirRight, false, true, core.Pt(2, 1), core.Pt(3, 1), true},
		{"push onto floor", []string{"######", "#@$ .#", "######"}, core.DirRight, true, true, core.Pt(2, 1), core.Pt(3, 1), false},
		{"push upward", []string{"###", "#.#", "#$#", "#@#", "###"}, core.DirUp, true, true, core.Pt(1, 2), core.Pt(1, 1), true},
		{"box against wall", []string{"#####", "#@$##", "#  .#", "#####"}, core.DirRight, true, false, core.Pt(1, 1), core.Pt(2, 1), false},
		{"box against box", []string{"######", "#@$$.#", "######"}, core.DirRight, true, false, core.Pt(1, 1), core.Pt(2, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, p, boxes := load(t, tt.rows...)
			var set BoxSet
			if tt.entities {
				set = boxes
			}

			res := p.TryMove(tt.dir, set)
			if res.Moved != tt.wantPushed || res.Pushed != tt.wantPushed {
				t.Errorf("TryMove() moved = %v, pushed = %v, want %v", res.Moved, res.Pushed, tt.wantPushed)
			}
			if got := p.GridPosition(); got != tt.wantPlayer {
				t.Errorf("player = %v, want %v", got, tt.wantPlayer)
			}
			if !l.HasBox(tt.wantBox) {
				t.Errorf("HasBox(%v) = false, want true", tt.wantBox)
			}
			if got := l.IsCompleted(); got != tt.wantDone {
				t.Errorf("IsCompleted() = %v, want %v", got, tt.wantDone)
			}
		})
	}
}

func TestPushWithoutEntity(t *testing.T) {
	l, p, _ := load(t,
		"######",
		"#@$. #",
		"######",
	)
	if !p.TryMove(core.DirRight, nil).Pushed {
		t.Fatal("push without box entities rejected")
	}
	if !l.HasBox(core.Pt(3, 1)) {
		t.Error("level box not relocated")
	}
}

func TestFacingRotation(t *testing.T) {
	tests := []struct {
		dir  core.Point
		want float64
	}{
		{core.DirRight, 90},
		{core.DirLeft, -90},
		{core.DirDown, 180},
		{core.DirUp, 0},
	}
	for _, tt := range tests {
		t.Run(FacingOf(tt.dir).String(), func(t *testing.T) {
			if got := FacingOf(tt.dir).Rotation(); got != tt.want {
				t.Errorf("Rotation() = %v, want %v", got, tt.want)
			}
			if got := FacingOf(tt.dir).Dir(); got != tt.dir {
				t.Errorf("Dir() = %v, want %v", got, tt.dir)
			}
		})
	}
}

func TestFacingUpdatesOnMove(t *testing.T) {
	_, p, boxes := load(t,
		"#####",
		"#   #",
		"# @ #",
		"#####",
	)
	p.TryMove(core.DirLeft, boxes)
	if p.Facing() != FacingLeft {
		t.Errorf("Facing() = %v, want left", p.Facing())
	}
}

func TestRestoreUndoesPush(t *testing.T) {
	l, p, boxes := load(t,
		"######",
		"#@$. #",
		"######",
	)
	res := p.TryMove(core.DirRight, boxes)
	settle(p, boxes)

	b := boxes.BoxAt(res.BoxTo)
	if b == nil || !b.Restore(res.BoxFrom) {
		t.Fatal("box Restore failed")
	}
	p.Restore(res.From, res.Facing)

	if p.GridPosition() != core.Pt(1, 1) {
		t.Errorf("player = %v, want (1,1)", p.GridPosition())
	}
	if !l.HasBox(core.Pt(2, 1)) || l.IsCompleted() {
		t.Error("level not restored")
	}
	if b.State() != BoxNormal {
		t.Errorf("box state = %v, want normal", b.State())
	}
}

func TestBoxHop(t *testing.T) {
	_, p, boxes := load(t,
		"######",
		"#@$  #",
		"######",
	)
	p.TryMove(core.DirRight, boxes)
	boxes.Update(DefaultPushDuration / 2)

	if y := boxes[0].Position().Y; y <= 0 {
		t.Errorf("mid-slide Y = %v, want > 0", y)
	}
	settle(p, boxes)
	if y := boxes[0].Position().Y; y != 0 {
		t.Errorf("settled Y = %v, want 0", y)
	}
}

func TestZeroDurationSettlesInOneUpdate(t *testing.T) {
	_, p, boxes := load(t,
		"#####",
		"#@  #",
		"#####",
	)
	p.SetDurations(0, 0)
	p.TryMove(core.DirRight, boxes)
	if !p.Update(0) {
		t.Error("Update should report the settle")
	}
	if p.IsMoving() {
		t.Error("IsMoving() = true after zero-length move")
	}
}
