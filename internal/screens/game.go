package screens

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/audio"
	"github.com/vovakirdan/tui-sokoban/internal/catalog"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/entity"
	"github.com/vovakirdan/tui-sokoban/internal/level"
)

// GameState is the orchestrator's own state.
type GameState int

const (
	StateLoading GameState = iota
	StatePlaying
	StateLevelComplete
	StatePaused
)

func (s GameState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateLevelComplete:
		return "level-complete"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// GameScreen runs one level at a time: it reads input, applies moves
// through the entities, checks completion and raises one-shot flags for
// the application state machine.
type GameScreen struct {
	settings Settings
	catalog  *catalog.Catalog
	level    *level.Level
	player   *entity.Player
	boxes    entity.Boxes
	history  []entity.MoveResult

	state         GameState
	levelID       string // entry last asked for, kept while the fallback runs
	fallback      bool
	moves         int
	elapsed       float64
	completeTimer float64

	moveCooldown    float64
	commandCooldown float64

	showPause     bool
	returnToMenu  bool
	levelComplete bool

	best    bestResult
	fps     float64
	audio   audio.Player
	records Records
	logger  *log.Logger
}

type bestResult struct {
	moves   int
	elapsed time.Duration
	ok      bool
}

// NewGameScreen creates an orchestrator over cat. A nil audio player is
// silent, nil records disable persistence and a nil logger discards.
// No level is loaded until LoadLevel.
func NewGameScreen(cat *catalog.Catalog, settings Settings, ap audio.Player, records Records, logger *log.Logger) *GameScreen {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if ap == nil {
		ap = audio.Silent{}
	}
	if cat == nil {
		cat = catalog.New(logger)
	}
	g := &GameScreen{
		settings: settings,
		catalog:  cat,
		level:    level.New(logger),
		player:   entity.NewPlayer(logger),
		audio:    ap,
		records:  records,
		logger:   logger,
	}
	g.player.SetDurations(settings.WalkDuration, settings.PushDuration)
	return g
}

// State returns the orchestrator state.
func (g *GameScreen) State() GameState { return g.state }

// Level returns the level model being played.
func (g *GameScreen) Level() *level.Level { return g.level }

// Player returns the player entity.
func (g *GameScreen) Player() *entity.Player { return g.player }

// Boxes returns the box entities.
func (g *GameScreen) Boxes() entity.Boxes { return g.boxes }

// Catalog returns the level catalog.
func (g *GameScreen) Catalog() *catalog.Catalog { return g.catalog }

// Moves returns the accepted move count for the current attempt.
func (g *GameScreen) Moves() int { return g.moves }

// Elapsed returns the play time of the current attempt in seconds.
func (g *GameScreen) Elapsed() float64 { return g.elapsed }

// CompleteTimer returns seconds spent on the completion overlay.
func (g *GameScreen) CompleteTimer() float64 { return g.completeTimer }

// UsingFallback reports whether the built-in test level replaced a level
// that failed to load.
func (g *GameScreen) UsingFallback() bool { return g.fallback }

// SetFPS sets the value shown by the FPS counter.
func (g *GameScreen) SetFPS(fps float64) { g.fps = fps }

// SetSettings replaces the timings. Entity durations apply to the next move.
func (g *GameScreen) SetSettings(s Settings) {
	g.settings = s
	g.player.SetDurations(s.WalkDuration, s.PushDuration)
	for _, b := range g.boxes {
		b.SetDuration(s.PushDuration)
	}
}

// LoadLevel loads catalog entry index and starts playing it.
// An out-of-range index is rejected with nothing changed. An entry that
// cannot be read is replaced by the built-in test level, and LoadLevel
// reports false while still leaving a playable level.
func (g *GameScreen) LoadLevel(index int) bool {
	if g.catalog.Count() > 0 && (index < 0 || index >= g.catalog.Count()) {
		g.logger.Error("cannot load level: index out of range", "index", index, "count", g.catalog.Count())
		return false
	}

	g.state = StateLoading
	g.boxes = nil
	g.levelID = ""
	if g.catalog.Count() > 0 {
		g.levelID = g.catalog.Entries()[index].ID
	}

	ok := g.catalog.Count() > 0 && g.catalog.LoadLevel(g.level, index)
	g.fallback = !ok
	if !ok {
		g.logger.Warn("substituting test level", "index", index)
		g.level.LoadFromDefinition(catalog.TestLevel())
	}

	g.start()
	g.logger.Info("level started",
		"index", index, "name", g.level.Name(), "boxes", g.level.TotalBoxes())
	return ok
}

// SetCurrentLevel is LoadLevel for callers choosing a level by index.
func (g *GameScreen) SetCurrentLevel(index int) bool {
	return g.LoadLevel(index)
}

// RestartLevel puts every box back and respawns the player.
func (g *GameScreen) RestartLevel() {
	if g.state == StateLoading {
		return
	}
	g.level.Reset()
	g.start()
	g.logger.Info("level restarted", "name", g.level.Name())
}

// start initializes entities and counters for the loaded level.
func (g *GameScreen) start() {
	g.player.Bind(g.level)
	g.player.Spawn(g.level.PlayerStart())
	g.boxes = entity.FromLevel(g.level, g.logger)
	for _, b := range g.boxes {
		b.SetDuration(g.settings.PushDuration)
	}

	g.history = g.history[:0]
	g.moves = 0
	g.elapsed = 0
	g.completeTimer = 0
	g.moveCooldown = 0
	g.levelComplete = false
	g.state = StatePlaying
	g.loadBest()
}

// Update advances one frame: cooldowns, timers, input, entity animation
// and finally the completion check.
func (g *GameScreen) Update(dt float64, in core.InputFrame) {
	g.moveCooldown = math.Max(g.moveCooldown-dt, 0)
	g.commandCooldown = math.Max(g.commandCooldown-dt, 0)

	switch g.state {
	case StatePlaying:
		g.elapsed += dt
	case StateLevelComplete:
		g.completeTimer += dt
	}

	g.handleInput(in)

	g.player.Update(dt)
	g.boxes.Update(dt)

	if g.state == StatePlaying && g.level.CheckCompletion() {
		g.complete()
	}
}

func (g *GameScreen) handleInput(in core.InputFrame) {
	if g.commandCooldown <= 0 {
		switch {
		case g.state == StatePlaying && (in.Has(core.ActionPause) || in.Has(core.ActionBack)):
			g.showPause = true
			g.commandCooldown = g.settings.CommandCooldown
			return
		case in.Has(core.ActionMenu) && (g.state == StatePlaying || g.state == StateLevelComplete):
			g.returnToMenu = true
			g.commandCooldown = g.settings.CommandCooldown
			return
		case g.state == StatePlaying && in.Has(core.ActionRestart):
			g.RestartLevel()
			g.commandCooldown = g.settings.RestartCooldown
			return
		case g.state == StateLevelComplete && in.Has(core.ActionConfirm):
			g.advance()
			g.commandCooldown = g.settings.CommandCooldown
			return
		}
	}

	if g.state != StatePlaying || g.moveCooldown > 0 {
		return
	}
	if in.Has(core.ActionUndo) {
		if g.Undo() {
			g.moveCooldown = g.settings.MovementCooldown
		} else {
			g.moveCooldown = g.settings.FailedMoveCooldown
		}
		return
	}
	if dir, ok := in.Direction(); ok {
		g.Move(dir)
	}
}

// Move attempts one player move and re-arms the movement cooldown.
func (g *GameScreen) Move(dir core.Point) bool {
	res := g.player.TryMove(dir, g.boxes)
	if !res.Moved {
		g.moveCooldown = g.settings.FailedMoveCooldown
		return false
	}

	g.moves++
	g.history = append(g.history, res)
	g.moveCooldown = g.settings.MovementCooldown
	if res.Pushed {
		g.audio.PlaySound(audio.SoundPush)
	} else {
		g.audio.PlaySound(audio.SoundMove)
	}
	return true
}

// Undo reverts the last accepted move of the current attempt.
func (g *GameScreen) Undo() bool {
	if g.state != StatePlaying || len(g.history) == 0 {
		return false
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	if last.Pushed {
		var ok bool
		if b := g.boxes.BoxAt(last.BoxTo); b != nil {
			ok = b.Restore(last.BoxFrom)
		} else {
			ok = g.level.MoveBox(last.BoxTo, last.BoxFrom)
		}
		if !ok {
			g.logger.Error("undo failed", "box", last.BoxTo)
			g.history = g.history[:0]
			return false
		}
	}
	g.player.Restore(last.From, last.Facing)
	g.moves--
	return true
}

// CanUndo reports whether there is a move to revert.
func (g *GameScreen) CanUndo() bool { return len(g.history) > 0 }

func (g *GameScreen) complete() {
	g.state = StateLevelComplete
	g.completeTimer = 0
	g.levelComplete = true
	g.audio.PlaySound(audio.SoundComplete)

	elapsed := elapsedDuration(g.elapsed)
	g.logger.Info("level complete",
		"name", g.level.Name(), "moves", g.moves, "time", elapsed.Round(time.Millisecond))

	if g.records == nil || g.fallback {
		return
	}
	if err := g.records.RecordResult(g.catalog.CurrentID(), g.level.Name(), g.moves, elapsed); err != nil {
		g.logger.Warn("cannot record result", "err", err)
	}
	g.loadBest()
}

// advance loads the next level or, after the last one, asks for the menu.
func (g *GameScreen) advance() {
	if g.fallback || !g.catalog.HasNext() {
		g.returnToMenu = true
		return
	}
	g.LoadLevel(g.catalog.Current() + 1)
}

func (g *GameScreen) loadBest() {
	g.best = bestResult{}
	if g.records == nil || g.fallback {
		return
	}
	m, d, ok := g.records.BestMoves(g.catalog.CurrentID())
	g.best = bestResult{moves: m, elapsed: d, ok: ok}
}

// HotReload refreshes the catalog after the given files changed and
// restarts the current level if its file was among them. While the
// fallback runs, the entry that failed to load counts as current. A
// completion overlay is never interrupted.
func (g *GameScreen) HotReload(paths []string) {
	if len(paths) == 0 {
		return
	}
	g.catalog.Refresh()
	if g.state != StatePlaying && g.state != StatePaused {
		return
	}
	cur := g.catalog.IndexOfID(g.levelID)
	if cur < 0 {
		return
	}
	for _, p := range paths {
		if g.catalog.IndexOfPath(p) == cur {
			g.logger.Info("current level changed on disk, reloading", "path", p)
			g.LoadLevel(cur)
			return
		}
	}
}

// SetPaused marks gameplay as paused or resumed by the outer state machine.
// Resuming arms the command cooldown so the key that closed the pause
// overlay does not reopen it.
func (g *GameScreen) SetPaused(paused bool) {
	if paused {
		if g.state == StatePlaying {
			g.state = StatePaused
		}
		return
	}
	if g.state == StatePaused {
		g.state = StatePlaying
	}
	g.commandCooldown = g.settings.CommandCooldown
}

// ShouldShowPause reports a pending pause request.
func (g *GameScreen) ShouldShowPause() bool { return g.showPause }

// ShouldReturnToMenu reports a pending return-to-menu request.
func (g *GameScreen) ShouldReturnToMenu() bool { return g.returnToMenu }

// LevelJustCompleted reports a completion that has not been consumed.
func (g *GameScreen) LevelJustCompleted() bool { return g.levelComplete }

// IsLevelComplete reports whether the completion overlay is showing.
func (g *GameScreen) IsLevelComplete() bool { return g.state == StateLevelComplete }

func (g *GameScreen) ClearPause()         { g.showPause = false }
func (g *GameScreen) ClearReturnToMenu()  { g.returnToMenu = false }
func (g *GameScreen) ClearLevelComplete() { g.levelComplete = false }

// ClearFlags drops every pending request.
func (g *GameScreen) ClearFlags() {
	g.showPause = false
	g.returnToMenu = false
	g.levelComplete = false
}
