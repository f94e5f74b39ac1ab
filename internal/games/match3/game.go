// Package match3 implements the PuzzleBit tile-matching game on top of the
// match3/engine session, with a campaign and an endless mode.
package match3

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/puzzlebit/internal/config"
	"github.com/vovakirdan/puzzlebit/internal/core"
	"github.com/vovakirdan/puzzlebit/internal/games/match3/engine"
	"github.com/vovakirdan/puzzlebit/internal/games/match3/levels"
	"github.com/vovakirdan/puzzlebit/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Game IDs used for registration and score storage.
const (
	IDCampaign = "match3"
	IDEndless  = "match3_endless"
)

// statusSeconds is how long a status message stays on screen.
const statusSeconds = 2

// Package-level variables for config, set from the CLI.
var (
	configPath       string
	difficultyPreset = config.DifficultyNormal
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// LoadConfig loads the configuration the game would use, with the
// difficulty preset applied.
func LoadConfig() (config.Match3Config, error) {
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		return config.Match3Config{}, err
	}
	config.ApplyMatch3Preset(&cfg, difficultyPreset)
	return cfg, nil
}

// LoadCatalog builds the level catalog from LoadConfig.
func LoadCatalog() (*levels.Catalog, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return levels.FromConfig(cfg)
}

func init() {
	registry.Register(IDCampaign, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}

// Game adapts an engine.Session to the platform's tick-driven Game interface.
type Game struct {
	mode       Mode
	startLevel int

	cfg     config.Match3Config
	catalog *levels.Catalog
	level   levels.Level
	session *engine.Session
	rng     *rand.Rand

	tickRate int
	ticks    int // Ticks since the last whole second
	tick     uint64

	screenW  int
	screenH  int
	layout   layout
	tooSmall bool

	cursor    engine.Cell
	paused    bool
	over      bool
	cleared   bool
	noMoves   bool
	timeUp    bool
	won       bool // Last campaign level cleared
	finished  bool // Level ended this tick
	stars     int
	perfect   bool
	hintsUsed int

	hint      *engine.Move
	hintTicks int

	flash      []engine.Cell
	flashTicks int
	pending    []engine.Cell // Cells cleared by the swap being resolved

	status      string
	statusTicks int

	loadErr error
}

// New creates a new campaign game starting at level 1.
func New() *Game {
	return &Game{mode: ModeCampaign, startLevel: 1}
}

// NewEndless creates a new endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless, startLevel: levels.EndlessLevel}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "PuzzleBit (Endless)"
	}
	return "PuzzleBit"
}

// SelectLevel sets the campaign level the next Reset starts at.
// Ignored in endless mode.
func (g *Game) SelectLevel(level int) {
	if g.mode == ModeCampaign && level >= 1 {
		g.startLevel = level
	}
}

// Reset loads configuration and starts the selected level.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tickRate = max(rc.TickRate, 1)
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.loadErr = nil

	cfg, err := LoadConfig()
	if err != nil {
		cfg = config.DefaultMatch3Config()
		g.loadErr = err
	}
	catalog, err := levels.FromConfig(cfg)
	if err != nil {
		cfg = config.DefaultMatch3Config()
		catalog = levels.Default()
		g.loadErr = err
	}
	g.cfg = cfg
	g.catalog = catalog

	g.session = engine.NewSession(catalog, g.rng,
		engine.WithMoveEngine(engine.NewMoveEngine(g.rng,
			engine.WithPointsPerCell(cfg.Gameplay.PointsPerCell),
			engine.WithRequireMatch(cfg.Gameplay.RequireMatch),
		)),
		engine.WithFairStart(cfg.Gameplay.FairStart),
	)
	g.session.Subscribe(g.onEvent)

	start := g.startLevel
	if g.mode == ModeCampaign {
		start = core.Clamp(start, 1, catalog.Count())
	}
	g.startAt(start)

	if g.loadErr != nil {
		g.setStatus("config error, using defaults")
	}
}

// startAt starts level n and clears all per-level state.
func (g *Game) startAt(n int) {
	lvl, err := g.catalog.Get(n)
	if err != nil {
		lvl = g.catalog.Endless()
	}
	g.level = lvl
	if err := g.session.Start(lvl.Number); err != nil {
		// Catalog levels are validated; Start only fails on a bug.
		panic(fmt.Sprintf("match3: start level %d: %v", lvl.Number, err))
	}
	g.resetLevelState()
}

func (g *Game) restartLevel() {
	if err := g.session.Reset(); err != nil {
		g.setStatus("busy")
		return
	}
	g.resetLevelState()
	g.setStatus("level restarted")
}

func (g *Game) resetLevelState() {
	g.ticks = 0
	g.cursor = engine.At(0, 0)
	g.paused = false
	g.over = false
	g.cleared = false
	g.noMoves = false
	g.timeUp = false
	g.won = false
	g.finished = false
	g.stars = 0
	g.perfect = false
	g.hintsUsed = 0
	g.hint = nil
	g.hintTicks = 0
	g.flash = nil
	g.flashTicks = 0
	g.pending = nil
	g.status = ""
	g.statusTicks = 0
	g.updateLayout()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.finished = false

	if g.tooSmall {
		return g.result()
	}

	if in.Has(core.ActionPause) && !g.over {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.stepTimers()

	if g.over {
		g.handleOverInput(in)
		return g.result()
	}

	if in.Has(core.ActionRestart) {
		g.restartLevel()
		return g.result()
	}

	g.moveCursor(in)

	if in.Has(core.ActionHint) {
		g.showHint()
	}

	if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
		g.click(g.cursor)
	}

	if in.Clicked {
		if cell, ok := g.layout.cellAt(in.Click.X, in.Click.Y); ok {
			g.cursor = cell
			g.click(cell)
		}
	}

	g.advanceClock()
	g.checkLevelEnd()

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Finished: g.finished}
}

// stepTimers counts down highlights. The session stays held while matched
// cells flash so clicks during the animation are rejected as busy.
func (g *Game) stepTimers() {
	if g.flashTicks > 0 {
		g.flashTicks--
		if g.flashTicks == 0 {
			g.flash = nil
			g.session.Release()
		}
	}
	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = nil
		}
	}
	if g.statusTicks > 0 {
		g.statusTicks--
		if g.statusTicks == 0 {
			g.status = ""
		}
	}
}

func (g *Game) handleOverInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionRestart):
		g.restartLevel()
	case in.Has(core.ActionNext) && g.cleared && !g.won:
		g.startAt(g.level.Number + 1)
		g.setStatus(fmt.Sprintf("level %d: %s", g.level.Number, g.level.Name))
	}
}

func (g *Game) moveCursor(in core.InputFrame) {
	snap := g.session.Snapshot()
	row, col := g.cursor.Row, g.cursor.Col
	switch {
	case in.Has(core.ActionUp):
		row--
	case in.Has(core.ActionDown):
		row++
	case in.Has(core.ActionLeft):
		col--
	case in.Has(core.ActionRight):
		col++
	}
	g.cursor = engine.At(
		core.Clamp(row, 0, snap.Rows-1),
		core.Clamp(col, 0, snap.Cols-1),
	)
}

// click feeds one select-or-swap to the session.
func (g *Game) click(c engine.Cell) {
	g.pending = nil
	out, err := g.session.SelectOrSwap(c.Row, c.Col)
	if err != nil {
		// Rejections are reported through onEvent.
		return
	}
	if out.Kind != engine.OutcomeSwapped {
		return
	}

	g.hint = nil
	g.hintTicks = 0

	if len(g.pending) > 0 && g.cfg.Gameplay.MatchFlashTicks > 0 {
		g.flash = g.pending
		g.flashTicks = g.cfg.Gameplay.MatchFlashTicks
		g.session.Hold()
	}
	g.pending = nil

	if out.Result.CascadeRounds > 1 {
		g.setStatus(fmt.Sprintf("cascade x%d  +%d", out.Result.CascadeRounds, out.Result.TotalScoreDelta))
	} else if out.Result.TotalScoreDelta > 0 {
		g.setStatus(fmt.Sprintf("+%d", out.Result.TotalScoreDelta))
	}

	if _, ok := g.session.Hint(); !ok {
		g.noMoves = true
	}
}

// onEvent collects what the renderer needs from session events.
func (g *Game) onEvent(evt engine.Event) {
	switch e := evt.(type) {
	case engine.MatchesResolved:
		g.pending = append(g.pending, e.Cells...)
	case engine.MoveRejected:
		switch e.Reason {
		case engine.ReasonBusy:
			g.setStatus("wait for the board to settle")
		case engine.ReasonNoMatch:
			g.setStatus("that swap makes no match")
		}
	}
}

func (g *Game) showHint() {
	left := g.level.HintsLeft(g.hintsUsed)
	if left == 0 {
		g.setStatus("no hints left")
		return
	}
	m, ok := g.session.Hint()
	if !ok {
		g.setStatus("no moves available")
		return
	}
	g.hintsUsed++
	g.hint = &m
	g.hintTicks = max(g.cfg.Gameplay.HintFlashTicks, 1)
}

// advanceClock adds a second to the session every tickRate ticks.
func (g *Game) advanceClock() {
	g.ticks++
	if g.ticks >= g.tickRate {
		g.ticks = 0
		g.session.AdvanceClock(1)
	}
}

func (g *Game) checkLevelEnd() {
	stats := g.session.Stats()
	res := g.resultFor(stats)

	switch {
	case g.mode == ModeCampaign && levels.Cleared(g.level, res):
		g.cleared = true
		g.stars = levels.Stars(g.level, res)
		g.perfect = levels.Perfect(g.level, res)
		g.won = g.catalog.IsLast(g.level.Number)
	case g.level.Timed() && stats.ElapsedSeconds >= g.level.TimeLimit:
		g.timeUp = true
	case g.noMoves:
	default:
		return
	}

	g.over = true
	g.finished = true
	g.hint = nil
}

func (g *Game) resultFor(stats engine.Stats) levels.Result {
	return levels.Result{
		Level:   g.level.Number,
		Score:   stats.Score,
		Moves:   stats.Moves,
		Elapsed: stats.ElapsedSeconds,
	}
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = statusSeconds * max(g.tickRate, 1)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	stats := g.session.Stats()
	return core.GameState{
		Score:        stats.Score,
		GameOver:     g.over,
		Paused:       g.paused || g.tooSmall,
		Level:        g.level.Number,
		LevelCleared: g.cleared,
		Moves:        stats.Moves,
		Elapsed:      stats.ElapsedSeconds,
		Stars:        g.stars,
	}
}

// LevelResult returns the result of the current level so far.
func (g *Game) LevelResult() levels.Result {
	return g.resultFor(g.session.Stats())
}

// Catalog returns the level catalog loaded by the last Reset.
func (g *Game) Catalog() *levels.Catalog {
	return g.catalog
}
