package match3

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/puzzlebit/internal/core"
	"github.com/vovakirdan/puzzlebit/internal/games/match3/engine"
)

const testConfig = `
gameplay:
  points_per_cell: 100
  require_match: false
  fair_start: true
  match_flash_ticks: 2
  hint_flash_ticks: 5
levels:
  - name: Easy Start
    grid_size: 6
    palette_size: 5
    target_score: 100
    time_limit: 3
    hints: 2
  - name: Long Haul
    grid_size: 6
    palette_size: 5
    target_score: 100000
    time_limit: 0
    hints: 0
`

func useTestConfig(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "match3.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 42}
}

func newTestGame(t *testing.T, level int) *Game {
	t.Helper()
	useTestConfig(t)
	g := New()
	g.SelectLevel(level)
	g.Reset(testRuntime())
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func clickCell(g *Game, c engine.Cell) core.StepResult {
	in := core.NewInputFrame()
	x, y := g.layout.origin(c)
	in.SetClick(x+1, y)
	return g.Step(in)
}

// playHint performs the first available move with two mouse clicks.
func playHint(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	m, ok := g.session.Hint()
	if !ok {
		t.Fatal("fair start board has no move")
	}
	clickCell(g, m.A)
	return clickCell(g, m.B)
}

func TestResetStartsSelectedLevel(t *testing.T) {
	g := newTestGame(t, 1)

	snap := g.Snapshot()
	if snap.Level != 1 || snap.Mode != string(ModeCampaign) {
		t.Errorf("level = %d mode = %s, want 1 campaign", snap.Level, snap.Mode)
	}
	if snap.Board.Rows != 6 || snap.Board.Cols != 6 {
		t.Errorf("board = %dx%d, want 6x6", snap.Board.Rows, snap.Board.Cols)
	}
	if snap.State != StatePlaying {
		t.Errorf("state = %s, want playing", snap.State)
	}
	if g.ID() != IDCampaign {
		t.Errorf("ID() = %s", g.ID())
	}
}

func TestSelectLevelClampedToCatalog(t *testing.T) {
	g := newTestGame(t, 99)
	if g.Snapshot().Level != 2 {
		t.Errorf("level = %d, want last level 2", g.Snapshot().Level)
	}
}

func TestDeterministicBoard(t *testing.T) {
	a := newTestGame(t, 1)
	b := newTestGame(t, 1)

	if !reflect.DeepEqual(a.Snapshot().Board.Colors, b.Snapshot().Board.Colors) {
		t.Error("same seed produced different boards")
	}
}

func TestCursorMovementClamped(t *testing.T) {
	g := newTestGame(t, 1)

	press(g, core.ActionUp)
	press(g, core.ActionLeft)
	if g.cursor != engine.At(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", g.cursor)
	}

	press(g, core.ActionRight)
	press(g, core.ActionDown)
	if g.cursor != engine.At(1, 1) {
		t.Errorf("cursor = %v, want (1,1)", g.cursor)
	}

	for range 10 {
		press(g, core.ActionDown)
	}
	if g.cursor.Row != 5 {
		t.Errorf("cursor row = %d, want 5", g.cursor.Row)
	}
}

func TestSelectWithKeyboard(t *testing.T) {
	g := newTestGame(t, 2)

	press(g, core.ActionRight)
	press(g, core.ActionSelect)

	sel := g.Snapshot().Board.Selection
	if sel == nil || *sel != engine.At(0, 1) {
		t.Fatalf("selection = %v, want (0,1)", sel)
	}
}

func TestMouseClickMovesCursorAndSelects(t *testing.T) {
	g := newTestGame(t, 2)

	clickCell(g, engine.At(3, 4))

	if g.cursor != engine.At(3, 4) {
		t.Errorf("cursor = %v, want (3,4)", g.cursor)
	}
	sel := g.Snapshot().Board.Selection
	if sel == nil || *sel != engine.At(3, 4) {
		t.Errorf("selection = %v, want (3,4)", sel)
	}
}

func TestClickOutsideBoardIgnored(t *testing.T) {
	g := newTestGame(t, 2)

	in := core.NewInputFrame()
	in.SetClick(0, 0)
	g.Step(in)

	if g.Snapshot().Board.Selection != nil {
		t.Error("click outside the board selected a tile")
	}
}

func TestSwapFlashesThenReleases(t *testing.T) {
	g := newTestGame(t, 2)

	playHint(t, g)

	snap := g.Snapshot()
	if snap.Board.Stats.Moves != 1 {
		t.Fatalf("moves = %d, want 1", snap.Board.Stats.Moves)
	}
	if snap.Board.Stats.Score < 300 {
		t.Errorf("score = %d, want at least 300", snap.Board.Stats.Score)
	}
	if len(g.flash) == 0 || g.session.State() != engine.StateResolving {
		t.Fatal("matched cells should flash while the session is held")
	}

	press(g)
	press(g)
	if len(g.flash) != 0 || g.session.State() == engine.StateResolving {
		t.Error("flash should end after match_flash_ticks")
	}
}

func TestClearLevelAndAdvance(t *testing.T) {
	g := newTestGame(t, 1)

	res := playHint(t, g)
	if !res.Finished {
		t.Fatal("clearing the target should finish the level on that tick")
	}
	if !res.State.LevelCleared || !res.State.GameOver {
		t.Errorf("state = %+v, want cleared and over", res.State)
	}

	snap := g.Snapshot()
	if snap.State != StateLevelCleared {
		t.Errorf("snapshot state = %s", snap.State)
	}
	if snap.Stars < 1 {
		t.Errorf("stars = %d, want at least 1", snap.Stars)
	}

	if res := press(g); res.Finished {
		t.Error("Finished should only be reported once")
	}

	press(g, core.ActionNext)
	snap = g.Snapshot()
	if snap.Level != 2 || snap.State != StatePlaying {
		t.Errorf("after next: level %d state %s", snap.Level, snap.State)
	}
	if snap.Board.Stats.Score != 0 {
		t.Errorf("score carried over: %d", snap.Board.Stats.Score)
	}
}

func TestTimeUpEndsLevel(t *testing.T) {
	g := newTestGame(t, 1)

	finished := 0
	for range 40 {
		if press(g).Finished {
			finished++
		}
	}

	if finished != 1 {
		t.Errorf("finished reported %d times, want 1", finished)
	}
	snap := g.Snapshot()
	if snap.State != StateTimeUp {
		t.Errorf("state = %s, want time_up", snap.State)
	}
	if snap.Board.Stats.ElapsedSeconds != 3 {
		t.Errorf("elapsed = %d, want clock stopped at 3", snap.Board.Stats.ElapsedSeconds)
	}

	press(g, core.ActionRestart)
	snap = g.Snapshot()
	if snap.State != StatePlaying || snap.Board.Stats.ElapsedSeconds != 0 {
		t.Errorf("after restart: state %s elapsed %d", snap.State, snap.Board.Stats.ElapsedSeconds)
	}
}

func TestPauseStopsClock(t *testing.T) {
	g := newTestGame(t, 2)

	press(g, core.ActionPause)
	for range 25 {
		press(g)
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("state = %s, want paused", g.Snapshot().State)
	}
	if e := g.session.Stats().ElapsedSeconds; e != 0 {
		t.Errorf("clock ran while paused: %d", e)
	}

	press(g, core.ActionPause)
	for range 10 {
		press(g)
	}
	if e := g.session.Stats().ElapsedSeconds; e != 1 {
		t.Errorf("elapsed = %d, want 1", e)
	}
}

func TestHintAllowance(t *testing.T) {
	g := newTestGame(t, 1)

	press(g, core.ActionHint)
	if g.hint == nil {
		t.Fatal("hint should be shown")
	}
	press(g, core.ActionHint)
	press(g, core.ActionHint)

	if g.hintsUsed != 2 {
		t.Errorf("hintsUsed = %d, want 2", g.hintsUsed)
	}
	if g.status != "no hints left" {
		t.Errorf("status = %q", g.status)
	}
}

func TestEndlessUnlimitedHints(t *testing.T) {
	useTestConfig(t)
	g := NewEndless()
	g.Reset(testRuntime())

	if g.ID() != IDEndless || g.Snapshot().Level != 0 {
		t.Fatalf("endless game at level %d", g.Snapshot().Level)
	}
	for range 5 {
		press(g, core.ActionHint)
	}
	if g.hintsUsed != 5 {
		t.Errorf("hintsUsed = %d, want 5", g.hintsUsed)
	}

	for range 100 {
		if press(g).Finished {
			t.Fatal("endless mode has no time limit")
		}
	}
}

// scriptedRand replays vals in order, wrapping around.
type scriptedRand struct {
	vals []int
	i    int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)] % n
	r.i++
	return v
}

// boardLevels serves the same grid parameters for every level.
type boardLevels engine.LevelConfig

func (b boardLevels) LevelConfig(int) (engine.LevelConfig, error) {
	return engine.LevelConfig(b), nil
}

// useBoard swaps g's session for one whose grids are filled from colors.
func useBoard(t *testing.T, g *Game, cfg engine.LevelConfig, colors ...int) {
	t.Helper()
	g.session = engine.NewSession(boardLevels(cfg), &scriptedRand{vals: colors})
	g.session.Subscribe(g.onEvent)
	if err := g.session.Start(g.level.Number); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	g.resetLevelState()
}

func TestNoMovesEndsEndlessGame(t *testing.T) {
	useTestConfig(t)
	g := NewEndless()
	g.Reset(testRuntime())

	// Nine distinct colors: no swap can ever line up three.
	useBoard(t, g, engine.LevelConfig{GridSize: 3, PaletteSize: 9}, 0, 1, 2, 3, 4, 5, 6, 7, 8)

	clickCell(g, engine.At(0, 0))
	res := clickCell(g, engine.At(0, 1))

	if !res.Finished || !res.State.GameOver {
		t.Fatalf("result = %+v, want finished game over", res)
	}
	if res.State.Moves != 1 || res.State.Score != 0 {
		t.Errorf("moves = %d score = %d, want 1 and 0", res.State.Moves, res.State.Score)
	}
	if st := g.Snapshot().State; st != StateNoMoves {
		t.Errorf("state = %s, want no_moves", st)
	}

	for range 20 {
		if press(g).Finished {
			t.Fatal("level finished twice")
		}
	}
	if !g.State().GameOver {
		t.Error("game over state lost")
	}

	press(g, core.ActionRestart)
	if g.State().GameOver || g.Snapshot().State != StatePlaying {
		t.Errorf("restart left state %s", g.Snapshot().State)
	}
}

func TestTooSmallScreen(t *testing.T) {
	useTestConfig(t)
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 10, Seed: 1})

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("state = %s, want paused_small_window", g.Snapshot().State)
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too small message not rendered")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Errorf("after resize state = %s", g.Snapshot().State)
	}
}

func TestRenderBoard(t *testing.T) {
	g := newTestGame(t, 1)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "PuzzleBit - Level 1/2 - Easy Start") {
		t.Errorf("title row = %q", screen.Row(0))
	}
	x, y := g.layout.origin(engine.At(0, 0))
	if screen.Get(x, y) != '[' || screen.Get(x+3, y) != ']' {
		t.Error("cursor brackets not drawn around (0,0)")
	}
	cell := screen.GetCell(x+1, y)
	want := core.TileColor(g.Snapshot().Board.ColorAt(0, 0))
	if cell.Rune != '█' || cell.Color != want {
		t.Errorf("tile cell = %+v, want █ in %v", cell, want)
	}
}

func TestLayoutCellAt(t *testing.T) {
	l := layout{x0: 10, y0: 4, rows: 6, cols: 6}

	tests := []struct {
		x, y int
		cell engine.Cell
		ok   bool
	}{
		{10, 4, engine.At(0, 0), true},
		{13, 4, engine.At(0, 0), true},
		{14, 5, engine.At(1, 1), true},
		{33, 9, engine.At(5, 5), true},
		{9, 4, engine.Cell{}, false},
		{34, 4, engine.Cell{}, false},
		{10, 10, engine.Cell{}, false},
	}
	for _, tc := range tests {
		cell, ok := l.cellAt(tc.x, tc.y)
		if ok != tc.ok || (ok && cell != tc.cell) {
			t.Errorf("cellAt(%d, %d) = %v, %v; want %v, %v", tc.x, tc.y, cell, ok, tc.cell, tc.ok)
		}
	}
}
