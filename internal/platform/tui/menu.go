package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/puzzlebit/internal/core"
	"github.com/vovakirdan/puzzlebit/internal/games/match3"
	"github.com/vovakirdan/puzzlebit/internal/games/match3/levels"
)

// Main menu entries.
const (
	itemContinue = iota
	itemSelectLevel
	itemEndless
	itemScores
	itemQuit
	itemCount
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the main menu and level picker.
type MenuModel struct {
	recorder      *Recorder
	catalog       *levels.Catalog
	progress      levels.Progress
	stars         map[int]int
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	notice        string
	quitting      bool
	selected      *MenuResult
	scoreboard    bool
}

// NewMenuModel creates a new menu model with the profile's progress.
func NewMenuModel(recorder *Recorder, cfg core.RuntimeConfig) MenuModel {
	progress := recorder.Progress()
	return MenuModel{
		recorder:    recorder,
		catalog:     recorder.Catalog(),
		progress:    progress,
		stars:       recorder.BestStars(),
		levelCursor: progress.Current - 1,
		width:       cfg.ScreenW,
		height:      cfg.ScreenH,
		config:      cfg,
		keyMapper:   NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.notice = ""
		if m.inLevelSelect {
			return m.handleLevelSelectKey(m.keyMapper.MapKeyToMenuAction(msg))
		}
		return m.handleMainKey(m.keyMapper.MapKeyToMenuAction(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor + itemCount - 1) % itemCount

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % itemCount

	case MenuActionScoreboard:
		m.scoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case itemContinue:
			return m.choose(match3.IDCampaign, m.continueLevel())
		case itemSelectLevel:
			m.inLevelSelect = true
		case itemEndless:
			return m.choose(match3.IDEndless, levels.EndlessLevel)
		case itemScores:
			m.scoreboard = true
			return m, tea.Quit
		case itemQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < m.catalog.Count()-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		n := m.levelCursor + 1
		if !m.progress.IsUnlocked(n) {
			m.notice = fmt.Sprintf("Level %d is locked. Clear level %d first.", n, m.progress.Unlocked)
			return m, nil
		}
		return m.choose(match3.IDCampaign, n)
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// choose records the pick as the profile's current level and exits the menu.
func (m MenuModel) choose(gameID string, level int) (tea.Model, tea.Cmd) {
	if level != levels.EndlessLevel {
		if err := m.progress.Select(m.catalog, level); err == nil {
			m.recorder.SaveProgress(m.progress)
		}
	}
	m.selected = &MenuResult{GameID: gameID, Level: level}
	return m, tea.Quit
}

func (m MenuModel) continueLevel() int {
	if m.progress.IsUnlocked(m.progress.Current) && !m.progress.IsCompleted(m.progress.Current) {
		return m.progress.Current
	}
	return m.progress.Recommended(m.catalog)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewMain()
}

func (m MenuModel) viewMain() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("P U Z Z L E B I T"), m.width))
	b.WriteString("\n\n")

	sum := m.progress.Summary(m.catalog)
	b.WriteString(centerText(fmt.Sprintf("Profile %s  |  %d/%d levels completed (%d%%)",
		m.recorder.Profile(), sum.Completed, sum.Total, sum.Percentage), m.width))
	b.WriteString("\n\n")

	next := m.continueLevel()
	lvl, _ := m.catalog.Get(next)
	items := [itemCount]string{
		itemContinue:    fmt.Sprintf("Play level %d: %s", next, lvl.Name),
		itemSelectLevel: "Select level...",
		itemEndless:     "Endless mode",
		itemScores:      "High scores",
		itemQuit:        "Quit",
	}
	for i, item := range items {
		b.WriteString(centerText(m.menuLine(i == m.cursor, item), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	for _, lvl := range m.catalog.All() {
		selected := lvl.Number-1 == m.levelCursor
		if !m.progress.IsUnlocked(lvl.Number) {
			line := fmt.Sprintf("  %2d. %-16s locked", lvl.Number, lvl.Name)
			if selected {
				line = "> " + line[2:]
			}
			b.WriteString(centerText(lockedStyle.Render(line), m.width))
			b.WriteString("\n")
			continue
		}

		limit := "no limit"
		if lvl.Timed() {
			limit = levels.FormatTime(lvl.TimeLimit)
		}
		line := fmt.Sprintf("%2d. %-16s %dx%d  %2d colors  target %5d  %s  %s",
			lvl.Number, lvl.Name, lvl.GridSize, lvl.GridSize, lvl.PaletteSize,
			lvl.TargetScore, limit, starString(m.stars[lvl.Number]))
		b.WriteString(centerText(m.menuLine(selected, line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(noticeStyle.Render(m.notice), m.width))
	}
	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Enter: Play  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m MenuModel) menuLine(selected bool, text string) string {
	if selected {
		return cursorStyle.Render("> " + text)
	}
	return "  " + text
}

func starString(n int) string {
	n = core.Clamp(n, 0, levels.MaxStars)
	return strings.Repeat("★", n) + strings.Repeat("☆", levels.MaxStars-n)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:max(n-1, 0)]) + "."
}

// Selected returns the chosen game, or nil if none was chosen.
func (m MenuModel) Selected() *MenuResult {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Level           int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(recorder *Recorder, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(recorder, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
		result.Level = m.Selected().Level
	default:
		result.Quit = true
	}
	return result, nil
}
