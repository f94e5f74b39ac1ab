// Package levels defines the match-3 campaign: level parameters, star
// ratings and the player's unlock progress.
package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/puzzlebit/internal/config"
	"github.com/vovakirdan/puzzlebit/internal/games/match3/engine"
)

// EndlessLevel is the level number reserved for endless mode.
const EndlessLevel = 0

// ErrUnknownLevel is returned for level numbers outside the catalog.
var ErrUnknownLevel = errors.New("levels: unknown level")

// Level defines a playable level.
type Level struct {
	Number      int
	Name        string
	GridSize    int
	PaletteSize int
	TargetScore int
	TimeLimit   int // Seconds; 0 = no limit
	Hints       int // Negative = unlimited
}

// IsEndless reports whether this is the endless level.
func (l Level) IsEndless() bool {
	return l.Number == EndlessLevel
}

// Timed reports whether the level has a time limit.
func (l Level) Timed() bool {
	return l.TimeLimit > 0
}

// Cells returns the number of cells on the level's grid.
func (l Level) Cells() int {
	return l.GridSize * l.GridSize
}

// HintsLeft returns how many hints remain after used, or -1 if unlimited.
func (l Level) HintsLeft(used int) int {
	if l.Hints < 0 {
		return -1
	}
	return max(0, l.Hints-used)
}

// Catalog is the ordered set of campaign levels plus the endless level.
type Catalog struct {
	campaign []Level
	endless  Level
}

// FromConfig builds a catalog from configuration. Levels are numbered from 1
// in file order.
func FromConfig(cfg config.Match3Config) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Catalog{
		campaign: make([]Level, len(cfg.Levels)),
		endless:  fromLevelConfig(EndlessLevel, cfg.Endless),
	}
	for i, lc := range cfg.Levels {
		c.campaign[i] = fromLevelConfig(i+1, lc)
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := FromConfig(config.DefaultMatch3Config())
	if err != nil {
		panic(fmt.Sprintf("levels: built-in config invalid: %v", err))
	}
	return c
}

func fromLevelConfig(number int, lc config.LevelConfig) Level {
	name := lc.Name
	if name == "" {
		name = fmt.Sprintf("Level %d", number)
	}
	return Level{
		Number:      number,
		Name:        name,
		GridSize:    lc.GridSize,
		PaletteSize: lc.PaletteSize,
		TargetScore: lc.TargetScore,
		TimeLimit:   lc.TimeLimit,
		Hints:       lc.Hints,
	}
}

// Get returns level n. Level 0 is the endless level.
func (c *Catalog) Get(n int) (Level, error) {
	if n == EndlessLevel {
		return c.endless, nil
	}
	if n < 1 || n > len(c.campaign) {
		return Level{}, fmt.Errorf("%w: %d (campaign has %d)", ErrUnknownLevel, n, len(c.campaign))
	}
	return c.campaign[n-1], nil
}

// Count returns the number of campaign levels.
func (c *Catalog) Count() int {
	return len(c.campaign)
}

// All returns a copy of the campaign levels in order.
func (c *Catalog) All() []Level {
	out := make([]Level, len(c.campaign))
	copy(out, c.campaign)
	return out
}

// Endless returns the endless level.
func (c *Catalog) Endless() Level {
	return c.endless
}

// IsLast reports whether n is the final campaign level.
func (c *Catalog) IsLast(n int) bool {
	return n == len(c.campaign)
}

// LevelConfig implements engine.LevelSource.
func (c *Catalog) LevelConfig(n int) (engine.LevelConfig, error) {
	lvl, err := c.Get(n)
	if err != nil {
		return engine.LevelConfig{}, err
	}
	return engine.LevelConfig{GridSize: lvl.GridSize, PaletteSize: lvl.PaletteSize}, nil
}

// Names returns the campaign level names in order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.campaign))
	for i, lvl := range c.campaign {
		names[i] = lvl.Name
	}
	return names
}
