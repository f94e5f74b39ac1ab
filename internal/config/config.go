// Package config provides YAML-based configuration loading and difficulty
// presets for the match-3 game.
package config

import (
	"errors"
	"fmt"
)

// Palette bounds: at least two colors, at most what the renderer can draw.
const (
	MinPaletteSize = 2
	MaxPaletteSize = 12
)

// MinGridSize is the smallest square grid on which a run of three fits.
const MinGridSize = 3

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Gameplay GameplayConfig `yaml:"gameplay"`
	Endless  LevelConfig    `yaml:"endless"`
	Levels   []LevelConfig  `yaml:"levels"`
}

// GameplayConfig defines rules shared by every level.
type GameplayConfig struct {
	PointsPerCell   int  `yaml:"points_per_cell"`
	RequireMatch    bool `yaml:"require_match"`     // Revert swaps that make no match
	FairStart       bool `yaml:"fair_start"`        // No pre-existing matches, at least one move
	MatchFlashTicks int  `yaml:"match_flash_ticks"` // How long cleared cells stay highlighted
	HintFlashTicks  int  `yaml:"hint_flash_ticks"`  // How long a hint stays highlighted
}

// LevelConfig defines one playable level.
type LevelConfig struct {
	Name        string `yaml:"name"`
	GridSize    int    `yaml:"grid_size"`
	PaletteSize int    `yaml:"palette_size"`
	TargetScore int    `yaml:"target_score"`
	TimeLimit   int    `yaml:"time_limit"` // Seconds; 0 = no limit
	Hints       int    `yaml:"hints"`      // Negative = unlimited
}

// Validate checks that every level can be built into a grid.
func (c Match3Config) Validate() error {
	var errs []error
	if c.Gameplay.PointsPerCell < 0 {
		errs = append(errs, fmt.Errorf("gameplay: points_per_cell %d is negative", c.Gameplay.PointsPerCell))
	}
	if err := c.Endless.validate(); err != nil {
		errs = append(errs, fmt.Errorf("endless: %w", err))
	}
	if len(c.Levels) == 0 {
		errs = append(errs, errors.New("levels: at least one level is required"))
	}
	for i, lvl := range c.Levels {
		if err := lvl.validate(); err != nil {
			errs = append(errs, fmt.Errorf("levels[%d] %q: %w", i, lvl.Name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid match3 config: %w", errors.Join(errs...))
	}
	return nil
}

func (l LevelConfig) validate() error {
	if l.GridSize < MinGridSize {
		return fmt.Errorf("grid_size %d is below %d", l.GridSize, MinGridSize)
	}
	if l.PaletteSize < MinPaletteSize || l.PaletteSize > MaxPaletteSize {
		return fmt.Errorf("palette_size %d not in %d..%d", l.PaletteSize, MinPaletteSize, MaxPaletteSize)
	}
	if l.TargetScore < 0 {
		return fmt.Errorf("target_score %d is negative", l.TargetScore)
	}
	if l.TimeLimit < 0 {
		return fmt.Errorf("time_limit %d is negative", l.TimeLimit)
	}
	return nil
}
