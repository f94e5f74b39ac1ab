package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Palette bounds presets never cross.
const (
	minPresetPalette = 4
	maxPresetPalette = MaxPaletteSize
)

// ParsePreset converts a CLI value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// presetScaling describes how a preset bends every level.
type presetScaling struct {
	paletteDelta int     // Fewer colors make matches likelier
	hintDelta    int     // Added to limited hint budgets
	timeFactor   float64 // Multiplies time limits
}

func scalingFor(preset DifficultyPreset) presetScaling {
	switch preset {
	case DifficultyEasy:
		return presetScaling{paletteDelta: -1, hintDelta: 2, timeFactor: 1.5}
	case DifficultyHard:
		return presetScaling{paletteDelta: 1, hintDelta: -1, timeFactor: 0.75}
	default:
		return presetScaling{timeFactor: 1.0}
	}
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
// Normal leaves the config unchanged. The endless level keeps its unlimited
// hints and time.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	sc := scalingFor(preset)
	if sc == (presetScaling{timeFactor: 1.0}) {
		return
	}

	sc.apply(&cfg.Endless)
	for i := range cfg.Levels {
		sc.apply(&cfg.Levels[i])
	}
}

func (sc presetScaling) apply(lvl *LevelConfig) {
	// Palettes already below the preset floor are left alone.
	if lvl.PaletteSize >= minPresetPalette {
		lvl.PaletteSize = clamp(lvl.PaletteSize+sc.paletteDelta, minPresetPalette, maxPresetPalette)
	}

	if lvl.Hints >= 0 {
		lvl.Hints = max(0, lvl.Hints+sc.hintDelta)
	}

	if lvl.TimeLimit > 0 {
		lvl.TimeLimit = max(1, int(math.Round(float64(lvl.TimeLimit)*sc.timeFactor)))
	}
}

// clamp restricts an int to [lo, hi].
func clamp(val, lo, hi int) int {
	return max(lo, min(hi, val))
}
