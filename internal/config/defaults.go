package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Gameplay: GameplayConfig{
			PointsPerCell:   100,
			RequireMatch:    false,
			FairStart:       false,
			MatchFlashTicks: 6,
			HintFlashTicks:  45,
		},
		Endless: LevelConfig{
			Name:        "Endless",
			GridSize:    8,
			PaletteSize: 6,
			TargetScore: 0,
			TimeLimit:   0,
			Hints:       -1,
		},
		Levels: []LevelConfig{
			{Name: "Crystal Garden", GridSize: 6, PaletteSize: 5, TargetScore: 500, TimeLimit: 300, Hints: 3},
			{Name: "Gem Valley", GridSize: 7, PaletteSize: 5, TargetScore: 800, TimeLimit: 420, Hints: 2},
			{Name: "Orb Meadow", GridSize: 8, PaletteSize: 6, TargetScore: 1200, TimeLimit: 480, Hints: 2},
			{Name: "Prism Peak", GridSize: 8, PaletteSize: 6, TargetScore: 1800, TimeLimit: 600, Hints: 1},
			{Name: "Star Field", GridSize: 9, PaletteSize: 7, TargetScore: 2500, TimeLimit: 720, Hints: 0},
		},
	}
}
