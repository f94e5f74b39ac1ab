package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultMatch3Config()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.Levels) != 5 {
		t.Errorf("expected 5 campaign levels, got %d", len(cfg.Levels))
	}
}

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	embedded, err := parseMatch3(defaultMatch3YAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	hard := DefaultMatch3Config()

	if embedded.Gameplay != hard.Gameplay {
		t.Errorf("gameplay differs: embedded %+v, hardcoded %+v", embedded.Gameplay, hard.Gameplay)
	}
	if embedded.Endless != hard.Endless {
		t.Errorf("endless differs: embedded %+v, hardcoded %+v", embedded.Endless, hard.Endless)
	}
	if len(embedded.Levels) != len(hard.Levels) {
		t.Fatalf("level count differs: %d vs %d", len(embedded.Levels), len(hard.Levels))
	}
	for i := range hard.Levels {
		if embedded.Levels[i] != hard.Levels[i] {
			t.Errorf("level %d differs: embedded %+v, hardcoded %+v", i+1, embedded.Levels[i], hard.Levels[i])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Match3Config)
		wantErr string
	}{
		{"default", func(*Match3Config) {}, ""},
		{"grid too small", func(c *Match3Config) { c.Levels[0].GridSize = 2 }, "grid_size"},
		{"palette empty", func(c *Match3Config) { c.Levels[1].PaletteSize = 0 }, "palette_size"},
		{"single color", func(c *Match3Config) { c.Levels[0].PaletteSize = 1 }, "palette_size 1 not in 2..12"},
		{"palette too large", func(c *Match3Config) { c.Endless.PaletteSize = 13 }, "endless"},
		{"no levels", func(c *Match3Config) { c.Levels = nil }, "at least one level"},
		{"negative time", func(c *Match3Config) { c.Levels[2].TimeLimit = -5 }, "time_limit"},
		{"negative points", func(c *Match3Config) { c.Gameplay.PointsPerCell = -1 }, "points_per_cell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMatch3Config()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := `
gameplay:
  points_per_cell: 50
levels:
  - name: Tiny
    grid_size: 4
    palette_size: 4
    target_score: 100
    time_limit: 60
    hints: 1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3: %v", err)
	}
	if cfg.Gameplay.PointsPerCell != 50 {
		t.Errorf("points_per_cell = %d, want 50", cfg.Gameplay.PointsPerCell)
	}
	if cfg.Gameplay.MatchFlashTicks != DefaultMatch3Config().Gameplay.MatchFlashTicks {
		t.Error("unset gameplay fields should keep their defaults")
	}
	if len(cfg.Levels) != 1 || cfg.Levels[0].Name != "Tiny" {
		t.Errorf("levels = %+v, want single Tiny level", cfg.Levels)
	}
	if cfg.Endless.GridSize != 8 {
		t.Errorf("endless should keep defaults, got %+v", cfg.Endless)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadMatch3(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("levels:\n  - grid_size: 1\n    palette_size: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMatch3(path); err == nil {
		t.Error("expected validation error for 1x1 level")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"normal", DifficultyNormal, false},
		{"Easy", DifficultyEasy, false},
		{" hard ", DifficultyHard, false},
		{"fixed", "", true},
		{"insane", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyMatch3Preset(t *testing.T) {
	normal := DefaultMatch3Config()
	ApplyMatch3Preset(&normal, DifficultyNormal)
	if normal.Levels[0] != DefaultMatch3Config().Levels[0] {
		t.Error("normal preset should not change levels")
	}

	easy := DefaultMatch3Config()
	ApplyMatch3Preset(&easy, DifficultyEasy)
	first := easy.Levels[0]
	if first.PaletteSize != 4 || first.Hints != 5 || first.TimeLimit != 450 {
		t.Errorf("easy level 1 = %+v, want palette 4, hints 5, time 450", first)
	}
	if easy.Endless.Hints != -1 || easy.Endless.TimeLimit != 0 {
		t.Errorf("easy endless should stay unlimited, got %+v", easy.Endless)
	}

	hard := DefaultMatch3Config()
	ApplyMatch3Preset(&hard, DifficultyHard)
	last := hard.Levels[4]
	if last.PaletteSize != 8 || last.Hints != 0 || last.TimeLimit != 540 {
		t.Errorf("hard level 5 = %+v, want palette 8, hints 0, time 540", last)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset produced invalid config: %v", err)
	}
}
