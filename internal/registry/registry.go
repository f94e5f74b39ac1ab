// Package registry maps game mode IDs to factories. Modes register
// themselves in init() so the platform can create them by ID alone.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/puzzlebit/internal/core"
)

// ErrUnknownMode is returned by Create for IDs nobody registered.
var ErrUnknownMode = errors.New("registry: unknown mode")

// Game is the interface every playable mode implements.
// Games hold pure logic with no Bubble Tea dependency; the platform maps
// input, drives the ticks and draws the screen.
type Game interface {
	// ID identifies the mode. Scores are stored under it.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts the game over for the given screen, tick rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// LevelSelector is implemented by games that can start at a chosen level.
// SelectLevel is called before Reset.
type LevelSelector interface {
	SelectLevel(level int)
}

// Factory creates a fresh game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register adds a mode. It panics if id is taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	factories[id] = f
}

// Create instantiates the mode registered as id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, id)
	}
	return f(), nil
}

// CreateAt instantiates a game and, if it supports level selection, points
// it at level before the first Reset.
func CreateAt(id string, level int) (Game, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	if ls, ok := g.(LevelSelector); ok {
		ls.SelectLevel(level)
	}
	return g, nil
}
