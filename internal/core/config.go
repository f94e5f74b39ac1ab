package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score        int  // Current score
	GameOver     bool // Whether the game has ended
	Paused       bool // Whether the game is paused
	Level        int  // Current level; 0 in endless mode
	LevelCleared bool // Whether the current level's target was reached
	Moves        int  // Swaps made this level
	Elapsed      int  // Seconds played this level
	Stars        int  // Rating of a cleared level
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Finished is set on the tick a level ends, cleared or not, so the
	// platform can record the result exactly once.
	Finished bool
}
