// Package storage provides SQLite-based persistence for scores and campaign
// progress. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultProfile is the progress profile used by local play.
const DefaultProfile = "local"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single recorded level result.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Level     int
	Score     int
	Moves     int
	Elapsed   int // Seconds
	Stars     int
	CreatedAt time.Time
}

// LevelResult is what gets recorded when a level ends.
type LevelResult struct {
	GameID  string
	Level   int
	Score   int
	Moves   int
	Elapsed int
	Stars   int
}

// ProgressRecord is the stored campaign progress of one profile.
type ProgressRecord struct {
	Profile   string
	Current   int
	Unlocked  int
	Completed []int
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			elapsed_secs INTEGER NOT NULL DEFAULT 0,
			stars INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, level, score DESC);

		CREATE TABLE IF NOT EXISTS progress (
			profile TEXT PRIMARY KEY,
			current_level INTEGER NOT NULL DEFAULT 1,
			unlocked_levels INTEGER NOT NULL DEFAULT 1,
			completed_levels TEXT NOT NULL DEFAULT '[]',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a bare score for the given game and level.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, level, score int) (int64, error) {
	return s.SaveLevelResult(LevelResult{GameID: gameID, Level: level, Score: score})
}

// SaveLevelResult records the outcome of a finished level.
// Returns the ID of the inserted record.
func (s *Store) SaveLevelResult(r LevelResult) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO scores (game_id, level, score, moves, elapsed_secs, stars)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Level, r.Score, r.Moves, r.Elapsed, r.Stars,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for a game level.
// Results are ordered by score descending, then fewer moves.
func (s *Store) TopScores(gameID string, level, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level, score, moves, elapsed_secs, stars, created_at
		 FROM scores
		 WHERE game_id = ? AND level = ?
		 ORDER BY score DESC, moves ASC
		 LIMIT ?`,
		gameID, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Level, &e.Score, &e.Moves, &e.Elapsed, &e.Stars, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for a game level.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string, level int) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ? AND level = ?",
		gameID, level,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// BestStars returns the best star rating per level for a game.
func (s *Store) BestStars(gameID string) (map[int]int, error) {
	rows, err := s.db.Query(
		`SELECT level, MAX(stars) FROM scores WHERE game_id = ? GROUP BY level`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stars: %w", err)
	}
	defer rows.Close()

	best := make(map[int]int)
	for rows.Next() {
		var level, stars int
		if err := rows.Scan(&level, &stars); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		best[level] = stars
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return best, nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LoadProgress returns the stored progress for profile, or a fresh record
// at level 1 if the profile has none.
func (s *Store) LoadProgress(profile string) (ProgressRecord, error) {
	rec := ProgressRecord{Profile: profile}
	var completed string
	var updatedAt any

	err := s.db.QueryRow(
		`SELECT current_level, unlocked_levels, completed_levels, updated_at
		 FROM progress WHERE profile = ?`,
		profile,
	).Scan(&rec.Current, &rec.Unlocked, &completed, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		rec.Current = 1
		rec.Unlocked = 1
		return rec, nil
	}
	if err != nil {
		return ProgressRecord{}, fmt.Errorf("storage: cannot load progress: %w", err)
	}

	if err := json.Unmarshal([]byte(completed), &rec.Completed); err != nil {
		return ProgressRecord{}, fmt.Errorf("storage: corrupt completed levels for %q: %w", profile, err)
	}
	rec.UpdatedAt = parseTime(updatedAt)

	return rec, nil
}

// SaveProgress inserts or replaces the progress record for rec.Profile.
func (s *Store) SaveProgress(rec ProgressRecord) error {
	completed := rec.Completed
	if completed == nil {
		completed = []int{}
	}
	data, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("storage: cannot encode completed levels: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO progress (profile, current_level, unlocked_levels, completed_levels, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET
		   current_level = excluded.current_level,
		   unlocked_levels = excluded.unlocked_levels,
		   completed_levels = excluded.completed_levels,
		   updated_at = excluded.updated_at`,
		rec.Profile, rec.Current, rec.Unlocked, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// DeleteProgress removes the progress record for profile.
func (s *Store) DeleteProgress(profile string) error {
	_, err := s.db.Exec("DELETE FROM progress WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot delete progress: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID      string
	GamesCount  int
	HighScore   int
	AvgScore    float64
	TotalScore  int64
	TotalMoves  int64
	LevelsRated int
	LastPlayed  time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(SUM(moves), 0),
		        COUNT(DISTINCT CASE WHEN stars > 0 THEN level END)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore,
		&stats.TotalScore, &stats.TotalMoves, &stats.LevelsRated)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
