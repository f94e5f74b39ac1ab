package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/puzzlebit/internal/core"
	"github.com/vovakirdan/puzzlebit/internal/games/match3"
	"github.com/vovakirdan/puzzlebit/internal/games/match3/levels"
	"github.com/vovakirdan/puzzlebit/internal/storage"
)

// Recorder persists finished levels and campaign progress for one profile.
// A nil store makes every method a no-op.
type Recorder struct {
	store   *storage.Store
	catalog *levels.Catalog
	profile string
	logger  *log.Logger
}

// NewRecorder creates a recorder for profile. The catalog is loaded from the
// current game config, falling back to the built-in levels.
func NewRecorder(store *storage.Store, profile string, logger *log.Logger) *Recorder {
	if profile == "" {
		profile = storage.DefaultProfile
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cat, err := match3.LoadCatalog()
	if err != nil {
		logger.Warn("using built-in levels", "error", err)
		cat = levels.Default()
	}
	return &Recorder{store: store, catalog: cat, profile: profile, logger: logger}
}

// Catalog returns the level catalog progress is checked against.
func (r *Recorder) Catalog() *levels.Catalog {
	return r.catalog
}

// Profile returns the progress profile name.
func (r *Recorder) Profile() string {
	return r.profile
}

// Progress loads the profile's campaign progress.
func (r *Recorder) Progress() levels.Progress {
	p := levels.NewProgress()
	if r.store == nil {
		return p
	}
	rec, err := r.store.LoadProgress(r.profile)
	if err != nil {
		r.logger.Warn("could not load progress", "profile", r.profile, "error", err)
		return p
	}
	p = FromRecord(rec)
	p.Normalize(r.catalog)
	return p
}

// SaveProgress stores p for the profile.
func (r *Recorder) SaveProgress(p levels.Progress) {
	if r.store == nil {
		return
	}
	if err := r.store.SaveProgress(ToRecord(r.profile, p)); err != nil {
		r.logger.Warn("could not save progress", "profile", r.profile, "error", err)
	}
}

// BestStars returns the best star rating per campaign level.
func (r *Recorder) BestStars() map[int]int {
	if r.store == nil {
		return nil
	}
	best, err := r.store.BestStars(match3.IDCampaign)
	if err != nil {
		r.logger.Warn("could not load stars", "error", err)
		return nil
	}
	return best
}

// Record saves a finished level. Cleared campaign levels also update the
// profile's progress.
func (r *Recorder) Record(gameID string, st core.GameState) {
	if r.store == nil {
		return
	}

	//nolint:errcheck // Best-effort save, game continues regardless
	r.store.SaveLevelResult(storage.LevelResult{
		GameID:  gameID,
		Level:   st.Level,
		Score:   st.Score,
		Moves:   st.Moves,
		Elapsed: st.Elapsed,
		Stars:   st.Stars,
	})
	r.logger.Debug("level finished",
		"game", gameID,
		"level", st.Level,
		"score", st.Score,
		"moves", st.Moves,
		"cleared", st.LevelCleared,
	)

	if st.Level == levels.EndlessLevel || !st.LevelCleared {
		return
	}

	p := r.Progress()
	c, err := p.Complete(r.catalog, levels.Result{
		Level:   st.Level,
		Score:   st.Score,
		Moves:   st.Moves,
		Elapsed: st.Elapsed,
	})
	if err != nil {
		r.logger.Warn("could not record completion", "level", st.Level, "error", err)
		return
	}
	if c.Unlocked > 0 {
		p.Current = c.Unlocked
		r.logger.Info("level unlocked", "profile", r.profile, "level", c.Unlocked)
	}
	r.SaveProgress(p)
}

// FromRecord converts a stored record to progress.
func FromRecord(rec storage.ProgressRecord) levels.Progress {
	return levels.Progress{
		Current:   rec.Current,
		Unlocked:  rec.Unlocked,
		Completed: append([]int(nil), rec.Completed...),
	}
}

// ToRecord converts progress to a stored record for profile.
func ToRecord(profile string, p levels.Progress) storage.ProgressRecord {
	return storage.ProgressRecord{
		Profile:   profile,
		Current:   p.Current,
		Unlocked:  p.Unlocked,
		Completed: append([]int(nil), p.Completed...),
	}
}
