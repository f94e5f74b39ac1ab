package levels

import (
	"fmt"
	"math"
	"slices"
)

// Progress tracks which campaign levels a player has unlocked and completed.
// Level 1 is always unlocked; the endless level is always playable.
type Progress struct {
	Current   int   // Level the player last selected
	Unlocked  int   // Highest unlocked level
	Completed []int // Completed levels, ascending
}

// Completion describes a recorded result.
type Completion struct {
	Result
	Stars    int
	Perfect  bool
	Cleared  bool
	Unlocked int // Level newly unlocked by this result, 0 if none
}

// Summary is an overview of campaign progress.
type Summary struct {
	Total      int
	Completed  int
	Unlocked   int
	Current    int
	Percentage int
}

// NewProgress returns progress for a new player.
func NewProgress() Progress {
	return Progress{Current: 1, Unlocked: 1}
}

// Normalize repairs progress loaded from storage so it fits cat.
func (p *Progress) Normalize(cat *Catalog) {
	total := cat.Count()
	p.Unlocked = clampLevel(p.Unlocked, total)
	p.Current = clampLevel(p.Current, total)

	completed := p.Completed[:0]
	for _, n := range p.Completed {
		if n >= 1 && n <= total {
			completed = append(completed, n)
		}
	}
	slices.Sort(completed)
	p.Completed = slices.Compact(completed)
}

func clampLevel(n, total int) int {
	return max(1, min(n, max(total, 1)))
}

// IsUnlocked reports whether level n can be played.
func (p *Progress) IsUnlocked(n int) bool {
	return n == EndlessLevel || (n >= 1 && n <= p.Unlocked)
}

// IsCompleted reports whether level n was completed.
func (p *Progress) IsCompleted(n int) bool {
	_, found := slices.BinarySearch(p.Completed, n)
	return found
}

// Unlock opens level n if it exists and directly follows an unlocked level.
func (p *Progress) Unlock(cat *Catalog, n int) bool {
	if n < 1 || n > cat.Count() || n > p.Unlocked+1 {
		return false
	}
	p.Unlocked = max(p.Unlocked, n)
	return true
}

// Complete records a result for a campaign level: the level is marked
// completed and, if the target score was reached, the next level unlocks.
func (p *Progress) Complete(cat *Catalog, r Result) (Completion, error) {
	if r.Level == EndlessLevel {
		return Completion{}, fmt.Errorf("%w: endless level has no completion", ErrUnknownLevel)
	}
	lvl, err := cat.Get(r.Level)
	if err != nil {
		return Completion{}, err
	}

	if !p.IsCompleted(r.Level) {
		i, _ := slices.BinarySearch(p.Completed, r.Level)
		p.Completed = slices.Insert(p.Completed, i, r.Level)
	}

	c := Completion{
		Result:  r,
		Stars:   Stars(lvl, r),
		Perfect: Perfect(lvl, r),
		Cleared: Cleared(lvl, r),
	}
	if r.Score >= lvl.TargetScore {
		before := p.Unlocked
		if p.Unlock(cat, r.Level+1) && p.Unlocked > before {
			c.Unlocked = p.Unlocked
		}
	}
	return c, nil
}

// Select makes n the current level if it is unlocked.
func (p *Progress) Select(cat *Catalog, n int) error {
	if n == EndlessLevel {
		return nil
	}
	if _, err := cat.Get(n); err != nil {
		return err
	}
	if !p.IsUnlocked(n) {
		return fmt.Errorf("levels: level %d is locked", n)
	}
	p.Current = n
	return nil
}

// Advance moves to the level after Current if it exists and is unlocked.
func (p *Progress) Advance(cat *Catalog) (int, bool) {
	next := p.Current + 1
	if next > cat.Count() || !p.IsUnlocked(next) {
		return 0, false
	}
	p.Current = next
	return next, true
}

// Recommended returns the highest unlocked level not yet completed, falling
// back to the first level.
func (p *Progress) Recommended(cat *Catalog) int {
	for n := min(p.Unlocked, cat.Count()); n >= 1; n-- {
		if !p.IsCompleted(n) {
			return n
		}
	}
	if p.Unlocked < cat.Count() {
		return p.Unlocked + 1
	}
	return 1
}

// Reset returns progress to a new player's state.
func (p *Progress) Reset() {
	*p = NewProgress()
}

// Summary reports how far through the campaign the player is.
func (p *Progress) Summary(cat *Catalog) Summary {
	total := cat.Count()
	s := Summary{
		Total:     total,
		Completed: len(p.Completed),
		Unlocked:  p.Unlocked,
		Current:   p.Current,
	}
	if total > 0 {
		s.Percentage = int(math.Round(float64(s.Completed) / float64(total) * 100))
	}
	return s
}
