package levels

import "fmt"

// MaxStars is the highest rating a level result can earn.
const MaxStars = 5

// Result is the outcome of one playthrough of a level.
type Result struct {
	Level   int
	Score   int
	Moves   int
	Elapsed int // Seconds
}

// Stars rates a result from 0 to MaxStars. One star each for reaching the
// target, 1.5x the target and 2x the target, one for finishing within 70% of
// the time limit and one for using at most 80% of the expected moves
// (two per cell). The endless level is never rated.
func Stars(lvl Level, r Result) int {
	if lvl.IsEndless() {
		return 0
	}

	stars := 0
	target := float64(lvl.TargetScore)
	score := float64(r.Score)

	if score >= target {
		stars++
	}
	if score >= target*1.5 {
		stars++
	}
	if score >= target*2 {
		stars++
	}
	if lvl.Timed() && float64(r.Elapsed) <= float64(lvl.TimeLimit)*0.7 {
		stars++
	}
	expectedMoves := float64(lvl.Cells() * 2)
	if float64(r.Moves) <= expectedMoves*0.8 {
		stars++
	}

	return min(stars, MaxStars)
}

// Perfect reports a result with at least twice the target, inside half the
// time limit and within 1.5 moves per cell.
func Perfect(lvl Level, r Result) bool {
	if lvl.IsEndless() {
		return false
	}
	inTime := !lvl.Timed() || float64(r.Elapsed) <= float64(lvl.TimeLimit)*0.5
	return r.Score >= lvl.TargetScore*2 &&
		inTime &&
		float64(r.Moves) <= float64(lvl.Cells())*1.5
}

// Cleared reports whether a result passes the level: target reached within
// the time limit, with at least one move made.
func Cleared(lvl Level, r Result) bool {
	if lvl.IsEndless() {
		return false
	}
	inTime := !lvl.Timed() || r.Elapsed <= lvl.TimeLimit
	return r.Score >= lvl.TargetScore && inTime && r.Moves > 0
}

// FormatTime renders seconds as mm:ss. Negative values render as 00:00.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Remaining returns the seconds left on a timed level, or -1 if untimed.
func Remaining(lvl Level, elapsed int) int {
	if !lvl.Timed() {
		return -1
	}
	return max(0, lvl.TimeLimit-elapsed)
}
