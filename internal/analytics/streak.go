package analytics

import (
	"context"
	"time"

	"github.com/claude/repscope/internal/models"
)

// presenceStreakCap bounds the backward walk of the presence streak so a
// long unbroken history can never turn one stats call into an unbounded scan.
const presenceStreakCap = 52

// SessionsPerWeek counts workouts per week bucket, keyed by the week's Monday
// in date form.
func SessionsPerWeek(workouts []models.Workout) map[string]int {
	perWeek := make(map[string]int)
	for _, w := range workouts {
		perWeek[WeekStart(w.Date).Format(models.DateOnly)]++
	}
	return perWeek
}

// ThresholdStreak counts consecutive weeks with at least `threshold` sessions,
// walking backward one week at a time from `lastCompleted` (the Monday of the
// most recently completed week). The walk stops at the first week below
// threshold, so a single light week resets the streak regardless of what came
// before it. The in-progress week is the caller's to exclude.
func ThresholdStreak(perWeek map[string]int, lastCompleted time.Time, threshold int) int {
	streak := 0
	wk := lastCompleted
	for perWeek[wk.Format(models.DateOnly)] >= threshold {
		streak++
		wk = wk.AddDate(0, 0, -7)
	}
	return streak
}

// PresenceStreak counts consecutive weeks with at least one workout, walking
// backward from the week starting at `weekStart` (inclusive). The walk is
// capped at 52 weeks.
func PresenceStreak(ctx context.Context, store Store, userID int64, weekStart time.Time) (int, error) {
	streak := 0
	checkStart := weekStart
	for i := 0; i < presenceStreakCap; i++ {
		count, err := store.CountWorkouts(ctx, userID, checkStart, checkStart.AddDate(0, 0, 6))
		if err != nil {
			return 0, err
		}
		if count == 0 {
			break
		}
		streak++
		checkStart = checkStart.AddDate(0, 0, -7)
	}
	return streak, nil
}
