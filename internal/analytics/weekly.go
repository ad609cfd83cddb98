package analytics

import (
	"context"
	"time"

	"github.com/claude/repscope/internal/models"
)

// Store is the read contract the engine consumes. The engine never mutates
// training data; both methods are snapshot reads over a bounded date window.
type Store interface {
	// FetchWorkouts returns a user's workouts with date in [start, end],
	// ordered by date ascending, each with its sets and each set's resolved
	// exercise.
	FetchWorkouts(ctx context.Context, userID int64, start, end time.Time) ([]models.Workout, error)
	// CountWorkouts returns the number of workouts with date in [start, end].
	CountWorkouts(ctx context.Context, userID int64, start, end time.Time) (int, error)
}

// Composer bounds.
const (
	DefaultLookbackWeeks = 4

	MinThreshold     = 1
	MaxThreshold     = 14
	DefaultThreshold = 3

	MinStreakWeeks     = 4
	MaxStreakWeeks     = 104
	DefaultStreakWeeks = 26
)

// WeeklyStats is the composed weekly analytics object. Field names are fixed
// for interface compatibility with the consuming app and the recap mailer.
type WeeklyStats struct {
	WeekStart    string                 `json:"week_start"`
	WeekEnd      string                 `json:"week_end"`
	Workouts     int                    `json:"workouts"`
	DaysTrained  int                    `json:"days_trained"`
	TotalSets    int                    `json:"total_sets"`
	TotalVolume  float64                `json:"total_volume"`
	VolumeChange float64                `json:"volume_change_vs_last_week"`
	HeaviestSets []HeavySet             `json:"heaviest_sets"`
	PerGroup     map[Group]*GroupTotals `json:"per_group"`
	HitGroups    []Group                `json:"hit_groups"`
	MissedGroups []Group                `json:"missed_groups"`
	UsualGroups  []Group                `json:"usual_groups"`
	ExtraGroups  []Group                `json:"extra_groups"`
	StreakWeeks  int                    `json:"streak_weeks"`
}

// ComputeWeeklyStats builds the weekly stats object for the week starting at
// weekStart (a Monday): current-week aggregate, volume change vs the previous
// week, presence streak ending at weekStart, and the muscle-balance diff
// against the preceding lookback window.
//
// lookbackWeeks ≤ 0 falls back to DefaultLookbackWeeks.
func ComputeWeeklyStats(ctx context.Context, store Store, userID int64, weekStart time.Time, lookbackWeeks int) (*WeeklyStats, error) {
	if lookbackWeeks <= 0 {
		lookbackWeeks = DefaultLookbackWeeks
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	workouts, err := store.FetchWorkouts(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	agg := AggregateWindow(workouts)

	// Trend vs the previous week.
	prevStart := weekStart.AddDate(0, 0, -7)
	prevWorkouts, err := store.FetchWorkouts(ctx, userID, prevStart, prevStart.AddDate(0, 0, 6))
	if err != nil {
		return nil, err
	}
	var prevVolume float64
	for _, w := range prevWorkouts {
		prevVolume += WorkoutVolume(w)
	}

	streak, err := PresenceStreak(ctx, store, userID, weekStart)
	if err != nil {
		return nil, err
	}

	// Groups usually trained in the lookback window immediately before this
	// week, compared against the groups actually hit this week.
	lbStart := weekStart.AddDate(0, 0, -7*lookbackWeeks)
	histWorkouts, err := store.FetchWorkouts(ctx, userID, lbStart, weekStart.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	usual := AggregateWindow(histWorkouts).HitGroups()
	hit := agg.HitGroups()

	return &WeeklyStats{
		WeekStart:    weekStart.Format(models.DateOnly),
		WeekEnd:      weekEnd.Format(models.DateOnly),
		Workouts:     agg.Workouts,
		DaysTrained:  agg.DaysTrained,
		TotalSets:    agg.TotalSets,
		TotalVolume:  round2(agg.TotalVolume),
		VolumeChange: round2(agg.TotalVolume - prevVolume),
		HeaviestSets: agg.Heaviest,
		PerGroup:     agg.PerGroup,
		HitGroups:    hit,
		MissedGroups: diffGroups(usual, hit),
		UsualGroups:  usual,
		ExtraGroups:  diffGroups(hit, usual),
		StreakWeeks:  streak,
	}, nil
}

// diffGroups returns the groups in a that are not in b, preserving a's order.
func diffGroups(a, b []Group) []Group {
	in := make(map[Group]bool, len(b))
	for _, g := range b {
		in[g] = true
	}
	out := make([]Group, 0, len(a))
	for _, g := range a {
		if !in[g] {
			out = append(out, g)
		}
	}
	return out
}

// DashboardStats is the response of the dashboard stats endpoint.
type DashboardStats struct {
	LastWorkoutDate        *string `json:"last_workout_date"`
	ThisWeekStart          string  `json:"this_week_start"`
	LastCompletedWeekStart string  `json:"last_completed_week_start"`
	CurrentWeekCount       int     `json:"current_week_count"`
	LastWeekCount          int     `json:"last_week_count"`
	Threshold              int     `json:"threshold"`
	StreakWeeks            int     `json:"streak_weeks"`
}

// ComputeDashboardStats builds the dashboard stats object as of `today`: the
// last workout date inside the lookback window, current and previous week
// session counts, and the threshold streak over completed weeks. The current,
// in-progress week never counts toward the streak.
func ComputeDashboardStats(ctx context.Context, store Store, userID int64, today time.Time, threshold, weeks int) (*DashboardStats, error) {
	thisMonday := WeekStart(today)
	lastCompleted := thisMonday.AddDate(0, 0, -7)
	startRange := thisMonday.AddDate(0, 0, -7*(weeks-1))
	endRange := thisMonday.AddDate(0, 0, 6)

	workouts, err := store.FetchWorkouts(ctx, userID, startRange, endRange)
	if err != nil {
		return nil, err
	}

	var lastWorkoutDate *string
	for _, w := range workouts {
		d := w.Date.Format(models.DateOnly)
		if lastWorkoutDate == nil || d > *lastWorkoutDate {
			lastWorkoutDate = &d
		}
	}

	perWeek := SessionsPerWeek(workouts)

	return &DashboardStats{
		LastWorkoutDate:        lastWorkoutDate,
		ThisWeekStart:          thisMonday.Format(models.DateOnly),
		LastCompletedWeekStart: lastCompleted.Format(models.DateOnly),
		CurrentWeekCount:       perWeek[thisMonday.Format(models.DateOnly)],
		LastWeekCount:          perWeek[lastCompleted.Format(models.DateOnly)],
		Threshold:              threshold,
		StreakWeeks:            ThresholdStreak(perWeek, lastCompleted, threshold),
	}, nil
}
