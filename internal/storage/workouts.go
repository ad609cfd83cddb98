package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/repscope/internal/models"
)

// wideStart/wideEnd bound "all time" reads. The schema stores calendar dates,
// so a generous fixed range is equivalent to no filter.
var (
	wideStart = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	wideEnd   = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// FetchWorkouts returns a user's workouts with date in [start, end], ordered
// by date ascending, each with its sets in set_index order and each set's
// exercise joined. Exercises are visible when global (no owner) or owned by
// the same user; a set whose exercise reference does not resolve keeps a nil
// Exercise so callers can fall back to the id.
func (db *DB) FetchWorkouts(ctx context.Context, userID int64, start, end time.Time) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, date, title, notes
		 FROM workouts
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date ASC, id ASC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var workouts []models.Workout
	var ids []int64
	index := make(map[int64]int)

	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.Title, &w.Notes); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		w.Sets = []models.Set{}
		index[w.ID] = len(workouts)
		workouts = append(workouts, w)
		ids = append(ids, w.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return workouts, nil
	}

	setRows, err := db.Pool.Query(ctx,
		`SELECT s.id, s.workout_id, s.exercise_id, s.set_index,
		        COALESCE(s.reps, 0), COALESCE(s.weight_kg, 0),
		        s.rpe, s.duration_s, s.distance_m, s.notes,
		        e.id, e.user_id, e.name, COALESCE(e.muscles, '{}'), e.is_custom
		 FROM sets s
		 LEFT JOIN exercises e
		   ON e.id = s.exercise_id AND (e.user_id IS NULL OR e.user_id = $2)
		 WHERE s.workout_id = ANY($1)
		 ORDER BY s.workout_id ASC, s.set_index ASC, s.id ASC`,
		ids, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var s models.Set
		var exID *int64
		var exUserID *int64
		var exName *string
		var exMuscles []string
		var exIsCustom *bool
		if err := setRows.Scan(&s.ID, &s.WorkoutID, &s.ExerciseID, &s.SetIndex,
			&s.Reps, &s.WeightKg,
			&s.RPE, &s.DurationS, &s.DistanceM, &s.Notes,
			&exID, &exUserID, &exName, &exMuscles, &exIsCustom); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		if exID != nil {
			s.Exercise = &models.Exercise{
				ID:       *exID,
				UserID:   exUserID,
				Name:     *exName,
				Muscles:  exMuscles,
				IsCustom: *exIsCustom,
			}
		}
		if i, ok := index[s.WorkoutID]; ok {
			workouts[i].Sets = append(workouts[i].Sets, s)
		}
	}
	return workouts, setRows.Err()
}

// FetchAllWorkouts returns every workout a user has ever logged, used by the
// all-time PR reports.
func (db *DB) FetchAllWorkouts(ctx context.Context, userID int64) ([]models.Workout, error) {
	return db.FetchWorkouts(ctx, userID, wideStart, wideEnd)
}

// CountWorkouts returns the number of workouts with date in [start, end].
func (db *DB) CountWorkouts(ctx context.Context, userID int64, start, end time.Time) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1 AND date >= $2 AND date <= $3`,
		userID, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting workouts: %w", err)
	}
	return count, nil
}
