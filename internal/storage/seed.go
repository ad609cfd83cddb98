package storage

import (
	"context"
	"fmt"
	"time"
)

// Insert helpers for the seed command. The serving path never mutates
// training data; these exist so a dev database has something to chart.

// InsertUser creates a user and returns its id. Existing emails are reused.
// The password hash placeholder cannot log in; credentials belong to the
// external auth service.
func (db *DB) InsertUser(ctx context.Context, email, name string) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, '!seed', $2)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, email, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	return id, nil
}

// InsertExercise creates a global exercise (user_id NULL) and returns its id.
func (db *DB) InsertExercise(ctx context.Context, name string, muscles []string) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO exercises (user_id, name, muscles, is_custom)
		VALUES (NULL, $1, $2, false)
		RETURNING id`, name, muscles).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise: %w", err)
	}
	return id, nil
}

// InsertWorkout creates a workout and returns its id.
func (db *DB) InsertWorkout(ctx context.Context, userID int64, date time.Time, title string) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO workouts (user_id, date, title)
		VALUES ($1, $2, $3)
		RETURNING id`, userID, date, title).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting workout: %w", err)
	}
	return id, nil
}

// InsertSet creates one set row for a workout.
func (db *DB) InsertSet(ctx context.Context, workoutID, exerciseID int64, setIndex, reps int, weightKg float64) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO sets (workout_id, exercise_id, set_index, reps, weight_kg)
		VALUES ($1, $2, $3, $4, $5)`, workoutID, exerciseID, setIndex, reps, weightKg)
	if err != nil {
		return fmt.Errorf("inserting set: %w", err)
	}
	return nil
}
