package models

import "time"

// DateOnly is the wire format for calendar dates. Workout dates carry no time
// component; all date fields are midnight UTC internally.
const DateOnly = "2006-01-02"

// User is a registered account, as stored by the external identity/CRUD layer.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Exercise is an exercise definition. UserID nil means the exercise is global;
// otherwise it is visible only to its owner.
type Exercise struct {
	ID       int64    `json:"id"`
	UserID   *int64   `json:"user_id,omitempty"`
	Name     string   `json:"name"`
	Muscles  []string `json:"muscles"`
	IsCustom bool     `json:"is_custom"`
}

// Set is a single logged set within a workout. Reps and WeightKg default to
// zero when the source row has no value. Exercise is the joined exercise
// definition and may be nil when the reference does not resolve.
type Set struct {
	ID         int64     `json:"id"`
	WorkoutID  int64     `json:"workout_id"`
	ExerciseID int64     `json:"exercise_id"`
	SetIndex   int       `json:"set_index"`
	Reps       int       `json:"reps"`
	WeightKg   float64   `json:"weight_kg"`
	RPE        *float64  `json:"rpe,omitempty"`
	DurationS  *float64  `json:"duration_s,omitempty"`
	DistanceM  *float64  `json:"distance_m,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	Exercise   *Exercise `json:"exercise,omitempty"`
}

// Workout is one logged training session on a calendar date.
type Workout struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"user_id"`
	Date   time.Time `json:"date"`
	Title  *string   `json:"title,omitempty"`
	Notes  *string   `json:"notes,omitempty"`
	Sets   []Set     `json:"sets"`
}
