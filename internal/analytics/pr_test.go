package analytics

import (
	"testing"
	"time"

	"github.com/claude/repscope/internal/models"
)

// TestMaxWeights_KeepsMaxPerExercise verifies per-exercise max retention and
// descending order across exercises.
func TestMaxWeights_KeepsMaxPerExercise(t *testing.T) {
	bench := exercise(1, "Bench Press", "chest")
	squat := exercise(2, "Squat", "legs")
	workouts := []models.Workout{
		{Date: date(2026, time.August, 3), Sets: []models.Set{set(bench, 5, 100), set(squat, 5, 140)}},
		{Date: date(2026, time.August, 10), Sets: []models.Set{set(bench, 3, 110), set(squat, 3, 135)}},
	}

	got := MaxWeights(workouts, 8)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ExerciseID != 2 || got[0].MaxWeight != 140 {
		t.Errorf("got[0] = %+v, want squat at 140", got[0])
	}
	if got[1].ExerciseID != 1 || got[1].MaxWeight != 110 {
		t.Errorf("got[1] = %+v, want bench at 110", got[1])
	}
}

// TestMaxWeights_IgnoresNonPositiveWeight verifies that zero and negative
// weights never produce a record.
func TestMaxWeights_IgnoresNonPositiveWeight(t *testing.T) {
	pushup := exercise(3, "Push-Up")
	workouts := []models.Workout{
		{Date: date(2026, time.August, 3), Sets: []models.Set{set(pushup, 20, 0), set(pushup, 10, -5)}},
	}

	if got := MaxWeights(workouts, 8); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

// TestMaxWeights_TopNTruncation verifies descending truncation to topN.
func TestMaxWeights_TopNTruncation(t *testing.T) {
	var workouts []models.Workout
	w := models.Workout{Date: date(2026, time.August, 3)}
	for i := int64(1); i <= 5; i++ {
		ex := exercise(i, "Lift")
		w.Sets = append(w.Sets, set(ex, 5, float64(50+i*10)))
	}
	workouts = append(workouts, w)

	got := MaxWeights(workouts, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].MaxWeight != 100 || got[2].MaxWeight != 80 {
		t.Errorf("got = %v, want 100, 90, 80", got)
	}
}

// TestMaxWeights_NameFallsBackToID verifies that an unresolvable exercise
// reference yields the stringified id as the display name.
func TestMaxWeights_NameFallsBackToID(t *testing.T) {
	workouts := []models.Workout{
		{Date: date(2026, time.August, 3), Sets: []models.Set{{ExerciseID: 42, Reps: 5, WeightKg: 60}}},
	}

	got := MaxWeights(workouts, 8)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ExerciseName != "42" {
		t.Errorf("ExerciseName = %q, want \"42\"", got[0].ExerciseName)
	}
}

// TestEpleyOneRepMax verifies the Epley estimate against hand-computed
// values, including the 5x100 -> 116.67 reference case.
func TestEpleyOneRepMax(t *testing.T) {
	cases := []struct {
		weight float64
		reps   int
		want   float64
	}{
		{100, 5, 116.67},
		{100, 1, 103.33},
		{60, 10, 80},
		{120, 3, 132},
	}
	for _, tc := range cases {
		got := round2(EpleyOneRepMax(tc.weight, tc.reps))
		if got != tc.want {
			t.Errorf("EpleyOneRepMax(%v, %d) = %v, want %v", tc.weight, tc.reps, got, tc.want)
		}
	}
}

// TestEstimatedOneRepMaxes_BestPerExercise verifies that the highest estimate
// wins even when it comes from a lighter, higher-rep set.
func TestEstimatedOneRepMaxes_BestPerExercise(t *testing.T) {
	bench := exercise(1, "Bench Press", "chest")
	workouts := []models.Workout{
		{Date: date(2026, time.August, 3), Sets: []models.Set{
			set(bench, 1, 110), // est 113.67
			set(bench, 8, 100), // est 126.67
		}},
	}

	got := EstimatedOneRepMaxes(workouts, 8)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Best1RM != 126.67 {
		t.Errorf("Best1RM = %v, want 126.67", got[0].Best1RM)
	}
}

// TestEstimatedOneRepMaxes_IgnoresInvalidSets verifies that sets with
// non-positive weight or reps are skipped.
func TestEstimatedOneRepMaxes_IgnoresInvalidSets(t *testing.T) {
	bench := exercise(1, "Bench Press")
	workouts := []models.Workout{
		{Date: date(2026, time.August, 3), Sets: []models.Set{
			set(bench, 0, 100),
			set(bench, 5, 0),
			set(bench, -2, 80),
		}},
	}

	if got := EstimatedOneRepMaxes(workouts, 8); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

// TestPRReports_ClampTopN verifies that out-of-range topN values are forced
// into [1, 20].
func TestPRReports_ClampTopN(t *testing.T) {
	w := models.Workout{Date: date(2026, time.August, 3)}
	for i := int64(1); i <= 4; i++ {
		w.Sets = append(w.Sets, set(exercise(i, "Lift"), 5, float64(100+i)))
	}
	workouts := []models.Workout{w}

	if got := MaxWeights(workouts, 0); len(got) != 1 {
		t.Errorf("topN=0: len = %d, want 1", len(got))
	}
	if got := EstimatedOneRepMaxes(workouts, -3); len(got) != 1 {
		t.Errorf("topN=-3: len = %d, want 1", len(got))
	}
	if got := MaxWeights(workouts, 500); len(got) != 4 {
		t.Errorf("topN=500: len = %d, want all 4", len(got))
	}
}
