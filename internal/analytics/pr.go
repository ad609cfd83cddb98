package analytics

import (
	"math"
	"sort"
	"strconv"

	"github.com/claude/repscope/internal/models"
)

// TopN bounds for the PR reports.
const (
	MinTopN     = 1
	MaxTopN     = 20
	DefaultTopN = 8
)

// MaxWeightRecord is the best observed weight for one exercise.
type MaxWeightRecord struct {
	ExerciseID   int64   `json:"exercise_id"`
	ExerciseName string  `json:"exercise_name"`
	MaxWeight    float64 `json:"max_weight"`
}

// OneRepMaxRecord is the best estimated one-rep max for one exercise.
type OneRepMaxRecord struct {
	ExerciseID   int64   `json:"exercise_id"`
	ExerciseName string  `json:"exercise_name"`
	Best1RM      float64 `json:"best_1rm"`
}

// EpleyOneRepMax estimates the single-rep maximal weight from a multi-rep
// set: weight × (1 + reps/30).
func EpleyOneRepMax(weightKg float64, reps int) float64 {
	return weightKg * (1 + float64(reps)/30)
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// exerciseDisplayName resolves a set's exercise name, falling back to the
// stringified exercise id when the reference does not resolve.
func exerciseDisplayName(s models.Set) string {
	if s.Exercise != nil {
		return s.Exercise.Name
	}
	return strconv.FormatInt(s.ExerciseID, 10)
}

// clampTopN forces topN into [MinTopN, MaxTopN].
func clampTopN(topN int) int {
	if topN < MinTopN {
		return MinTopN
	}
	if topN > MaxTopN {
		return MaxTopN
	}
	return topN
}

// MaxWeights reports, per exercise, the single heaviest observed weight,
// sorted descending and truncated to topN. Sets with weight ≤ 0 are ignored.
// Ties keep the order in which exercises first appear in the data.
func MaxWeights(workouts []models.Workout, topN int) []MaxWeightRecord {
	topN = clampTopN(topN)

	best := make(map[int64]*MaxWeightRecord)
	var order []int64

	for _, w := range workouts {
		for _, s := range w.Sets {
			if s.WeightKg <= 0 {
				continue
			}
			rec, ok := best[s.ExerciseID]
			if !ok {
				best[s.ExerciseID] = &MaxWeightRecord{
					ExerciseID:   s.ExerciseID,
					ExerciseName: exerciseDisplayName(s),
					MaxWeight:    round2(s.WeightKg),
				}
				order = append(order, s.ExerciseID)
				continue
			}
			if s.WeightKg > rec.MaxWeight {
				rec.MaxWeight = round2(s.WeightKg)
			}
		}
	}

	out := make([]MaxWeightRecord, 0, len(order))
	for _, id := range order {
		out = append(out, *best[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MaxWeight > out[j].MaxWeight })
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// EstimatedOneRepMaxes reports, per exercise, the best estimated one-rep max
// (Epley), sorted descending and truncated to topN. Sets with weight ≤ 0 or
// reps ≤ 0 are ignored.
func EstimatedOneRepMaxes(workouts []models.Workout, topN int) []OneRepMaxRecord {
	topN = clampTopN(topN)

	best := make(map[int64]*OneRepMaxRecord)
	var order []int64

	for _, w := range workouts {
		for _, s := range w.Sets {
			if s.WeightKg <= 0 || s.Reps <= 0 {
				continue
			}
			est := round2(EpleyOneRepMax(s.WeightKg, s.Reps))
			rec, ok := best[s.ExerciseID]
			if !ok {
				best[s.ExerciseID] = &OneRepMaxRecord{
					ExerciseID:   s.ExerciseID,
					ExerciseName: exerciseDisplayName(s),
					Best1RM:      est,
				}
				order = append(order, s.ExerciseID)
				continue
			}
			if est > rec.Best1RM {
				rec.Best1RM = est
			}
		}
	}

	out := make([]OneRepMaxRecord, 0, len(order))
	for _, id := range order {
		out = append(out, *best[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Best1RM > out[j].Best1RM })
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
