package analytics

import (
	"sort"

	"github.com/claude/repscope/internal/models"
)

// GroupTotals accumulates volume and set count for one canonical group.
type GroupTotals struct {
	Volume float64 `json:"volume"`
	Sets   int     `json:"sets"`
}

// HeavySet is one entry of the heaviest-sets report.
type HeavySet struct {
	ExerciseName string  `json:"exercise_name"`
	WeightKg     float64 `json:"weight_kg"`
	Reps         int     `json:"reps"`
	Date         string  `json:"date"`
}

// Aggregate is the reduction of a window of workouts: overall totals,
// per-group buckets, and the top heaviest sets.
type Aggregate struct {
	Workouts    int
	DaysTrained int
	TotalSets   int
	TotalVolume float64
	PerGroup    map[Group]*GroupTotals
	Heaviest    []HeavySet
}

// maxHeaviest is how many heaviest sets an aggregate reports.
const maxHeaviest = 3

// SetVolume is the volume contribution of a single set. Missing reps or
// weight have already been normalized to zero, so the product is always
// defined and zero-weight sets simply contribute nothing.
func SetVolume(s models.Set) float64 {
	return float64(s.Reps) * s.WeightKg
}

// WorkoutVolume sums the volume of all sets in a workout.
func WorkoutVolume(w models.Workout) float64 {
	var total float64
	for _, s := range w.Sets {
		total += SetVolume(s)
	}
	return total
}

// AggregateWindow reduces a window of workouts into totals, per-group buckets
// and the heaviest-sets report.
//
// Group attribution: every muscle tag of the set's exercise that resolves to
// a canonical group adds the set's volume and a +1 count to that group, so a
// set with several distinct resolvable tags lands in several buckets. Only
// when no tag resolves is the exercise name heuristic consulted, and it
// attributes to at most one group. The asymmetry is deliberate reference
// behavior.
func AggregateWindow(workouts []models.Workout) *Aggregate {
	agg := &Aggregate{PerGroup: make(map[Group]*GroupTotals, len(Groups))}
	for _, g := range Groups {
		agg.PerGroup[g] = &GroupTotals{}
	}

	days := make(map[string]struct{})
	heaviest := make([]HeavySet, 0)

	for _, w := range workouts {
		agg.Workouts++
		days[w.Date.Format(models.DateOnly)] = struct{}{}

		for _, s := range w.Sets {
			agg.TotalSets++
			vol := SetVolume(s)
			agg.TotalVolume += vol

			tagged := false
			if s.Exercise != nil {
				for _, m := range s.Exercise.Muscles {
					if g, ok := Canonicalize(m); ok {
						agg.PerGroup[g].Volume += vol
						agg.PerGroup[g].Sets++
						tagged = true
					}
				}
			}
			if !tagged && s.Exercise != nil {
				if g, ok := NameFallback(s.Exercise.Name); ok {
					agg.PerGroup[g].Volume += vol
					agg.PerGroup[g].Sets++
				}
			}

			if s.WeightKg > 0 {
				heaviest = append(heaviest, HeavySet{
					ExerciseName: exerciseDisplayName(s),
					WeightKg:     s.WeightKg,
					Reps:         s.Reps,
					Date:         w.Date.Format(models.DateOnly),
				})
			}
		}
	}

	agg.DaysTrained = len(days)

	sort.SliceStable(heaviest, func(i, j int) bool {
		if heaviest[i].WeightKg != heaviest[j].WeightKg {
			return heaviest[i].WeightKg > heaviest[j].WeightKg
		}
		return heaviest[i].Reps > heaviest[j].Reps
	})
	if len(heaviest) > maxHeaviest {
		heaviest = heaviest[:maxHeaviest]
	}
	agg.Heaviest = heaviest

	return agg
}

// HitGroups returns the groups with at least one attributed set, in canonical
// order.
func (a *Aggregate) HitGroups() []Group {
	hit := make([]Group, 0, len(Groups))
	for _, g := range Groups {
		if a.PerGroup[g].Sets > 0 {
			hit = append(hit, g)
		}
	}
	return hit
}
