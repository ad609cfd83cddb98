package analytics

import (
	"sort"
	"time"

	"github.com/claude/repscope/internal/models"
)

// Series bounds.
const (
	MinSeriesWeeks     = 1
	MaxSeriesWeeks     = 52
	DefaultSeriesWeeks = 10

	MinSeriesDays     = 1
	MaxSeriesDays     = 180
	DefaultSeriesDays = 30
)

// WeekStart returns the Monday of the week containing d, at midnight in d's
// location. Weeks are ISO weeks: Monday through Sunday.
func WeekStart(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday of the week containing d.
func WeekEnd(d time.Time) time.Time {
	return WeekStart(d).AddDate(0, 0, 6)
}

// DailyPoint is one day of a daily volume series.
type DailyPoint struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
}

// WeeklyPoint is one week of a weekly volume series, identified by its Monday.
type WeeklyPoint struct {
	WeekStart string  `json:"week_start"`
	Volume    float64 `json:"volume"`
}

// DailyVolume builds a continuous daily series of exactly `days` points
// ending at (and including) `end`. Every day is seeded with zero volume
// before any workout is applied, so sparse data still yields a gap-free
// series. Workouts outside the range are ignored.
func DailyVolume(workouts []models.Workout, end time.Time, days int) []DailyPoint {
	start := end.AddDate(0, 0, -(days - 1))

	dayMap := make(map[string]float64, days)
	for i := 0; i < days; i++ {
		dayMap[start.AddDate(0, 0, i).Format(models.DateOnly)] = 0
	}

	for _, w := range workouts {
		key := w.Date.Format(models.DateOnly)
		if _, ok := dayMap[key]; !ok {
			continue
		}
		dayMap[key] += WorkoutVolume(w)
	}

	keys := make([]string, 0, len(dayMap))
	for k := range dayMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]DailyPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, DailyPoint{Date: k, Volume: dayMap[k]})
	}
	return points
}

// WeeklyVolume builds a continuous weekly series of exactly `weeks` points
// ending at (and including) the week of `thisMonday`. Each workout is added
// to the bucket of its own week's Monday; multiple workouts in one week sum.
func WeeklyVolume(workouts []models.Workout, thisMonday time.Time, weeks int) []WeeklyPoint {
	start := thisMonday.AddDate(0, 0, -7*(weeks-1))

	weekMap := make(map[string]float64, weeks)
	for i := 0; i < weeks; i++ {
		weekMap[start.AddDate(0, 0, 7*i).Format(models.DateOnly)] = 0
	}

	for _, w := range workouts {
		key := WeekStart(w.Date).Format(models.DateOnly)
		if _, ok := weekMap[key]; !ok {
			continue
		}
		weekMap[key] += WorkoutVolume(w)
	}

	keys := make([]string, 0, len(weekMap))
	for k := range weekMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]WeeklyPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, WeeklyPoint{WeekStart: k, Volume: weekMap[k]})
	}
	return points
}
