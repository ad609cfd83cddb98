package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/claude/repscope/internal/analytics"
	"github.com/claude/repscope/internal/config"
	"github.com/claude/repscope/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// catalog is the global exercise set the demo data draws from. Tags are a mix
// of canonical groups and common synonyms so the fallback paths get exercised.
var catalog = []struct {
	name    string
	muscles []string
}{
	{"Bench Press", []string{"chest", "triceps"}},
	{"Incline Dumbbell Press", []string{"chest", "shoulders"}},
	{"Barbell Row", []string{"back", "biceps"}},
	{"Lat Pulldown", []string{"lats", "biceps"}},
	{"Back Squat", []string{"quads", "glutes"}},
	{"Romanian Deadlift", []string{"hamstrings", "glutes"}},
	{"Overhead Press", []string{"delts", "triceps"}},
	{"Barbell Curl", []string{"biceps"}},
	{"Plank", []string{"abs"}},
	{"Deadlift", nil}, // no tags: exercised via name fallback
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	users := flag.Int("users", 2, "number of demo users to create")
	weeks := flag.Int("weeks", 12, "weeks of training history per user")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("RepScope seeder starting", "version", Version, "users", *users, "weeks", *weeks)

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	exerciseIDs := make([]int64, 0, len(catalog))
	for _, ex := range catalog {
		id, err := db.InsertExercise(ctx, ex.name, ex.muscles)
		if err != nil {
			log.Error("seeding exercise", "name", ex.name, "error", err)
			os.Exit(1)
		}
		exerciseIDs = append(exerciseIDs, id)
	}
	log.Info("exercises seeded", "count", len(exerciseIDs))

	for i := 0; i < *users; i++ {
		name := gofakeit.Name()
		email := fmt.Sprintf("%s@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")))
		userID, err := db.InsertUser(ctx, email, name)
		if err != nil {
			log.Error("seeding user", "email", email, "error", err)
			os.Exit(1)
		}

		workouts, sets, err := seedHistory(ctx, db, userID, *weeks, exerciseIDs)
		if err != nil {
			log.Error("seeding history", "user_id", userID, "error", err)
			os.Exit(1)
		}
		log.Info("user seeded", "user_id", userID, "email", email, "workouts", workouts, "sets", sets)
	}

	log.Info("seeding complete")
}

// seedHistory writes weeks of plausible training history ending this week:
// 2-5 sessions per week, 3-6 exercises per session, 2-5 sets each, with
// weights drifting upward toward the present.
func seedHistory(ctx context.Context, db *storage.DB, userID int64, weeks int, exerciseIDs []int64) (int, int, error) {
	thisMonday := analytics.WeekStart(time.Now())
	totalWorkouts, totalSets := 0, 0

	for wk := weeks - 1; wk >= 0; wk-- {
		monday := thisMonday.AddDate(0, 0, -7*wk)
		sessions := gofakeit.Number(2, 5)

		// progress factor: older weeks lift a bit less
		progress := 1.0 - 0.02*float64(wk)

		for s := 0; s < sessions; s++ {
			day := monday.AddDate(0, 0, gofakeit.Number(0, 6))
			title := gofakeit.RandomString([]string{"Push Day", "Pull Day", "Leg Day", "Upper Body", "Full Body"})

			workoutID, err := db.InsertWorkout(ctx, userID, day, title)
			if err != nil {
				return totalWorkouts, totalSets, err
			}
			totalWorkouts++

			exercises := gofakeit.Number(3, 6)
			setIndex := 1
			for e := 0; e < exercises; e++ {
				exID := exerciseIDs[gofakeit.Number(0, len(exerciseIDs)-1)]
				base := gofakeit.Float64Range(40, 120) * progress

				for n := 0; n < gofakeit.Number(2, 5); n++ {
					reps := gofakeit.Number(3, 12)
					weight := base + gofakeit.Float64Range(-5, 5)
					if err := db.InsertSet(ctx, workoutID, exID, setIndex, reps, weight); err != nil {
						return totalWorkouts, totalSets, err
					}
					setIndex++
					totalSets++
				}
			}
		}
	}
	return totalWorkouts, totalSets, nil
}
