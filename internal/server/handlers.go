package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/repscope/internal/analytics"
	"github.com/claude/repscope/internal/models"
	"github.com/claude/repscope/internal/recap"
)

func (s *Server) handleMaxWeight(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	topN, err := boundedInt(r, "top_n", analytics.DefaultTopN, analytics.MinTopN, analytics.MaxTopN)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.store.FetchAllWorkouts(r.Context(), userID)
	if err != nil {
		s.log.Error("fetching workouts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analytics.MaxWeights(workouts, topN))
}

func (s *Server) handlePersonalRecords(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	topN, err := boundedInt(r, "top_n", analytics.DefaultTopN, analytics.MinTopN, analytics.MaxTopN)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.store.FetchAllWorkouts(r.Context(), userID)
	if err != nil {
		s.log.Error("fetching workouts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analytics.EstimatedOneRepMaxes(workouts, topN))
}

func (s *Server) handleWeeklyVolume(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	weeks, err := boundedInt(r, "weeks", analytics.DefaultSeriesWeeks, analytics.MinSeriesWeeks, analytics.MaxSeriesWeeks)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	thisMonday := analytics.WeekStart(time.Now())
	start := thisMonday.AddDate(0, 0, -7*(weeks-1))
	end := thisMonday.AddDate(0, 0, 6)

	workouts, err := s.store.FetchWorkouts(r.Context(), userID, start, end)
	if err != nil {
		s.log.Error("fetching workouts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analytics.WeeklyVolume(workouts, thisMonday, weeks))
}

func (s *Server) handleDailyVolume(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	days, err := boundedInt(r, "days", analytics.DefaultSeriesDays, analytics.MinSeriesDays, analytics.MaxSeriesDays)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	end := time.Now()
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	start := end.AddDate(0, 0, -(days - 1))

	workouts, err := s.store.FetchWorkouts(r.Context(), userID, start, end)
	if err != nil {
		s.log.Error("fetching workouts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analytics.DailyVolume(workouts, end, days))
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	threshold, err := boundedInt(r, "threshold", analytics.DefaultThreshold, analytics.MinThreshold, analytics.MaxThreshold)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	weeks, err := boundedInt(r, "weeks", analytics.DefaultStreakWeeks, analytics.MinStreakWeeks, analytics.MaxStreakWeeks)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	stats, err := analytics.ComputeDashboardStats(r.Context(), s.store, userID, time.Now(), threshold, weeks)
	if err != nil {
		s.log.Error("computing dashboard stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	weekStart := weekStartParam(r, time.Now())

	stats, err := analytics.ComputeWeeklyStats(r.Context(), s.store, userID, weekStart, analytics.DefaultLookbackWeeks)
	if err != nil {
		s.log.Error("computing weekly stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	summary, err := s.narrator.Summarize(r.Context(), stats)
	if err != nil {
		s.log.Error("narrating weekly stats", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats":   stats,
		"summary": summary,
	})
}

func (s *Server) handleSendWeeklySummary(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	weekStart := weekStartParam(r, time.Now())

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}

	stats, err := analytics.ComputeWeeklyStats(r.Context(), s.store, userID, weekStart, analytics.DefaultLookbackWeeks)
	if err != nil {
		s.log.Error("computing weekly stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	summary, err := s.narrator.Summarize(r.Context(), stats)
	if err != nil {
		s.log.Error("narrating weekly stats", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	subject := recap.RecapSubject(stats)
	if user.Email != "" {
		if err := s.mailer.Send(user.Email, subject, recap.RecapBody(summary)); err != nil {
			s.log.Error("sending recap mail", "error", err, "user_id", userID)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"sent_to": user.Email,
		"subject": subject,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// userIDFrom reads the X-User-ID header set by the external auth layer.
// Absent header means the local dev user.
func userIDFrom(r *http.Request) (int64, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return 1, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid X-User-ID header")
	}
	return id, nil
}

// boundedInt parses an integer query parameter with a default and inclusive
// bounds. Out-of-range or unparseable values are an error.
func boundedInt(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s must be between %d and %d", name, min, max)
	}
	return v, nil
}

// weekStartParam reads the week_start query parameter and aligns it to its
// Monday. Absent or unparseable values fall back to the current week.
func weekStartParam(r *http.Request, now time.Time) time.Time {
	if raw := r.URL.Query().Get("week_start"); raw != "" {
		if d, err := time.Parse(models.DateOnly, raw); err == nil {
			return analytics.WeekStart(d)
		}
	}
	return analytics.WeekStart(now)
}
