package mcp

import (
	"context"
	"time"

	"github.com/claude/repscope/internal/analytics"
	"github.com/claude/repscope/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// weekStartOrCurrent parses a YYYY-MM-DD week_start argument and aligns it to
// its Monday. Empty or unparseable values mean the current week.
func weekStartOrCurrent(s string) time.Time {
	if s != "" {
		if d, err := time.Parse(models.DateOnly, s); err == nil {
			return analytics.WeekStart(d)
		}
	}
	return analytics.WeekStart(time.Now())
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// --- Tool definitions ---

var toolGetWeeklyStats = mcp.NewTool("get_weekly_stats",
	mcp.WithDescription("Composed training stats for one ISO week (Monday start): workouts, days trained, total sets and volume, volume change vs the previous week, top-3 heaviest sets, per-muscle-group volume, hit/missed/usual/extra groups, and the training streak."),
	mcp.WithString("week_start", mcp.Description("Week start date (YYYY-MM-DD, aligned to its Monday). Defaults to the current week.")),
)

var toolGetMaxWeights = mcp.NewTool("get_max_weights",
	mcp.WithDescription("Heaviest weight ever lifted per exercise, heaviest first."),
	mcp.WithNumber("top_n", mcp.Description("Number of exercises to return (1-20). Defaults to 8.")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Best estimated one-rep max per exercise using the Epley formula (weight x (1 + reps/30)), best first."),
	mcp.WithNumber("top_n", mcp.Description("Number of exercises to return (1-20). Defaults to 8.")),
)

var toolGetVolumeSeries = mcp.NewTool("get_volume_series",
	mcp.WithDescription("Continuous, zero-filled training volume series ending at the current day or week."),
	mcp.WithString("granularity", mcp.Description("Bucket size. Defaults to 'weekly'."), mcp.Enum("daily", "weekly")),
	mcp.WithNumber("points", mcp.Description("Series length: days (1-180, default 30) or weeks (1-52, default 10).")),
)

var toolGetTrainingStreak = mcp.NewTool("get_training_streak",
	mcp.WithDescription("Consecutive completed weeks meeting a sessions-per-week threshold, plus current and last week session counts."),
	mcp.WithNumber("threshold", mcp.Description("Sessions required per week (1-14). Defaults to 3.")),
	mcp.WithNumber("weeks", mcp.Description("Lookback window in weeks (4-104). Defaults to 26.")),
)

// --- Tool handlers ---

func (h *handlers) getWeeklyStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	weekStart := weekStartOrCurrent(req.GetString("week_start", ""))

	stats, err := analytics.ComputeWeeklyStats(ctx, h.ds, uid, weekStart, analytics.DefaultLookbackWeeks)
	if err != nil {
		h.log.Error("mcp get_weekly_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMaxWeights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	topN := clampInt(req.GetInt("top_n", analytics.DefaultTopN), analytics.MinTopN, analytics.MaxTopN)

	workouts, err := h.ds.FetchAllWorkouts(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_max_weights", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.MaxWeights(workouts, topN))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	topN := clampInt(req.GetInt("top_n", analytics.DefaultTopN), analytics.MinTopN, analytics.MaxTopN)

	workouts, err := h.ds.FetchAllWorkouts(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.EstimatedOneRepMaxes(workouts, topN))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getVolumeSeries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	granularity := req.GetString("granularity", "weekly")

	switch granularity {
	case "daily":
		days := clampInt(req.GetInt("points", analytics.DefaultSeriesDays), analytics.MinSeriesDays, analytics.MaxSeriesDays)
		now := time.Now()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		workouts, err := h.ds.FetchWorkouts(ctx, uid, end.AddDate(0, 0, -(days-1)), end)
		if err != nil {
			h.log.Error("mcp get_volume_series", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		result, err := mcp.NewToolResultJSON(analytics.DailyVolume(workouts, end, days))
		if err != nil {
			return mcp.NewToolResultError("serialization failed"), nil
		}
		return result, nil

	case "weekly":
		weeks := clampInt(req.GetInt("points", analytics.DefaultSeriesWeeks), analytics.MinSeriesWeeks, analytics.MaxSeriesWeeks)
		thisMonday := analytics.WeekStart(time.Now())
		start := thisMonday.AddDate(0, 0, -7*(weeks-1))
		workouts, err := h.ds.FetchWorkouts(ctx, uid, start, thisMonday.AddDate(0, 0, 6))
		if err != nil {
			h.log.Error("mcp get_volume_series", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		result, err := mcp.NewToolResultJSON(analytics.WeeklyVolume(workouts, thisMonday, weeks))
		if err != nil {
			return mcp.NewToolResultError("serialization failed"), nil
		}
		return result, nil

	default:
		return mcp.NewToolResultError("granularity must be 'daily' or 'weekly'"), nil
	}
}

func (h *handlers) getTrainingStreak(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	threshold := clampInt(req.GetInt("threshold", analytics.DefaultThreshold), analytics.MinThreshold, analytics.MaxThreshold)
	weeks := clampInt(req.GetInt("weeks", analytics.DefaultStreakWeeks), analytics.MinStreakWeeks, analytics.MaxStreakWeeks)

	stats, err := analytics.ComputeDashboardStats(ctx, h.ds, uid, time.Now(), threshold, weeks)
	if err != nil {
		h.log.Error("mcp get_training_streak", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
