package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/claude/repscope/internal/analytics"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepScope", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepScope training analytics server. Query weekly training stats, max weights, estimated personal records, volume series, and streaks. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWeeklyStats, Handler: h.getWeeklyStats},
		server.ServerTool{Tool: toolGetMaxWeights, Handler: h.getMaxWeights},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetVolumeSeries, Handler: h.getVolumeSeries},
		server.ServerTool{Tool: toolGetTrainingStreak, Handler: h.getTrainingStreak},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentWeek, Handler: h.currentWeek},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCurrentWeek = mcp.NewResource(
	"repscope://current_week",
	"Current Week Stats",
	mcp.WithResourceDescription("Composed training stats for the current week: totals, heaviest sets, muscle-group balance, streak"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"repscope://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workouts from the last 14 days with their sets and exercises"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) currentWeek(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	stats, err := analytics.ComputeWeeklyStats(ctx, h.ds, uid, analytics.WeekStart(time.Now()), analytics.DefaultLookbackWeeks)
	if err != nil {
		h.log.Error("mcp current_week resource", "error", err)
		return nil, err
	}
	return jsonResource(req.Params.URI, stats)
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	end := time.Now()
	workouts, err := h.ds.FetchWorkouts(ctx, uid, end.AddDate(0, 0, -14), end)
	if err != nil {
		h.log.Error("mcp recent_workouts resource", "error", err)
		return nil, err
	}
	return jsonResource(req.Params.URI, workouts)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
