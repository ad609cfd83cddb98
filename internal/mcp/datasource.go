package mcp

import (
	"context"

	"github.com/claude/repscope/internal/analytics"
	"github.com/claude/repscope/internal/models"
	"github.com/claude/repscope/internal/storage"
)

// DataSource abstracts the data layer for MCP tools.
type DataSource interface {
	analytics.Store
	FetchAllWorkouts(ctx context.Context, userID int64) ([]models.Workout, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
