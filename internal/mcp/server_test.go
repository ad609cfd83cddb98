package mcp

import (
	"context"
	"testing"
	"time"
)

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestWeekStartOrCurrent verifies parsing, Monday alignment, and the silent
// fallback to the current week.
func TestWeekStartOrCurrent(t *testing.T) {
	// A Wednesday aligns back to its Monday.
	got := weekStartOrCurrent("2026-08-26")
	if got.Format("2006-01-02") != "2026-08-24" {
		t.Errorf("weekStartOrCurrent(2026-08-26) = %v, want Monday 2026-08-24", got)
	}

	// A Monday stays put.
	got = weekStartOrCurrent("2026-08-24")
	if got.Format("2006-01-02") != "2026-08-24" {
		t.Errorf("weekStartOrCurrent(2026-08-24) = %v, want 2026-08-24", got)
	}

	// Empty and garbage both fall back to the current week.
	thisMonday := time.Now()
	for _, s := range []string{"", "not-a-date"} {
		got = weekStartOrCurrent(s)
		if got.After(thisMonday) || thisMonday.Sub(got) > 7*24*time.Hour {
			t.Errorf("weekStartOrCurrent(%q) = %v, want current week's Monday", s, got)
		}
		if got.Weekday() != time.Monday {
			t.Errorf("weekStartOrCurrent(%q) = %v, not a Monday", s, got)
		}
	}
}

// TestClampInt verifies bounds clamping for tool arguments.
func TestClampInt(t *testing.T) {
	cases := []struct {
		v, min, max, want int
	}{
		{5, 1, 20, 5},
		{0, 1, 20, 1},
		{-3, 1, 20, 1},
		{21, 1, 20, 20},
		{1, 1, 20, 1},
		{20, 1, 20, 20},
	}
	for _, tc := range cases {
		if got := clampInt(tc.v, tc.min, tc.max); got != tc.want {
			t.Errorf("clampInt(%d, %d, %d) = %d, want %d", tc.v, tc.min, tc.max, got, tc.want)
		}
	}
}
