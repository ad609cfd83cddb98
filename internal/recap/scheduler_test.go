package recap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/repscope/internal/analytics"
	"github.com/claude/repscope/internal/models"
)

// emptyStore implements analytics.Store with no data; the scheduler tests
// exercise batch orchestration, not the stats math.
type emptyStore struct{}

func (emptyStore) FetchWorkouts(ctx context.Context, userID int64, start, end time.Time) ([]models.Workout, error) {
	return nil, nil
}

func (emptyStore) CountWorkouts(ctx context.Context, userID int64, start, end time.Time) (int, error) {
	return 0, nil
}

type staticUsers []models.User

func (u staticUsers) ListUsers(ctx context.Context) ([]models.User, error) {
	return u, nil
}

// fakeNarrator returns a fixed summary and can be told to fail on specific
// calls (1-based call order).
type fakeNarrator struct {
	calls   int
	failOn  map[int]bool // 1-based call numbers that fail
	summary string
}

func (n *fakeNarrator) Summarize(ctx context.Context, stats *analytics.WeeklyStats) (string, error) {
	n.calls++
	if n.failOn[n.calls] {
		return "", fmt.Errorf("narrator down")
	}
	return n.summary, nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestRunOnce_SendsToAllUsers verifies the batch computes the prior completed
// week and mails every user with an email address.
func TestRunOnce_SendsToAllUsers(t *testing.T) {
	users := staticUsers{
		{ID: 1, Email: "a@example.com", Name: "A"},
		{ID: 2, Email: "b@example.com", Name: "B"},
		{ID: 3, Name: "no-email"},
	}
	narrator := &fakeNarrator{summary: "Nice week."}
	mailer := &fakeMailer{}

	s := NewScheduler(emptyStore{}, users, narrator, mailer, nil, time.UTC, testLogger())

	// Wednesday Aug 26; the prior completed week starts Monday Aug 17.
	asOf := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	if err := s.RunOnce(context.Background(), asOf); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	if len(mailer.sent) != 2 {
		t.Fatalf("sent %d mails, want 2 (user without email skipped)", len(mailer.sent))
	}
	wantSubject := "Your Weekly Training Recap • Week of 2026-08-17"
	for _, m := range mailer.sent {
		if m.subject != wantSubject {
			t.Errorf("subject = %q, want %q", m.subject, wantSubject)
		}
		if m.body != "Nice week.\n\n— RepScope" {
			t.Errorf("body = %q", m.body)
		}
	}
}

// TestRunOnce_IsolatesPerUserFailures verifies that a narration failure for
// one user does not stop delivery to the rest of the batch.
func TestRunOnce_IsolatesPerUserFailures(t *testing.T) {
	users := staticUsers{
		{ID: 1, Email: "a@example.com"},
		{ID: 2, Email: "b@example.com"},
		{ID: 3, Email: "c@example.com"},
	}
	narrator := &fakeNarrator{summary: "ok", failOn: map[int]bool{2: true}}
	mailer := &fakeMailer{}

	s := NewScheduler(emptyStore{}, users, narrator, mailer, nil, time.UTC, testLogger())

	asOf := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	if err := s.RunOnce(context.Background(), asOf); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	if len(mailer.sent) != 2 {
		t.Fatalf("sent %d mails, want 2 (failed user skipped, others delivered)", len(mailer.sent))
	}
	if mailer.sent[0].to != "a@example.com" || mailer.sent[1].to != "c@example.com" {
		t.Errorf("recipients = %v, want users 1 and 3", mailer.sent)
	}
}

// TestRunOnce_LedgerDedup verifies that a second run for the same week sends
// nothing, and a run for the following week sends again.
func TestRunOnce_LedgerDedup(t *testing.T) {
	ledger, err := OpenLedger(t.TempDir())
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	defer ledger.Close()

	users := staticUsers{{ID: 1, Email: "a@example.com"}}
	mailer := &fakeMailer{}
	s := NewScheduler(emptyStore{}, users, &fakeNarrator{summary: "ok"}, mailer, ledger, time.UTC, testLogger())

	asOf := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	if err := s.RunOnce(context.Background(), asOf); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := s.RunOnce(context.Background(), asOf); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d mails after rerun, want 1", len(mailer.sent))
	}

	if err := s.RunOnce(context.Background(), asOf.AddDate(0, 0, 7)); err != nil {
		t.Fatalf("next week run: %v", err)
	}
	if len(mailer.sent) != 2 {
		t.Errorf("sent %d mails after next week, want 2", len(mailer.sent))
	}
}

// TestScheduler_StartIdempotent verifies that calling Start twice neither
// errors nor spawns a second cron loop.
func TestScheduler_StartIdempotent(t *testing.T) {
	s := NewScheduler(emptyStore{}, staticUsers{}, &fakeNarrator{summary: "ok"}, &fakeMailer{}, nil, time.UTC, testLogger())
	defer s.Stop()

	if err := s.Start("0 0 19 * * 0"); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := s.Start("0 0 19 * * 0"); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if !s.started {
		t.Error("scheduler not marked started")
	}
}

// TestScheduler_StartBadSchedule verifies that an invalid cron spec is
// rejected up front.
func TestScheduler_StartBadSchedule(t *testing.T) {
	s := NewScheduler(emptyStore{}, staticUsers{}, &fakeNarrator{summary: "ok"}, &fakeMailer{}, nil, time.UTC, testLogger())
	if err := s.Start("not a cron spec"); err == nil {
		s.Stop()
		t.Fatal("expected error for invalid schedule")
	}
}
