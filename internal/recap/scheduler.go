package recap

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/repscope/internal/analytics"
	"github.com/claude/repscope/internal/models"
	"github.com/robfig/cron"
)

// perUserTimeout bounds one user's narration and delivery so a hung external
// call cannot stall the rest of the batch.
const perUserTimeout = 90 * time.Second

// UserSource lists the users the weekly batch iterates.
type UserSource interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Scheduler owns the weekly recap batch: on schedule it computes the prior
// completed week's stats for every user, narrates them, and mails the result.
// The process constructs exactly one Scheduler; Start is idempotent so a
// duplicate call cannot spawn a second cron loop.
type Scheduler struct {
	store    analytics.Store
	users    UserSource
	narrator Narrator
	mailer   Mailer
	ledger   *Ledger
	log      *slog.Logger
	loc      *time.Location

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

// NewScheduler wires the recap batch. The ledger may be nil, in which case
// delivery dedup across restarts is disabled.
func NewScheduler(store analytics.Store, users UserSource, narrator Narrator, mailer Mailer, ledger *Ledger, loc *time.Location, log *slog.Logger) *Scheduler {
	return &Scheduler{
		store:    store,
		users:    users,
		narrator: narrator,
		mailer:   mailer,
		ledger:   ledger,
		log:      log,
		loc:      loc,
	}
}

// Start registers the cron job and starts the loop. Calling Start on a
// running scheduler is a no-op.
func (s *Scheduler) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	c := cron.NewWithLocation(s.loc)
	err := c.AddFunc(schedule, func() {
		if err := s.RunOnce(context.Background(), time.Now().In(s.loc)); err != nil {
			s.log.Error("weekly recap run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("registering recap job: %w", err)
	}
	c.Start()

	s.cron = c
	s.started = true
	s.log.Info("recap scheduler started", "schedule", schedule, "timezone", s.loc.String())
	return nil
}

// Stop halts the cron loop. Safe to call on a never-started scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		s.cron.Stop()
	}
	s.started = false
}

// RunOnce executes one full batch as of the given time: it targets the prior
// completed week (recaps cover Monday through Sunday and are sent after the
// week closed). A failure for one user is logged and never stops the
// remaining users.
func (s *Scheduler) RunOnce(ctx context.Context, asOf time.Time) error {
	prevMonday := analytics.WeekStart(asOf).AddDate(0, 0, -7)

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	s.log.Info("weekly recap run starting", "users", len(users), "week_start", prevMonday.Format(models.DateOnly))

	failed := 0
	for _, u := range users {
		if err := s.sendForUser(ctx, u, prevMonday); err != nil {
			failed++
			s.log.Error("recap failed for user", "user_id", u.ID, "error", err)
		}
	}

	s.log.Info("weekly recap run finished", "users", len(users), "failed", failed)
	return nil
}

func (s *Scheduler) sendForUser(ctx context.Context, user models.User, weekStart time.Time) error {
	if user.Email == "" {
		s.log.Debug("user has no email, skipping recap", "user_id", user.ID)
		return nil
	}

	weekKey := weekStart.Format(models.DateOnly)
	if s.ledger != nil {
		sent, err := s.ledger.WasSent(user.ID, weekKey)
		if err != nil {
			return fmt.Errorf("checking ledger: %w", err)
		}
		if sent {
			s.log.Debug("recap already sent, skipping", "user_id", user.ID, "week_start", weekKey)
			return nil
		}
	}

	userCtx, cancel := context.WithTimeout(ctx, perUserTimeout)
	defer cancel()

	stats, err := analytics.ComputeWeeklyStats(userCtx, s.store, user.ID, weekStart, analytics.DefaultLookbackWeeks)
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	summary, err := s.narrator.Summarize(userCtx, stats)
	if err != nil {
		return fmt.Errorf("narrating stats: %w", err)
	}

	subject := RecapSubject(stats)
	if err := s.mailer.Send(user.Email, subject, RecapBody(summary)); err != nil {
		return fmt.Errorf("mailing recap: %w", err)
	}

	if s.ledger != nil {
		if err := s.ledger.MarkSent(user.ID, weekKey); err != nil {
			return fmt.Errorf("marking ledger: %w", err)
		}
	}

	s.log.Info("recap sent", "user_id", user.ID, "week_start", weekKey)
	return nil
}

// RecapSubject builds the recap email subject line for a stats object.
func RecapSubject(stats *analytics.WeeklyStats) string {
	return fmt.Sprintf("Your Weekly Training Recap • Week of %s", stats.WeekStart)
}

// RecapBody builds the recap email body from the narrated summary.
func RecapBody(summary string) string {
	return summary + "\n\n— RepScope"
}
