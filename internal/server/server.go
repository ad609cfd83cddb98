package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/repscope/internal/analytics"
	"github.com/claude/repscope/internal/models"
	"github.com/claude/repscope/internal/recap"
	"github.com/claude/repscope/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Store is the read surface the HTTP handlers need.
type Store interface {
	analytics.Store
	FetchAllWorkouts(ctx context.Context, userID int64) ([]models.Workout, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    Store
	narrator recap.Narrator
	mailer   recap.Mailer
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(store Store, narrator recap.Narrator, mailer recap.Mailer, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:    store,
		narrator: narrator,
		mailer:   mailer,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/max-weight", s.handleMaxWeight)
		r.Get("/weekly-volume", s.handleWeeklyVolume)
		r.Get("/prs", s.handlePersonalRecords)
		r.Get("/daily-volume", s.handleDailyVolume)
		r.Get("/stats", s.handleDashboardStats)
		r.Get("/weekly-summary", s.handleWeeklySummary)

		// Sending mail is a side effect; require the API key.
		r.With(APIKeyAuth(s.apiKey)).Post("/send-weekly-summary", s.handleSendWeeklySummary)
	})
}
