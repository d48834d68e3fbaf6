package dashboard

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"cardbot/application"

	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// Runner executes ledger operations inside a guild-scoped unit of work
type Runner interface {
	Run(ctx context.Context, guildID int64, fn func(*application.Services) error) error
}

// Config holds the dashboard listener settings
type Config struct {
	Addr           string
	Token          string
	AllowedOrigins []string
}

// Server exposes the ledger over a small JSON API
type Server struct {
	config Config
	runner Runner
	http   *http.Server
}

// New creates a dashboard server. Call ListenAndServe to start it.
func New(config Config, runner Runner) *Server {
	s := &Server{config: config, runner: runner}
	s.http = &http.Server{
		Addr:              config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
	return s
}

// Handler returns the routed API wrapped in auth and CORS middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/guilds/{guild}/users/{user}/balance", s.handleBalance)
	api.HandleFunc("GET /api/guilds/{guild}/users/{user}/inventory", s.handleInventory)
	api.HandleFunc("POST /api/guilds/{guild}/users/{user}/burn", s.handleBurn)
	api.HandleFunc("GET /api/guilds/{guild}/listings", s.handleListings)
	api.HandleFunc("POST /api/guilds/{guild}/listings", s.handleSell)
	api.HandleFunc("POST /api/guilds/{guild}/listings/{id}/buy", s.handleBuy)
	api.HandleFunc("DELETE /api/guilds/{guild}/listings/{id}", s.handleRemoveSale)
	mux.Handle("/api/", s.requireToken(api))

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
	})
	return c.Handler(logRequests(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.config.Addr).Info("Dashboard API listening")
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info("Dashboard API stopped")
		return nil
	}
}

// requireToken rejects requests without the configured bearer token
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || s.config.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.config.Token)) != 1 {
			writeErrorMessage(w, http.StatusUnauthorized, "missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Debug("Dashboard request")
	})
}
