// Package httpapi exposes the REST surface of the service and maps
// service-level sentinel errors onto HTTP status codes. The transport stays
// thin: request decoding, auth extraction, response encoding.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/itemvault/internal/logging"
	"github.com/dmitrijs2005/itemvault/internal/server/items"
	"github.com/dmitrijs2005/itemvault/internal/server/users"
)

// HealthChecker reports whether the backing store currently responds.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	users   *users.Service
	items   *items.Service
	health  HealthChecker
	origins []string

	shutdownTimeout time.Duration
}

func NewHTTPServer(a string, l logging.Logger, us *users.Service, is *items.Service, h HealthChecker, corsOrigins string) *HTTPServer {
	var origins []string
	for _, o := range strings.Split(corsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	// no configured origins means allow-all
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		users:           us,
		items:           is,
		health:          h,
		origins:         origins,
		shutdownTimeout: 5 * time.Second,
	}
}

// Handler assembles the route table and wraps it with the CORS middleware.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.Handle("POST /items", s.requireAuth(http.HandlerFunc(s.handleCreateItem)))
	mux.Handle("GET /items", s.requireAuth(http.HandlerFunc(s.handleListItems)))
	mux.Handle("GET /items/{id}", s.requireAuth(http.HandlerFunc(s.handleGetItem)))
	mux.Handle("PUT /items/{id}", s.requireAuth(http.HandlerFunc(s.handleUpdateItem)))
	mux.Handle("DELETE /items/{id}", s.requireAuth(http.HandlerFunc(s.handleDeleteItem)))

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /health/db", s.handleHealthDB)

	return s.cors(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
