package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/docpal/docpal/agent/runner"
	"github.com/docpal/docpal/internal/logging"
)

// Agent is the conversational core the gateway talks to. The runner
// implements it; tests substitute a stub.
type Agent interface {
	Process(ctx context.Context, sessionKey, message string) (*runner.TurnResult, error)
}

// Server is the HTTP gateway: the UI-facing collaborator around the agent
// loop. It owns upload staging and nothing else — all decision logic lives
// below it.
type Server struct {
	agent Agent
	port  int
}

// New creates a gateway server for the given agent.
func New(agent Agent, port int) *Server {
	return &Server{agent: agent, port: port}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Post("/upload", s.handleUpload)
		r.Post("/summary", s.handleSummary)
		r.Post("/quiz", s.handleQuiz)
	})
	return r
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("gateway listening on http://localhost:%d", s.port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
