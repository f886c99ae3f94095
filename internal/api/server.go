package api

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"todo-list/internal/config"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 5 * time.Second

// NewRouter registers the API routes. When staticDir is set, the browser
// client is served from it; unmatched /api paths still answer JSON 404.
func NewRouter(h *Handler, staticDir string) *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", h.Status).Methods(http.MethodGet)
	api.HandleFunc("/tarefas", h.ListTasks).Methods(http.MethodGet)
	api.HandleFunc("/tarefas", h.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tarefas/{id}", h.UpdateTask).Methods(http.MethodPut)
	api.HandleFunc("/tarefas/{id}", h.DeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tarefas/{taskId}/subtarefas", h.CreateSubtask).Methods(http.MethodPost)
	api.HandleFunc("/subtarefas/{id}", h.UpdateSubtask).Methods(http.MethodPut)
	api.HandleFunc("/subtarefas/{id}", h.DeleteSubtask).Methods(http.MethodDelete)
	api.NotFoundHandler = http.HandlerFunc(h.NotFound)
	api.MethodNotAllowedHandler = http.HandlerFunc(h.NotFound)
	api.PathPrefix("/").HandlerFunc(h.NotFound)

	if staticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	}
	router.NotFoundHandler = http.HandlerFunc(h.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.NotFound)

	return router
}

// NewHTTPHandler wraps the router with recovery, logging, security headers and CORS
func NewHTTPHandler(h *Handler, staticDir string, logger *log.Logger) http.Handler {
	return chain(NewRouter(h, staticDir),
		Recoverer(logger),
		RequestLogger(logger),
		SecurityHeaders,
		CORS,
	)
}

// Server runs the HTTP API
type Server struct {
	server *http.Server
	logger *log.Logger
}

// NewServer creates a Server for the configured address
func NewServer(cfg *config.Config, h *Handler, logger *log.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         cfg.GetListenAddress(),
			Handler:      NewHTTPHandler(h, cfg.Server.StaticDir, logger),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		logger: logger,
	}
}

// Run serves on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down server")
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}
