package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/duelgrid/duelgrid/internal/api/apierr"
	"github.com/duelgrid/duelgrid/internal/api/handler"
	"github.com/duelgrid/duelgrid/internal/middleware"
	"github.com/duelgrid/duelgrid/internal/services/arena"
	"github.com/duelgrid/duelgrid/internal/storage"
	"github.com/duelgrid/duelgrid/internal/transport"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	ArenaController *arena.Controller
	Storage         storage.Storage
	Hub             *transport.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	queueHandler := handler.NewQueueHandler(cfg.ArenaController)
	sessionHandler := handler.NewSessionHandler(cfg.ArenaController)
	statsHandler := handler.NewStatsHandler(cfg.Storage)
	eventsHandler := handler.NewEventsHandler(cfg.Hub, cfg.ArenaController)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, panicHandler)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Queue routes
	api.HandleFunc("/queue/join", queueHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/queue/leave", queueHandler.Leave).Methods(http.MethodPost)

	// Session routes
	api.HandleFunc("/sessions/{session_id}", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{session_id}/moves", sessionHandler.Move).Methods(http.MethodPost)

	// Connection routes
	api.HandleFunc("/connections/disconnect", queueHandler.Disconnect).Methods(http.MethodPost)
	api.HandleFunc("/events/{connection_id}", eventsHandler.Stream).Methods(http.MethodGet)

	// Stats and history routes
	api.HandleFunc("/stats/{username}", statsHandler.GetStats).Methods(http.MethodGet)
	api.HandleFunc("/history/{username}", statsHandler.GetHistory).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
