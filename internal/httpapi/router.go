package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/muryalabs/murya/internal/eventlog"
	"github.com/muryalabs/murya/internal/generate"
	"github.com/muryalabs/murya/internal/history"
	"github.com/muryalabs/murya/internal/session"
)

type Router struct {
	logger      *log.Logger
	generator   *generate.Service
	state       *session.State
	history     *history.Store
	events      *eventlog.Logger
	generations *GenerationRegistry
	mux         *http.ServeMux
}

func NewRouter(logger *log.Logger, generator *generate.Service, state *session.State, hist *history.Store, events *eventlog.Logger, generations *GenerationRegistry) http.Handler {
	r := &Router{
		logger:      logger,
		generator:   generator,
		state:       state,
		history:     hist,
		events:      events,
		generations: generations,
		mux:         http.NewServeMux(),
	}

	r.routes()
	return withSentryRecovery(withCORS(r.mux))
}

func (r *Router) routes() {
	// Health and readiness
	r.mux.HandleFunc("GET /healthz", r.handleHealthz)
	r.mux.HandleFunc("GET /readyz", r.handleReadyz)

	// Comparison page
	r.mux.HandleFunc("GET /", r.handleIndex)

	// Generation
	r.mux.HandleFunc("GET /api/voices", r.handleListVoices)
	r.mux.HandleFunc("POST /api/generate", r.handleGenerate)

	// Session state and history
	r.mux.HandleFunc("GET /api/current", r.handleCurrent)
	r.mux.HandleFunc("POST /api/save", r.handleSave)
	r.mux.HandleFunc("POST /api/clear", r.handleClear)
	r.mux.HandleFunc("GET /api/history", r.handleHistory)
	r.mux.HandleFunc("GET /api/stats", r.handleStats)
	r.mux.HandleFunc("GET /api/audio/{id}", r.handleAudio)

	// Live event feed
	r.mux.HandleFunc("GET /api/events", r.handleEventsWS)
}

func (r *Router) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (r *Router) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if r.generations.IsDraining() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("draining"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func withSentryRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				hub := sentry.CurrentHub().Clone()
				hub.Scope().SetRequest(req)
				hub.RecoverWithContext(req.Context(), err)
				hub.Flush(2 * time.Second)
				http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// captureError sends an error to Sentry with request context
func captureError(req *http.Request, err error, msg string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(req)
		scope.SetExtra("message", msg)
		sentry.CaptureException(err)
	})
}
