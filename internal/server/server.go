// Package server exposes the study API over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/p-n-ai/pai-learn/internal/catalog"
	"github.com/p-n-ai/pai-learn/internal/store"
	"github.com/p-n-ai/pai-learn/internal/tutor"
	"github.com/p-n-ai/pai-learn/internal/video"
)

// Generator produces AI study material. *tutor.Generator implements it.
type Generator interface {
	Notes(ctx context.Context, topic string) (string, error)
	Questions(ctx context.Context, topic string) ([]tutor.Question, error)
	Analyze(ctx context.Context, questions []tutor.Question, userAnswers map[string]string, topic string) ([]tutor.ConceptAnalysis, error)
	DynamicAssessment(ctx context.Context, topic string, weakConcepts []string) ([]tutor.Question, error)
}

// HealthChecker reports whether a backing service is usable.
// *ai.Router implements it.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps holds everything the handlers need. All fields except AI are
// required; without AI, /readyz/ai reports unavailable.
type Deps struct {
	Store     store.Store
	Catalog   *catalog.Catalog
	Generator Generator
	Finder    video.Finder
	AI        HealthChecker
}

// Server routes API requests to handlers.
type Server struct {
	store   store.Store
	catalog *catalog.Catalog
	gen     Generator
	finder  video.Finder
	ai      HealthChecker
}

// New creates a Server.
func New(deps Deps) *Server {
	return &Server{
		store:   deps.Store,
		catalog: deps.Catalog,
		gen:     deps.Generator,
		finder:  deps.Finder,
		ai:      deps.AI,
	}
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return requestID(logRequests(cors(s.routes())))
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("GET /readyz/ai", s.handleReadyzAI)

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("GET /api/content", s.handleContent)
	mux.HandleFunc("POST /api/get-topic-details", s.handleTopicDetails)
	mux.HandleFunc("POST /api/generate-test", s.handleGenerateTest)
	mux.HandleFunc("POST /api/submit-test", s.handleSubmitTest)
	mux.HandleFunc("POST /api/generate-dynamic-test", s.handleDynamicTest)
	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)
	mux.HandleFunc("GET /api/analytics/export", s.handleAnalyticsExport)
	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.HealthCheck(r.Context()); err != nil {
		logger(r.Context()).Error("readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleReadyzAI checks the default text-generation provider. It is kept
// off /readyz because it calls an external API.
func (s *Server) handleReadyzAI(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": "no AI provider configured"})
		return
	}
	if err := s.ai.HealthCheck(r.Context()); err != nil {
		logger(r.Context()).Error("AI readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
