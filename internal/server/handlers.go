package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/p-n-ai/pai-learn/internal/store"
	"github.com/p-n-ai/pai-learn/internal/tutor"
)

const msgBadBody = "Invalid JSON body"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type topicDetailsRequest struct {
	Class   string `json:"class"`
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
}

type topicRequest struct {
	Topic string `json:"topic"`
}

type submitTestRequest struct {
	Username    string            `json:"username"`
	Subject     string            `json:"subject"`
	Topic       string            `json:"topic"`
	Score       *float64          `json:"score"`
	Questions   []tutor.Question  `json:"questions"`
	UserAnswers map[string]string `json:"user_answers"`
}

type dynamicTestRequest struct {
	Topic        string   `json:"topic"`
	WeakConcepts []string `json:"weak_concepts"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	err := s.store.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "Username already taken")
	case err != nil:
		logger(r.Context()).Error("register failed", "username", req.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create account")
	default:
		logger(r.Context()).Info("account created", "username", req.Username)
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "Account created!"})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	err := s.store.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, store.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
	case err != nil:
		logger(r.Context()).Error("login failed", "username", req.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "username": req.Username})
	}
}

func (s *Server) handleContent(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Structure())
}

func (s *Server) handleTopicDetails(w http.ResponseWriter, r *http.Request) {
	var req topicDetailsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	if req.Class == "" || req.Subject == "" || req.Topic == "" {
		writeError(w, http.StatusBadRequest, "Missing class, subject, or topic")
		return
	}

	log := logger(r.Context())

	notes, err := s.gen.Notes(r.Context(), req.Topic)
	if err != nil {
		log.Error("notes generation failed", "topic", req.Topic, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Providers sometimes answer with an error text instead of failing.
	if strings.Contains(notes, "Error:") {
		log.Error("notes generation returned an error", "topic", req.Topic, "notes", notes)
		writeError(w, http.StatusInternalServerError, notes)
		return
	}

	videoURL, ok := s.catalog.Video(req.Class, req.Subject, req.Topic)
	if !ok {
		log.Warn("no catalog video", "class", req.Class, "subject", req.Subject, "topic", req.Topic)
	}

	writeJSON(w, http.StatusOK, map[string]string{"notes": notes, "video_url": videoURL})
}

func (s *Server) handleGenerateTest(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "Missing topic")
		return
	}

	questions, err := s.gen.Questions(r.Context(), req.Topic)
	if err != nil {
		msg := fmt.Sprintf("Failed to generate test questions for topic: %s", req.Topic)
		logger(r.Context()).Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (s *Server) handleSubmitTest(w http.ResponseWriter, r *http.Request) {
	var req submitTestRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	if req.Username == "" || req.Subject == "" || req.Topic == "" || req.Score == nil {
		writeError(w, http.StatusBadRequest, "Missing username, subject, topic, or score")
		return
	}

	ctx := r.Context()
	log := logger(ctx)

	analysis, err := s.gen.Analyze(ctx, req.Questions, req.UserAnswers, req.Topic)
	if err != nil {
		msg := fmt.Sprintf("Failed to analyze results for topic: %s", req.Topic)
		log.Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	concepts := make([]string, 0, len(analysis))
	for i := range analysis {
		concept := analysis[i].ConceptName
		concepts = append(concepts, concept)
		analysis[i].VideoURL = s.finder.Find(ctx, concept+" tutorial")
	}

	result := store.TestResult{
		Username:     req.Username,
		Subject:      req.Subject,
		Topic:        req.Topic,
		Score:        int(*req.Score),
		WeakConcepts: concepts,
	}
	if err := s.store.RecordResult(ctx, result); err != nil {
		log.Error("failed to save results", "username", req.Username, "topic", req.Topic, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save results")
		return
	}

	log.Info("test submitted", "username", req.Username, "topic", req.Topic, "score", result.Score, "weak_concepts", len(concepts))
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleDynamicTest(w http.ResponseWriter, r *http.Request) {
	var req dynamicTestRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	if req.Topic == "" || len(req.WeakConcepts) == 0 {
		writeError(w, http.StatusBadRequest, "Missing topic or weak_concepts")
		return
	}

	questions, err := s.gen.DynamicAssessment(r.Context(), req.Topic, req.WeakConcepts)
	if err != nil {
		msg := fmt.Sprintf("Failed to generate dynamic test for topic: %s", req.Topic)
		logger(r.Context()).Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	records, ok := s.history(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// history loads the requesting user's records, writing the error response
// itself when it cannot.
func (s *Server) history(w http.ResponseWriter, r *http.Request) ([]store.HistoryRecord, bool) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "Missing username")
		return nil, false
	}

	records, err := s.store.History(r.Context(), username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "No data found")
		return nil, false
	case err != nil:
		logger(r.Context()).Error("analytics query failed", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return records, true
}
