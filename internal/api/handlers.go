package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/parley-ai/parley/internal/debate"
	"github.com/parley-ai/parley/internal/model"
	"github.com/parley-ai/parley/internal/snippet"
	"github.com/parley-ai/parley/internal/store"
)

// --- Health ---

type healthResponse struct {
	Status       string `json:"status"`
	Available    bool   `json:"available"`
	FallbackMode bool   `json:"fallback_mode"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := s.orchestrator.Health()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		Available:    h.Available,
		FallbackMode: h.FallbackMode,
	})
}

// --- Analyze ---

type analyzeRequest struct {
	Content  string `json:"content"`
	Filename string `json:"filename,omitempty"`
}

type analyzeResponse struct {
	SnippetID string                       `json:"snippet_id"`
	Language  string                       `json:"language"`
	Result    model.EnhancedAnalysisResult `json:"result"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	snip := snippet.New(req.Content, req.Filename)
	if err := s.store.PutSnippet(snip); err != nil {
		writeError(w, http.StatusInternalServerError, "storing snippet: "+err.Error())
		return
	}

	result := s.orchestrator.Analyze(r.Context(), snip)

	writeJSON(w, http.StatusOK, analyzeResponse{
		SnippetID: snip.ID,
		Language:  snip.Language,
		Result:    result,
	})
}

// --- Suggest ---

type suggestRequest struct {
	Content  string `json:"content"`
	Filename string `json:"filename,omitempty"`
}

type suggestResponse struct {
	SessionID   string               `json:"session_id"`
	Suggestions []model.AISuggestion `json:"suggestions"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	snip := snippet.New(req.Content, req.Filename)
	if err := s.store.PutSnippet(snip); err != nil {
		writeError(w, http.StatusInternalServerError, "storing snippet: "+err.Error())
		return
	}

	result := s.orchestrator.Analyze(r.Context(), snip)

	record := store.SessionRecord{
		ID:          model.NewID(),
		SnippetID:   snip.ID,
		Suggestions: result.PrioritizedSuggestions,
		CreatedAt:   time.Now(),
	}
	if err := s.store.PutSession(record); err != nil {
		writeError(w, http.StatusInternalServerError, "storing session: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, suggestResponse{
		SessionID:   record.ID,
		Suggestions: record.Suggestions,
	})
}

// --- Debate ---

type debateStartRequest struct {
	LineStart    int    `json:"line_start"`
	LineEnd      int    `json:"line_end"`
	OriginalCode string `json:"original_code"`
	ProposedCode string `json:"proposed_code"`
	Reason       string `json:"reason"`
}

type debateStartResponse struct {
	Session   model.DebateSession   `json:"session"`
	Arguments model.DebateArguments `json:"arguments"`
}

func (s *Server) handleDebateStart(w http.ResponseWriter, r *http.Request) {
	var req debateStartRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.ProposedCode == "" {
		writeError(w, http.StatusBadRequest, "proposed_code is required")
		return
	}

	change := model.CodeChange{
		ID:           model.NewID(),
		LineStart:    req.LineStart,
		LineEnd:      req.LineEnd,
		OriginalCode: req.OriginalCode,
		ProposedCode: req.ProposedCode,
		Reason:       req.Reason,
	}

	session, args, err := s.engine.Start(r.Context(), change)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "starting debate: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, debateStartResponse{Session: session, Arguments: args})
}

type debateContinueRequest struct {
	SessionID string `json:"session_id"`
	Input     string `json:"input"`
}

func (s *Server) handleDebateContinue(w http.ResponseWriter, r *http.Request) {
	var req debateContinueRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.SessionID == "" || req.Input == "" {
		writeError(w, http.StatusBadRequest, "session_id and input are required")
		return
	}

	response, err := s.engine.Continue(r.Context(), req.SessionID, req.Input)
	if err != nil {
		writeError(w, debateErrorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func debateErrorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, debate.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
