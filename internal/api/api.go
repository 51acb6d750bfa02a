// Package api implements the HTTP and WebSocket API server for parley.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/parley-ai/parley/internal/debate"
	"github.com/parley-ai/parley/internal/review"
	"github.com/parley-ai/parley/internal/store"
)

// Server is the parley API server.
type Server struct {
	addr         string
	orchestrator *review.Orchestrator
	engine       *debate.Engine
	store        *store.Memory
	mux          *http.ServeMux
	server       *http.Server
}

// New creates a new API server around an analysis orchestrator, a debate
// engine and a shared in-memory store.
func New(addr string, orchestrator *review.Orchestrator, engine *debate.Engine, mem *store.Memory) *Server {
	s := &Server{
		addr:         addr,
		orchestrator: orchestrator,
		engine:       engine,
		store:        mem,
	}
	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /api/suggest", s.handleSuggest)
	s.mux.HandleFunc("POST /api/debate/start", s.handleDebateStart)
	s.mux.HandleFunc("POST /api/debate/continue", s.handleDebateContinue)
	s.mux.HandleFunc("GET /api/ws", s.handleWebSocket)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	log.Printf("parley API server listening on %s", s.addr)
	return s.server.ListenAndServe()
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("json encode error: %v", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes a JSON request body into v.
func readJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
