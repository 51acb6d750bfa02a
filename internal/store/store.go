// Package store defines the narrow persistence contracts the engine consumes
// and provides in-memory implementations for serve mode and tests.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/parley-ai/parley/internal/model"
)

// ErrNotFound is returned for lookups of unknown ids. This is the one class
// of error the engine propagates to callers instead of degrading.
var ErrNotFound = errors.New("store: not found")

// SessionRecord is a review session as the engine sees it: just an id and
// its attached suggestions. Everything else about sessions belongs to the
// collaborating application.
type SessionRecord struct {
	ID          string               `json:"id"`
	SnippetID   string               `json:"snippet_id,omitempty"`
	Suggestions []model.AISuggestion `json:"suggestions,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// SnippetStore looks up immutable code snippets by id.
type SnippetStore interface {
	GetSnippet(id string) (model.CodeSnippet, error)
	PutSnippet(snippet model.CodeSnippet) error
}

// SessionStore reads review sessions and attaches suggestions to them.
type SessionStore interface {
	GetSession(id string) (SessionRecord, error)
	PutSession(record SessionRecord) error
	SetSuggestions(id string, suggestions []model.AISuggestion) error
}

// DebateStore persists debate sessions. Mutation is last-writer-wins; the
// engine does not assume optimistic concurrency from the backing store.
type DebateStore interface {
	GetDebate(id string) (model.DebateSession, error)
	PutDebate(session model.DebateSession) error
}

// Memory is a mutex-guarded in-memory implementation of all three stores.
type Memory struct {
	mu       sync.RWMutex
	snippets map[string]model.CodeSnippet
	sessions map[string]SessionRecord
	debates  map[string]model.DebateSession
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		snippets: make(map[string]model.CodeSnippet),
		sessions: make(map[string]SessionRecord),
		debates:  make(map[string]model.DebateSession),
	}
}

func (m *Memory) GetSnippet(id string) (model.CodeSnippet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snippet, ok := m.snippets[id]
	if !ok {
		return model.CodeSnippet{}, ErrNotFound
	}
	return snippet, nil
}

func (m *Memory) PutSnippet(snippet model.CodeSnippet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snippets[snippet.ID] = snippet
	return nil
}

func (m *Memory) GetSession(id string) (SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.sessions[id]
	if !ok {
		return SessionRecord{}, ErrNotFound
	}
	return record, nil
}

func (m *Memory) PutSession(record SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[record.ID] = record
	return nil
}

func (m *Memory) SetSuggestions(id string, suggestions []model.AISuggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	record.Suggestions = suggestions
	m.sessions[id] = record
	return nil
}

func (m *Memory) GetDebate(id string) (model.DebateSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.debates[id]
	if !ok {
		return model.DebateSession{}, ErrNotFound
	}
	return session, nil
}

func (m *Memory) PutDebate(session model.DebateSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debates[session.ID] = session
	return nil
}

// Interface checks.
var (
	_ SnippetStore = (*Memory)(nil)
	_ SessionStore = (*Memory)(nil)
	_ DebateStore  = (*Memory)(nil)
)
