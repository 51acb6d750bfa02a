package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/parley-ai/parley/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev; restrict in production
	},
}

// WebSocket message types from client.
const (
	wsMsgStart    = "start"
	wsMsgArgue    = "argue"
	wsMsgArgument = "add_argument"
	wsMsgCounter  = "counter"
	wsMsgConclude = "conclude"
	wsMsgAbandon  = "abandon"
)

// WebSocket message types to client.
const (
	wsMsgStarted  = "started"
	wsMsgReply    = "reply"
	wsMsgAdded    = "argument_added"
	wsMsgFinished = "finished"
	wsMsgError    = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsStart is the payload for "start" messages.
type wsStart struct {
	LineStart    int    `json:"line_start"`
	LineEnd      int    `json:"line_end"`
	OriginalCode string `json:"original_code"`
	ProposedCode string `json:"proposed_code"`
	Reason       string `json:"reason"`
}

// wsArgue is the payload for "argue" messages.
type wsArgue struct {
	Input string `json:"input"`
}

// wsAddArgument is the payload for "add_argument" messages.
type wsAddArgument struct {
	Content string `json:"content"`
	Stance  string `json:"stance"`
}

// wsCounter is the payload for "counter" messages.
type wsCounter struct {
	ArgumentID string `json:"argument_id"`
}

// wsConclude is the payload for "conclude" messages.
type wsConclude struct {
	Summary        string  `json:"summary"`
	Recommendation string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"`
}

type wsStartedResponse struct {
	Session   model.DebateSession   `json:"session"`
	Arguments model.DebateArguments `json:"arguments"`
}

// debateConn tracks the one debate a WebSocket connection is driving.
type debateConn struct {
	sessionID string
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	state := &debateConn{}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read: %v", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendWSError(conn, "invalid message format")
			continue
		}

		switch msg.Type {
		case wsMsgStart:
			s.handleWSStart(r.Context(), conn, state, msg.Data)
		case wsMsgArgue:
			s.handleWSArgue(r.Context(), conn, state, msg.Data)
		case wsMsgArgument:
			s.handleWSAddArgument(conn, state, msg.Data)
		case wsMsgCounter:
			s.handleWSCounter(r.Context(), conn, state, msg.Data)
		case wsMsgConclude:
			s.handleWSConclude(conn, state, msg.Data)
		case wsMsgAbandon:
			s.handleWSAbandon(conn, state)
		default:
			sendWSError(conn, "unknown message type: "+msg.Type)
		}
	}
}

func (s *Server) handleWSStart(ctx context.Context, conn *websocket.Conn, state *debateConn, data json.RawMessage) {
	var req wsStart
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid start data")
		return
	}
	if req.ProposedCode == "" {
		sendWSError(conn, "proposed_code is required")
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

	session, args, err := s.engine.Start(ctx, change)
	if err != nil {
		sendWSError(conn, "starting debate: "+err.Error())
		return
	}

	state.sessionID = session.ID
	sendWSMessage(conn, wsMsgStarted, wsStartedResponse{Session: session, Arguments: args})
}

func (s *Server) handleWSArgue(ctx context.Context, conn *websocket.Conn, state *debateConn, data json.RawMessage) {
	if state.sessionID == "" {
		sendWSError(conn, "no debate started")
		return
	}

	var req wsArgue
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid argue data")
		return
	}

	response, err := s.engine.Continue(ctx, state.sessionID, req.Input)
	if err != nil {
		sendWSError(conn, err.Error())
		return
	}

	sendWSMessage(conn, wsMsgReply, response)
}

func (s *Server) handleWSAddArgument(conn *websocket.Conn, state *debateConn, data json.RawMessage) {
	if state.sessionID == "" {
		sendWSError(conn, "no debate started")
		return
	}

	var req wsAddArgument
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid add_argument data")
		return
	}

	arg, err := s.engine.AddUserArgument(state.sessionID, req.Content, model.ParseArgumentType(req.Stance))
	if err != nil {
		sendWSError(conn, err.Error())
		return
	}

	sendWSMessage(conn, wsMsgAdded, arg)
}

func (s *Server) handleWSCounter(ctx context.Context, conn *websocket.Conn, state *debateConn, data json.RawMessage) {
	if state.sessionID == "" {
		sendWSError(conn, "no debate started")
		return
	}

	var req wsCounter
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid counter data")
		return
	}

	arg, err := s.engine.GenerateCounterArgument(ctx, state.sessionID, req.ArgumentID)
	if err != nil {
		sendWSError(conn, err.Error())
		return
	}

	sendWSMessage(conn, wsMsgAdded, arg)
}

func (s *Server) handleWSConclude(conn *websocket.Conn, state *debateConn, data json.RawMessage) {
	if state.sessionID == "" {
		sendWSError(conn, "no debate started")
		return
	}

	var req wsConclude
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid conclude data")
		return
	}

	session, err := s.engine.Conclude(state.sessionID, model.DebateConclusion{
		Summary:        req.Summary,
		Recommendation: req.Recommendation,
		Confidence:     req.Confidence,
	})
	if err != nil {
		sendWSError(conn, err.Error())
		return
	}

	sendWSMessage(conn, wsMsgFinished, session)
}

func (s *Server) handleWSAbandon(conn *websocket.Conn, state *debateConn) {
	if state.sessionID == "" {
		sendWSError(conn, "no debate started")
		return
	}

	session, err := s.engine.Abandon(state.sessionID)
	if err != nil {
		sendWSError(conn, err.Error())
		return
	}

	sendWSMessage(conn, wsMsgFinished, session)
}

func sendWSMessage(conn *websocket.Conn, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("ws marshal: %v", err)
		return
	}
	msg := wsMessage{Type: msgType, Data: raw}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("ws write: %v", err)
	}
}

func sendWSError(conn *websocket.Conn, errMsg string) {
	sendWSMessage(conn, wsMsgError, map[string]string{"message": errMsg})
}
