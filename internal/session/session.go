package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/inamate/stickerstage/internal/engine"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

// Session is one websocket connection with its own private editor. Commands
// are applied on the read goroutine, so the editor only ever sees one
// writer.
type Session struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	dispatch *Dispatcher

	ID       string
	ClientID string
}

func NewSession(hub *Hub, conn *websocket.Conn, e *engine.Engine, assets AssetLookup, id, clientID string) *Session {
	return &Session{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		dispatch: &Dispatcher{Engine: e, Assets: assets},
		ID:       id,
		ClientID: clientID,
	}
}

func (s *Session) ReadPump(ctx context.Context) {
	defer func() {
		s.hub.Unregister(s)
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	s.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "session", s.ID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "session", s.ID)
			continue
		}
		msg.SessionID = s.ID

		s.Send(s.Handle(&msg))
	}
}

func (s *Session) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-s.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "session", s.ID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Handle applies one incoming message and builds the reply.
func (s *Session) Handle(msg *Message) *Message {
	if msg.Type != TypeCommand {
		slog.Warn("unknown message type", "type", msg.Type, "session", s.ID)
		return errorMessage(msg.Seq, "", "unknown message type "+msg.Type)
	}

	var cmd CommandPayload
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		return errorMessage(msg.Seq, "", "invalid command payload: "+err.Error())
	}

	result, err := s.dispatch.Apply(cmd)
	if err != nil {
		slog.Debug("command rejected", "command", cmd.Name, "error", err, "session", s.ID)
		return errorMessage(msg.Seq, cmd.Name, err.Error())
	}

	payload, err := json.Marshal(s.dispatch.State(result))
	if err != nil {
		slog.Error("marshal state", "error", err)
		return errorMessage(msg.Seq, cmd.Name, "internal error")
	}
	return &Message{Type: TypeState, SessionID: s.ID, Seq: msg.Seq, Payload: payload}
}

func errorMessage(seq int64, command, reason string) *Message {
	payload, _ := json.Marshal(ErrorPayload{Command: command, Reason: reason})
	return &Message{Type: TypeError, Seq: seq, Payload: payload}
}

func (s *Session) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	select {
	case s.send <- data:
	default:
		slog.Warn("session send buffer full, dropping message", "session", s.ID)
	}
}
