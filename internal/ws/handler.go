package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/solar-dashboard/internal/engine"
	"github.com/DoyleJ11/solar-dashboard/internal/hub"
	"github.com/DoyleJ11/solar-dashboard/internal/page"
	"github.com/DoyleJ11/solar-dashboard/pkg/types"
)

// Handler streams a session's snapshots and feeds browser events back into
// it. The session ends with the connection.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	log = log.Named("ws")

	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("session")
		if code == "" {
			http.Error(w, "missing session", http.StatusBadRequest)
			return
		}

		p := h.Session(r.Context(), code)
		if p == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			log.Debug("accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan page.Snapshot, 8)
		clientID := uuid.NewString()

		if !p.Request(page.Join{ClientID: clientID, Outbox: out}) {
			return
		}
		defer func() {
			// The session goes with its last client.
			remaining := make(chan int, 1)
			if !p.Request(page.Leave{ClientID: clientID, Remaining: remaining}) {
				h.Remove(code)
				return
			}
			select {
			case n := <-remaining:
				if n == 0 {
					h.Remove(code)
				}
			case <-p.Context().Done():
				h.Remove(code)
			}
		}()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			pump(writeCtx, p.Context().Done(), out, func(ctx context.Context, payload []byte) error {
				return conn.Write(ctx, websocket.MessageText, payload)
			}, log)
			// page dropped us or shut down
			writeCancel()
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(writeCtx)
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("read ended", zap.String("session", code), zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(writeCtx, conn, "bad json")
				continue
			}

			cmd, ok := toEngineCommand(cm)
			if !ok {
				writeError(writeCtx, conn, "unknown type")
				continue
			}

			if !p.Dispatch(writeCtx, cmd) {
				return
			}
		}
	}
}

// pump writes snapshots from out until out is closed, ctx ends or the page
// stops. A Join queued just before shutdown never gets out closed.
func pump(ctx context.Context, pageDone <-chan struct{}, out <-chan page.Snapshot, write func(context.Context, []byte) error, log *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-pageDone:
			return
		case snap, ok := <-out:
			if !ok {
				return
			}
			msg := types.ServerMessage{Type: types.MsgStateSnapshot, Version: snap.Version, State: &snap.State}
			payload, err := json.Marshal(msg)
			if err != nil {
				log.Error("encode snapshot", zap.Error(err))
				continue
			}
			wctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			_ = write(wctx, payload)
			cancel()
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: types.MsgError, Error: msg})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func toEngineCommand(m types.ClientMessage) (engine.Command, bool) {
	switch m.Type {
	case types.MsgScroll:
		return engine.Command{Type: engine.CmdScroll, ScrollY: m.ScrollY}, true
	case types.MsgInput:
		return engine.Command{Type: engine.CmdFormInput, Name: m.Name, Value: m.Value}, true
	case types.MsgSubmit:
		return engine.Command{Type: engine.CmdSubmitForm}, true
	default:
		return engine.Command{}, false
	}
}
