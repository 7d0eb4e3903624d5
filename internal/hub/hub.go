package hub

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/solar-dashboard/internal/page"
)

// Spawner opens a page of the given name under ctx. It returns nil for an
// unknown page.
type Spawner func(ctx context.Context, code, name string) *page.Page

type HubMsg interface{ isHubMsg() }

type CreateSession struct {
	Page  string
	Reply chan *page.Page // nil when the page name is unknown
}

type GetSession struct {
	Code  string
	Reply chan *page.Page
}

type RemoveSession struct {
	Code string
}

// test-only: reports the number of live sessions
type CountSessions struct {
	Reply chan int
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (RemoveSession) isHubMsg() {}
func (CountSessions) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// Hub tracks the live page sessions.
type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*page.Page
	spawn    Spawner
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, spawn Spawner, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*page.Page),
		spawn:    spawn,
		log:      log.Named("hub"),
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Done is closed after the hub has shut down.
func (h *Hub) Done() <-chan struct{} { return h.ctx.Done() }

// Open creates a session for the named page. It returns nil for an unknown
// page or once the hub or ctx is done.
func (h *Hub) Open(ctx context.Context, name string) *page.Page {
	reply := make(chan *page.Page, 1)
	return h.ask(ctx, CreateSession{Page: name, Reply: reply}, reply)
}

// Session looks up a live session by code.
func (h *Hub) Session(ctx context.Context, code string) *page.Page {
	reply := make(chan *page.Page, 1)
	return h.ask(ctx, GetSession{Code: code, Reply: reply}, reply)
}

func (h *Hub) ask(ctx context.Context, msg HubMsg, reply chan *page.Page) *page.Page {
	select {
	case h.inbox <- msg:
	case <-h.ctx.Done():
		return nil
	case <-ctx.Done():
		return nil
	}
	select {
	case p := <-reply:
		return p
	case <-h.ctx.Done():
		return nil
	case <-ctx.Done():
		return nil
	}
}

// Remove tears a session down. It is a no-op once the hub is done.
func (h *Hub) Remove(code string) {
	select {
	case h.inbox <- RemoveSession{Code: code}:
	case <-h.ctx.Done():
	}
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				code := uuid.NewString()
				p := h.spawn(h.ctx, code, msg.Page)
				if p != nil {
					h.sessions[code] = p
					h.log.Info("session opened", zap.String("code", code), zap.String("page", msg.Page))
				}
				msg.Reply <- p

			case GetSession:
				msg.Reply <- h.sessions[msg.Code] // May be nil

			case RemoveSession:
				if p := h.sessions[msg.Code]; p != nil {
					p.Request(page.Shutdown{})
					delete(h.sessions, msg.Code)
					h.log.Info("session closed", zap.String("code", msg.Code))
				}

			case CountSessions:
				msg.Reply <- len(h.sessions)

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for _, p := range h.sessions {
		p.Request(page.Shutdown{})
	}
	clear(h.sessions)
	h.cancel()
}
