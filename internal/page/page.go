package page

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/solar-dashboard/internal/engine"
)

type Msg interface{ isPageMsg() }

// FromClient carries a command from a browser or the scheduler.
type FromClient struct {
	Cmd engine.Command
}

func (FromClient) isPageMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isPageMsg() {}

type Leave struct {
	ClientID string
	// Remaining, if set, receives the client count after the leave.
	Remaining chan int
}

func (Leave) isPageMsg() {}

type Shutdown struct{}

func (Shutdown) isPageMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isPageMsg() {}

// formTimer is sent by the page's own delay timers.
type formTimer struct {
	Cmd engine.Command
}

func (formTimer) isPageMsg() {}

type Snapshot struct {
	Version int
	State   engine.State
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
}

// Options are the form simulation delays.
type Options struct {
	SubmitDelay time.Duration
	ResetDelay  time.Duration
}

func DefaultOptions() Options {
	return Options{SubmitDelay: 2 * time.Second, ResetDelay: 5 * time.Second}
}

// Page is one page load: it owns the element tree and applies every
// command in arrival order.
type Page struct {
	Code string

	inbox   chan Msg
	state   engine.State
	version int
	clients map[string]chan Snapshot
	timers  []*time.Timer
	opts    Options
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, code string, initial engine.State, opts Options, log *zap.Logger) *Page {
	ctx, cancel := context.WithCancel(parent)

	p := &Page{
		Code:    code,
		inbox:   make(chan Msg, 64),
		state:   initial,
		clients: make(map[string]chan Snapshot),
		opts:    opts,
		log:     log.With(zap.String("page", initial.Page), zap.String("code", code)),
		ctx:     ctx,
		cancel:  cancel,
	}

	go p.loop()
	return p
}

func (p *Page) loop() {
	for {
		select {
		case <-p.ctx.Done():
			p.shutdown()
			return

		case m := <-p.inbox:
			switch msg := m.(type) {
			case Join:
				p.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: p.version, State: p.state}

			case Leave:
				if ch, ok := p.clients[msg.ClientID]; ok {
					close(ch)
					delete(p.clients, msg.ClientID)
				}
				if msg.Remaining != nil {
					msg.Remaining <- len(p.clients)
				}

			case FromClient:
				p.apply(msg.Cmd)

			case formTimer:
				p.apply(msg.Cmd)

			case GetState:
				msg.Reply <- View{
					Version:    p.version,
					NumClients: len(p.clients),
					State:      p.state,
				}

			case Shutdown:
				p.shutdown()
				return
			}
		}
	}
}

func (p *Page) apply(cmd engine.Command) {
	events, next, err := engine.Apply(p.state, cmd)
	if err != nil {
		p.log.Debug("command rejected", zap.String("cmd", string(cmd.Type)), zap.Error(err))
		return
	}
	if len(events) == 0 {
		return
	}

	p.state = next
	p.version++

	switch {
	case engine.ContainsEvent(events, engine.EvtFormSubmitted):
		p.after(p.opts.SubmitDelay, engine.Command{Type: engine.CmdFormComplete})
	case engine.ContainsEvent(events, engine.EvtFormCompleted):
		p.after(p.opts.ResetDelay, engine.Command{Type: engine.CmdFormRestore})
	case engine.ContainsEvent(events, engine.EvtFormRestored):
		p.timers = nil // both have fired
	}

	p.broadcast(Snapshot{Version: p.version, State: p.state})
}

// after feeds cmd back into the inbox once d has passed, unless the page
// has shut down by then.
func (p *Page) after(d time.Duration, cmd engine.Command) {
	t := time.AfterFunc(d, func() {
		select {
		case p.inbox <- formTimer{Cmd: cmd}:
		case <-p.ctx.Done():
		}
	})
	p.timers = append(p.timers, t)
}

func (p *Page) shutdown() {
	for _, t := range p.timers {
		t.Stop()
	}
	p.timers = nil
	for id, ch := range p.clients {
		close(ch) // Tell client no more snapshots
		delete(p.clients, id)
	}
	p.cancel()
}

func (p *Page) broadcast(snap Snapshot) {
	for id, ch := range p.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			p.log.Info("dropping slow client", zap.String("client", id))
			close(ch)
			delete(p.clients, id)
		}
	}
}

// Inbox exposes the inbox so the ws layer and tests can send messages.
func (p *Page) Inbox() chan<- Msg { return p.inbox }

// Context is cancelled when the page shuts down.
func (p *Page) Context() context.Context { return p.ctx }

// Dispatch queues cmd for the page. It gives up, returning false, when ctx
// ends or the page has shut down.
func (p *Page) Dispatch(ctx context.Context, cmd engine.Command) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.inbox <- FromClient{Cmd: cmd}:
		return true
	case <-ctx.Done():
		return false
	case <-p.ctx.Done():
		return false
	}
}

// Request sends a message to the page unless it has already shut down.
func (p *Page) Request(msg Msg) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.inbox <- msg:
		return true
	case <-p.ctx.Done():
		return false
	}
}
