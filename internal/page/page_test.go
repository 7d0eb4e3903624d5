package page

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/solar-dashboard/internal/engine"
	"github.com/DoyleJ11/solar-dashboard/internal/report"
)

// helper: receive one snapshot with a timeout so tests never hang
func recvSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for snapshot")
		return Snapshot{} // unreachable
	}
}

func recvNoSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			// channel closed → that's fine; no further snapshots possible
			return
		}
		t.Fatalf("expected no snapshot within %v, but got: %+v", within, s)
	case <-time.After(within):
		// good: no snapshot
	}
}

func recvView(t *testing.T, ch <-chan View, within time.Duration) View {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(within):
		t.Fatalf("timed out waiting for view")
		return View{} // unreachable
	}
}

func newTestPage(t *testing.T, name string, opts Options) (*Page, context.CancelFunc) {
	t.Helper()
	init, err := engine.NewState(name, engine.DefaultTargets(), engine.DefaultRules())
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return New(ctx, "TEST01", init, opts, zap.NewNop()), cancel
}

func buttonOf(s engine.State) engine.Element {
	for _, c := range s.Elements[engine.DefaultTargets().Form].Children {
		if c.Tag == "button" {
			return c
		}
	}
	return engine.Element{}
}

func TestPage_RenderBroadcastsSnapshotAndVersionIncrements(t *testing.T) {
	p, cancel := newTestPage(t, engine.PageDashboard, DefaultOptions())
	defer cancel()

	clientOut := make(chan Snapshot, 2)
	p.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}

	first := recvSnapshot(t, clientOut, 100*time.Millisecond)
	if first.Version != 0 {
		t.Fatalf("after join: want version=0, got %d", first.Version)
	}

	leads := report.ParseLeads("h\n2024-01-01,A,500000")
	p.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdRenderLeads, Leads: leads}}

	next := recvSnapshot(t, clientOut, 100*time.Millisecond)
	if next.Version != 1 {
		t.Fatalf("after render: want version=1, got %d", next.Version)
	}
	rows := next.State.Elements[engine.DefaultTargets().LeadTable].Children
	if len(rows) != 1 {
		t.Fatalf("after render: want 1 row, got %d", len(rows))
	}

	p.Inbox() <- Shutdown{}
}

func TestPage_NoOpCommandDoesNotBroadcast(t *testing.T) {
	p, cancel := newTestPage(t, engine.PageIndex, DefaultOptions())
	defer cancel()

	clientOut := make(chan Snapshot, 2)
	p.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}
	recvSnapshot(t, clientOut, 100*time.Millisecond)

	// index has no stat targets and the header is already unscrolled
	p.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdRenderStats}}
	p.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdScroll, ScrollY: 10}}
	recvNoSnapshot(t, clientOut, 50*time.Millisecond)

	reply := make(chan View, 1)
	p.Inbox() <- GetState{Reply: reply}
	if v := recvView(t, reply, 100*time.Millisecond); v.Version != 0 {
		t.Fatalf("want version 0, got %d", v.Version)
	}
}

func TestPage_DropSlowClient(t *testing.T) {
	p, cancel := newTestPage(t, engine.PageIndex, DefaultOptions())
	defer cancel()

	clientOut := make(chan Snapshot, 1)
	p.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}

	p.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdScroll, ScrollY: 200}}

	reply := make(chan View, 1)
	p.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	if view.NumClients != 0 {
		t.Fatalf("expected slow client to be dropped; NumClients=%d", view.NumClients)
	}
}

func TestPage_FormTimersDriveSimulation(t *testing.T) {
	opts := Options{SubmitDelay: 20 * time.Millisecond, ResetDelay: 40 * time.Millisecond}
	p, cancel := newTestPage(t, engine.PageIndex, opts)
	defer cancel()

	clientOut := make(chan Snapshot, 8)
	p.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}
	initialLabel := buttonOf(recvSnapshot(t, clientOut, 100*time.Millisecond).State).Text

	p.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdSubmitForm}}

	submitted := recvSnapshot(t, clientOut, 100*time.Millisecond)
	if submitted.State.Form.Phase != engine.FormSubmitting || !buttonOf(submitted.State).Disabled {
		t.Fatalf("expected submitting state, got %+v", submitted.State.Form)
	}

	completed := recvSnapshot(t, clientOut, 500*time.Millisecond)
	if completed.State.Form.Phase != engine.FormComplete {
		t.Fatalf("expected complete state, got %+v", completed.State.Form)
	}

	restored := recvSnapshot(t, clientOut, 500*time.Millisecond)
	b := buttonOf(restored.State)
	if restored.State.Form.Phase != engine.FormIdle || b.Disabled || b.Text != initialLabel {
		t.Fatalf("expected restored button, got %+v", b)
	}
	if restored.Version != 3 {
		t.Fatalf("want version 3 after full cycle, got %d", restored.Version)
	}
}

func TestPage_ShutdownStopsPendingTimers(t *testing.T) {
	opts := Options{SubmitDelay: 30 * time.Millisecond, ResetDelay: 30 * time.Millisecond}
	p, cancel := newTestPage(t, engine.PageIndex, opts)
	defer cancel()

	clientOut := make(chan Snapshot, 8)
	p.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}
	recvSnapshot(t, clientOut, 100*time.Millisecond)

	p.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdSubmitForm}}
	recvSnapshot(t, clientOut, 100*time.Millisecond)

	p.Inbox() <- Shutdown{}

	select {
	case _, ok := <-clientOut:
		if ok {
			t.Fatalf("expected outbox to be closed, got a snapshot")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("outbox was not closed on shutdown")
	}

	select {
	case <-p.Context().Done():
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("page context not cancelled")
	}

	if p.Dispatch(context.Background(), engine.Command{Type: engine.CmdScroll}) {
		t.Fatalf("dispatch after shutdown must fail")
	}
}

func TestPage_LeaveClosesOutbox(t *testing.T) {
	p, cancel := newTestPage(t, engine.PageBlog, DefaultOptions())
	defer cancel()

	clientOut := make(chan Snapshot, 2)
	p.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}
	recvSnapshot(t, clientOut, 100*time.Millisecond)

	p.Inbox() <- Leave{ClientID: "ch1"}
	recvNoSnapshot(t, clientOut, 100*time.Millisecond)

	reply := make(chan View, 1)
	p.Inbox() <- GetState{Reply: reply}
	if v := recvView(t, reply, 100*time.Millisecond); v.NumClients != 0 {
		t.Fatalf("want 0 clients, got %d", v.NumClients)
	}
}

func TestPage_LeaveReportsRemainingClients(t *testing.T) {
	p, cancel := newTestPage(t, engine.PageBlog, DefaultOptions())
	defer cancel()

	a := make(chan Snapshot, 2)
	b := make(chan Snapshot, 2)
	p.Inbox() <- Join{ClientID: "a", Outbox: a}
	p.Inbox() <- Join{ClientID: "b", Outbox: b}
	recvSnapshot(t, a, 100*time.Millisecond)
	recvSnapshot(t, b, 100*time.Millisecond)

	remaining := make(chan int, 1)
	p.Inbox() <- Leave{ClientID: "a", Remaining: remaining}
	select {
	case n := <-remaining:
		if n != 1 {
			t.Fatalf("want 1 remaining client, got %d", n)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("no reply to Leave")
	}

	// leaving twice still answers
	p.Inbox() <- Leave{ClientID: "a", Remaining: remaining}
	select {
	case n := <-remaining:
		if n != 1 {
			t.Fatalf("want 1 remaining client, got %d", n)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("no reply to repeated Leave")
	}
}
