// Package scheduler loads the report files into a page: once when the page
// opens, then on a fixed interval for the poll page.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/solar-dashboard/internal/content"
	"github.com/DoyleJ11/solar-dashboard/internal/engine"
	"github.com/DoyleJ11/solar-dashboard/internal/notifier"
	"github.com/DoyleJ11/solar-dashboard/internal/report"
	"github.com/DoyleJ11/solar-dashboard/internal/source"
)

// Dispatcher receives render commands. Dispatch reports false once the
// target is gone.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd engine.Command) bool
}

type Config struct {
	// PollPage is the only page refreshed on the timer.
	PollPage string
	Interval time.Duration
	// Slugs are loaded in this order, once per page.
	Slugs []string
}

type Scheduler struct {
	src   source.Fetcher
	cfg   Config
	pings *notifier.Notifier
	log   *zap.Logger
	now   func() time.Time
}

// New builds a scheduler. pings may be nil.
func New(src source.Fetcher, cfg Config, pings *notifier.Notifier, log *zap.Logger) *Scheduler {
	return &Scheduler{
		src:   src,
		cfg:   cfg,
		pings: pings,
		log:   log.Named("scheduler"),
		now:   time.Now,
	}
}

// Handle controls one page's refresh loop.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
}

func (h *Handle) spawn(fn func()) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		fn()
	}()
}

// Stop cancels the loop and any in-flight refresh and waits for them.
func (h *Handle) Stop() {
	h.cancel()
	<-h.done
}

// Done is closed once the loop and all refreshes have exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Start loads stats, leads and blog cards into d right away. On the poll
// page it refreshes stats and leads every interval and on each change ping
// until ctx ends or Stop is called. Refreshes are not serialised: a slow one
// may finish after the next has started.
func (s *Scheduler) Start(ctx context.Context, page string, d Dispatcher) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	h.spawn(func() { s.refreshStats(ctx, d) })
	h.spawn(func() { s.refreshLeads(ctx, d) })
	h.spawn(func() { s.loadBlogs(ctx, d) })

	if page == s.cfg.PollPage && s.cfg.Interval > 0 {
		var pings chan struct{}
		if s.pings != nil {
			pings = s.pings.Subscribe()
		}

		h.spawn(func() {
			if pings != nil {
				defer s.pings.Unsubscribe(pings)
			}
			t := time.NewTicker(s.cfg.Interval)
			defer t.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
				case <-pings:
				}
				h.spawn(func() {
					s.refreshStats(ctx, d)
					s.refreshLeads(ctx, d)
				})
			}
		})
	}

	go func() {
		<-ctx.Done()
		h.wg.Wait()
		close(h.done)
	}()
	return h
}

func (s *Scheduler) refreshStats(ctx context.Context, d Dispatcher) {
	data, err := s.src.Fetch(ctx, source.SummaryPath)
	if err != nil {
		s.log.Debug("stats not available yet", zap.Error(err))
		return
	}
	stats, err := report.DecodeSummary(data)
	if err != nil {
		s.log.Warn("stats unreadable", zap.Error(err))
		return
	}
	d.Dispatch(ctx, engine.Command{Type: engine.CmdRenderStats, Stats: stats, At: s.now()})
}

func (s *Scheduler) refreshLeads(ctx context.Context, d Dispatcher) {
	data, err := s.src.Fetch(ctx, source.LeadsPath)
	if err != nil {
		s.log.Debug("lead data not available yet", zap.Error(err))
		return
	}
	d.Dispatch(ctx, engine.Command{Type: engine.CmdRenderLeads, Leads: report.ParseLeads(string(data))})
}

// loadBlogs fetches one slug at a time so cards land in list order.
func (s *Scheduler) loadBlogs(ctx context.Context, d Dispatcher) {
	if !d.Dispatch(ctx, engine.Command{Type: engine.CmdClearBlogs}) {
		return
	}

	for _, slug := range s.cfg.Slugs {
		data, err := s.src.Fetch(ctx, source.BlogPath(slug))
		if err != nil {
			s.log.Debug("blog not available yet", zap.String("slug", slug), zap.Error(err))
			continue
		}
		snip := content.ExtractSnippet(slug, string(data))
		if !d.Dispatch(ctx, engine.Command{Type: engine.CmdAppendBlogCard, Snippet: snip}) {
			return
		}
	}
}
