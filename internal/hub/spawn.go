package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/DoyleJ11/solar-dashboard/internal/engine"
	"github.com/DoyleJ11/solar-dashboard/internal/page"
	"github.com/DoyleJ11/solar-dashboard/internal/scheduler"
)

// PageSpawner opens a page from its layout and starts its scheduler. The
// scheduler stops when the page shuts down.
func PageSpawner(t engine.Targets, r engine.Rules, opts page.Options, sched *scheduler.Scheduler, log *zap.Logger) Spawner {
	return func(ctx context.Context, code, name string) *page.Page {
		s, err := engine.NewState(name, t, r)
		if err != nil {
			log.Debug("refusing session", zap.Error(err))
			return nil
		}
		p := page.New(ctx, code, s, opts, log)
		sched.Start(p.Context(), name, p)
		return p
	}
}
