package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/solar-dashboard/internal/config"
	"github.com/DoyleJ11/solar-dashboard/internal/engine"
	"github.com/DoyleJ11/solar-dashboard/internal/httpapi"
	"github.com/DoyleJ11/solar-dashboard/internal/hub"
	"github.com/DoyleJ11/solar-dashboard/internal/logging"
	"github.com/DoyleJ11/solar-dashboard/internal/notifier"
	"github.com/DoyleJ11/solar-dashboard/internal/page"
	"github.com/DoyleJ11/solar-dashboard/internal/scheduler"
	"github.com/DoyleJ11/solar-dashboard/internal/source"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Dev)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		src source.Fetcher
		dir *source.Dir
	)
	if cfg.Data.BaseURL != "" {
		src, err = source.NewHTTP(cfg.Data.BaseURL, cfg.Data.FetchTimeout)
		if err != nil {
			return err
		}
	} else {
		dir = source.NewDir(cfg.Data.Root)
		src = dir
	}

	pings := notifier.New()
	sched := scheduler.New(src, scheduler.Config{
		PollPage: cfg.Schedule.PollPage,
		Interval: cfg.Schedule.PollInterval,
		Slugs:    cfg.Schedule.BlogSlugs,
	}, pings, log)

	rules := engine.DefaultRules()
	rules.ScrollThreshold = cfg.UI.ScrollThreshold
	opts := page.Options{SubmitDelay: cfg.UI.SubmitDelay, ResetDelay: cfg.UI.ResetDelay}

	h := hub.NewHub(ctx, hub.PageSpawner(engine.DefaultTargets(), rules, opts, sched, log), log)

	// Build the router *with* the hub injected
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.SetupRoutes(h, src, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Data.WatchReports {
		if dir == nil {
			log.Warn("WATCH_REPORTS ignored for remote data source")
		} else {
			g.Go(func() error {
				return source.Watch(gctx, dir.Root(), pings, log.Named("watch"))
			})
		}
	}

	return g.Wait()
}
