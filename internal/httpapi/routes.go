package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/solar-dashboard/internal/hub"
	"github.com/DoyleJ11/solar-dashboard/internal/source"
	"github.com/DoyleJ11/solar-dashboard/internal/ws"
)

func SetupRoutes(h *hub.Hub, src source.Fetcher, log *zap.Logger) http.Handler {
	log = log.Named("http")

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/sessions", CreateSession(h))
	r.Get("/sessions/{code}", GetSession(h))
	r.Get("/sessions/{code}/view", ViewSession(h, log))
	r.Delete("/sessions/{code}", DeleteSession(h))
	r.Get("/blog/{slug}", Article(src, log))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, log))
	return r
}
