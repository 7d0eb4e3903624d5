package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/solar-dashboard/internal/content"
	"github.com/DoyleJ11/solar-dashboard/internal/hub"
	"github.com/DoyleJ11/solar-dashboard/internal/page"
	"github.com/DoyleJ11/solar-dashboard/internal/source"
	"github.com/DoyleJ11/solar-dashboard/internal/view"
	"github.com/DoyleJ11/solar-dashboard/pkg/types"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func CreateSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Page string `json:"page"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Page == "" {
			http.Error(w, "missing page", http.StatusBadRequest)
			return
		}

		p := h.Open(r.Context(), req.Page)
		if p == nil {
			http.Error(w, "unknown page", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			Code string `json:"code"`
		}{Code: p.Code})
	}
}

// lookup resolves the {code} URL param and asks the page for its state.
func lookup(h *hub.Hub, w http.ResponseWriter, r *http.Request) (page.View, bool) {
	p := h.Session(r.Context(), chi.URLParam(r, "code"))
	if p == nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return page.View{}, false
	}

	views := make(chan page.View, 1)
	if !p.Request(page.GetState{Reply: views}) {
		http.Error(w, "session closed", http.StatusGone)
		return page.View{}, false
	}
	select {
	case v := <-views:
		return v, true
	case <-p.Context().Done():
		http.Error(w, "session closed", http.StatusGone)
		return page.View{}, false
	case <-r.Context().Done():
		return page.View{}, false
	}
}

func GetSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := lookup(h, w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, types.ServerMessage{Type: types.MsgStateSnapshot, Version: v.Version, State: &v.State})
	}
}

func ViewSession(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := lookup(h, w, r)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := view.Page(w, v.Version, v.State); err != nil {
			log.Error("render page", zap.Error(err))
		}
	}
}

func DeleteSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Remove(chi.URLParam(r, "code"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// Article renders the full Markdown post behind a blog card.
func Article(src source.Fetcher, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if !slugPattern.MatchString(slug) {
			http.NotFound(w, r)
			return
		}

		md, err := src.Fetch(r.Context(), source.BlogPath(slug))
		if errors.Is(err, source.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			log.Warn("fetch article", zap.String("slug", slug), zap.Error(err))
			http.Error(w, "article unavailable", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := view.Article(w, content.RenderArticle(slug, md)); err != nil {
			log.Error("render article", zap.Error(err))
		}
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
