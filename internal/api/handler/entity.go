package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/resolver"
	"github.com/maraichr/cdm/pkg/apierr"
	"github.com/maraichr/cdm/pkg/models"
)

// EntityHandler serves read-only views of the published build. Each request
// reads the snapshot once, so a concurrent rebuild never mixes two builds in
// one response.
type EntityHandler struct {
	logger   *slog.Logger
	snapshot *resolver.Snapshot
}

func NewEntityHandler(logger *slog.Logger, snapshot *resolver.Snapshot) *EntityHandler {
	return &EntityHandler{logger: logger, snapshot: snapshot}
}

func (h *EntityHandler) ListLibrary(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, scopeLibrary)
}

func (h *EntityHandler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, scopeLibrary)
}

func (h *EntityHandler) ListProject(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, scopeProject)
}

func (h *EntityHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, scopeProject)
}

// Build describes the published build.
func (h *EntityHandler) Build(w http.ResponseWriter, r *http.Request) {
	res := h.snapshot.Load()
	if res == nil {
		writeAPIError(w, h.logger, apierr.BuildNotReady())
		return
	}
	writeJSON(w, http.StatusOK, res.Summary())
}

func (h *EntityHandler) list(w http.ResponseWriter, r *http.Request, s scope) {
	res := h.snapshot.Load()
	if res == nil {
		writeAPIError(w, h.logger, apierr.BuildNotReady())
		return
	}
	kind, e := validateKind(s, chi.URLParam(r, "kind"))
	if e != nil {
		writeAPIError(w, h.logger, e)
		return
	}
	limit, offset, e := parsePage(r)
	if e != nil {
		writeAPIError(w, h.logger, e)
		return
	}

	views, _ := views(res, kind)
	total := len(views)
	start := min(offset, total)
	end := min(start+limit, total)

	writeJSON(w, http.StatusOK, map[string]any{
		"kind":     kind,
		"run_id":   res.RunID,
		"entities": views[start:end],
		"total":    total,
	})
}

func (h *EntityHandler) get(w http.ResponseWriter, r *http.Request, s scope) {
	res := h.snapshot.Load()
	if res == nil {
		writeAPIError(w, h.logger, apierr.BuildNotReady())
		return
	}
	kind, e := validateKind(s, chi.URLParam(r, "kind"))
	if e != nil {
		writeAPIError(w, h.logger, e)
		return
	}
	id := chi.URLParam(r, "id")

	var (
		v  models.EntityView
		ok bool
	)
	if kind.IsLibrary() {
		v, ok = res.Library.View(kind, id)
	} else {
		v, ok = res.Project.View(kind, id)
	}
	if !ok {
		writeAPIError(w, h.logger, apierr.EntityNotFound(string(kind), id))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func views(res *resolver.Result, kind entity.Kind) ([]models.EntityView, bool) {
	if kind.IsLibrary() {
		return res.Library.Views(kind)
	}
	return res.Project.Views(kind)
}
