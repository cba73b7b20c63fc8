package handler

import (
	"net/http"

	"github.com/maraichr/cdm/internal/resolver"
	"github.com/maraichr/cdm/pkg/apierr"
)

type HealthHandler struct {
	snapshot *resolver.Snapshot
}

func NewHealthHandler(snapshot *resolver.Snapshot) *HealthHandler {
	return &HealthHandler{snapshot: snapshot}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports ready once a build has been published.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.snapshot.Load() == nil {
		writeAPIError(w, nil, apierr.BuildNotReady())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
