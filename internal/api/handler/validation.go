package handler

import (
	"net/http"
	"strconv"

	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/pkg/apierr"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

type scope string

const (
	scopeLibrary scope = "library"
	scopeProject scope = "project"
)

func validateKind(s scope, raw string) (entity.Kind, *apierr.Error) {
	kind, ok := entity.ParseKind(raw)
	if !ok {
		return "", apierr.KindUnknown(raw, string(s))
	}
	if (s == scopeLibrary && !kind.IsLibrary()) || (s == scopeProject && !kind.IsProject()) {
		return "", apierr.KindUnknown(raw, string(s))
	}
	return kind, nil
}

// parsePage reads limit and offset. A missing limit means defaultLimit.
func parsePage(r *http.Request) (limit, offset int, e *apierr.Error) {
	limit = defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxLimit {
			return 0, 0, apierr.InvalidQuery("limit")
		}
		limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0, 0, apierr.InvalidQuery("offset")
		}
		offset = n
	}
	return limit, offset, nil
}
