package apierr

import "net/http"

// --- Common ---

func InvalidQuery(param string) *Error {
	return New(CodeInvalidQuery, http.StatusBadRequest, "Invalid query parameter "+param).With("param", param)
}

func InternalError(cause error) *Error {
	return Wrap(CodeInternalError, http.StatusInternalServerError, "Internal server error", cause)
}

// --- Entity ---

// KindUnknown is returned for a kind that does not exist in the requested
// graph, e.g. "location" under /library.
func KindUnknown(kind, graph string) *Error {
	return New(CodeKindUnknown, http.StatusNotFound, "Unknown "+graph+" kind "+kind).
		With("kind", kind).
		With("graph", graph)
}

func EntityNotFound(kind, id string) *Error {
	return New(CodeEntityNotFound, http.StatusNotFound, kind+" "+id+" not found").
		With("kind", kind).
		With("id", id)
}

// --- Build ---

func BuildNotReady() *Error {
	return New(CodeBuildNotReady, http.StatusServiceUnavailable, "No successful build yet")
}
