package apierr

// Code is a machine-readable error code returned in API responses.
type Code string

// Common errors.
const (
	CodeInvalidQuery  Code = "INVALID_QUERY"
	CodeInternalError Code = "INTERNAL_ERROR"
)

// Entity errors.
const (
	CodeKindUnknown    Code = "KIND_UNKNOWN"
	CodeEntityNotFound Code = "ENTITY_NOT_FOUND"
)

// Build errors.
const (
	CodeBuildNotReady Code = "BUILD_NOT_READY"
)
