package openapi

import "errors"

// Loading errors.
var (
	// ErrInvalidDocument is returned when the source decodes but is not an
	// OpenAPI or Swagger document (missing version or info.title).
	ErrInvalidDocument = errors.New("openapi: invalid document")

	// ErrUnresolvedRef is returned when a local $ref points at nothing or
	// takes part in a reference cycle.
	ErrUnresolvedRef = errors.New("openapi: unresolved reference")

	// ErrFetch is returned when a remote document cannot be downloaded.
	ErrFetch = errors.New("openapi: fetch failed")
)
