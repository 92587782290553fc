package domain

import "errors"

// Retrieval errors are caller-facing contract violations.
// They are never transient and must not be retried.
var (
	// ErrInvalidQuery indicates a malformed query, e.g. a non-positive top-k.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmptyIndex indicates a query against an index with no documents.
	ErrEmptyIndex = errors.New("empty index")

	// ErrMissingDocument indicates a document-id query for an id outside the index.
	ErrMissingDocument = errors.New("missing document")
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedKind indicates an unknown collection kind.
	ErrUnsupportedKind = errors.New("unsupported collection kind")

	// ErrFetchFailed indicates a document source could not fetch its data.
	ErrFetchFailed = errors.New("fetch failed")
)
