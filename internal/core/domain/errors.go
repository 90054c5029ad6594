package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSearchUnavailable indicates the full-text index is not configured.
	ErrSearchUnavailable = errors.New("search index unavailable")

	// Source Errors.

	// ErrRateLimited indicates a remote source refused the request for rate reasons.
	ErrRateLimited = errors.New("rate limited")

	// ErrMalformedPayload indicates a remote source returned an unexpected shape.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrSkipped indicates an adapter had too little query signal to make a call.
	ErrSkipped = errors.New("query skipped")

	// Extraction Errors.

	// ErrEmptyExtraction indicates a document yielded no indexable text.
	// Image-only scans are the usual cause.
	ErrEmptyExtraction = errors.New("no extractable text")

	// ErrEncryptedDocument indicates a PDF is encrypted and cannot be read.
	ErrEncryptedDocument = errors.New("document is encrypted")

	// Library Errors.

	// ErrInvalidBackup indicates an import payload is not a valid backup.
	ErrInvalidBackup = errors.New("invalid backup format")
)
