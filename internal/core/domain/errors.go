package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Corpus Errors.

	// ErrConventionViolation indicates a path or directory name does not follow
	// the corpus naming convention where the convention is assumed to hold.
	// It is fatal to the unit of work that detected it.
	ErrConventionViolation = errors.New("corpus convention violation")

	// ErrMalformedRecord indicates an annotated source file could not be parsed.
	// Callers skip the file and keep going.
	ErrMalformedRecord = errors.New("malformed record")

	// Database Errors.

	// ErrDuplicateKey indicates a natural key already exists in the database.
	// The enclosing transaction (batch or merge) is rolled back entirely.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNoDatabases indicates there are no slice databases to combine.
	ErrNoDatabases = errors.New("no slice databases found")
)
