package repository

import "errors"

// Sentinels returned by every store implementation. Adapters wrap driver
// errors in these so services never import a driver package.
var (
	// ErrNotFound covers missing bookings, sessions and cache entries alike.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned on a unique index clash, e.g. a reused payment reference.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrOptimisticLock means the stored version moved on since the caller read it.
	ErrOptimisticLock = errors.New("booking was modified concurrently, reload and retry")

	ErrUpdateFailed = errors.New("booking update matched no document")
)
