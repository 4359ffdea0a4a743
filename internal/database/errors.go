package database

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDeleteVerification is returned when a delete reports success but the
	// row is still visible on re-read.
	ErrDeleteVerification = errors.New("delete verification failed: record still present")
)
