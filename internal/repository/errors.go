package repository

import "errors"

// Adapters wrap these with the failing operation; callers match with errors.Is.
var (
	ErrNotFound       = errors.New("record not found")
	ErrAlreadyExists  = errors.New("record with the same unique key already exists")
	ErrOptimisticLock = errors.New("record was modified concurrently, reload and retry")
	ErrUpdateFailed   = errors.New("record update matched nothing")
)
