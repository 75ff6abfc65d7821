// Package repository contains the persistence contracts for the admission
// domain. Implementations live in subpackages (postgres); no business logic
// belongs here.
package repository

import "errors"

// ErrConflict is returned when an optimistic update finds the row changed
// since it was read (version mismatch) or in a state that forbids the write.
// Callers are expected to re-read and retry.
var ErrConflict = errors.New("repository: concurrent modification conflict")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
