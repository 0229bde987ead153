// Package sentinel defines the errors stores return for factual states
// about resources. Services translate them into coded domain errors;
// handlers never see them directly.
package sentinel

import "errors"

var (
	// ErrNotFound: the record does not exist in the store.
	ErrNotFound = errors.New("not found")
	// ErrConflict: the write would violate a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)
