package lists

import "errors"

var (
	// ErrEmptyList is returned by operations that need at least one node to work on.
	ErrEmptyList = errors.New("list is empty")
	// ErrKeyNotFound is returned when a full scan finished without a match. The list is left untouched.
	ErrKeyNotFound = errors.New("key was not found")
	// ErrUnsupportedOperation is returned when a list lacks the requested capability, e.g. appending to an
	// ordered list.
	ErrUnsupportedOperation = errors.New("operation is not supported")
)
