package utils

// Pair couples a key with its value, e.g. a list key with the length of its list when listing keys.
type Pair[K any, V any] struct {
	Key   K
	Value V
}
