package lists

// Matcher decides whether a stored value is the one a lookup is after.
type Matcher[T any] func(value T) bool

// KeyFunc extracts the key of a value used for lookups and ordering.
type KeyFunc[T any, K any] func(value T) K

// Identity is the default key function; a value is its own key.
func Identity[T any](value T) T {
	return value
}

// Equal matches values equal to `goal`.
func Equal[T comparable](goal T) Matcher[T] {
	return func(value T) bool { return value == goal }
}

// KeyEqual matches values whose key equals `goal`.
func KeyEqual[T any, K comparable](key KeyFunc[T, K], goal K) Matcher[T] {
	return func(value T) bool { return key(value) == goal }
}
