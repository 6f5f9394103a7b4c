package common

// Coalesce returns the first of values that is not the zero value of T. With no such value it
// returns the zero value.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
