// Package stdx holds small helpers the standard library doesn't provide.
package stdx

// Must0 panics if err is not nil.
func Must0(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns v, or panics if err is not nil. It's meant for package level
// initialisation where an error is a programming mistake.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Must2 is Must1 for functions that return two values.
func Must2[T, V any](t T, v V, err error) (T, V) {
	if err != nil {
		panic(err)
	}
	return t, v
}
