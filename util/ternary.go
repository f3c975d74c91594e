package util

// Tern is a conditional expression: it yields a when cond holds, b
// otherwise. Both arguments are always evaluated.
func Tern[T any](cond bool, a T, b T) T {
	if cond {
		return a
	}
	return b
}
