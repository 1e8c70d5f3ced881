package strcoll

import "slices"

// Nth returns the element at `nth`, or the zero value if the slice is shorter.
func Nth[T any](nth int, xs []T) T {
	var zero T
	if nth < 0 || nth >= len(xs) {
		return zero
	}
	return xs[nth]
}

// Rest returns the elements after the first `nth` ones, never nil.
func Rest[T any](nth int, xs []T) []T {
	if nth < 0 || nth >= len(xs) {
		return make([]T, 0)
	}
	return xs[nth:]
}

// Copy returns a deep copy of a map of name definitions, so the copy can be changed without touching `m`.
func Copy(m map[string][]string) map[string][]string {
	ret := make(map[string][]string, len(m))
	for k, v := range m {
		ret[k] = slices.Clone(v)
	}
	return ret
}

// Contains returns true if `s` is one of `xs`.
func Contains[T comparable](s T, xs []T) bool {
	return slices.Contains(xs, s)
}
