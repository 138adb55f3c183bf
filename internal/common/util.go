package common

func MapKeys[K comparable, V any](m map[K]V) []K {
	var result []K
	for k := range m {
		result = append(result, k)
	}
	return result
}

// Batch splits a into two slices. DO NOT write on the returned value.
func Batch[T any](a *[]T, n int) []T {
	if len(*a) > n {
		batch := (*a)[:n]
		*a = (*a)[n:]
		return batch
	}

	b := (*a)
	*a = (*a)[:0]
	return b
}
