package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Cycle returns slice[i] with i wrapped around both ends of the slice.
func Cycle[T any](slice []T, i int) T {
	n := len(slice)
	return slice[((i%n)+n)%n]
}
