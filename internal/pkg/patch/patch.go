package patch

import "strings"

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// TrimmedOr treats a whitespace-only update as absent.
func TrimmedOr(ptr *string, fallback string) string {
	if ptr == nil {
		return fallback
	}
	if v := strings.TrimSpace(*ptr); v != "" {
		return v
	}
	return fallback
}
