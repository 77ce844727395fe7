// Package text holds small rune-aware string helpers shared by the
// classifier backends.
package text

// CountRunes returns the number of Unicode code points in s.
func CountRunes(s string) int {
	return len([]rune(s))
}

// Truncate shortens s to at most n runes and appends "..." when it cut
// anything. It never splits a multi-byte character.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i] + "..."
		}
		count++
	}
	return s
}
