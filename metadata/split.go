package metadata

import "strings"

// Delimiters lists the characters that separate version segments.
const Delimiters = ".-+"

// IsDelimiter reports whether r separates version segments.
func IsDelimiter(r rune) bool {
	return r == '.' || r == '-' || r == '+'
}

// Split breaks s at every delimiter. Delimiters are dropped and empty segments
// between adjacent delimiters are kept, so the result always holds
// 1 + strings.Count of delimiters elements.
func Split(s string) []string {
	segments := make([]string, 0, strings.Count(s, ".")+strings.Count(s, "-")+strings.Count(s, "+")+1)
	start := 0
	for i, r := range s {
		if !IsDelimiter(r) {
			continue
		}
		segments = append(segments, s[start:i])
		start = i + 1
	}
	return append(segments, s[start:])
}
