package pathutil

import "strings"

// NormalizePath replaces numeric path segments with ":id" so metric labels
// keep a bounded cardinality.
//
// Example: /articles/123 -> /articles/:id
func NormalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment != "" && isNumeric(segment) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
