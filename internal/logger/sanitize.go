package logger

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const MaxPathLength = 500

// SanitizePath strips control characters and truncates request paths before logging.
func SanitizePath(path string) string {
	if path == "" {
		return ""
	}
	if !utf8.ValidString(path) {
		path = strings.ToValidUTF8(path, "")
	}

	var builder strings.Builder
	builder.Grow(len(path))
	for _, r := range path {
		if unicode.IsPrint(r) {
			builder.WriteRune(r)
		}
	}
	path = builder.String()

	if len(path) > MaxPathLength {
		path = path[:MaxPathLength] + "..."
	}
	return path
}
