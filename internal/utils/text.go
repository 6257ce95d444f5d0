package utils

import (
	"regexp"
	"strings"
)

// uuidPattern is the canonical 8-4-4-4-12 form with a valid version nibble
// (1-5) and variant nibble (8, 9, a, b). Non-canonical encodings are
// rejected rather than normalized.
var uuidPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// IsCanonicalUUID reports whether s is a canonically formatted UUID.
func IsCanonicalUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

// CountWords counts whitespace-separated non-empty tokens in s.
func CountWords(s string) int {
	count := 0
	for _, word := range strings.Fields(strings.TrimSpace(s)) {
		if len(word) > 0 {
			count++
		}
	}
	return count
}

// StripControl removes NUL and other C0 control characters from s,
// preserving tab, newline and carriage return.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return r
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
}

// SanitizeDisplay strips control characters (C0, DEL and C1) and the
// characters <>"'& from a user-supplied string destined for logs or
// display, then truncates it to max runes.
func SanitizeDisplay(s string, max int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7F && r <= 0x9F) {
			return -1
		}
		switch r {
		case '<', '>', '"', '\'', '&':
			return -1
		}
		return r
	}, s)

	runes := []rune(cleaned)
	if len(runes) > max {
		return string(runes[:max])
	}
	return cleaned
}
