package storage

import "strings"

// DocumentPrefix is the key namespace for uploaded documents.
const DocumentPrefix = "documents/"

// SanitizeFilename replaces every character outside [A-Za-z0-9_.-] with "_".
// The result never contains a path separator.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// DocumentKey builds the storage key for an uploaded document. The id prefix
// keeps keys unique when sanitized names collide.
func DocumentKey(id, filename string) string {
	return DocumentPrefix + id + "-" + SanitizeFilename(filename)
}

// validKey reports whether key is a relative slash-separated path with no
// empty, "." or ".." segments. Dots inside a segment are allowed.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for seg := range strings.SplitSeq(key, "/") {
		switch seg {
		case "", ".", "..":
			return false
		}
	}
	return true
}
