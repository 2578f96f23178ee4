// Package catpath handles the backslash-delimited category paths used by the
// catalog feed (e.g. `Tools\PowerTools`). The path of a category encodes its
// whole ancestor chain including itself.
package catpath

import "strings"

// Delimiter separates path segments in the catalog feed.
const Delimiter = `\`

// Segments splits a path into its ordered segments. Empty segments produced
// by doubled or trailing delimiters are dropped so that a malformed path
// degrades to a shorter valid one instead of failing.
func Segments(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, Delimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Parent returns the path of the parent category, or "" when the path has a
// single segment (a root).
func Parent(path string) string {
	segs := Segments(path)
	if len(segs) <= 1 {
		return ""
	}
	return strings.Join(segs[:len(segs)-1], Delimiter)
}

// Last returns the final segment of the path, the category's own display
// segment. Returns "" for an empty path.
func Last(path string) string {
	segs := Segments(path)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Join builds a path from segments.
func Join(segments ...string) string {
	return strings.Join(segments, Delimiter)
}
