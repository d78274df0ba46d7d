package content

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one rendered content item produced from one source file.
type Entry struct {
	Slug  string
	Title string
	Meta  map[string]any
	HTML  []byte

	SourcePath string
	SourceHash string

	// Timestamp is the parsed `timestamp` field; zero when absent or
	// unparseable.
	Timestamp time.Time
}

// HasTimestamp reports whether the entry carried a valid timestamp.
func (e Entry) HasTimestamp() bool {
	return !e.Timestamp.IsZero()
}

// MetaString returns a front-matter value formatted as a string, and whether
// the key was present with a non-empty value.
func MetaString(meta map[string]any, key string) (string, bool) {
	v, ok := meta[key]
	if !ok || v == nil {
		return "", false
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case time.Time:
		s = t.Format(time.RFC3339)
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
