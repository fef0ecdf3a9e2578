package subtitles

import "subplot/internal/language"

// Record is one existing subtitle known for a video: an embedded stream
// (no path) or an external file (path plus size). The full list is rebuilt
// on every indexing pass; records are never patched in place.
type Record struct {
	Selector language.Selector
	Path     string
	Size     int64
}

// Embedded reports whether the record describes an in-container stream.
func (r Record) Embedded() bool {
	return r.Path == ""
}

// Tag returns the record's colon-tag language string.
func (r Record) Tag() string {
	return r.Selector.Tag()
}
