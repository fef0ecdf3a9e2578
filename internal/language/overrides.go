package language

import (
	"path/filepath"
	"strings"
)

// Override maps a subtitle filename or full path to a custom selector.
type Override struct {
	Match    string
	Selector Selector
}

// OverrideTable resolves custom language tags for known subtitle files.
// Matches are exact on filename or on the full path, case-insensitive.
type OverrideTable struct {
	byName map[string]Selector
	byPath map[string]Selector
}

// NewOverrideTable builds a table from (match, tag) pairs. Entries with an
// unparseable tag are skipped.
func NewOverrideTable(overrides []Override) *OverrideTable {
	table := &OverrideTable{
		byName: make(map[string]Selector, len(overrides)),
		byPath: make(map[string]Selector, len(overrides)),
	}
	for _, o := range overrides {
		match := strings.ToLower(strings.TrimSpace(o.Match))
		if match == "" {
			continue
		}
		if strings.ContainsRune(match, filepath.Separator) {
			table.byPath[match] = o.Selector
		} else {
			table.byName[match] = o.Selector
		}
	}
	return table
}

// Lookup returns the override selector for the given filename or path.
func (t *OverrideTable) Lookup(name, path string) (Selector, bool) {
	if t == nil {
		return Selector{}, false
	}
	if s, ok := t.byPath[strings.ToLower(strings.TrimSpace(path))]; ok {
		return s, true
	}
	if s, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, true
	}
	return Selector{}, false
}
