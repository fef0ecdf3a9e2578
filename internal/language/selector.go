package language

import (
	"fmt"
	"strings"
)

// Selector identifies a subtitle language variant. Equality is structural.
type Selector struct {
	Code            string
	Forced          bool
	HearingImpaired bool
}

// Tag renders the selector in the colon-tag grammar: "en", "en:forced",
// or "en:hi". Forced takes priority when both flags are set.
func (s Selector) Tag() string {
	switch {
	case s.Forced:
		return s.Code + ":forced"
	case s.HearingImpaired:
		return s.Code + ":hi"
	default:
		return s.Code
	}
}

// String returns a human-readable description of the selector.
func (s Selector) String() string {
	name := DisplayName(s.Code)
	switch {
	case s.Forced:
		return name + " (forced)"
	case s.HearingImpaired:
		return name + " (HI)"
	default:
		return name
	}
}

// Plain returns the selector with both variant flags cleared.
func (s Selector) Plain() Selector {
	return Selector{Code: s.Code}
}

// ParseTag decodes a colon-tag string into a Selector. A bare code means
// neither forced nor hearing-impaired; the two suffixes are mutually
// exclusive in the grammar.
func ParseTag(tag string) (Selector, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Selector{}, fmt.Errorf("parse language tag: empty")
	}
	code, suffix, found := strings.Cut(tag, ":")
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return Selector{}, fmt.Errorf("parse language tag %q: missing code", tag)
	}
	selector := Selector{Code: code}
	if !found {
		return selector, nil
	}
	switch strings.ToLower(strings.TrimSpace(suffix)) {
	case "forced":
		selector.Forced = true
	case "hi":
		selector.HearingImpaired = true
	default:
		return Selector{}, fmt.Errorf("parse language tag %q: unknown suffix", tag)
	}
	return selector, nil
}
