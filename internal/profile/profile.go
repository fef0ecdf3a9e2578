// Package profile models user-configured language profiles: an ordered set
// of desired language selectors, audio-track inclusion rules, and an
// optional cutoff.
package profile

import (
	"subplot/internal/config"
	"subplot/internal/language"
)

// Item is one desired selector within a profile. AudioExclude skips the
// selector when a matching audio track exists; AudioOnlyInclude wants the
// selector only when a matching audio track exists.
type Item struct {
	language.Selector
	AudioExclude     bool
	AudioOnlyInclude bool
}

// Profile is an ordered set of desired selectors plus an optional cutoff.
// Item order is insertion order; it carries no matching semantics.
type Profile struct {
	ID     int64
	Name   string
	Items  []Item
	Cutoff *language.Selector
}

// FromConfig converts a decoded config profile into the domain model.
func FromConfig(cfg config.Profile) Profile {
	p := Profile{ID: cfg.ID, Name: cfg.Name}
	for _, item := range cfg.Items {
		p.Items = append(p.Items, Item{
			Selector: language.Selector{
				Code:            item.Language,
				Forced:          item.Forced,
				HearingImpaired: item.HearingImpaired,
			},
			AudioExclude:     item.AudioExclude,
			AudioOnlyInclude: item.AudioOnlyInclude,
		})
	}
	if cfg.Cutoff != nil {
		p.Cutoff = &language.Selector{
			Code:            cfg.Cutoff.Language,
			Forced:          cfg.Cutoff.Forced,
			HearingImpaired: cfg.Cutoff.HearingImpaired,
		}
	}
	return p
}

// Contains reports whether any item equals the given selector.
func (p *Profile) Contains(sel language.Selector) bool {
	if p == nil {
		return false
	}
	for _, item := range p.Items {
		if item.Selector == sel {
			return true
		}
	}
	return false
}

// ItemFor returns the profile item matching the given selector, if any.
func (p *Profile) ItemFor(sel language.Selector) (Item, bool) {
	if p == nil {
		return Item{}, false
	}
	for _, item := range p.Items {
		if item.Selector == sel {
			return item, true
		}
	}
	return Item{}, false
}
