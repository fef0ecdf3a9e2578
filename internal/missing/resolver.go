// Package missing recomputes, from scratch on every call, which subtitle
// variants a video still wants given its language profile, audio tracks,
// and existing subtitles.
package missing

import (
	"subplot/internal/language"
	"subplot/internal/profile"
	"subplot/internal/subtitles"
)

// Resolve returns the still-wanted selectors for one video, in profile
// order. A nil profile wants nothing. The computation is pure: calling it
// twice with the same inputs yields the same result.
func Resolve(p *profile.Profile, records []subtitles.Record, audioLanguages []string, embeddedEnabled bool) []language.Selector {
	if p == nil || len(p.Items) == 0 {
		return nil
	}

	audio := make(map[string]struct{}, len(audioLanguages))
	for _, code := range audioLanguages {
		audio[code] = struct{}{}
	}
	audioHas := func(code string) bool {
		_, ok := audio[code]
		return ok
	}

	desired := desiredList(p, audioHas)
	actual := actualList(records, embeddedEnabled)

	if cutoffMet(p, actual, audioHas) {
		return nil
	}

	actualSet := make(map[language.Selector]struct{}, len(actual))
	for _, sel := range actual {
		actualSet[sel] = struct{}{}
	}

	var wanted []language.Selector
	for _, sel := range desired {
		if _, ok := actualSet[sel]; ok {
			continue
		}
		wanted = append(wanted, sel)
	}

	// An HI subtitle satisfies the plain request for the same language.
	for _, sel := range actual {
		if !sel.HearingImpaired || sel.Forced {
			continue
		}
		wanted = removeSelector(wanted, sel.Plain())
	}

	return wanted
}

// RenderTags converts selectors to the persisted tag strings. Forced takes
// priority over hi when both flags are somehow set on one selector.
func RenderTags(selectors []language.Selector) []string {
	tags := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		tags = append(tags, sel.Tag())
	}
	return tags
}

func desiredList(p *profile.Profile, audioHas func(string) bool) []language.Selector {
	var desired []language.Selector
	for _, item := range p.Items {
		if item.AudioExclude && audioHas(item.Code) {
			continue
		}
		if item.AudioOnlyInclude && !audioHas(item.Code) {
			continue
		}
		desired = append(desired, item.Selector)
	}
	return desired
}

func actualList(records []subtitles.Record, embeddedEnabled bool) []language.Selector {
	var actual []language.Selector
	for _, record := range records {
		if !embeddedEnabled && record.Embedded() {
			continue
		}
		actual = append(actual, record.Selector)
	}
	return actual
}

// cutoffMet evaluates the profile cutoff. Once met, nothing in the profile
// is considered missing, regardless of other unmet items.
func cutoffMet(p *profile.Profile, actual []language.Selector, audioHas func(string) bool) bool {
	if p.Cutoff == nil {
		return false
	}
	cutoff := *p.Cutoff

	if item, ok := p.ItemFor(cutoff); ok {
		if item.AudioExclude && audioHas(cutoff.Code) {
			// The exclusion condition itself satisfies the cutoff.
			return true
		}
		if item.AudioOnlyInclude && !audioHas(cutoff.Code) {
			// An audio-only-include cutoff can be met only when the audio
			// matches; without it the subtitle checks below do not apply.
			return false
		}
	}

	for _, sel := range actual {
		if sel == cutoff {
			return true
		}
		// HI counts as satisfying a plain cutoff for the same language.
		if !cutoff.Forced && !cutoff.HearingImpaired &&
			sel.HearingImpaired && !sel.Forced && sel.Code == cutoff.Code {
			return true
		}
	}
	return false
}

func removeSelector(selectors []language.Selector, target language.Selector) []language.Selector {
	out := selectors[:0]
	for _, sel := range selectors {
		if sel == target {
			continue
		}
		out = append(out, sel)
	}
	return out
}
