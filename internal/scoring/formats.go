package scoring

import "strings"

// mergedFormats groups synonymous source formats so that, for example, an
// HDTV video matches an SDTV-labelled subtitle release.
var mergedFormats = map[string]string{
	"hdtv":       "TV",
	"sdtv":       "TV",
	"ahdtv":      "TV",
	"uhdtv":      "TV",
	"tv":         "TV",
	"dvd":        "DVD",
	"dvdrip":     "DVD",
	"hddvd":      "Disk-HD",
	"hd-dvd":     "Disk-HD",
	"bluray":     "Disk-HD",
	"blu-ray":    "Disk-HD",
	"brrip":      "Disk-HD",
	"bdrip":      "Disk-HD",
	"web":        "Web",
	"webdl":      "Web",
	"web-dl":     "Web",
	"webrip":     "Web",
	"web-rip":    "Web",
	"vod":        "Web",
	"cam":        "Cam",
	"telecine":   "Cam",
	"telesync":   "Cam",
	"screener":   "Screener",
	"dvdscr":     "Screener",
	"workprint":  "Workprint",
}

// normalizeSource maps a source label to its merged family, or returns the
// sanitized label when no family is known.
func normalizeSource(source string) string {
	key := sanitize(source)
	if key == "" {
		return ""
	}
	if family, ok := mergedFormats[key]; ok {
		return family
	}
	return key
}

// matchSource reports whether any guessed source candidate shares a merged
// family with the video's source.
func matchSource(videoSource string, guessed []string) bool {
	want := normalizeSource(videoSource)
	if want == "" {
		return false
	}
	for _, candidate := range guessed {
		if normalizeSource(candidate) == want {
			return true
		}
	}
	return false
}

// releaseGroupEquivalences lists community tags that denote the same group.
// Each row collapses to its first entry.
var releaseGroupEquivalences = [][]string{
	{"evo", "evolve"},
	{"ntb", "ntg"},
	{"lol", "sys", "dimension"},
	{"avs", "sva"},
	{"fleet", "kings"},
}

var releaseGroupAliases = func() map[string]string {
	aliases := make(map[string]string)
	for _, row := range releaseGroupEquivalences {
		for _, tag := range row {
			aliases[tag] = row[0]
		}
	}
	return aliases
}()

func canonicalReleaseGroup(group string) string {
	key := sanitize(group)
	if canonical, ok := releaseGroupAliases[key]; ok {
		return canonical
	}
	return key
}

// equivalentReleaseGroups reports whether two release-group labels denote
// the same group. A suffix like "-xpost" or "[rartv]" on either side is
// ignored.
func equivalentReleaseGroups(a, b string) bool {
	ca := canonicalReleaseGroup(stripGroupDecorations(a))
	cb := canonicalReleaseGroup(stripGroupDecorations(b))
	return ca != "" && ca == cb
}

func stripGroupDecorations(group string) string {
	group = strings.TrimSpace(group)
	if idx := strings.IndexAny(group, "[("); idx > 0 {
		group = group[:idx]
	}
	for _, suffix := range []string{"-xpost", "-postbot", "-obfuscated"} {
		group = strings.TrimSuffix(strings.ToLower(group), suffix)
	}
	return group
}
