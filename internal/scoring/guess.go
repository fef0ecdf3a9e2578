package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

// Release-name patterns. The parser is heuristic by design: providers
// publish inconsistent names and unmatched fields simply stay absent.
var (
	episodePattern    = regexp.MustCompile(`(?i)[.\s_\-]s(\d{1,2})e(\d{1,3})(?:-?e?(\d{1,3}))?[.\s_\-]?`)
	yearPattern       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	resolutionPattern = regexp.MustCompile(`(?i)\b(2160p|1080p|1080i|720p|576p|480p)\b`)
	groupPattern      = regexp.MustCompile(`-([A-Za-z0-9]+)(?:\[[^\]]*\])?$`)
)

var sourceTokens = []string{
	"blu-ray", "bluray", "bdrip", "brrip", "hd-dvd", "hddvd",
	"web-dl", "webdl", "webrip", "web-rip", "web",
	"hdtv", "sdtv", "ahdtv", "uhdtv", "dvdrip", "dvdscr", "dvd",
	"telesync", "telecine", "cam", "screener", "workprint",
}

var videoCodecTokens = []string{"x264", "h264", "x265", "h265", "hevc", "xvid", "divx", "av1", "vp9"}

var audioCodecTokens = []string{"dts-hd", "dts", "truehd", "atmos", "eac3", "ddp5", "ddp", "ac3", "aac", "flac", "mp3", "opus"}

var streamingServiceTokens = []string{"amzn", "nf", "dsnp", "hulu", "hmax", "atvp", "pcok", "stan"}

var editionTokens = []string{"extended", "unrated", "remastered", "theatrical", "directors cut", "imax"}

// ParseRelease infers attributes from a release name. Absent attributes are
// left zero; list fields carry at most the tokens actually seen.
func ParseRelease(name string) Guess {
	var guess Guess

	base := name
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		if ext := base[idx+1:]; len(ext) <= 4 && !yearPattern.MatchString(ext) {
			base = base[:idx]
		}
	}

	normalized := strings.NewReplacer(".", " ", "_", " ").Replace(base)
	padded := " " + normalized + " "
	lowered := strings.ToLower(padded)

	titleEnd := len(normalized)

	if match := episodePattern.FindStringSubmatchIndex(padded); match != nil {
		if season, err := strconv.Atoi(padded[match[2]:match[3]]); err == nil {
			guess.Season = &season
		}
		if first, err := strconv.Atoi(padded[match[4]:match[5]]); err == nil {
			guess.Episodes = append(guess.Episodes, first)
		}
		if match[6] >= 0 {
			if last, err := strconv.Atoi(padded[match[6]:match[7]]); err == nil {
				guess.Episodes = append(guess.Episodes, last)
			}
		}
		if match[0]-1 < titleEnd {
			titleEnd = max(match[0]-1, 0)
		}
	}

	if loc := yearPattern.FindStringIndex(normalized); loc != nil {
		if year, err := strconv.Atoi(normalized[loc[0]:loc[1]]); err == nil {
			guess.Year = &year
		}
		if loc[0] < titleEnd {
			titleEnd = loc[0]
		}
	}

	for _, token := range sourceTokens {
		if idx := tokenIndex(lowered, token); idx >= 0 {
			guess.Sources = append(guess.Sources, token)
			if idx-1 < titleEnd {
				titleEnd = max(idx-1, 0)
			}
		}
	}
	for _, token := range videoCodecTokens {
		if tokenIndex(lowered, token) >= 0 {
			guess.VideoCodecs = append(guess.VideoCodecs, token)
		}
	}
	for _, token := range audioCodecTokens {
		if tokenIndex(lowered, token) >= 0 {
			guess.AudioCodecs = append(guess.AudioCodecs, token)
		}
	}
	for _, token := range streamingServiceTokens {
		if tokenIndex(lowered, token) >= 0 && guess.StreamingService == "" {
			guess.StreamingService = strings.ToUpper(token)
		}
	}
	for _, token := range editionTokens {
		if tokenIndex(lowered, token) >= 0 && guess.Edition == "" {
			guess.Edition = token
		}
	}

	if match := resolutionPattern.FindString(normalized); match != "" {
		guess.Resolution = strings.ToLower(match)
		if idx := strings.Index(normalized, match); idx >= 0 && idx < titleEnd {
			titleEnd = idx
		}
	}

	if match := groupPattern.FindStringSubmatch(base); match != nil {
		guess.ReleaseGroup = match[1]
	}

	title := strings.TrimSpace(normalized[:titleEnd])
	title = strings.Trim(title, "-[]() ")
	if title != "" {
		guess.Titles = []string{title}
	}

	return guess
}

// tokenIndex finds token as a whole word inside a space-padded, lowercase
// haystack, tolerating '-' already present in the token itself.
func tokenIndex(padded, token string) int {
	for start := 0; ; {
		idx := strings.Index(padded[start:], token)
		if idx < 0 {
			return -1
		}
		idx += start
		before := padded[idx-1]
		afterIdx := idx + len(token)
		var after byte = ' '
		if afterIdx < len(padded) {
			after = padded[afterIdx]
		}
		if isBoundary(before) && isBoundary(after) {
			return idx - 1 // relative to the unpadded string
		}
		start = idx + len(token)
		if start >= len(padded) {
			return -1
		}
	}
}

func isBoundary(c byte) bool {
	switch c {
	case ' ', '-', '[', ']', '(', ')':
		return true
	}
	return false
}
