package scoring

import (
	"regexp"
	"sort"
	"strings"
)

// Tag names one attribute on which a candidate subtitle matched the video.
type Tag string

const (
	TagTitle            Tag = "title"
	TagSeries           Tag = "series"
	TagSeason           Tag = "season"
	TagEpisode          Tag = "episode"
	TagYear             Tag = "year"
	TagReleaseGroup     Tag = "release_group"
	TagSource           Tag = "source"
	TagVideoCodec       Tag = "video_codec"
	TagAudioCodec       Tag = "audio_codec"
	TagEdition          Tag = "edition"
	TagStreamingService Tag = "streaming_service"
	TagResolution       Tag = "resolution"
	TagHash             Tag = "hash"
	TagHearingImpaired  Tag = "hearing_impaired"
)

// Set is a collection of match tags.
type Set map[Tag]struct{}

func (s Set) Add(tag Tag)    { s[tag] = struct{}{} }
func (s Set) Remove(tag Tag) { delete(s, tag) }

// Has reports whether the set contains the tag.
func (s Set) Has(tag Tag) bool {
	_, ok := s[tag]
	return ok
}

// Sorted returns the tags in lexical order, for stable logging.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for tag := range s {
		out = append(out, string(tag))
	}
	sort.Strings(out)
	return out
}

// Video is the read-only attribute view the matcher works against.
type Video struct {
	IsEpisode         bool
	Title             string
	AlternativeTitles []string
	Series            string
	AlternativeSeries []string
	Season            int
	Episode           int
	Year              int
	OriginalSeries    bool
	Source            string
	VideoCodec        string
	AudioCodec        string
	ReleaseGroup      string
	Resolution        string
	Edition           string
	StreamingService  string
	FrameRate         float64
}

// Guess carries attributes inferred from a candidate's release name or
// declared by its provider. List fields hold every guessed alternative.
type Guess struct {
	Titles           []string
	EpisodeTitle     string
	Season           *int
	Episodes         []int
	Year             *int
	Sources          []string
	VideoCodecs      []string
	AudioCodecs      []string
	ReleaseGroup     string
	Resolution       string
	Edition          string
	StreamingService string
	HashMatch        bool
}

var sanitizePattern = regexp.MustCompile(`[^a-z0-9]+`)

// sanitize lowercases and strips punctuation so "The Office (US)" and
// "the.office.us" compare equal.
func sanitize(text string) string {
	return sanitizePattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), "")
}

// Matches computes the match tags between a video and a candidate guess.
// Pure and deterministic: identical inputs always yield identical sets.
// In partial mode, absence of information never counts as a match.
func Matches(video Video, guess Guess, partial bool) Set {
	matches := make(Set)

	if video.IsEpisode {
		matchEpisode(video, guess, partial, matches)
	} else {
		matchMovie(video, guess, matches)
	}

	if video.ReleaseGroup != "" && guess.ReleaseGroup != "" &&
		equivalentReleaseGroups(video.ReleaseGroup, guess.ReleaseGroup) {
		matches.Add(TagReleaseGroup)
	}

	if matchSource(video.Source, guess.Sources) {
		matches.Add(TagSource)
	} else if matches.Has(TagReleaseGroup) {
		// A group match without a source match is usually a generic group
		// name on a different rip; retract it.
		matches.Remove(TagReleaseGroup)
	}

	if containsSanitized(guess.VideoCodecs, video.VideoCodec) {
		matches.Add(TagVideoCodec)
	}
	if containsSanitized(guess.AudioCodecs, video.AudioCodec) {
		matches.Add(TagAudioCodec)
	}
	if video.Resolution != "" && strings.EqualFold(video.Resolution, guess.Resolution) {
		matches.Add(TagResolution)
	}
	if absenceAwareEqual(video.Edition, guess.Edition) {
		matches.Add(TagEdition)
	}
	if absenceAwareEqual(video.StreamingService, guess.StreamingService) {
		matches.Add(TagStreamingService)
	}
	if guess.HashMatch {
		matches.Add(TagHash)
	}

	return matches
}

func matchEpisode(video Video, guess Guess, partial bool, matches Set) {
	if anyTitleMatches(guess.Titles, video.Series, video.AlternativeSeries) {
		matches.Add(TagSeries)
	}
	if video.Title != "" && sanitize(guess.EpisodeTitle) == sanitize(video.Title) {
		matches.Add(TagTitle)
	}
	if guess.Season != nil && *guess.Season == video.Season {
		matches.Add(TagSeason)
	}
	if episode, ok := minEpisode(guess.Episodes); ok && episode == video.Episode {
		matches.Add(TagEpisode)
	}
	switch {
	case guess.Year != nil && video.Year != 0 && *guess.Year == video.Year:
		matches.Add(TagYear)
	case !partial && video.OriginalSeries && guess.Year == nil:
		// An original (non-aired-date) series release rarely carries a
		// year; no contradicting information counts as agreement.
		matches.Add(TagYear)
	}
}

func matchMovie(video Video, guess Guess, matches Set) {
	if guess.Year != nil && video.Year != 0 && *guess.Year == video.Year {
		matches.Add(TagYear)
	}
	if anyTitleMatches(guess.Titles, video.Title, video.AlternativeTitles) {
		matches.Add(TagTitle)
	}
}

// anyTitleMatches reports whether any guessed title equals the primary or
// any alternative title after sanitization.
func anyTitleMatches(guessed []string, primary string, alternatives []string) bool {
	want := make([]string, 0, len(alternatives)+1)
	if s := sanitize(primary); s != "" {
		want = append(want, s)
	}
	for _, alt := range alternatives {
		if s := sanitize(alt); s != "" {
			want = append(want, s)
		}
	}
	for _, title := range guessed {
		got := sanitize(title)
		if got == "" {
			continue
		}
		for _, candidate := range want {
			if got == candidate {
				return true
			}
		}
	}
	return false
}

// minEpisode reduces a guessed multi-episode list to its lowest number.
// Providers generally publish one file keyed by the lowest episode in a range.
func minEpisode(episodes []int) (int, bool) {
	if len(episodes) == 0 {
		return 0, false
	}
	lowest := episodes[0]
	for _, episode := range episodes[1:] {
		if episode < lowest {
			lowest = episode
		}
	}
	return lowest, true
}

func containsSanitized(values []string, want string) bool {
	want = sanitize(want)
	if want == "" {
		return false
	}
	for _, value := range values {
		if sanitize(value) == want {
			return true
		}
	}
	return false
}

// absenceAwareEqual matches when both sides agree, including both being
// absent. Absence on one side only is not a match.
func absenceAwareEqual(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" && b == "" {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	return sanitize(a) == sanitize(b)
}

// ApplyHearingImpaired adds the hearing-impaired tag when the candidate's
// HI flag agrees with what the caller wants.
func ApplyHearingImpaired(matches Set, candidateHI, wantHI bool) {
	if candidateHI == wantHI {
		matches.Add(TagHearingImpaired)
	}
}
