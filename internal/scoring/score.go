package scoring

// Score weights. A hash match outweighs the sum of every other attribute so
// that hash-verified candidates always rank first; within the remainder the
// ordering is series/title > year > season/episode > group > source > the
// codec and resolution refinements.
var episodeWeights = map[Tag]int{
	TagHash:             364,
	TagSeries:           180,
	TagYear:             90,
	TagSeason:           30,
	TagEpisode:          30,
	TagReleaseGroup:     14,
	TagSource:           7,
	TagAudioCodec:       3,
	TagResolution:       2,
	TagVideoCodec:       2,
	TagTitle:            2,
	TagStreamingService: 1,
	TagEdition:          1,
	TagHearingImpaired:  1,
}

var movieWeights = map[Tag]int{
	TagHash:             121,
	TagTitle:            60,
	TagYear:             30,
	TagReleaseGroup:     13,
	TagSource:           7,
	TagAudioCodec:       3,
	TagResolution:       2,
	TagVideoCodec:       2,
	TagStreamingService: 1,
	TagEdition:          1,
	TagHearingImpaired:  1,
}

// Score sums the weight of every matched tag. Deterministic for a given set.
func Score(matches Set, isEpisode bool) int {
	weights := movieWeights
	if isEpisode {
		weights = episodeWeights
	}
	total := 0
	for tag := range matches {
		total += weights[tag]
	}
	return total
}

// MaxScore returns the highest achievable score for the pipeline, used to
// express scores as percentages.
func MaxScore(isEpisode bool) int {
	weights := movieWeights
	if isEpisode {
		weights = episodeWeights
	}
	total := 0
	for _, weight := range weights {
		total += weight
	}
	return total
}
