package providers

import (
	"context"
	"log/slog"
	"sort"

	"subplot/internal/logging"
	"subplot/internal/scoring"
)

// Dispatcher fans a query out to every enabled, unthrottled provider and
// feeds provider failures back into the ledger. Provider errors never
// surface to the caller.
type Dispatcher struct {
	registry *Registry
	ledger   *Ledger
	logger   *slog.Logger
}

// NewDispatcher wires a registry and ledger together.
func NewDispatcher(registry *Registry, ledger *Ledger, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		ledger:   ledger,
		logger:   logging.NewComponentLogger(logger, "dispatch"),
	}
}

// Search queries every enabled provider and merges their candidates.
func (d *Dispatcher) Search(ctx context.Context, query Query) []Candidate {
	var candidates []Candidate
	for _, name := range d.ledger.Enabled() {
		provider, ok := d.registry.Get(name)
		if !ok {
			d.logger.Warn("enabled provider not registered",
				logging.String(logging.FieldProvider, name))
			continue
		}
		found, err := provider.Search(ctx, query)
		if err != nil {
			d.ledger.Throttle(name, err)
			continue
		}
		candidates = append(candidates, found...)
	}
	return candidates
}

// Ranked pairs a candidate with its computed matches and score.
type Ranked struct {
	Candidate
	Matches  scoring.Set
	Score    int
	WrongFPS bool
}

// RankOptions carries the settings that shape candidate evaluation.
type RankOptions struct {
	WantHearingImpaired bool
	FPSTolerance        float64
	SkipWrongFPS        bool
}

// Rank evaluates candidates against the video and orders them best-first.
// Ordering is deterministic: score descending, then provider and id.
func Rank(video scoring.Video, candidates []Candidate, opts RankOptions) []Ranked {
	ranked := make([]Ranked, 0, len(candidates))
	for _, candidate := range candidates {
		guess := scoring.ParseRelease(candidate.ReleaseInfo)
		if candidate.MatchHash {
			guess.HashMatch = true
		}
		matches := scoring.Matches(video, guess, false)
		scoring.ApplyHearingImpaired(matches, candidate.HearingImpaired, opts.WantHearingImpaired)

		fps := scoring.CheckFPS(video.FrameRate, candidate.FPS, opts.FPSTolerance)
		wrongFPS := fps == scoring.FPSMismatch
		scoring.DisqualifyWrongFPS(matches, fps, opts.SkipWrongFPS)

		ranked = append(ranked, Ranked{
			Candidate: candidate,
			Matches:   matches,
			Score:     scoring.Score(matches, video.IsEpisode),
			WrongFPS:  wrongFPS,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Provider != ranked[j].Provider {
			return ranked[i].Provider < ranked[j].Provider
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
