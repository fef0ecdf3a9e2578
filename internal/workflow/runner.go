package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"subplot/internal/config"
	"subplot/internal/language"
	"subplot/internal/logging"
	"subplot/internal/missing"
	"subplot/internal/notifications"
	"subplot/internal/profile"
	"subplot/internal/store"
	"subplot/internal/subtitles"
)

// Runner executes indexing and missing-subtitle resolution for videos.
type Runner struct {
	cfg      *config.Config
	store    *store.Store
	indexer  *subtitles.Indexer
	bus      notifications.Publisher
	profiles map[int64]profile.Profile
	logger   *slog.Logger
}

// NewRunner wires the pipeline from configuration.
func NewRunner(cfg *config.Config, st *store.Store, bus notifications.Publisher, logger *slog.Logger) *Runner {
	if bus == nil {
		bus = notifications.NopPublisher{}
	}

	overrides := make([]language.Override, 0, len(cfg.Languages.Overrides))
	for _, o := range cfg.Languages.Overrides {
		selector, err := language.ParseTag(o.Tag)
		if err != nil {
			logging.NewComponentLogger(logger, "runner").Warn("skipping language override",
				logging.String("match", o.Match), logging.Error(err))
			continue
		}
		overrides = append(overrides, language.Override{Match: o.Match, Selector: selector})
	}

	profiles := make(map[int64]profile.Profile, len(cfg.Languages.Profiles))
	for _, p := range cfg.Languages.Profiles {
		profiles[p.ID] = profile.FromConfig(p)
	}

	prober := newCachingProber(st, cfg.Subtitles.FFProbeBinary, logger)
	return &Runner{
		cfg:      cfg,
		store:    st,
		indexer:  subtitles.NewIndexer(cfg, prober, language.NewOverrideTable(overrides), logger),
		bus:      bus,
		profiles: profiles,
		logger:   logging.NewComponentLogger(logger, "runner"),
	}
}

// IndexVideo runs the full pipeline for the video with the given id. The
// subtitle list is rebuilt, persisted for every row sharing the file, and
// each row's missing list recomputed. Per-track failures are logged inside
// the indexer; only contract violations (unknown id, storage failures)
// surface as errors.
func (r *Runner) IndexVideo(ctx context.Context, id int64, useCache bool) error {
	return r.indexVideo(ctx, id, useCache, false)
}

func (r *Runner) indexVideo(ctx context.Context, id int64, useCache, suppressEvents bool) error {
	video, err := r.store.GetVideo(ctx, id)
	if err != nil {
		return fmt.Errorf("load video %d: %w", id, err)
	}

	logger := r.logger.With(
		logging.Int64(logging.FieldVideoID, video.ID),
		logging.String(logging.FieldCorrelationID, uuid.NewString()),
	)

	records, trackErrs := r.indexer.Index(ctx, video.Path, video.Path, video.Subtitles, useCache)
	logger.Info("indexed subtitles",
		logging.Int("records", len(records)),
		logging.Int("skipped_tracks", len(trackErrs)))

	rows, err := r.store.VideosByPath(ctx, video.Path)
	if err != nil {
		return fmt.Errorf("load rows for %s: %w", video.Path, err)
	}
	for _, row := range rows {
		if err := r.store.SetSubtitles(ctx, row.ID, records); err != nil {
			return fmt.Errorf("persist subtitles for video %d: %w", row.ID, err)
		}
		row.Subtitles = records
		if err := r.resolveMissing(ctx, row, suppressEvents); err != nil {
			return err
		}
	}
	return nil
}

// ResolveMissing recomputes the missing list for one video without
// re-indexing its subtitles.
func (r *Runner) ResolveMissing(ctx context.Context, id int64) error {
	video, err := r.store.GetVideo(ctx, id)
	if err != nil {
		return fmt.Errorf("load video %d: %w", id, err)
	}
	return r.resolveMissing(ctx, video, false)
}

func (r *Runner) resolveMissing(ctx context.Context, video *store.Video, suppressEvents bool) error {
	var assigned *profile.Profile
	if video.ProfileID != 0 {
		if p, ok := r.profiles[video.ProfileID]; ok {
			assigned = &p
		} else {
			r.logger.Warn("video references unknown profile",
				logging.Int64(logging.FieldVideoID, video.ID),
				logging.Int64("profile_id", video.ProfileID))
		}
	}

	wanted := missing.Resolve(assigned, video.Subtitles, video.AudioLanguages, r.cfg.Subtitles.EmbeddedEnabled)
	tags := missing.RenderTags(wanted)
	if err := r.store.SetMissing(ctx, video.ID, tags); err != nil {
		return fmt.Errorf("persist missing for video %d: %w", video.ID, err)
	}

	if suppressEvents {
		return nil
	}
	r.bus.Publish(ctx, notifications.Event{
		Type:   notifications.EventVideoUpdated,
		Action: "missing_recomputed",
		Payload: map[string]any{
			"video_id": video.ID,
			"missing":  tags,
		},
	})
	r.publishBadges(ctx)
	return nil
}

func (r *Runner) publishBadges(ctx context.Context) {
	movies, episodes, err := r.store.WantedCounts(ctx)
	if err != nil {
		r.logger.Warn("compute badge counts", logging.Error(err))
		return
	}
	r.bus.Publish(ctx, notifications.Event{
		Type: notifications.EventBadgesUpdated,
		Payload: map[string]any{
			"wanted_movies":   movies,
			"wanted_episodes": episodes,
		},
	})
}
