package workflow

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"subplot/internal/config"
	"subplot/internal/logging"
	"subplot/internal/notifications"
	"subplot/internal/store"
	"subplot/internal/testsupport"
)

func workflowConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithProfile(config.Profile{
		ID:   1,
		Name: "Main",
		Items: []config.ProfileItem{
			{Language: "en"},
			{Language: "fr"},
		},
	}))
	// External files only; probing embedded streams would need ffprobe.
	cfg.Subtitles.EmbeddedEnabled = false
	if err := os.MkdirAll(cfg.Paths.LibraryDir, 0o755); err != nil {
		t.Fatalf("mkdir library: %v", err)
	}
	return cfg
}

func writeLibraryFile(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()
	path := filepath.Join(cfg.Paths.LibraryDir, name)
	if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestIndexVideoComputesSubtitlesAndMissing(t *testing.T) {
	cfg := workflowConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	videoPath := writeLibraryFile(t, cfg, "film.mkv")
	writeLibraryFile(t, cfg, "film.en.srt")

	video := testsupport.NewVideo(t, st, &store.Video{
		Kind:      store.KindMovie,
		Path:      videoPath,
		Title:     "Film",
		ProfileID: 1,
	})

	runner := NewRunner(cfg, st, nil, logging.NewNop())
	if err := runner.IndexVideo(context.Background(), video.ID, true); err != nil {
		t.Fatalf("IndexVideo: %v", err)
	}

	got, err := st.GetVideo(context.Background(), video.ID)
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if len(got.Subtitles) != 1 || got.Subtitles[0].Tag() != "en" {
		t.Fatalf("unexpected subtitles %+v", got.Subtitles)
	}
	if !reflect.DeepEqual(got.Missing, []string{"fr"}) {
		t.Fatalf("unexpected missing %v", got.Missing)
	}
}

func TestIndexVideoFansOutToSiblingRows(t *testing.T) {
	cfg := workflowConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	videoPath := writeLibraryFile(t, cfg, "double.mkv")
	writeLibraryFile(t, cfg, "double.fr.srt")

	first := testsupport.NewVideo(t, st, &store.Video{
		Kind: store.KindEpisode, Path: videoPath, ProfileID: 1,
	})
	second := testsupport.NewVideo(t, st, &store.Video{
		Kind: store.KindEpisode, Path: videoPath, ProfileID: 1,
	})

	runner := NewRunner(cfg, st, nil, logging.NewNop())
	if err := runner.IndexVideo(context.Background(), first.ID, true); err != nil {
		t.Fatalf("IndexVideo: %v", err)
	}

	for _, id := range []int64{first.ID, second.ID} {
		got, err := st.GetVideo(context.Background(), id)
		if err != nil {
			t.Fatalf("GetVideo %d: %v", id, err)
		}
		if len(got.Subtitles) != 1 {
			t.Fatalf("row %d should share the subtitle list, got %+v", id, got.Subtitles)
		}
		if !reflect.DeepEqual(got.Missing, []string{"en"}) {
			t.Fatalf("row %d unexpected missing %v", id, got.Missing)
		}
	}
}

func TestResolveMissingWithoutProfileWantsNothing(t *testing.T) {
	cfg := workflowConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	video := testsupport.NewVideo(t, st, &store.Video{
		Kind: store.KindMovie,
		Path: "/library/unprofiled.mkv",
	})

	runner := NewRunner(cfg, st, nil, logging.NewNop())
	if err := runner.ResolveMissing(context.Background(), video.ID); err != nil {
		t.Fatalf("ResolveMissing: %v", err)
	}

	got, err := st.GetVideo(context.Background(), video.ID)
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if len(got.Missing) != 0 {
		t.Fatalf("no profile means nothing missing, got %v", got.Missing)
	}
}

func TestIndexVideoPublishesEvents(t *testing.T) {
	cfg := workflowConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	videoPath := writeLibraryFile(t, cfg, "film.mkv")
	video := testsupport.NewVideo(t, st, &store.Video{
		Kind: store.KindMovie, Path: videoPath, ProfileID: 1,
	})

	bus := notifications.NewBus(cfg, logging.NewNop())
	var events []notifications.Event
	bus.Subscribe(func(event notifications.Event) {
		events = append(events, event)
	})

	runner := NewRunner(cfg, st, bus, logging.NewNop())
	if err := runner.IndexVideo(context.Background(), video.ID, true); err != nil {
		t.Fatalf("IndexVideo: %v", err)
	}

	var sawVideo, sawBadges bool
	for _, event := range events {
		switch event.Type {
		case notifications.EventVideoUpdated:
			sawVideo = true
		case notifications.EventBadgesUpdated:
			sawBadges = true
		}
	}
	if !sawVideo || !sawBadges {
		t.Fatalf("expected video and badge events, got %v", events)
	}
}

func TestSweepLibrary(t *testing.T) {
	cfg := workflowConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	for _, name := range []string{"one.mkv", "two.mkv", "three.mkv"} {
		path := writeLibraryFile(t, cfg, name)
		testsupport.NewVideo(t, st, &store.Video{
			Kind: store.KindMovie, Path: path, ProfileID: 1,
		})
	}
	writeLibraryFile(t, cfg, "one.en.srt")

	bus := notifications.NewBus(cfg, logging.NewNop())
	var sweepEvents, videoEvents int
	bus.Subscribe(func(event notifications.Event) {
		switch event.Type {
		case notifications.EventSweepCompleted:
			sweepEvents++
		case notifications.EventVideoUpdated:
			videoEvents++
		}
	})

	runner := NewRunner(cfg, st, bus, logging.NewNop())
	stats, err := runner.SweepLibrary(context.Background(), true, nil)
	if err != nil {
		t.Fatalf("SweepLibrary: %v", err)
	}
	if stats.Videos != 3 || stats.Failed != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	if sweepEvents != 1 {
		t.Fatalf("expected one sweep event, got %d", sweepEvents)
	}
	// Per-video events are suppressed during a sweep.
	if videoEvents != 0 {
		t.Fatalf("expected no per-video events, got %d", videoEvents)
	}

	videos, err := st.ListVideos(context.Background())
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	for _, video := range videos {
		if filepath.Base(video.Path) == "one.mkv" {
			if !reflect.DeepEqual(video.Missing, []string{"fr"}) {
				t.Fatalf("one.mkv unexpected missing %v", video.Missing)
			}
			continue
		}
		if !reflect.DeepEqual(video.Missing, []string{"en", "fr"}) {
			t.Fatalf("%s unexpected missing %v", video.Path, video.Missing)
		}
	}
}

func TestSweepLibraryCountsFailures(t *testing.T) {
	cfg := workflowConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	// A video whose file is missing indexes to an empty list, not a failure.
	testsupport.NewVideo(t, st, &store.Video{
		Kind:      store.KindMovie,
		Path:      filepath.Join(cfg.Paths.LibraryDir, "gone.mkv"),
		ProfileID: 1,
	})

	runner := NewRunner(cfg, st, nil, logging.NewNop())
	stats, err := runner.SweepLibrary(context.Background(), true, nil)
	if err != nil {
		t.Fatalf("SweepLibrary: %v", err)
	}
	if stats.Videos != 1 || stats.Failed != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
