package store_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"subplot/internal/language"
	"subplot/internal/store"
	"subplot/internal/subtitles"
	"subplot/internal/testsupport"
)

func TestInsertAndGetVideo(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	inserted := testsupport.NewVideo(t, st, &store.Video{
		Kind:           store.KindEpisode,
		Path:           "/library/show/s01e02.mkv",
		Series:         "The Example Show",
		Season:         1,
		Episode:        2,
		Year:           2019,
		OriginalSeries: true,
		AudioLanguages: []string{"en", "ja"},
		ProfileID:      1,
	})
	if inserted.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	got, err := st.GetVideo(context.Background(), inserted.ID)
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if got.Series != "The Example Show" || !got.OriginalSeries || got.ProfileID != 1 {
		t.Fatalf("unexpected video %+v", got)
	}
	if !reflect.DeepEqual(got.AudioLanguages, []string{"en", "ja"}) {
		t.Fatalf("unexpected audio languages %v", got.AudioLanguages)
	}
}

func TestGetVideoNotFound(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	if _, err := st.GetVideo(context.Background(), 42); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVideosByPathReturnsAllRows(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	path := "/library/film.mkv"
	testsupport.NewVideo(t, st, &store.Video{Kind: store.KindMovie, Path: path, Title: "First"})
	testsupport.NewVideo(t, st, &store.Video{Kind: store.KindMovie, Path: path, Title: "Second"})
	testsupport.NewVideo(t, st, &store.Video{Kind: store.KindMovie, Path: "/library/other.mkv"})

	rows, err := st.VideosByPath(context.Background(), path)
	if err != nil {
		t.Fatalf("VideosByPath: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestSubtitleRoundTrip(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	video := testsupport.NewVideo(t, st, &store.Video{Kind: store.KindMovie, Path: "/library/film.mkv"})

	records := []subtitles.Record{
		{Selector: language.Selector{Code: "en", HearingImpaired: true}},
		{Selector: language.Selector{Code: "fr"}, Path: "/library/film.fr.srt", Size: 1234},
	}
	if err := st.SetSubtitles(context.Background(), video.ID, records); err != nil {
		t.Fatalf("SetSubtitles: %v", err)
	}

	got, err := st.GetVideo(context.Background(), video.ID)
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if !reflect.DeepEqual(got.Subtitles, records) {
		t.Fatalf("got %+v, want %+v", got.Subtitles, records)
	}
}

func TestSetMissingAndWantedCounts(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	movie := testsupport.NewVideo(t, st, &store.Video{Kind: store.KindMovie, Path: "/library/film.mkv"})
	episode := testsupport.NewVideo(t, st, &store.Video{Kind: store.KindEpisode, Path: "/library/ep.mkv"})
	testsupport.NewVideo(t, st, &store.Video{Kind: store.KindEpisode, Path: "/library/done.mkv"})

	if err := st.SetMissing(context.Background(), movie.ID, []string{"en", "fr:forced"}); err != nil {
		t.Fatalf("SetMissing: %v", err)
	}
	if err := st.SetMissing(context.Background(), episode.ID, []string{"en:hi"}); err != nil {
		t.Fatalf("SetMissing: %v", err)
	}

	movies, episodes, err := st.WantedCounts(context.Background())
	if err != nil {
		t.Fatalf("WantedCounts: %v", err)
	}
	if movies != 1 || episodes != 1 {
		t.Fatalf("got %d movies %d episodes, want 1 and 1", movies, episodes)
	}
}

func TestSetMissingUnknownVideo(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	if err := st.SetMissing(context.Background(), 99, []string{"en"}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEncodeRecordsGrammar(t *testing.T) {
	encoded, err := store.EncodeRecords([]subtitles.Record{
		{Selector: language.Selector{Code: "en", HearingImpaired: true}, Path: "/p.srt", Size: 100},
		{Selector: language.Selector{Code: "fr"}},
	})
	if err != nil {
		t.Fatalf("EncodeRecords: %v", err)
	}
	want := `[["en:hi","/p.srt",100],["fr",null,null]]`
	if encoded != want {
		t.Fatalf("got %s, want %s", encoded, want)
	}
}

func TestDecodeRecordsRejectsMalformedEntries(t *testing.T) {
	for _, text := range []string{
		`[["en","/p.srt"]]`,
		`[["en:sdh",null,null]]`,
		`[[3,null,null]]`,
		`not json`,
	} {
		if _, err := store.DecodeRecords(text); err == nil {
			t.Fatalf("expected decode error for %s", text)
		}
	}
}

func TestProbeCacheKeyedBySize(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := st.PutProbe(ctx, "/library/film.mkv", 100, []byte("payload")); err != nil {
		t.Fatalf("PutProbe: %v", err)
	}

	payload, hit, err := st.GetProbe(ctx, "/library/film.mkv", 100)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if string(payload) != "payload" {
		t.Fatalf("unexpected payload %q", payload)
	}

	// Same file, different size: the old entry no longer applies.
	if _, hit, _ := st.GetProbe(ctx, "/library/film.mkv", 200); hit {
		t.Fatal("size mismatch must miss")
	}
}

func TestPutProbeEvictsStaleSizes(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := st.PutProbe(ctx, "/library/film.mkv", 100, []byte("old")); err != nil {
		t.Fatalf("PutProbe: %v", err)
	}
	if err := st.PutProbe(ctx, "/library/film.mkv", 200, []byte("new")); err != nil {
		t.Fatalf("PutProbe: %v", err)
	}

	if _, hit, _ := st.GetProbe(ctx, "/library/film.mkv", 100); hit {
		t.Fatal("stale size entry should have been evicted")
	}
	if payload, hit, _ := st.GetProbe(ctx, "/library/film.mkv", 200); !hit || string(payload) != "new" {
		t.Fatal("current entry should remain")
	}
}

func TestClearProbeCache(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := st.PutProbe(ctx, "/library/film.mkv", 100, []byte("payload")); err != nil {
		t.Fatalf("PutProbe: %v", err)
	}
	if err := st.ClearProbeCache(ctx); err != nil {
		t.Fatalf("ClearProbeCache: %v", err)
	}
	if _, hit, _ := st.GetProbe(ctx, "/library/film.mkv", 100); hit {
		t.Fatal("cache should be empty")
	}
}

func TestConcurrentUpdatesAcrossConnections(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	videos := make([]*store.Video, 8)
	for i := range videos {
		videos[i] = testsupport.NewVideo(t, st, &store.Video{
			Kind: store.KindMovie,
			Path: fmt.Sprintf("/library/movie-%d.mkv", i),
		})
	}

	// Writers on distinct rows run from different pooled connections and
	// must all succeed without SQLITE_BUSY.
	var wg sync.WaitGroup
	errs := make(chan error, len(videos))
	for _, video := range videos {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				if err := st.SetMissing(ctx, id, []string{"en", "fr"}); err != nil {
					errs <- err
					return
				}
			}
		}(video.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent update: %v", err)
	}
}
