package scoring

import "testing"

func TestParseReleaseEpisode(t *testing.T) {
	guess := ParseRelease("The.Example.Show.S01E02.1080p.WEB-DL.DDP5.1.H264-NTb.mkv")

	if len(guess.Titles) != 1 || sanitize(guess.Titles[0]) != "theexampleshow" {
		t.Fatalf("unexpected titles %v", guess.Titles)
	}
	if guess.Season == nil || *guess.Season != 1 {
		t.Fatalf("unexpected season %v", guess.Season)
	}
	if len(guess.Episodes) != 1 || guess.Episodes[0] != 2 {
		t.Fatalf("unexpected episodes %v", guess.Episodes)
	}
	if guess.Resolution != "1080p" {
		t.Fatalf("unexpected resolution %q", guess.Resolution)
	}
	if !containsSanitized(guess.Sources, "webdl") {
		t.Fatalf("unexpected sources %v", guess.Sources)
	}
	if !containsSanitized(guess.VideoCodecs, "h264") {
		t.Fatalf("unexpected video codecs %v", guess.VideoCodecs)
	}
	if guess.ReleaseGroup != "NTb" {
		t.Fatalf("unexpected group %q", guess.ReleaseGroup)
	}
}

func TestParseReleaseMultiEpisode(t *testing.T) {
	guess := ParseRelease("Show.S02E05-E06.720p.HDTV.x264-LOL")

	if guess.Season == nil || *guess.Season != 2 {
		t.Fatalf("unexpected season %v", guess.Season)
	}
	if len(guess.Episodes) != 2 || guess.Episodes[0] != 5 || guess.Episodes[1] != 6 {
		t.Fatalf("unexpected episodes %v", guess.Episodes)
	}
	if episode, ok := minEpisode(guess.Episodes); !ok || episode != 5 {
		t.Fatalf("unexpected lowest episode %d", episode)
	}
}

func TestParseReleaseMovie(t *testing.T) {
	guess := ParseRelease("Some.Film.2020.2160p.AMZN.WEB-DL.Atmos.HEVC-EVO")

	if guess.Year == nil || *guess.Year != 2020 {
		t.Fatalf("unexpected year %v", guess.Year)
	}
	if guess.Season != nil || len(guess.Episodes) != 0 {
		t.Fatalf("movie release should carry no episode info")
	}
	if guess.StreamingService != "AMZN" {
		t.Fatalf("unexpected streaming service %q", guess.StreamingService)
	}
	if guess.Resolution != "2160p" {
		t.Fatalf("unexpected resolution %q", guess.Resolution)
	}
	if len(guess.Titles) != 1 || sanitize(guess.Titles[0]) != "somefilm" {
		t.Fatalf("unexpected titles %v", guess.Titles)
	}
}

func TestParseReleaseEdition(t *testing.T) {
	guess := ParseRelease("Another.Film.1999.Extended.1080p.BluRay.DTS.x264-FGT")
	if guess.Edition != "extended" {
		t.Fatalf("unexpected edition %q", guess.Edition)
	}
	if !containsSanitized(guess.Sources, "bluray") {
		t.Fatalf("unexpected sources %v", guess.Sources)
	}
}

func TestParseReleaseAbsentFieldsStayAbsent(t *testing.T) {
	guess := ParseRelease("mystery subtitle pack")

	if guess.Year != nil || guess.Season != nil || len(guess.Episodes) != 0 {
		t.Fatalf("nothing should be inferred, got %+v", guess)
	}
	if guess.ReleaseGroup != "" || guess.Resolution != "" {
		t.Fatalf("nothing should be inferred, got %+v", guess)
	}
}

func TestParseReleaseKeepsYearBearingName(t *testing.T) {
	// ".2020" at the end must not be treated as a file extension.
	guess := ParseRelease("Some.Film.2020")
	if guess.Year == nil || *guess.Year != 2020 {
		t.Fatalf("unexpected year %v", guess.Year)
	}
}
