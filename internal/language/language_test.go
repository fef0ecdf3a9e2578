package language

import "testing"

func TestToISO2RecognizedCodes(t *testing.T) {
	cases := map[string]string{
		"en":      "en",
		"eng":     "en",
		"ENG":     "en",
		"english": "en",
		"fre":     "fr",
		"fra":     "fr",
		"ger":     "de",
	}
	for input, want := range cases {
		if got := ToISO2(input); got != want {
			t.Fatalf("ToISO2(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestToISO2PassesThroughUnknownTwoLetterCodes(t *testing.T) {
	if got := ToISO2("xx"); got != "xx" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestToISO2RejectsUndefinedAndUnknown(t *testing.T) {
	if got := ToISO2("und"); got != "" {
		t.Fatalf("und should not resolve, got %q", got)
	}
	if got := ToISO2("klingon"); got != "" {
		t.Fatalf("unknown word should not resolve, got %q", got)
	}
}

func TestToISO3(t *testing.T) {
	if got := ToISO3("en"); got != "eng" {
		t.Fatalf("ToISO3(en) = %q", got)
	}
	if got := ToISO3("fre"); got != "fra" {
		t.Fatalf("alternate code should map to primary, got %q", got)
	}
	if got := ToISO3(""); got != Undefined {
		t.Fatalf("empty should map to undefined, got %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"en":  "English",
		"fre": "French",
		"":    "Unknown",
		"sw":  "Swahili", // outside the common table, resolved via CLDR
		"qq":  "QQ",
	}
	for input, want := range cases {
		if got := DisplayName(input); got != want {
			t.Fatalf("DisplayName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestExtractFromTags(t *testing.T) {
	if got := ExtractFromTags(map[string]string{"LANGUAGE": " Eng "}); got != "eng" {
		t.Fatalf("unexpected tag extraction %q", got)
	}
	// Container tags sometimes arrive NUL-padded.
	if got := ExtractFromTags(map[string]string{"language": "eng\x00"}); got != "eng" {
		t.Fatalf("NUL bytes should be stripped, got %q", got)
	}
	if got := ExtractFromTags(map[string]string{"title": "Commentary"}); got != "" {
		t.Fatalf("expected no language, got %q", got)
	}
}

func TestNormalizeListDeduplicates(t *testing.T) {
	got := NormalizeList([]string{"eng", "en", "spa", "klingon"})
	if len(got) != 2 || got[0] != "en" || got[1] != "es" {
		t.Fatalf("unexpected normalized list %v", got)
	}
}

func TestParseTagGrammar(t *testing.T) {
	sel, err := ParseTag("en")
	if err != nil {
		t.Fatalf("ParseTag: %v", err)
	}
	if sel != (Selector{Code: "en"}) {
		t.Fatalf("unexpected selector %+v", sel)
	}

	sel, err = ParseTag("en:forced")
	if err != nil {
		t.Fatalf("ParseTag: %v", err)
	}
	if !sel.Forced || sel.HearingImpaired {
		t.Fatalf("unexpected selector %+v", sel)
	}

	sel, err = ParseTag("EN:HI")
	if err != nil {
		t.Fatalf("ParseTag: %v", err)
	}
	if sel.Code != "en" || !sel.HearingImpaired {
		t.Fatalf("unexpected selector %+v", sel)
	}
}

func TestParseTagRejectsUnknownSuffix(t *testing.T) {
	if _, err := ParseTag("en:sdh"); err == nil {
		t.Fatal("expected error for unknown suffix")
	}
	if _, err := ParseTag(""); err == nil {
		t.Fatal("expected error for empty tag")
	}
}

func TestSelectorTagForcedWinsOverHI(t *testing.T) {
	sel := Selector{Code: "en", Forced: true, HearingImpaired: true}
	if got := sel.Tag(); got != "en:forced" {
		t.Fatalf("forced should take priority, got %q", got)
	}
}

func TestSelectorTagRoundTrip(t *testing.T) {
	for _, tag := range []string{"en", "en:forced", "en:hi"} {
		sel, err := ParseTag(tag)
		if err != nil {
			t.Fatalf("ParseTag(%q): %v", tag, err)
		}
		if got := sel.Tag(); got != tag {
			t.Fatalf("round trip of %q produced %q", tag, got)
		}
	}
}

func TestOverrideTableLookup(t *testing.T) {
	table := NewOverrideTable([]Override{
		{Match: "Movie.Custom.srt", Selector: Selector{Code: "pt"}},
		{Match: "/library/show/episode.en.srt", Selector: Selector{Code: "en", Forced: true}},
	})

	sel, ok := table.Lookup("movie.custom.srt", "/elsewhere/movie.custom.srt")
	if !ok || sel.Code != "pt" {
		t.Fatalf("filename lookup failed: %+v ok=%v", sel, ok)
	}

	sel, ok = table.Lookup("episode.en.srt", "/library/show/episode.en.srt")
	if !ok || !sel.Forced {
		t.Fatalf("path lookup should win: %+v ok=%v", sel, ok)
	}

	if _, ok := table.Lookup("other.srt", "/library/other.srt"); ok {
		t.Fatal("unexpected override match")
	}
}
