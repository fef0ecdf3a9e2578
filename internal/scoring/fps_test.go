package scoring

import "testing"

func TestCheckFPS(t *testing.T) {
	if got := CheckFPS(23.976, 24.0, 0.03); got != FPSMatch {
		t.Fatalf("23.976 vs 24 should match, got %v", got)
	}
	if got := CheckFPS(23.976, 25.0, 0.03); got != FPSMismatch {
		t.Fatalf("23.976 vs 25 should mismatch, got %v", got)
	}
	if got := CheckFPS(0, 24.0, 0.03); got != FPSUnknown {
		t.Fatalf("missing video fps is unknown, got %v", got)
	}
	if got := CheckFPS(23.976, 0, 0.03); got != FPSUnknown {
		t.Fatalf("missing subtitle fps is unknown, got %v", got)
	}
}

func TestDisqualifyWrongFPS(t *testing.T) {
	matches := Set{TagSeries: {}, TagSeason: {}}
	if DisqualifyWrongFPS(matches, FPSMatch, true) {
		t.Fatal("matching fps must not disqualify")
	}
	if DisqualifyWrongFPS(matches, FPSMismatch, false) {
		t.Fatal("skip disabled must not disqualify")
	}
	if len(matches) != 2 {
		t.Fatalf("match set should be untouched, got %v", matches.Sorted())
	}

	if !DisqualifyWrongFPS(matches, FPSMismatch, true) {
		t.Fatal("mismatch with skip enabled should disqualify")
	}
	if len(matches) != 0 {
		t.Fatalf("match set should be cleared, got %v", matches.Sorted())
	}
}
