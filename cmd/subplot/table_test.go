package main

import (
	"strings"
	"testing"
)

func TestRenderTableRightAlignsNumericColumns(t *testing.T) {
	out := renderTable(
		[]string{"ID", "Name"},
		[][]string{{"7", "alpha"}, {"42", "beta"}},
	)
	if !strings.Contains(out, "│  7 │") || !strings.Contains(out, "│ 42 │") {
		t.Fatalf("id column should be right-aligned:\n%s", out)
	}
	if !strings.Contains(out, "│ alpha │") {
		t.Fatalf("text column should stay left-aligned:\n%s", out)
	}
}

func TestRenderTableMixedColumnStaysLeft(t *testing.T) {
	out := renderTable(
		[]string{"Detail"},
		[][]string{{"12"}, {"pending"}},
	)
	if !strings.Contains(out, "│ 12  ") {
		t.Fatalf("mixed column should stay left-aligned:\n%s", out)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}})
	if !strings.Contains(out, "only") {
		t.Fatalf("short row should render:\n%s", out)
	}
}
