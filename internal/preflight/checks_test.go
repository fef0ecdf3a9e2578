package preflight

import (
	"context"
	"path/filepath"
	"testing"
)

func TestCheckLibraryDir(t *testing.T) {
	if result := CheckLibraryDir(t.TempDir()); !result.Passed {
		t.Fatalf("existing directory should pass: %+v", result)
	}
	if result := CheckLibraryDir(filepath.Join(t.TempDir(), "absent")); result.Passed {
		t.Fatal("missing directory should fail")
	}
}

func TestCheckDataDirCreatesAndWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	result := CheckDataDir(dir)
	if !result.Passed {
		t.Fatalf("creatable directory should pass: %+v", result)
	}
}

func TestCheckFFProbeMissingBinary(t *testing.T) {
	result := CheckFFProbe(context.Background(), "definitely-not-a-real-binary")
	if result.Passed {
		t.Fatal("missing binary should fail")
	}
}
