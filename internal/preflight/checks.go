// Package preflight verifies the runtime environment before indexing:
// required binaries, writable directories, and available disk space.
package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sys/unix"

	"subplot/internal/config"
)

// Result is the outcome of one environment check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minFreeBytes is the floor below which the data directory is considered
// too full to persist safely.
const minFreeBytes = 256 << 20

// Run executes every check against the configuration.
func Run(ctx context.Context, cfg *config.Config) []Result {
	return []Result{
		CheckFFProbe(ctx, cfg.Subtitles.FFProbeBinary),
		CheckLibraryDir(cfg.Paths.LibraryDir),
		CheckDataDir(cfg.Paths.DataDir),
	}
}

// CheckFFProbe verifies the probe binary is present and runnable.
func CheckFFProbe(ctx context.Context, binary string) Result {
	const name = "ffprobe"
	if binary == "" {
		binary = "ffprobe"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s not found in PATH", binary)}
	}
	cmd := exec.CommandContext(ctx, binary, "-version")
	if err := cmd.Run(); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s failed to run: %v", binary, err)}
	}
	return Result{Name: name, Passed: true, Detail: binary}
}

// CheckLibraryDir verifies the library root exists and is a directory.
func CheckLibraryDir(dir string) Result {
	const name = "library"
	info, err := os.Stat(dir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("cannot stat %s: %v", dir, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", dir)}
	}
	return Result{Name: name, Passed: true, Detail: dir}
}

// CheckDataDir verifies the data directory is creatable, writable, and has
// free space for the database and ledger.
func CheckDataDir(dir string) Result {
	const name = "data"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("cannot create %s: %v", dir, err)}
	}

	probe := filepath.Join(dir, ".preflight")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not writable: %v", dir, err)}
	}
	_ = os.Remove(probe)

	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("statfs %s: %v", dir, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < minFreeBytes {
		return Result{Name: name, Detail: fmt.Sprintf("only %d MiB free in %s", free>>20, dir)}
	}
	return Result{Name: name, Passed: true, Detail: dir}
}
