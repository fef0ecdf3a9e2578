package testsupport

import (
	"path/filepath"
	"testing"

	"subplot/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryDir = filepath.Join(base, "library")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithProfile appends a language profile to the test config.
func WithProfile(p config.Profile) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Languages.Profiles = append(b.cfg.Languages.Profiles, p)
	}
}

// WithProviders sets the enabled provider list on the test config.
func WithProviders(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Providers.Enabled = names
	}
}

// WithSubtitles replaces the subtitle indexing settings on the test config.
func WithSubtitles(s config.Subtitles) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Subtitles = s
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
