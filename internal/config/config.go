package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LibraryDir string `toml:"library_dir"`
	DataDir    string `toml:"data_dir"`
	LogDir     string `toml:"log_dir"`
}

// Subtitles contains configuration for embedded and external subtitle indexing.
type Subtitles struct {
	EmbeddedEnabled     bool   `toml:"embedded_enabled"`
	IgnorePGS           bool   `toml:"ignore_pgs"`
	IgnoreVobsub        bool   `toml:"ignore_vobsub"`
	IgnoreASS           bool   `toml:"ignore_ass"`
	UndefinedEmbeddedLanguage string `toml:"undefined_embedded_language"`
	SubfolderPolicy     string `toml:"subfolder_policy"`
	Subfolder           string `toml:"subfolder"`
	OnlyOnePerLanguage  bool   `toml:"only_one_per_language"`
	SkipWrongFPS        bool   `toml:"skip_wrong_fps"`
	FFProbeBinary       string `toml:"ffprobe_binary"`
}

// ProfileItem configures a single desired language selector within a profile.
type ProfileItem struct {
	Language         string `toml:"language"`
	Forced           bool   `toml:"forced"`
	HearingImpaired  bool   `toml:"hearing_impaired"`
	AudioExclude     bool   `toml:"audio_exclude"`
	AudioOnlyInclude bool   `toml:"audio_only_include"`
}

// ProfileCutoff configures the optional profile cutoff selector.
type ProfileCutoff struct {
	Language        string `toml:"language"`
	Forced          bool   `toml:"forced"`
	HearingImpaired bool   `toml:"hearing_impaired"`
}

// Profile configures an ordered language profile.
type Profile struct {
	ID     int64          `toml:"id"`
	Name   string         `toml:"name"`
	Items  []ProfileItem  `toml:"items"`
	Cutoff *ProfileCutoff `toml:"cutoff"`
}

// LanguageOverride maps a subtitle filename or path to a custom language tag.
type LanguageOverride struct {
	Match string `toml:"match"`
	Tag   string `toml:"tag"`
}

// Languages contains language profiles and custom tag overrides.
type Languages struct {
	Profiles  []Profile          `toml:"profiles"`
	Overrides []LanguageOverride `toml:"overrides"`
}

// ThrottleOverride customizes the throttle duration for one provider and error kind.
type ThrottleOverride struct {
	Provider string `toml:"provider"`
	Kind     string `toml:"kind"`
	Minutes  int    `toml:"minutes"`
}

// Providers contains provider dispatch configuration.
type Providers struct {
	Enabled           []string           `toml:"enabled"`
	ThrottleOverrides []ThrottleOverride `toml:"throttle_overrides"`
}

// Scoring contains match-scoring tunables.
type Scoring struct {
	FPSTolerance float64 `toml:"fps_tolerance"`
}

// Workflow contains orchestration tunables.
type Workflow struct {
	Workers int `toml:"workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Notifications contains configuration for the ntfy webhook forwarder.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Config is the root configuration document.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Subtitles     Subtitles     `toml:"subtitles"`
	Languages     Languages     `toml:"languages"`
	Providers     Providers     `toml:"providers"`
	Scoring       Scoring       `toml:"scoring"`
	Workflow      Workflow      `toml:"workflow"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
}

// DefaultConfigPath returns the preferred location for the config file.
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "subplot", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

// Load reads the configuration file at path, falling back to defaults for
// absent fields. A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultConfigPath()
	}
	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.normalize()
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteSample writes the annotated sample configuration to path.
func WriteSample(path string) error {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the data and log directories if absent.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the sqlite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "subplot.db")
}

// ThrottleLedgerPath returns the provider throttle ledger file location.
func (c *Config) ThrottleLedgerPath() string {
	return filepath.Join(c.Paths.DataDir, "throttle.jsonl")
}

// ProfileByID returns the configured profile with the given id, or nil.
func (c *Config) ProfileByID(id int64) *Profile {
	for i := range c.Languages.Profiles {
		if c.Languages.Profiles[i].ID == id {
			return &c.Languages.Profiles[i]
		}
	}
	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
