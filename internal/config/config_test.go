package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Subtitles.SubfolderPolicy != "current" {
		t.Fatalf("unexpected subfolder policy %q", cfg.Subtitles.SubfolderPolicy)
	}
	if cfg.Scoring.FPSTolerance != 0.03 {
		t.Fatalf("unexpected fps tolerance %f", cfg.Scoring.FPSTolerance)
	}
	if cfg.Workflow.Workers != 4 {
		t.Fatalf("unexpected worker count %d", cfg.Workflow.Workers)
	}
	if !cfg.Subtitles.EmbeddedEnabled {
		t.Fatal("embedded indexing should default on")
	}
}

func TestLoadParsesProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[paths]
library_dir = "/library"
data_dir = "/data"

[[languages.profiles]]
id = 1
name = "Main"

[[languages.profiles.items]]
language = "EN"

[[languages.profiles.items]]
language = "fr"
forced = true

[languages.profiles.cutoff]
language = "EN"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	profile := cfg.ProfileByID(1)
	if profile == nil {
		t.Fatal("profile 1 not found")
	}
	if len(profile.Items) != 2 || profile.Items[0].Language != "en" {
		t.Fatalf("languages should be lowercased, got %+v", profile.Items)
	}
	if !profile.Items[1].Forced {
		t.Fatal("forced flag lost")
	}
	if profile.Cutoff == nil || profile.Cutoff.Language != "en" {
		t.Fatalf("unexpected cutoff %+v", profile.Cutoff)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[subtitles]
subfolder_policy = "sideways"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "subfolder_policy") {
		t.Fatalf("expected subfolder policy error, got %v", err)
	}
}

func TestValidateProfileRules(t *testing.T) {
	cfg := Default()
	cfg.Languages.Profiles = []Profile{{
		ID:   1,
		Name: "Bad",
		Items: []ProfileItem{
			{Language: "en", Forced: true, HearingImpaired: true},
		},
	}}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "forced and hearing-impaired") {
		t.Fatalf("expected forced+hi rejection, got %v", err)
	}

	cfg.Languages.Profiles = []Profile{{
		ID:   1,
		Name: "Bad",
		Items: []ProfileItem{
			{Language: "en", AudioExclude: true, AudioOnlyInclude: true},
		},
	}}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "audio_exclude") {
		t.Fatalf("expected audio rule rejection, got %v", err)
	}

	cfg.Languages.Profiles = []Profile{
		{ID: 1, Name: "A", Items: []ProfileItem{{Language: "en"}}},
		{ID: 1, Name: "B", Items: []ProfileItem{{Language: "fr"}}},
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "duplicate profile id") {
		t.Fatalf("expected duplicate id rejection, got %v", err)
	}
}

func TestValidateSubfolderRules(t *testing.T) {
	cfg := Default()
	cfg.Subtitles.SubfolderPolicy = "relative"
	if err := cfg.Validate(); err == nil {
		t.Fatal("relative policy without a subfolder should fail")
	}

	cfg.Subtitles.SubfolderPolicy = "absolute"
	cfg.Subtitles.Subfolder = "subs"
	if err := cfg.Validate(); err == nil {
		t.Fatal("absolute policy with a relative subfolder should fail")
	}

	cfg.Subtitles.Subfolder = "/subs"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid absolute policy rejected: %v", err)
	}
}

func TestNormalizeDeduplicatesProviders(t *testing.T) {
	cfg := Default()
	cfg.Providers.Enabled = []string{"OpenSubtitles", " opensubtitles ", "", "podnapisi"}
	cfg.normalize()

	if len(cfg.Providers.Enabled) != 2 {
		t.Fatalf("unexpected providers %v", cfg.Providers.Enabled)
	}
	if cfg.Providers.Enabled[0] != "opensubtitles" || cfg.Providers.Enabled[1] != "podnapisi" {
		t.Fatalf("unexpected providers %v", cfg.Providers.Enabled)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error writing over an existing config")
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if cfg.Paths.LibraryDir == "" {
		t.Fatal("sample config should carry defaults")
	}
}
