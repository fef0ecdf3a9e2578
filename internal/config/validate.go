package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validate rejects configurations that cannot drive indexing safely.
func (c *Config) Validate() error {
	var problems []error

	if c.Paths.LibraryDir == "" {
		problems = append(problems, errors.New("paths.library_dir must be set"))
	}
	if c.Paths.DataDir == "" {
		problems = append(problems, errors.New("paths.data_dir must be set"))
	}

	switch c.Subtitles.SubfolderPolicy {
	case "current", "relative", "absolute":
	default:
		problems = append(problems, fmt.Errorf("subtitles.subfolder_policy: unsupported value %q", c.Subtitles.SubfolderPolicy))
	}
	if c.Subtitles.SubfolderPolicy == "absolute" && !filepath.IsAbs(c.Subtitles.Subfolder) {
		problems = append(problems, errors.New("subtitles.subfolder must be absolute when subfolder_policy is \"absolute\""))
	}
	if c.Subtitles.SubfolderPolicy == "relative" && c.Subtitles.Subfolder == "" {
		problems = append(problems, errors.New("subtitles.subfolder must be set when subfolder_policy is \"relative\""))
	}

	seen := map[int64]struct{}{}
	for _, profile := range c.Languages.Profiles {
		if profile.ID <= 0 {
			problems = append(problems, fmt.Errorf("languages.profiles: profile %q needs a positive id", profile.Name))
			continue
		}
		if _, ok := seen[profile.ID]; ok {
			problems = append(problems, fmt.Errorf("languages.profiles: duplicate profile id %d", profile.ID))
		}
		seen[profile.ID] = struct{}{}
		for _, item := range profile.Items {
			if item.Language == "" {
				problems = append(problems, fmt.Errorf("languages.profiles: profile %d has an item without a language", profile.ID))
			}
			if item.Forced && item.HearingImpaired {
				problems = append(problems, fmt.Errorf("languages.profiles: profile %d requests forced and hearing-impaired on one item", profile.ID))
			}
			if item.AudioExclude && item.AudioOnlyInclude {
				problems = append(problems, fmt.Errorf("languages.profiles: profile %d sets audio_exclude and audio_only_include on one item", profile.ID))
			}
		}
		if profile.Cutoff != nil && profile.Cutoff.Language == "" {
			problems = append(problems, fmt.Errorf("languages.profiles: profile %d has a cutoff without a language", profile.ID))
		}
	}

	for _, override := range c.Languages.Overrides {
		if override.Match == "" || override.Tag == "" {
			problems = append(problems, errors.New("languages.overrides: match and tag must both be set"))
		}
	}

	return errors.Join(problems...)
}
