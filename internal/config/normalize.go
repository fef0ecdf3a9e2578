package config

import "strings"

// normalize canonicalizes user-supplied values after decoding.
func (c *Config) normalize() {
	c.Paths.LibraryDir = expandHome(strings.TrimSpace(c.Paths.LibraryDir))
	c.Paths.DataDir = expandHome(strings.TrimSpace(c.Paths.DataDir))
	c.Paths.LogDir = expandHome(strings.TrimSpace(c.Paths.LogDir))

	c.Subtitles.SubfolderPolicy = strings.ToLower(strings.TrimSpace(c.Subtitles.SubfolderPolicy))
	if c.Subtitles.SubfolderPolicy == "" {
		c.Subtitles.SubfolderPolicy = defaultSubfolderPolicy
	}
	c.Subtitles.UndefinedEmbeddedLanguage = strings.ToLower(strings.TrimSpace(c.Subtitles.UndefinedEmbeddedLanguage))
	if strings.TrimSpace(c.Subtitles.FFProbeBinary) == "" {
		c.Subtitles.FFProbeBinary = defaultFFProbeBinary
	}

	enabled := make([]string, 0, len(c.Providers.Enabled))
	seen := map[string]struct{}{}
	for _, name := range c.Providers.Enabled {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		enabled = append(enabled, name)
	}
	c.Providers.Enabled = enabled

	for i := range c.Languages.Profiles {
		profile := &c.Languages.Profiles[i]
		for j := range profile.Items {
			profile.Items[j].Language = strings.ToLower(strings.TrimSpace(profile.Items[j].Language))
		}
		if profile.Cutoff != nil {
			profile.Cutoff.Language = strings.ToLower(strings.TrimSpace(profile.Cutoff.Language))
		}
	}

	if c.Scoring.FPSTolerance <= 0 {
		c.Scoring.FPSTolerance = defaultFPSTolerance
	}
	if c.Workflow.Workers <= 0 {
		c.Workflow.Workers = defaultWorkers
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
}
