package config

const (
	defaultLibraryDir      = "~/library"
	defaultDataDir         = "~/.local/share/subplot"
	defaultLogDir          = "~/.local/share/subplot/logs"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultSubfolderPolicy = "current"
	defaultFFProbeBinary   = "ffprobe"
	defaultFPSTolerance    = 0.03
	defaultWorkers         = 4
	defaultNtfyTimeout     = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
		},
		Subtitles: Subtitles{
			EmbeddedEnabled: true,
			SubfolderPolicy: defaultSubfolderPolicy,
			FFProbeBinary:   defaultFFProbeBinary,
		},
		Providers: Providers{
			Enabled: []string{"opensubtitles"},
		},
		Scoring: Scoring{
			FPSTolerance: defaultFPSTolerance,
		},
		Workflow: Workflow{
			Workers: defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
	}
}
