package config

const (
	defaultOutputDir         = "~/Desktop"
	defaultCacheDir          = "~/.cache/esvid"
	defaultPreferredLanguage = "es"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			CacheDir:  defaultCacheDir,
		},
		Selection: Selection{
			PreferredLanguage: defaultPreferredLanguage,
			SubtitleTags:      []string{"es", "es-419"},
		},
		Fetch: Fetch{
			Browsers: []string{"chrome", "firefox", "brave", "edge", "opera", "vivaldi", "safari"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
