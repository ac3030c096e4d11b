package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSelection()
	c.normalizeFetch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("ESVID_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = value
	}
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSelection() {
	c.Selection.PreferredLanguage = strings.ToLower(strings.TrimSpace(c.Selection.PreferredLanguage))
	if c.Selection.PreferredLanguage == "" {
		c.Selection.PreferredLanguage = defaultPreferredLanguage
	}
	c.Selection.DefaultQuality = strings.TrimSpace(c.Selection.DefaultQuality)

	tags := make([]string, 0, len(c.Selection.SubtitleTags))
	for _, tag := range c.Selection.SubtitleTags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if len(tags) == 0 {
		tags = []string{c.Selection.PreferredLanguage}
	}
	c.Selection.SubtitleTags = tags
}

func (c *Config) normalizeFetch() {
	browsers := make([]string, 0, len(c.Fetch.Browsers))
	for _, browser := range c.Fetch.Browsers {
		if trimmed := strings.ToLower(strings.TrimSpace(browser)); trimmed != "" {
			browsers = append(browsers, trimmed)
		}
	}
	c.Fetch.Browsers = browsers
	c.Fetch.YtdlpCommand = strings.TrimSpace(c.Fetch.YtdlpCommand)
	c.Fetch.FFmpegCommand = strings.TrimSpace(c.Fetch.FFmpegCommand)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
