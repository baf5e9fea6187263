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
	c.normalizeStash()
	c.normalizeWhisparr()
	c.normalizeSync()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.LedgerDir, err = expandPath(c.Paths.LedgerDir); err != nil {
		return fmt.Errorf("paths.ledger_dir: %w", err)
	}
	if c.Stash.DatabasePath != "" {
		if c.Stash.DatabasePath, err = expandPath(c.Stash.DatabasePath); err != nil {
			return fmt.Errorf("stash.database_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeStash() {
	c.Stash.URL = strings.TrimRight(strings.TrimSpace(c.Stash.URL), "/")
	c.Stash.APIKey = strings.TrimSpace(c.Stash.APIKey)
	if c.Stash.APIKey == "" {
		c.Stash.APIKey = strings.TrimSpace(os.Getenv("STASH_API_KEY"))
	}
}

func (c *Config) normalizeWhisparr() {
	c.Whisparr.URL = strings.TrimRight(strings.TrimSpace(c.Whisparr.URL), "/")
	c.Whisparr.APIKey = strings.TrimSpace(c.Whisparr.APIKey)
	if c.Whisparr.APIKey == "" {
		c.Whisparr.APIKey = strings.TrimSpace(os.Getenv("WHISPARR_API_KEY"))
	}
	c.Whisparr.StashDBEndpoint = strings.TrimSpace(c.Whisparr.StashDBEndpoint)
	if c.Whisparr.StashDBEndpoint == "" {
		c.Whisparr.StashDBEndpoint = defaultStashDBEndpoint
	}
	c.Whisparr.QualityProfile = strings.TrimSpace(c.Whisparr.QualityProfile)
	if c.Whisparr.QualityProfile == "" {
		c.Whisparr.QualityProfile = defaultQualityProfile
	}
	c.Whisparr.RootFolder = strings.TrimSpace(c.Whisparr.RootFolder)
}

func (c *Config) normalizeSync() {
	tags := make([]string, 0, len(c.Sync.IgnoreTags))
	for _, tag := range c.Sync.IgnoreTags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	c.Sync.IgnoreTags = tags
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
