package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStash(); err != nil {
		return err
	}
	if err := c.validateWhisparr(); err != nil {
		return err
	}
	if err := c.validatePathMap(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateStash() error {
	if c.Stash.URL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/stashsync/config.toml"
		}
		return fmt.Errorf("stash.url is required. Edit %s (create with 'stashsync config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateWhisparr() error {
	if c.Whisparr.URL == "" {
		return errors.New("whisparr.url must be set")
	}
	if c.Whisparr.APIKey == "" {
		return errors.New("whisparr.api_key must be set")
	}
	return nil
}

func (c *Config) validatePathMap() error {
	for i, m := range c.PathMap {
		if strings.TrimSpace(m.Server) == "" {
			return fmt.Errorf("path_map[%d].server must not be empty", i)
		}
		if strings.TrimSpace(m.Local) == "" {
			return fmt.Errorf("path_map[%d].local must not be empty", i)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
