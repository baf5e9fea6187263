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

	"stashsync/internal/pathmap"
)

//go:embed sample_config.toml
var sampleConfig string

// Stash contains connection settings for the Stash metadata server.
type Stash struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
	// DatabasePath overrides the sqlite database location reported by the
	// Stash configuration API. Bulk mode reads scene IDs from it directly.
	DatabasePath string `toml:"database_path"`
}

// Whisparr contains connection and behavior settings for the Whisparr target.
type Whisparr struct {
	URL             string `toml:"url"`
	APIKey          string `toml:"api_key"`
	StashDBEndpoint string `toml:"stashdb_endpoint"`
	QualityProfile  string `toml:"quality_profile"`
	RootFolder      string `toml:"root_folder"`
	Monitored       bool   `toml:"monitored"`
	MoveFiles       bool   `toml:"move_files"`
	Rename          bool   `toml:"rename"`
}

// Sync contains reconciliation behavior knobs.
type Sync struct {
	IgnoreTags []string `toml:"ignore_tags"`
}

// Paths contains directory configuration.
type Paths struct {
	LogDir    string `toml:"log_dir"`
	LedgerDir string `toml:"ledger_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// PathMapping pairs a server-visible prefix with its local replacement.
// Declared as [[path_map]] entries so insertion order is preserved.
type PathMapping struct {
	Server string `toml:"server"`
	Local  string `toml:"local"`
}

// Config encapsulates all configuration values for stashsync.
//
// Configuration sections by subsystem:
//   - Stash: library connection and sqlite database location
//   - Whisparr: target connection, profile/root selection, move and rename toggles
//   - Sync: ignore tags
//   - Paths: log and ledger directories
//   - Logging: log format and level
//   - PathMap: ordered server-to-local prefix rewrites
type Config struct {
	Stash    Stash         `toml:"stash"`
	Whisparr Whisparr      `toml:"whisparr"`
	Sync     Sync          `toml:"sync"`
	Paths    Paths         `toml:"paths"`
	Logging  Logging       `toml:"logging"`
	PathMap  []PathMapping `toml:"path_map"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/stashsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("stashsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and ledger directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.LedgerDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// MappingTable converts the configured path mappings into the ordered form
// the mapper consumes.
func (c *Config) MappingTable() pathmap.Table {
	table := make(pathmap.Table, 0, len(c.PathMap))
	for _, m := range c.PathMap {
		table = append(table, pathmap.Mapping{Server: m.Server, Local: m.Local})
	}
	return table
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
