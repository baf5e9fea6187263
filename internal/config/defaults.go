package config

const (
	defaultLogDir          = "~/.local/share/stashsync/logs"
	defaultLedgerDir       = "~/.local/share/stashsync"
	defaultStashDBEndpoint = "stashdb.org"
	defaultQualityProfile  = "Any"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Whisparr: Whisparr{
			StashDBEndpoint: defaultStashDBEndpoint,
			QualityProfile:  defaultQualityProfile,
			Monitored:       true,
			Rename:          true,
		},
		Paths: Paths{
			LogDir:    defaultLogDir,
			LedgerDir: defaultLedgerDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
