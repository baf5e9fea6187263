package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"stashsync/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set whisparr.api_key (or export WHISPARR_API_KEY) before running stashsync.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "stash.url:                %s\n", cfg.Stash.URL)
			fmt.Fprintf(out, "stash.api_key:            %s\n", maskSecret(cfg.Stash.APIKey))
			fmt.Fprintf(out, "stash.database_path:      %s\n", cfg.Stash.DatabasePath)
			fmt.Fprintf(out, "whisparr.url:             %s\n", cfg.Whisparr.URL)
			fmt.Fprintf(out, "whisparr.api_key:         %s\n", maskSecret(cfg.Whisparr.APIKey))
			fmt.Fprintf(out, "whisparr.stashdb_endpoint: %s\n", cfg.Whisparr.StashDBEndpoint)
			fmt.Fprintf(out, "whisparr.quality_profile: %s\n", cfg.Whisparr.QualityProfile)
			fmt.Fprintf(out, "whisparr.root_folder:     %s\n", cfg.Whisparr.RootFolder)
			fmt.Fprintf(out, "whisparr.monitored:       %s\n", yesNo(cfg.Whisparr.Monitored))
			fmt.Fprintf(out, "whisparr.move_files:      %s\n", yesNo(cfg.Whisparr.MoveFiles))
			fmt.Fprintf(out, "whisparr.rename:          %s\n", yesNo(cfg.Whisparr.Rename))
			fmt.Fprintf(out, "sync.ignore_tags:         %s\n", strings.Join(cfg.Sync.IgnoreTags, ", "))
			fmt.Fprintf(out, "paths.log_dir:            %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "paths.ledger_dir:         %s\n", cfg.Paths.LedgerDir)
			fmt.Fprintf(out, "logging.level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "logging.format:           %s\n", cfg.Logging.Format)
			for _, mapping := range cfg.PathMap {
				fmt.Fprintf(out, "path_map:                 %s -> %s\n", mapping.Server, mapping.Local)
			}
			return nil
		},
	}
}

func maskSecret(value string) string {
	if value == "" {
		return "(unset)"
	}
	return "***"
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
