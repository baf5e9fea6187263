package main

import (
	"os"
	"strings"
	"sync"

	"stashsync/internal/config"
	"stashsync/internal/logging"
	"stashsync/internal/runner"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	runnerOnce sync.Once
	runner     *runner.Runner
	runnerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureRunner builds the shared logger and runner on first use. The logger
// mirrors to a file under the configured log directory so hook invocations,
// which have no visible stdout, still leave a trail.
func (c *commandContext) ensureRunner() (*runner.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.runnerOnce.Do(func() {
		logger, err := logging.NewWithFile(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: os.Stderr,
		}, cfg.Paths.LogDir, "stashsync.log")
		if err != nil {
			c.runnerErr = err
			return
		}
		r, err := runner.New(cfg, logger)
		if err != nil {
			c.runnerErr = err
			return
		}
		c.runner = r
	})
	return c.runner, c.runnerErr
}
