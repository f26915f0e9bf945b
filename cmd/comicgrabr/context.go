package main

import (
	"log/slog"
	"strings"
	"sync"

	"comicgrabr/internal/config"
	"comicgrabr/internal/logging"
	"comicgrabr/internal/pulllist"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
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

func (c *commandContext) logLevel() string {
	if c.logLevelFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.logLevelFlag)
}

// newRunLogger builds the logger for commands that produce a timestamped run
// log, pruning expired logs as a side effect.
func (c *commandContext) newRunLogger(cfg *config.Config) (*slog.Logger, string, error) {
	logger, logPath, err := logging.NewFromConfig(cfg, c.logLevel())
	if err != nil {
		return nil, "", err
	}
	logging.CleanupOldRunLogs(logger, cfg.Paths.LogDir, cfg.Logging.RetentionDays, logPath)
	return logger, logPath, nil
}

func (c *commandContext) openStore(cfg *config.Config) (*pulllist.Store, error) {
	return pulllist.Open(cfg)
}
