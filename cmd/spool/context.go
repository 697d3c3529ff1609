package main

import (
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"filespool/internal/config"
	"filespool/internal/logging"
	"filespool/internal/spool"
)

// payload is the CLI's item type: one JSON document per queue entry.
type payload = json.RawMessage

type commandContext struct {
	configFlag *string
	spoolFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, spoolFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		spoolFlag:  spoolFlag,
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
		if c.spoolFlag != nil && strings.TrimSpace(*c.spoolFlag) != "" {
			dir, err := config.ExpandPath(strings.TrimSpace(*c.spoolFlag))
			if err != nil {
				c.configErr = err
				return
			}
			cfg.Paths.SpoolDir = dir
			cfg.Paths.LockFile = dir + ".lock"
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		outputs := []string{"stderr"}
		if strings.TrimSpace(cfg.Paths.LogDir) != "" {
			if err := cfg.EnsureDirectories(); err != nil {
				c.loggerErr = err
				return
			}
			outputs = append(outputs, filepath.Join(cfg.Paths.LogDir, "spool.log"))
		}
		logger, err := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: outputs,
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	if c.loggerErr != nil {
		return nil, c.loggerErr
	}
	return c.logger, nil
}

func (c *commandContext) openQueue() (*spool.Queue[payload], error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	opts := []spool.Option[payload]{
		spool.WithLogger[payload](logger),
	}
	if cfg.Queue.Ordering == config.OrderingTimestamp {
		opts = append(opts, spool.WithTimestampNames[payload]())
	}
	return spool.New(cfg.Paths.SpoolDir, opts...)
}
