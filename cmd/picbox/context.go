package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"picbox/internal/artifacts"
	"picbox/internal/catalog"
	"picbox/internal/config"
	"picbox/internal/logging"
	"picbox/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	engineOnce sync.Once
	engine     *catalog.Engine
	store      *store.Store
	engineErr  error
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
		cfg, resolvedPath, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
	})
	return c.config, c.configErr
}

// ensureEngine lazily wires the catalog engine. The store connection stays
// open for the life of the process; commands share one engine.
func (c *commandContext) ensureEngine() (*catalog.Engine, error) {
	c.engineOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.engineErr = err
			return
		}

		logger, err := newCLILogger(cfg)
		if err != nil {
			c.engineErr = fmt.Errorf("build logger: %w", err)
			return
		}

		st, err := store.Open(cfg)
		if err != nil {
			c.engineErr = fmt.Errorf("open catalog: %w", err)
			return
		}

		files, err := artifacts.NewManager(cfg, logger)
		if err != nil {
			_ = st.Close()
			c.engineErr = fmt.Errorf("open content store: %w", err)
			return
		}

		c.store = st
		c.engine = catalog.New(cfg, st, files, logger)
	})
	return c.engine, c.engineErr
}

// newCLILogger keeps stdout free for command output: log lines go to the
// configured log file, or stderr when no log directory is set.
func newCLILogger(cfg *config.Config) (*slog.Logger, error) {
	outputs := []string{"stderr"}
	if cfg.Paths.LogDir != "" {
		outputs = []string{filepath.Join(cfg.Paths.LogDir, "picbox.log")}
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}
