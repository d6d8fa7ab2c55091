package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"crate/internal/backup"
	"crate/internal/config"
	"crate/internal/dedupe"
	"crate/internal/library"
	"crate/internal/logging"
	"crate/internal/store"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configFlagValue())
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

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) JSONMode() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// session bundles what a catalog command needs for one invocation.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	store   *store.Store
	service *library.Service
	backups *backup.Manager
}

// withSession opens the store and logger for cmd, runs fn, and closes the
// store. The context carries the command name and a fresh correlation ID.
func (c *commandContext) withSession(cmd *cobra.Command, fn func(*session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.ErrorWithContext(logger, "close catalog", "store_close_failed", logging.Error(err))
		}
	}()

	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx := logging.WithCommand(base, cmd.CommandPath())
	ctx = logging.WithCorrelationID(ctx, uuid.NewString())

	return fn(&session{
		ctx:     ctx,
		cfg:     cfg,
		store:   st,
		service: library.New(st, cfg.Matching, logger),
		backups: backup.New(st, dedupe.Uniform(cfg.Matching.DuplicateThreshold), logger),
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
