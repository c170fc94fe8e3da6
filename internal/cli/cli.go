package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pattyalex/brand-journey-tracker/internal/app"
	"github.com/pattyalex/brand-journey-tracker/internal/config"
	"github.com/pattyalex/brand-journey-tracker/internal/logging"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with services

	owned bool
	log   io.Closer
}

// NewCLI loads config, starts logging and opens the application
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Init(logging.Path(cfg.DataDir), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	application, err := app.Open(ctx, cfg)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	return &CLI{App: application, owned: true, log: logCloser}, nil
}

// Close cleans up CLI resources. An injected App is left for its owner.
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	err := c.App.Close()
	if c.log != nil {
		_ = c.log.Close()
	}
	return err
}
