package app

import (
	"log/slog"

	"github.com/pattyalex/brand-journey-tracker/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	source      string
}

// WithEventPublisher shares an existing bus instead of creating one. The
// caller keeps ownership and closes it.
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithSource overrides the generated view tag stamped on broadcasts
func WithSource(source string) Option {
	return func(cfg *appConfig) {
		cfg.source = source
	}
}
