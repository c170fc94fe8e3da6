package cli

import (
	"context"

	"github.com/pattyalex/brand-journey-tracker/internal/app"
)

type contextKey string

const appKey contextKey = "app"

// WithApp injects an already-built App; commands use it instead of opening
// their own.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// GetCLIFromContext returns a CLI over the injected App, or opens a new one
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx != nil {
		if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
			return &CLI{App: a}, nil
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return NewCLI(ctx)
}
