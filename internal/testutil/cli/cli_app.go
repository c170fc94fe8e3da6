package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/pattyalex/brand-journey-tracker/internal/app"
	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/spf13/cobra"
)

// Result holds what a command wrote to each stream
type Result struct {
	Stdout string
	Stderr string
}

// ExecuteCLICommand executes a CLI command with a test app instance.
// The app is injected through the context so commands use the test database.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (Result, error) {
	t.Helper()
	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context and test app
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (Result, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	SetupCobraCommand(cmd, args)

	err := cmd.ExecuteContext(cli.WithApp(ctx, testApp))
	return Result{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
