package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	archiveservice "github.com/pattyalex/brand-journey-tracker/internal/services/archive"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
	"github.com/spf13/cobra"
)

// ErrAmbiguousID indicates an ID prefix matching more than one item
var ErrAmbiguousID = errors.New("item ID prefix is ambiguous")

// ErrIDRequired indicates a command was given no item ID
var ErrIDRequired = errors.New("item ID is required")

// ShortID returns the first eight characters of an identifier for display
func ShortID(id types.ItemID) string {
	s := string(id)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// MatchItemID resolves raw against candidate ids. An exact match wins;
// otherwise raw must be the prefix of exactly one id.
func MatchItemID(raw string, ids []types.ItemID) (types.ItemID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrIDRequired
	}
	var match types.ItemID
	for _, id := range ids {
		if string(id) == raw {
			return id, nil
		}
		if strings.HasPrefix(string(id), raw) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguousID, raw)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", models.ErrItemNotFound, raw)
	}
	return match, nil
}

// ResolveItemID resolves a full or prefix ID against the items on the board
func ResolveItemID(ctx context.Context, c *CLI, raw string) (types.ItemID, error) {
	items := c.App.BoardService.GetBoard(ctx).AllItems()
	ids := make([]types.ItemID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return MatchItemID(raw, ids)
}

// ResolveArchiveID resolves a full or prefix ID against the archive entries
func ResolveArchiveID(ctx context.Context, c *CLI, raw string) (types.ItemID, error) {
	entries := c.App.ArchiveService.List(ctx)
	ids := make([]types.ItemID, len(entries))
	for i, it := range entries {
		ids[i] = it.ID
	}
	id, err := MatchItemID(raw, ids)
	if errors.Is(err, models.ErrItemNotFound) {
		return "", fmt.Errorf("%w: %s", archiveservice.ErrEntryNotFound, raw)
	}
	return id, err
}

// IDArg returns the first positional argument or the --id flag
func IDArg(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	id, _ := cmd.Flags().GetString("id")
	return id
}

// ParseStage maps a stage name or title onto its identifier
func ParseStage(s string) (types.StageID, error) {
	return models.ParseStageID(s)
}

// ParseDay parses YYYY-MM-DD, or "today"/"tomorrow", in local time
func ParseDay(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return models.DateOnly(now), nil
	case "tomorrow":
		return models.DateOnly(now.AddDate(0, 0, 1)), nil
	}
	return models.ParseDate(s)
}

// SplitList turns "a, b,,c" into [a b c]
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ErrNoPipedInput indicates "-" was given while stdin is an interactive terminal
var ErrNoPipedInput = errors.New("'-' reads from stdin, but nothing is piped in")

// stdinIsTerminal reports whether stdin is attached to an interactive terminal
var stdinIsTerminal = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// ReadText returns s, or all of stdin when s is "-"
func ReadText(s string) (string, error) {
	if s != "-" {
		return s, nil
	}
	if stdinIsTerminal() {
		return "", ErrNoPipedInput
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// AddOutputFlags registers the agent-friendly flags every command carries
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// Formatter builds the OutputFormatter from a command's output flags
func Formatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode, Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
}

// Execute runs fn with an initialized CLI and the command's formatter. fn
// reports its own failures through the formatter.
func Execute(cmd *cobra.Command, fn func(ctx context.Context, c *CLI, f *OutputFormatter) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	f := Formatter(cmd)

	cliInstance, err := GetCLIFromContext(ctx)
	if err != nil {
		return f.FailWith("INITIALIZATION_ERROR", ExitError, err, "")
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	return fn(ctx, cliInstance, f)
}
