package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	archiveservice "github.com/pattyalex/brand-journey-tracker/internal/services/archive"
	boardservice "github.com/pattyalex/brand-journey-tracker/internal/services/board"
	scheduleservice "github.com/pattyalex/brand-journey-tracker/internal/services/schedule"
	"github.com/pattyalex/brand-journey-tracker/internal/session"
	"github.com/pattyalex/brand-journey-tracker/internal/transition"
	"github.com/pattyalex/brand-journey-tracker/internal/wizard"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	// Out and Err default to os.Stdout and os.Stderr
	Out io.Writer
	Err io.Writer
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out != nil {
		return f.Out
	}
	return os.Stdout
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.Err != nil {
		return f.Err
	}
	return os.Stderr
}

// Success outputs successful operation result under key
func (f *OutputFormatter) Success(key string, data any) error {
	if f.Quiet {
		// Extract ID if possible
		if it, ok := data.(models.Item); ok {
			_, err := fmt.Fprintln(f.out(), it.ID)
			return err
		}
		return nil
	}

	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": true,
			key:       data,
		})
	}

	// Human-readable format
	_, err := fmt.Fprintf(f.out(), "%+v\n", data)
	return err
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(f.errOut(), "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.errOut(), "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err and returns it wrapped with the matching exit code
func (f *OutputFormatter) Fail(err error) error {
	code, exit, suggestion := Classify(err)
	return f.FailWith(code, exit, err, suggestion)
}

// FailWith reports err under an explicit code and exit status
func (f *OutputFormatter) FailWith(code string, exit int, err error, suggestion string) error {
	_ = f.ErrorWithSuggestion(code, err.Error(), suggestion)
	return &CommandError{Code: exit, Err: err}
}

// Classify maps domain errors onto an error code, an exit status and an
// optional suggestion
func Classify(err error) (string, int, string) {
	var rejection *transition.RejectionError
	switch {
	case errors.As(err, &rejection):
		return "TRANSITION_REJECTED", ExitValidation, "Items can only move back to stages after ideation"
	case errors.Is(err, transition.ErrPlannedDateChoiceRequired):
		return "PLANNED_DATE_CHOICE_REQUIRED", ExitConflict, "Re-run with --planned=adopt or --planned=discard"
	case errors.Is(err, session.ErrStaleBoard):
		return "STALE_BOARD", ExitConflict, "Another view changed the board; run the command again"
	case errors.Is(err, models.ErrItemNotFound):
		return "ITEM_NOT_FOUND", ExitNotFound, "Use 'planner item list' to see item IDs"
	case errors.Is(err, ErrAmbiguousID):
		return "AMBIGUOUS_ID", ExitUsage, "Use more characters of the ID"
	case errors.Is(err, ErrNoPipedInput):
		return "NO_PIPED_INPUT", ExitUsage, "Pipe the text in, e.g. cat script.md | planner item update <id> --script=-"
	case errors.Is(err, ErrIDRequired):
		return "ID_REQUIRED", ExitUsage, "Pass the ID as an argument or with --id"
	case errors.Is(err, archiveservice.ErrEntryNotFound):
		return "ARCHIVE_ENTRY_NOT_FOUND", ExitNotFound, "Use 'planner archive list' to see entry IDs"
	case errors.Is(err, models.ErrUnknownStage):
		return "UNKNOWN_STAGE", ExitValidation, "Valid stages: ideation, scripting, shooting, editing, scheduling, posted"
	case errors.Is(err, models.ErrTerminalStage):
		return "TERMINAL_STAGE", ExitValidation, "Posted items live in the archive"
	case errors.Is(err, models.ErrInvalidDate),
		errors.Is(err, models.ErrInvalidClock):
		return "INVALID_FORMAT", ExitDataErr, "Dates are YYYY-MM-DD and times are HH:MM"
	case errors.Is(err, archiveservice.ErrConfirmationRequired):
		return "CONFIRMATION_REQUIRED", ExitUsage, "Pass --force to delete permanently"
	case errors.Is(err, boardservice.ErrEmptyTitle),
		errors.Is(err, models.ErrEmptyTitle),
		errors.Is(err, boardservice.ErrTitleTooLong),
		errors.Is(err, boardservice.ErrEmptyPatch),
		errors.Is(err, boardservice.ErrInvalidStatus),
		errors.Is(err, boardservice.ErrInvalidItemID),
		errors.Is(err, models.ErrEndBeforeStart),
		errors.Is(err, scheduleservice.ErrNotOnCalendar),
		errors.Is(err, scheduleservice.ErrNotScheduled),
		errors.Is(err, scheduleservice.ErrInvalidRange),
		errors.Is(err, wizard.ErrInvalidStep),
		errors.Is(err, wizard.ErrStartTimeRequired):
		return "VALIDATION_ERROR", ExitValidation, ""
	default:
		return "INTERNAL_ERROR", ExitError, ""
	}
}

// Writer returns the destination for human-readable output
func (f *OutputFormatter) Writer() io.Writer {
	return f.out()
}
