package styles

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pattyalex/brand-journey-tracker/internal/config"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Board styles
	StageStyle       lipgloss.Style
	StageHeaderStyle lipgloss.Style
	StageWidth       = 28

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Stage:", "Hook:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Script", "Shots"

	// Status styles
	PinnedStyle    lipgloss.Style
	ScheduledStyle lipgloss.Style
	PlannedStyle   lipgloss.Style
	SuccessStyle   lipgloss.Style
	ErrorStyle     lipgloss.Style
	WarningStyle   lipgloss.Style

	colors config.ColorScheme
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(scheme config.ColorScheme) {
	colors = scheme

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	StageStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.StageBorder)).
		Padding(0, 1).
		Width(StageWidth)

	StageHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Bold(true).
		MarginTop(1)

	PinnedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Pinned))

	ScheduledStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Scheduled))

	PlannedStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color(colors.Planned))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Padding(0, 1)
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}

// RenderDates renders the calendar markers of an item, or "" when it has none
func RenderDates(it models.Item) string {
	var parts []string
	if it.IsScheduled() {
		parts = append(parts, ScheduledStyle.Render(fmt.Sprintf("● %s %s-%s",
			models.DateKey(*it.ScheduledDate), it.StartTime, it.EndTime)))
	}
	if it.IsPlanned() {
		parts = append(parts, PlannedStyle.Render("○ "+models.DateKey(*it.PlannedDate)))
	}
	return strings.Join(parts, " ")
}

// RenderItemLine renders one board entry: pin marker, title and short id
func RenderItemLine(it models.Item, shortID string) string {
	pin := "  "
	if it.Pinned {
		pin = PinnedStyle.Render("★ ")
	}
	line := pin + ValueStyle.Render(it.Title) + " " + SubtitleStyle.Render(shortID)
	if dates := RenderDates(it); dates != "" {
		line += "\n    " + dates
	}
	return line
}

// RenderStage renders one stage column with its ordered items
func RenderStage(title string, lines []string) string {
	var b strings.Builder
	b.WriteString(StageHeaderStyle.Render(fmt.Sprintf("%s (%d)", title, len(lines))))
	b.WriteString("\n")
	if len(lines) == 0 {
		b.WriteString(SubtitleStyle.Render("  empty"))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return StageStyle.Render(b.String())
}

// JoinStages lays stage columns side by side
func JoinStages(columns []string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderMarkdown renders long-form text such as scripts and notes. Falls
// back to the raw text when rendering fails.
func RenderMarkdown(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	renderer, err := getRenderer(width)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
