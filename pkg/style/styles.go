package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor)

	// Generated file contents in dry runs
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(BorderColor).
			PaddingLeft(1)
)

// Indicators
var (
	SuccessIndicator = "✓"
	ErrorIndicator   = "✗"
	MissingIndicator = "○"
)

// ColorEnabled reports whether f should receive colored output.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Setup configures lipgloss and pterm for output written to w. Anything
// other than a color capable terminal gets plain text.
func Setup(w io.Writer) {
	if f, ok := w.(*os.File); ok && ColorEnabled(f) {
		return
	}
	DisableColor()
}

// DisableColor turns every style into plain text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableStyling()
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
