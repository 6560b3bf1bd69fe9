package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7C79FF"}
	successColor = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02D98E"}
	warningColor = lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FFA500"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#FF5F56", Dark: "#FF6B6B"}
	infoColor    = lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
)

// Styles holds the terminal styles of one renderer.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Path    lipgloss.Style
}

func newStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(primaryColor).Underline(true),
		Header2: lr.NewStyle().Bold(true).Foreground(primaryColor),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(mutedColor),
		Success: lr.NewStyle().Foreground(successColor),
		Warning: lr.NewStyle().Foreground(warningColor),
		Error:   lr.NewStyle().Foreground(errorColor).Bold(true),
		Info:    lr.NewStyle().Foreground(infoColor),
		Path:    lr.NewStyle().Foreground(primaryColor),
	}
}

// newLipglossRenderer returns a lipgloss renderer for w. Colors are only
// emitted for terminals, and never when NO_COLOR is set.
func newLipglossRenderer(w io.Writer, isTTY bool) *lipgloss.Renderer {
	lr := lipgloss.NewRenderer(w)
	if !isTTY || termenv.EnvNoColor() {
		lr.SetColorProfile(termenv.Ascii)
		return lr
	}
	lr.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
	return lr
}
