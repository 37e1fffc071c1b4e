package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles defines the visual theme for terminal report output.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for section headers and table header rows.
	Header lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Hit styles counts greater than zero.
	Hit lipgloss.Style

	// Zero styles zero counts (declared but never exercised).
	Zero lipgloss.Style

	// SummaryLabel styles summary line labels.
	SummaryLabel lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// DefaultStyles returns the default color scheme for terminal reports.
func DefaultStyles() Styles {
	return Styles{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Border:       lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Hit:          lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		Zero:         lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		SummaryLabel: lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
