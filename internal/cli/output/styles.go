package output

import "github.com/charmbracelet/lipgloss"

// Styles holds lipgloss styles for terminal output.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles returns the default style set.
func NewStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// SeverityStyle maps an insight severity in [0,1] to a style.
func (s *Styles) SeverityStyle(severity float64) lipgloss.Style {
	switch {
	case severity >= 0.8:
		return s.Error
	case severity >= 0.5:
		return s.Warning
	default:
		return s.Muted
	}
}
