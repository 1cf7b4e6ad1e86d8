package main

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/voyagent/voyagent/src/planner"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	hintStyle   = lipgloss.NewStyle().Faint(true)

	phaseStyles = map[string]lipgloss.Style{
		planner.PhaseExtracting: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		planner.PhaseTooling:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		planner.PhaseFinalizing: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		planner.PhaseDelivered:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		planner.PhaseFailed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

// renderMarkdown renders itinerary markdown for the terminal, falling back to
// the raw text when the renderer is unavailable.
func renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}

func phaseBadge(phase string) string {
	if style, ok := phaseStyles[phase]; ok {
		return style.Render(phase)
	}
	return phase
}
