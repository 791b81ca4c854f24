package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"company-portal/internal/domain"
	"company-portal/internal/ordering"
)

// Renderer styles labels for the terminal. With colour disabled every
// style renders its input unchanged.
type Renderer struct {
	heading lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	overdue lipgloss.Style
	dueSoon lipgloss.Style
	high    lipgloss.Style
	medium  lipgloss.Style
	low     lipgloss.Style
}

// NewRenderer creates a renderer that detects colour support on w
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	if noColor {
		plain := lipgloss.NewStyle()
		return &Renderer{
			heading: plain, muted: plain, success: plain,
			overdue: plain, dueSoon: plain,
			high: plain, medium: plain, low: plain,
		}
	}

	r := lipgloss.NewRenderer(w)
	return &Renderer{
		heading: r.NewStyle().Bold(true).Underline(true),
		muted:   r.NewStyle().Faint(true),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		overdue: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		dueSoon: r.NewStyle().Foreground(lipgloss.Color("11")),
		high:    r.NewStyle().Foreground(lipgloss.Color("9")),
		medium:  r.NewStyle().Foreground(lipgloss.Color("11")),
		low:     r.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// Heading renders a section title
func (r *Renderer) Heading(s string) string {
	return r.heading.Render(s)
}

// Muted renders secondary detail
func (r *Renderer) Muted(s string) string {
	return r.muted.Render(s)
}

// Success renders a confirmation
func (r *Renderer) Success(s string) string {
	return r.success.Render(s)
}

// Priority renders the priority badge
func (r *Renderer) Priority(p domain.Priority) string {
	label := "[" + string(p) + "]"
	switch p {
	case domain.PriorityHigh:
		return r.high.Render(label)
	case domain.PriorityMedium:
		return r.medium.Render(label)
	case domain.PriorityLow:
		return r.low.Render(label)
	default:
		return label
	}
}

// Class renders the urgency label, or "" for unlabelled tasks
func (r *Renderer) Class(c ordering.Classification) string {
	switch c {
	case ordering.ClassOverdue:
		return r.overdue.Render("OVERDUE")
	case ordering.ClassDueSoon:
		return r.dueSoon.Render("DUE SOON")
	default:
		return ""
	}
}
