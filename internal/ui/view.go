package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lanepos/register/internal/domain"
)

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	exactHitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	fuzzyHitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	priceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	unavailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	fieldTagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch m.state {
	case StateIdle:
		b.WriteString(dimStyle.Render("Start typing to search the catalog"))
	case StateDebouncing, StateSearching:
		b.WriteString(dimStyle.Render("Searching..."))
	case StateEmpty:
		b.WriteString(dimStyle.Render("No products found"))
	case StateShowingResults:
		for i, match := range m.matches {
			b.WriteString(m.renderMatch(i, match))
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render("↑/↓ move • Enter select • Esc clear"))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}

	return b.String()
}

func (m Model) renderMatch(index int, match domain.Match) string {
	cursor := "  "
	if index == m.cursor {
		cursor = cursorStyle.Render("> ")
	}

	label := renderSegments(match.Highlight, match.Addable)
	if label == "" {
		label = match.Product.Name
	}

	// Category and barcode hits show the product name first so the
	// cashier sees what would be added, with the matched field after it.
	if match.Field != domain.MatchFieldName {
		label = fmt.Sprintf("%s %s", match.Product.Name, fieldTagStyle.Render("("+string(match.Field)+": ")+label+fieldTagStyle.Render(")"))
	}

	price := priceStyle.Render(fmt.Sprintf("$%.2f", match.Product.Price))

	line := fmt.Sprintf("%s%s  %s", cursor, label, price)
	if !match.Addable {
		line += "  " + unavailStyle.Render("unavailable")
	}
	return line
}

// renderSegments styles one highlighted field. Exact hits are styled per
// character run, fuzzy hits per word, so the cashier can tell a literal
// match from an approximate one at a glance.
func renderSegments(segments []domain.Segment, addable bool) string {
	var b strings.Builder
	for _, seg := range segments {
		switch {
		case !seg.Match:
			if addable {
				b.WriteString(seg.Text)
			} else {
				b.WriteString(dimStyle.Render(seg.Text))
			}
		case seg.Kind == domain.MatchKindFuzzy:
			b.WriteString(fuzzyHitStyle.Render(seg.Text))
		default:
			b.WriteString(exactHitStyle.Render(seg.Text))
		}
	}
	return b.String()
}
