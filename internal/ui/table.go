package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"atomica/internal/atomics"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	presentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderRules formats the rule table for `atomica list`.
func RenderRules(rules []atomics.Rule, useColor bool) string {
	var b strings.Builder

	patternWidth := len("PATTERN")
	for _, r := range rules {
		if w := runewidth.StringWidth(r.Pattern); w > patternWidth {
			patternWidth = w
		}
	}

	header := fmt.Sprintf("%-5s  %-*s  %-18s  %s", "MATCH", patternWidth, "PATTERN", "DOWNGRADE", "NOTE")
	b.WriteString(style(headerStyle, header, useColor))
	b.WriteString("\n")

	for _, r := range rules {
		downgrade := "none"
		if !r.None {
			toks := make([]string, 0, len(r.Missing))
			for _, w := range r.Missing {
				toks = append(toks, w.String())
			}
			downgrade = "missing " + strings.Join(toks, ",")
		}
		line := fmt.Sprintf("%-5s  %-*s  %-18s  ", r.Match, patternWidth, r.Pattern, downgrade)
		b.WriteString(line)
		b.WriteString(style(noteStyle, r.Note, useColor))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderMatrix formats a targets-by-widths capability table for
// `atomica matrix`. Rows arrive in the caller's order.
func RenderMatrix(targets []string, sets []atomics.Set, useColor bool) string {
	var b strings.Builder

	targetWidth := len("TARGET")
	for _, t := range targets {
		if w := runewidth.StringWidth(t); w > targetWidth {
			targetWidth = w
		}
	}

	header := fmt.Sprintf("%-*s  %4s %4s %4s %4s %4s", targetWidth, "TARGET", "8", "16", "32", "64", "ptr")
	b.WriteString(style(headerStyle, header, useColor))
	b.WriteString("\n")

	for i, t := range targets {
		b.WriteString(fmt.Sprintf("%-*s  ", targetWidth, t))
		for j, w := range atomics.Widths() {
			if j > 0 {
				b.WriteString(" ")
			}
			b.WriteString(Cell(sets[i].Has(w), useColor))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Cell renders a single present/missing marker, fixed to four cells.
func Cell(present bool, useColor bool) string {
	if present {
		return style(presentStyle, fmt.Sprintf("%4s", "yes"), useColor)
	}
	return style(missingStyle, fmt.Sprintf("%4s", "-"), useColor)
}

func style(st lipgloss.Style, value string, useColor bool) string {
	if !useColor {
		return value
	}
	return st.Render(value)
}
