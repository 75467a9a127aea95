// Package render turns a result tree into the ordered, color-annotated
// log-line sequence streamed to host loggers, and renders the terminal
// summary line for a batch of task executions.
//
// Colors use lipgloss styles, never manual ANSI escapes. Line ORDER is
// part of the contract: lines follow the depth-first declaration-order
// traversal of the suite tree even when execution ran out of order.
package render

import "github.com/charmbracelet/lipgloss"

// Theme defines the styles applied to rendered lines.
type Theme struct {
	// Pass styles passing test lines and healthy group headers.
	Pass lipgloss.Style
	// Fail styles failing test lines and group headers that contain
	// a failed descendant.
	Fail lipgloss.Style
	// Expected styles the expected-predicate side of a value mismatch.
	Expected lipgloss.Style
	// Actual styles the actual-value side of a value mismatch.
	Actual lipgloss.Style
}

// DefaultTheme returns the standard color assignment: green for pass,
// red for fail, cyan for expected values, blue for actual values.
func DefaultTheme() Theme {
	return Theme{
		Pass:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Fail:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Expected: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Actual:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

// PlainTheme returns a theme with no styling, for hosts and sinks that
// cannot interpret ANSI sequences.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{Pass: plain, Fail: plain, Expected: plain, Actual: plain}
}
