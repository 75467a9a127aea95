package render

import (
	"fmt"
	"strings"

	"github.com/attestkit/attest/internal/engine"
)

const indentStep = "  "

// Renderer flattens result trees into log lines.
type Renderer struct {
	theme Theme
}

// NewRenderer creates a renderer with the given theme.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Lines renders the result tree as an ordered sequence of lines.
//
// One line per group ("- name", red when any descendant failed, green
// otherwise), one line per test ("+ name" green when passed, "- name"
// red when failed or errored), followed by one indented detail line per
// failure payload. Ignored tests emit no lines at all; their suppression
// from the log is deliberate and mirrors the event that still reports
// them as Ignored.
func (r *Renderer) Lines(res *engine.Result) []string {
	var lines []string
	return r.appendNode(lines, res, 0)
}

func (r *Renderer) appendNode(lines []string, res *engine.Result, depth int) []string {
	indent := strings.Repeat(indentStep, depth)

	if res.IsGroup() {
		style := r.theme.Pass
		if res.Failed() {
			style = r.theme.Fail
		}
		lines = append(lines, indent+style.Render("- "+res.Name))
		for _, c := range res.Children {
			lines = r.appendNode(lines, c, depth+1)
		}
		return lines
	}

	switch res.Status {
	case engine.StatusPassed:
		lines = append(lines, indent+r.theme.Pass.Render("+ "+res.Name))
	case engine.StatusFailed, engine.StatusErrored:
		lines = append(lines, indent+r.theme.Fail.Render("- "+res.Name))
		if res.Detail != nil {
			lines = append(lines, indent+indentStep+r.detailLine(res))
		}
	case engine.StatusIgnored:
		// Suppressed entirely.
	}
	return lines
}

func (r *Renderer) detailLine(res *engine.Result) string {
	d := res.Detail
	if !d.HasValues {
		return r.theme.Fail.Render(d.Description)
	}
	return fmt.Sprintf("%s did not satisfy %s",
		r.theme.Actual.Render(d.Actual),
		r.theme.Expected.Render(d.Expected))
}
