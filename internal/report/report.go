// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package report prints run outcomes for people. Colour is used only when the
// destination is a terminal and NO_COLOR is unset.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"grimm.is/uridoc/internal/errors"
	"grimm.is/uridoc/internal/generator"
)

// Reporter writes diagnostics and summaries.
type Reporter struct {
	w      io.Writer
	errorS lipgloss.Style
	hintS  lipgloss.Style
	okS    lipgloss.Style
	color  bool
}

// New returns a Reporter for w, coloured when w is a terminal.
func New(w io.Writer) *Reporter {
	return newReporter(w, isTerminal(w) && os.Getenv("NO_COLOR") == "")
}

// NewPlain returns a Reporter that never emits escape sequences.
func NewPlain(w io.Writer) *Reporter {
	return newReporter(w, false)
}

func newReporter(w io.Writer, color bool) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		w:      w,
		color:  color,
		errorS: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		hintS:  r.NewStyle().Foreground(lipgloss.Color("240")),
		okS:    r.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *Reporter) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Error prints one failure with its kind and, when known, a suggested fix.
func (r *Reporter) Error(err error) {
	if err == nil {
		return
	}
	label := "error"
	if kind := errors.GetKind(err); kind != errors.KindUnknown {
		label = kind.String()
	}
	fmt.Fprintf(r.w, "%s %s\n", r.style(r.errorS, "✗ "+label+":"), err.Error())

	if s, ok := errors.GetAttributes(err)[errors.AttrSuggestion].(string); ok && s != "" {
		fmt.Fprintf(r.w, "    %s\n", r.style(r.hintS, "did you mean "+s+"?"))
	}
}

// Diagnostics prints every diagnostic in order.
func (r *Reporter) Diagnostics(diags []generator.Diagnostic) {
	for _, d := range diags {
		r.Error(d.Err)
	}
}

// Summary prints the counts of a run and where the output went.
func (r *Reporter) Summary(res *generator.Result, destination string) {
	if res == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(res.Summary())
	if destination != "" {
		sb.WriteString(" -> ")
		sb.WriteString(destination)
	}
	mark, markS := "✓", r.okS
	if len(res.Diagnostics) > 0 {
		mark, markS = "!", r.errorS
	}
	fmt.Fprintf(r.w, "%s %s\n", r.style(markS, mark), sb.String())
}
