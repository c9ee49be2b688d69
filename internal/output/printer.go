// Package output renders human-facing terminal output with lipgloss.
//
// Nothing printed here is machine-readable; the MCP payloads are built in
// the workflow package. The [Printer] is used for the guidance diagnostic
// on stderr and for the simulate and guidance commands.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"specflow/internal/workflow"
)

// Printer writes styled output to a single writer.
//
// Styles are bound to a renderer for that writer, so colour is dropped
// automatically when the writer is not a terminal.
type Printer struct {
	w io.Writer

	guidance lipgloss.Style
	header   lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
	muted    lipgloss.Style
}

// NewPrinter creates a [Printer] writing to stdout.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a [Printer] writing to w.
func NewPrinterWithWriter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:        w,
		guidance: r.NewStyle().Foreground(lipgloss.Color("12")),
		header:   r.NewStyle().Bold(true),
		success:  r.NewStyle().Foreground(lipgloss.Color("10")),
		failure:  r.NewStyle().Foreground(lipgloss.Color("9")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// ShowGuidance prints stage guidance in blue. It implements
// workflow.GuidanceSink.
func (p *Printer) ShowGuidance(stage workflow.Stage, text string) {
	fmt.Fprintln(p.w, p.guidance.Render(text))
}

// StepStart prints the header for step i (1-based) of total.
func (p *Printer) StepStart(i, total int, req workflow.Request) {
	summary := "stage=" + req.Stage.String()
	if req.Action != "" {
		summary += " action=" + string(req.Action)
	}
	if req.FeatureName != "" {
		summary += " feature=" + req.FeatureName
	}
	fmt.Fprintln(p.w, p.header.Render(fmt.Sprintf("[%d/%d] %s", i, total, summary)))
}

// StepRaw prints the header for a step whose arguments did not parse.
func (p *Printer) StepRaw(i, total int, args map[string]any) {
	fmt.Fprintln(p.w, p.header.Render(fmt.Sprintf("[%d/%d] %v", i, total, args)))
}

// Result prints a JSON payload, marked as success or failure.
func (p *Printer) Result(payload string, failed bool) {
	mark := p.success.Render("✓")
	if failed {
		mark = p.failure.Render("✗")
	}
	fmt.Fprintln(p.w, mark)
	fmt.Fprintln(p.w, payload)
}

// History prints the stages a workflow has left, oldest first.
func (p *Printer) History(stages []workflow.Stage) {
	if len(stages) == 0 {
		fmt.Fprintln(p.w, p.muted.Render("Stage history: (none)"))
		return
	}
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.String()
	}
	fmt.Fprintln(p.w, p.muted.Render("Stage history: "+strings.Join(names, " → ")))
}

// Summary prints the pass/fail counts of a simulate run.
func (p *Printer) Summary(succeeded, failed, skipped int) {
	line := fmt.Sprintf("Succeeded: %d | Failed: %d | Skipped: %d", succeeded, failed, skipped)
	if failed > 0 {
		fmt.Fprintln(p.w, p.failure.Render(line))
		return
	}
	fmt.Fprintln(p.w, p.success.Render(line))
}

// Text prints a plain line.
func (p *Printer) Text(s string) {
	fmt.Fprintln(p.w, s)
}
