// Package report renders scan and annotation progress to the terminal.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"autotyper/internal/analyzer"
	"autotyper/internal/parser"
)

// Missing is the sentinel rendered in place of an absent annotation.
const Missing = "MISSING"

var (
	styleTyped      = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	styleMissing    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
	styleMuted      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // grey
	styleCompletion = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// FormatSignature renders a human-readable signature for a resolved range:
//
//	def name(param: type, other: MISSING) -> type
//
// The return arrow appears only when a return annotation exists or the
// range is classified missing-return, so missing-args functions with no
// return concern show no spurious arrow.
func FormatSignature(r analyzer.SignatureRange) string {
	return formatSignature(r, Missing)
}

func formatSignature(r analyzer.SignatureRange, missing string) string {
	fn := r.Fn
	parts := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		if p.Annotated() {
			parts[i] = p.Name + ": " + parser.RenderType(p.Annotation)
		} else {
			parts[i] = p.Name + ": " + missing
		}
	}

	sig := "def " + fn.Name + "(" + strings.Join(parts, ", ") + ")"
	switch {
	case fn.Returns != nil:
		sig += " -> " + parser.RenderType(fn.Returns)
	case r.Typedness == analyzer.MissingReturn:
		sig += " -> " + missing
	}
	return sig
}

// Reporter writes styled progress lines for one run.
type Reporter struct {
	out io.Writer
}

func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Range prints a function's typedness tag, location and signature.
func (r *Reporter) Range(path string, sig analyzer.SignatureRange) {
	tag := styleTyped.Render(sig.Typedness.String())
	if sig.Typedness != analyzer.Fully {
		tag = styleMissing.Render(sig.Typedness.String())
	}

	span := fmt.Sprintf("%d", sig.StartLine)
	if sig.StartLine != sig.EndLine {
		span = fmt.Sprintf("%d-%d", sig.StartLine, sig.EndLine)
	}

	fmt.Fprintf(r.out, "%s ~ %s: %s\n", tag, filepath.Base(path), span)
	fmt.Fprintln(r.out, formatSignature(sig, styleMissing.Render(Missing)))
}

// Skip marks a fully typed function that needs no completion.
func (r *Reporter) Skip() {
	fmt.Fprintln(r.out, styleMuted.Render("skip"))
}

// Seed prints the truncated signature prefix sent to the oracle.
func (r *Reporter) Seed(seed string) {
	fmt.Fprint(r.out, seed)
}

// Completion prints a successful oracle completion.
func (r *Reporter) Completion(text string) {
	fmt.Fprintln(r.out, styleCompletion.Render(text))
	fmt.Fprintln(r.out)
}

// Diagnostics prints analyzer warnings.
func (r *Reporter) Diagnostics(diags []analyzer.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(r.out, styleMissing.Render("⚠ "+d.String()))
	}
}

// Warnf prints a styled warning line.
func (r *Reporter) Warnf(format string, args ...any) {
	fmt.Fprintln(r.out, styleMissing.Render(fmt.Sprintf(format, args...)))
}

// Infof prints a plain progress line.
func (r *Reporter) Infof(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}
