// Package prompt assembles completion-oracle prompts from source text and
// resolved signature ranges.
package prompt

import (
	"fmt"
	"slices"
	"strings"

	"autotyper/internal/analyzer"
	"autotyper/internal/parser"
)

// TypingImport is the synthetic import injected above the first import so
// the oracle may complete with any name from the typing module.
const TypingImport = "from typing import *\n"

// Build produces the oracle prompt for one function. firstImportLine is
// the 1-indexed line of the file's first import statement, or 0 when the
// file has none; when present it must lie strictly above the signature
// range, which is a programming contract, not a recoverable error.
//
// The prompt is the file with the signature range cut out and the halves
// swapped: everything after the range comes first, then a blank line, then
// everything before it, and finally the truncated seed. Moving the target
// to the end keeps the cut point freshest for the completion model.
func Build(source string, r analyzer.SignatureRange, seed string, firstImportLine int) string {
	lines := splitLines(source)

	if firstImportLine == 0 {
		lines = slices.Insert(lines, 0, TypingImport)
	} else {
		if firstImportLine >= r.StartLine {
			panic(fmt.Sprintf("prompt: first import line %d not above signature range starting at %d",
				firstImportLine, r.StartLine))
		}
		lines = slices.Insert(lines, firstImportLine-1, TypingImport)
	}

	// The insertion shifted the range down one line, so the original
	// [start, end] maps to indexes [start, end+1) in the new slice.
	var b strings.Builder
	for _, line := range lines[r.EndLine+1:] {
		b.WriteString(line)
	}
	b.WriteString("\n")
	for _, line := range lines[:r.StartLine] {
		b.WriteString(line)
	}
	b.WriteString(seed)
	return b.String()
}

// SeedForArgs returns the truncated signature prefix used when parameter
// annotations are missing, e.g. `def f(x:` — the oracle continues from the
// first parameter's annotation.
func SeedForArgs(fn *parser.FunctionNode) string {
	return "def " + fn.Name + "(" + fn.Params[0].Name + ":"
}

// SeedForReturn returns the truncated signature prefix used when only the
// return annotation is missing, e.g. `def f(x: int, y: int) ->`.
func SeedForReturn(fn *parser.FunctionNode) string {
	parts := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		s := p.Name
		if p.Annotated() {
			s += ": " + parser.RenderType(p.Annotation)
			if p.Default != "" {
				s += " = " + p.Default
			}
		} else if p.Default != "" {
			s += "=" + p.Default
		}
		parts[i] = s
	}
	return "def " + fn.Name + "(" + strings.Join(parts, ", ") + ") ->"
}

// Shorten strips comment lines, docstring blocks and blank lines from
// source. It is the recovery path when the oracle rejects a prompt as too
// large. Single-line docstrings are dropped without opening a block.
func Shorten(source string) string {
	lines := splitLines(source)
	inDocstring := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			lines[i] = ""
			continue
		}
		if marker := docstringMarker(trimmed); marker != "" {
			if !inDocstring && !selfContained(trimmed, marker) {
				inDocstring = true
			} else if inDocstring {
				inDocstring = false
			}
			lines[i] = ""
			continue
		}
		if inDocstring {
			lines[i] = ""
		}
	}

	var b strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			b.WriteString(line)
		}
	}
	return b.String()
}

func docstringMarker(trimmed string) string {
	for _, marker := range []string{`"""`, "'''"} {
		if strings.HasPrefix(trimmed, marker) {
			return marker
		}
	}
	return ""
}

func selfContained(trimmed, marker string) bool {
	return len(trimmed) >= 2*len(marker) && strings.HasSuffix(trimmed, marker)
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
