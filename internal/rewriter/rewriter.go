// Package rewriter splices oracle completions back into source files.
package rewriter

import (
	"path/filepath"
	"strings"
)

// FileEdit accumulates line-range replacements against one file. All line
// numbers refer to the original file; the edit tracks how completed
// replacements shifted later lines, so a completion spanning a different
// number of lines than the signature it replaces stays aligned. State is
// local to one file's pass and discarded afterwards.
type FileEdit struct {
	lines []string
	edits []edit
}

type edit struct {
	afterLine int // original line number the delta applies after
	delta     int
}

// NewFileEdit starts an edit session over content.
func NewFileEdit(content string) *FileEdit {
	return &FileEdit{lines: splitLines(content)}
}

// ReplaceRange replaces the inclusive original line range [start, end]
// with replacement text. Replacing a range with its own text reproduces
// the file byte-for-byte.
func (e *FileEdit) ReplaceRange(start, end int, replacement string) {
	repl := splitLines(replacement)
	startIdx := start - 1 + e.offsetBefore(start)
	endIdx := end + e.offsetBefore(start)

	rebuilt := make([]string, 0, len(e.lines)+len(repl)-(endIdx-startIdx))
	rebuilt = append(rebuilt, e.lines[:startIdx]...)
	rebuilt = append(rebuilt, repl...)
	rebuilt = append(rebuilt, e.lines[endIdx:]...)
	e.lines = rebuilt

	e.edits = append(e.edits, edit{
		afterLine: end,
		delta:     len(repl) - (end + 1 - start),
	})
}

// InsertBefore inserts text above the original line number. Inserting at
// line 1 prepends to the file.
func (e *FileEdit) InsertBefore(line int, text string) {
	repl := splitLines(text)
	idx := line - 1 + e.offsetBefore(line)

	rebuilt := make([]string, 0, len(e.lines)+len(repl))
	rebuilt = append(rebuilt, e.lines[:idx]...)
	rebuilt = append(rebuilt, repl...)
	rebuilt = append(rebuilt, e.lines[idx:]...)
	e.lines = rebuilt

	e.edits = append(e.edits, edit{afterLine: line - 1, delta: len(repl)})
}

// offsetBefore sums the line deltas of edits that lie entirely above the
// given original line. Edits below it leave its position untouched.
func (e *FileEdit) offsetBefore(line int) int {
	offset := 0
	for _, ed := range e.edits {
		if ed.afterLine < line {
			offset += ed.delta
		}
	}
	return offset
}

// Content returns the edited file text.
func (e *FileEdit) Content() string {
	return strings.Join(e.lines, "")
}

// OutputPath derives the output file name from a naming template. The
// template substitutes {filename} with the base name before the first dot
// and {ext} with what follows it, e.g. "{filename}_typed.{ext}".
func OutputPath(path, format string) string {
	filename := filepath.Base(path)
	base, ext, _ := strings.Cut(filename, ".")

	newName := strings.ReplaceAll(format, "{filename}", base)
	newName = strings.ReplaceAll(newName, "{ext}", ext)
	return filepath.Join(filepath.Dir(path), newName)
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
