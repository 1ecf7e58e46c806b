package analyzer

import (
	"fmt"
	"strings"

	"autotyper/internal/parser"
	"autotyper/internal/scanner"
)

// ResolveSignatureRange computes the inclusive 1-indexed line range that
// covers exactly a function's signature, from the def keyword through the
// terminating colon. Trailing blank lines and comment-only lines that the
// syntax tree attributes to the gap before the body are excluded.
//
// The initial end is the line before the first body statement. The slice
// [start, end] is then tokenized and scanned in reverse: the first colon
// from the end marks the true boundary, each newline-only line shrinks the
// range by one, and comments are left to their companion newline so they
// never shrink the range themselves.
func ResolveSignatureRange(fn *parser.FunctionNode, source []byte) (start, end int, diags []Diagnostic) {
	start = fn.DefLine
	end = fn.FirstBodyLine - 1

	lines := splitLines(string(source))
	if end > len(lines) {
		end = len(lines)
	}
	slice := strings.Join(lines[start-1:end], "")

	tokens := scanner.Scan(slice)
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		if tok.Kind == scanner.Colon {
			// The colon's line is the true end of the signature.
			break
		}
		switch tok.Kind {
		case scanner.NL:
			end--
		case scanner.Comment, scanner.Newline, scanner.EOF:
			// A comment is already absorbed by the newline token of its
			// line; a logical newline is the one right after the colon.
		case scanner.String:
			end -= tok.PhysicalLines()
			diags = append(diags, Diagnostic{
				Kind:   AnomalousDocstring,
				Line:   start - 1 + tok.Line,
				Detail: "docstring inside signature range, adjusting boundary",
			})
		default:
			diags = append(diags, Diagnostic{
				Kind:   UnexpectedToken,
				Line:   start - 1 + tok.Line,
				Detail: fmt.Sprintf("unexpected %s token %q in signature range", tok.Kind, tok.Text),
			})
		}
	}

	return start, end, diags
}

// splitLines splits text into lines keeping the line terminators, matching
// Python's splitlines(keepends=True) for \n-terminated text.
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
