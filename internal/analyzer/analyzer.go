// Package analyzer locates function signature line ranges and classifies
// annotation completeness on top of the parsed syntax tree.
package analyzer

import "autotyper/internal/parser"

// SignatureRange is the resolved signature span of one function together
// with its typedness. Lines are 1-indexed, inclusive, and refer to the
// original file. EndLine always precedes the first body statement's line.
type SignatureRange struct {
	Typedness Typedness
	StartLine int
	EndLine   int
	Fn        *parser.FunctionNode
}

// ScanTree resolves and classifies every module-level function in the
// tree, in source order. Diagnostics from all functions are accumulated.
func ScanTree(tree *parser.Tree) ([]SignatureRange, []Diagnostic) {
	var (
		ranges []SignatureRange
		diags  []Diagnostic
	)
	for _, fn := range tree.TopLevelFunctions() {
		start, end, rdiags := ResolveSignatureRange(fn, tree.Source())
		typedness, cdiags := Classify(fn, tree)
		diags = append(diags, rdiags...)
		diags = append(diags, cdiags...)
		ranges = append(ranges, SignatureRange{
			Typedness: typedness,
			StartLine: start,
			EndLine:   end,
			Fn:        fn,
		})
	}
	return ranges, diags
}
