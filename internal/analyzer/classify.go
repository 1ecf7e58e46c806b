package analyzer

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"autotyper/internal/parser"
)

// Typedness classifies how complete a function's type annotations are.
type Typedness int

const (
	// Fully means every parameter is annotated and the return path needs
	// no annotation or already has one.
	Fully Typedness = iota

	// MissingArgs means at least one parameter lacks an annotation. It
	// takes priority over the return-type check.
	MissingArgs

	// MissingReturn means all parameters are annotated and the body
	// returns or yields, but no return annotation is declared.
	MissingReturn
)

var typednessNames = map[Typedness]string{
	Fully:         "fully",
	MissingArgs:   "missing-args",
	MissingReturn: "missing-return",
}

func (t Typedness) String() string {
	if s, ok := typednessNames[t]; ok {
		return s
	}
	return "unknown"
}

// Classify decides the typedness of a function. A function whose body has
// no return or yield is Fully even without a return annotation.
func Classify(fn *parser.FunctionNode, tree *parser.Tree) (Typedness, []Diagnostic) {
	for _, p := range fn.Params {
		if !p.Annotated() {
			return MissingArgs, nil
		}
	}

	if fn.Returns != nil {
		return Fully, nil
	}

	if fn.FirstBodyLine == 0 || fn.LastBodyLine == 0 {
		diag := Diagnostic{
			Kind:   EmptyBody,
			Line:   fn.DefLine,
			Detail: "function body is probably empty, assuming no return statement",
		}
		return Fully, []Diagnostic{diag}
	}

	if hasReturnOrYield(tree, fn.FirstBodyLine, fn.LastBodyLine) {
		return MissingReturn, nil
	}
	return Fully, nil
}

// hasReturnOrYield reports whether a return or yield statement lies
// lexically within the given line span. A single match is enough.
func hasReturnOrYield(tree *parser.Tree, firstLine, lastLine int) bool {
	found := false
	tree.WalkNamed(func(n *sitter.Node) bool {
		if found {
			return false
		}
		if kind := n.Kind(); kind == "return_statement" || kind == "yield" {
			line := int(n.StartPosition().Row) + 1
			if firstLine <= line && line <= lastLine {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
