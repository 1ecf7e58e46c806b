package parser

import "fmt"

// Param is a single positional parameter of a function definition.
type Param struct {
	Name       string
	Annotation TypeExpr // nil when the parameter carries no annotation
	Default    string   // raw default expression text, "" when absent
}

// Annotated reports whether the parameter has a type annotation.
func (p Param) Annotated() bool {
	return p.Annotation != nil
}

// Span is an inclusive 1-indexed line range of a statement.
type Span struct {
	StartLine int
	EndLine   int
}

// FunctionNode represents a module-level Python function definition.
// All line numbers are 1-indexed and refer to the original source.
type FunctionNode struct {
	Name          string
	Params        []Param  // positional parameters, in declaration order
	Returns       TypeExpr // nil when no return annotation is declared
	Body          []Span   // top-level body statements
	DefLine       int      // line of the def keyword
	FirstBodyLine int      // line of the first body statement, 0 if body is empty
	LastBodyLine  int      // end line of the last body statement, 0 if body is empty
}

// SyntaxError reports that source text is not valid Python.
type SyntaxError struct {
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid python syntax at line %d, column %d", e.Line, e.Column)
}
