package parser

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

var pythonLanguage = sitter.NewLanguage(tree_sitter_python.Language())

// Tree wraps a parsed tree-sitter syntax tree together with its source.
// Callers must Close it when done.
type Tree struct {
	inner  *sitter.Tree
	source []byte
}

// Parse parses Python source text. It returns a *SyntaxError when the text
// is not valid Python.
func Parse(source []byte) (*Tree, error) {
	p := sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(pythonLanguage); err != nil {
		return nil, fmt.Errorf("failed to load python grammar: %w", err)
	}

	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser produced no tree")
	}

	root := tree.RootNode()
	if root.HasError() {
		line, col := firstErrorPosition(root)
		tree.Close()
		return nil, &SyntaxError{Line: line, Column: col}
	}

	return &Tree{inner: tree, source: source}, nil
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t.inner != nil {
		t.inner.Close()
		t.inner = nil
	}
}

// Source returns the source text the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// WalkNamed visits every named node in document order. The visitor returns
// false to skip the node's subtree.
func (t *Tree) WalkNamed(visit func(n *sitter.Node) bool) {
	walkNamed(t.inner.RootNode(), visit)
}

func walkNamed(n *sitter.Node, visit func(n *sitter.Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		walkNamed(n.NamedChild(i), visit)
	}
}

// TopLevelFunctions returns the functions defined at module scope, in
// source order. Nested functions and class methods are excluded; decorated
// module-level functions are included.
func (t *Tree) TopLevelFunctions() []*FunctionNode {
	root := t.inner.RootNode()
	var functions []*FunctionNode

	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		def := child
		if child.Kind() == "decorated_definition" {
			def = child.ChildByFieldName("definition")
		}
		if def == nil || def.Kind() != "function_definition" {
			continue
		}
		if fn := t.buildFunctionNode(def); fn != nil {
			functions = append(functions, fn)
		}
	}

	return functions
}

func (t *Tree) buildFunctionNode(def *sitter.Node) *FunctionNode {
	nameNode := def.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	fn := &FunctionNode{
		Name:    nameNode.Utf8Text(t.source),
		DefLine: lineOf(def),
		Returns: typeExprFromNode(def.ChildByFieldName("return_type"), t.source),
	}

	if params := def.ChildByFieldName("parameters"); params != nil {
		fn.Params = t.buildParams(params)
	}

	if body := def.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.NamedChildCount(); i++ {
			stmt := body.NamedChild(i)
			if stmt.Kind() == "comment" {
				continue
			}
			fn.Body = append(fn.Body, Span{
				StartLine: lineOf(stmt),
				EndLine:   int(stmt.EndPosition().Row) + 1,
			})
		}
	}
	if len(fn.Body) > 0 {
		fn.FirstBodyLine = fn.Body[0].StartLine
		fn.LastBodyLine = fn.Body[len(fn.Body)-1].EndLine
	}

	return fn
}

// buildParams collects plain positional parameters. Splat parameters and
// everything after a bare * separator are keyword-only and mirror what the
// annotation check inspects, so collection stops there.
func (t *Tree) buildParams(params *sitter.Node) []Param {
	var out []Param
	for i := uint(0); i < params.NamedChildCount(); i++ {
		child := params.NamedChild(i)
		switch child.Kind() {
		case "identifier":
			out = append(out, Param{Name: child.Utf8Text(t.source)})
		case "typed_parameter":
			p := Param{Annotation: typeExprFromNode(child.ChildByFieldName("type"), t.source)}
			if name := child.NamedChild(0); name != nil {
				p.Name = name.Utf8Text(t.source)
			}
			out = append(out, p)
		case "default_parameter":
			out = append(out, Param{
				Name:    fieldText(child, "name", t.source),
				Default: fieldText(child, "value", t.source),
			})
		case "typed_default_parameter":
			out = append(out, Param{
				Name:       fieldText(child, "name", t.source),
				Annotation: typeExprFromNode(child.ChildByFieldName("type"), t.source),
				Default:    fieldText(child, "value", t.source),
			})
		case "list_splat_pattern", "dictionary_splat_pattern", "keyword_separator":
			return out
		case "positional_separator", "comment":
			// "/" only marks the preceding parameters as positional-only.
		}
	}
	return out
}

// FirstImportLine returns the line of the first import statement in the
// file, or false when the file has none.
func (t *Tree) FirstImportLine() (int, bool) {
	line := 0
	t.WalkNamed(func(n *sitter.Node) bool {
		if line > 0 {
			return false
		}
		if n.Kind() == "import_statement" || n.Kind() == "import_from_statement" {
			line = lineOf(n)
			return false
		}
		return true
	})
	return line, line > 0
}

// TypingImportLine returns the line of an existing import of the typing
// module, or false when there is none.
func (t *Tree) TypingImportLine() (int, bool) {
	line := 0
	t.WalkNamed(func(n *sitter.Node) bool {
		if line > 0 {
			return false
		}
		switch n.Kind() {
		case "import_statement":
			name := n.NamedChild(0)
			if name != nil && name.Kind() == "aliased_import" {
				name = name.ChildByFieldName("name")
			}
			if name != nil && rootModuleName(name.Utf8Text(t.source)) == "typing" {
				line = lineOf(n)
			}
			return false
		case "import_from_statement":
			if mod := n.ChildByFieldName("module_name"); mod != nil && rootModuleName(mod.Utf8Text(t.source)) == "typing" {
				line = lineOf(n)
			}
			return false
		}
		return true
	})
	return line, line > 0
}

func rootModuleName(dotted string) string {
	name, _, _ := strings.Cut(dotted, ".")
	return name
}

func fieldText(n *sitter.Node, field string, source []byte) string {
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Utf8Text(source)
}

func lineOf(n *sitter.Node) int {
	return int(n.StartPosition().Row) + 1
}

func firstErrorPosition(root *sitter.Node) (line, col int) {
	line, col = 1, 1
	found := false
	walkNamed(root, func(n *sitter.Node) bool {
		if found {
			return false
		}
		if n.IsError() || n.IsMissing() {
			pos := n.StartPosition()
			line, col = int(pos.Row)+1, int(pos.Column)+1
			found = true
			return false
		}
		return true
	})
	return line, col
}
