package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// TypeExpr is a closed set of variants covering the expression shapes that
// occur in Python type annotations. Anything outside the set is preserved
// verbatim as OpaqueType, so rendering never loses source text.
type TypeExpr interface {
	typeExpr()
}

// NamedType is a bare name such as int, str or List.
type NamedType struct {
	Name string
}

// MemberType is an attribute access such as typing.Optional.
type MemberType struct {
	Base TypeExpr
	Attr string
}

// GenericType is a parameterized type such as Optional[int] or dict[str, int].
type GenericType struct {
	Base TypeExpr
	Args []TypeExpr
}

// UnionType is the PEP 604 form such as int | None.
type UnionType struct {
	Left  TypeExpr
	Right TypeExpr
}

// LiteralType is a literal in type position, typically a forward
// reference string such as "User".
type LiteralType struct {
	Text string
}

// OpaqueType carries the raw source text of an annotation shape the
// converter does not model.
type OpaqueType struct {
	Text string
}

func (NamedType) typeExpr()   {}
func (MemberType) typeExpr()  {}
func (GenericType) typeExpr() {}
func (UnionType) typeExpr()   {}
func (LiteralType) typeExpr() {}
func (OpaqueType) typeExpr()  {}

// RenderType prints a TypeExpr back to canonical annotation text.
func RenderType(e TypeExpr) string {
	switch t := e.(type) {
	case NamedType:
		return t.Name
	case MemberType:
		return RenderType(t.Base) + "." + t.Attr
	case GenericType:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = RenderType(a)
		}
		return RenderType(t.Base) + "[" + strings.Join(args, ", ") + "]"
	case UnionType:
		return RenderType(t.Left) + " | " + RenderType(t.Right)
	case LiteralType:
		return t.Text
	case OpaqueType:
		return t.Text
	default:
		return ""
	}
}

// typeExprFromNode converts a tree-sitter annotation node into a TypeExpr.
// The grammar wraps annotations in a "type" node; in type position generic
// and union forms get dedicated kinds, while plain expressions keep their
// expression kinds.
func typeExprFromNode(n *sitter.Node, source []byte) TypeExpr {
	if n == nil {
		return nil
	}

	switch n.Kind() {
	case "type":
		inner := n.NamedChild(0)
		if inner == nil {
			return OpaqueType{Text: n.Utf8Text(source)}
		}
		return typeExprFromNode(inner, source)

	case "identifier":
		return NamedType{Name: n.Utf8Text(source)}

	case "none":
		return NamedType{Name: "None"}

	case "attribute":
		base := typeExprFromNode(n.ChildByFieldName("object"), source)
		attr := n.ChildByFieldName("attribute")
		if base == nil || attr == nil {
			return OpaqueType{Text: n.Utf8Text(source)}
		}
		return MemberType{Base: base, Attr: attr.Utf8Text(source)}

	case "member_type":
		// member_type has no named fields: base type first, identifier last.
		count := n.NamedChildCount()
		if count < 2 {
			return OpaqueType{Text: n.Utf8Text(source)}
		}
		base := typeExprFromNode(n.NamedChild(0), source)
		attr := n.NamedChild(count - 1)
		return MemberType{Base: base, Attr: attr.Utf8Text(source)}

	case "subscript":
		base := typeExprFromNode(n.ChildByFieldName("value"), source)
		if base == nil {
			return OpaqueType{Text: n.Utf8Text(source)}
		}
		var args []TypeExpr
		for i := uint(0); i < n.NamedChildCount(); i++ {
			child := n.NamedChild(i)
			if child.Kind() == "comment" || i == 0 {
				continue
			}
			args = append(args, typeExprFromNode(child, source))
		}
		return GenericType{Base: base, Args: args}

	case "generic_type":
		base := typeExprFromNode(n.NamedChild(0), source)
		var args []TypeExpr
		if params := n.NamedChild(1); params != nil && params.Kind() == "type_parameter" {
			for i := uint(0); i < params.NamedChildCount(); i++ {
				args = append(args, typeExprFromNode(params.NamedChild(i), source))
			}
		}
		return GenericType{Base: base, Args: args}

	case "union_type":
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		if left == nil || right == nil {
			return OpaqueType{Text: n.Utf8Text(source)}
		}
		return UnionType{
			Left:  typeExprFromNode(left, source),
			Right: typeExprFromNode(right, source),
		}

	case "binary_operator":
		// int | None outside type position parses as a binary operator.
		if op := n.ChildByFieldName("operator"); op != nil && op.Utf8Text(source) == "|" {
			return UnionType{
				Left:  typeExprFromNode(n.ChildByFieldName("left"), source),
				Right: typeExprFromNode(n.ChildByFieldName("right"), source),
			}
		}
		return OpaqueType{Text: n.Utf8Text(source)}

	case "string":
		return LiteralType{Text: n.Utf8Text(source)}

	default:
		return OpaqueType{Text: n.Utf8Text(source)}
	}
}
