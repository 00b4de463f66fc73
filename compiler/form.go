package compiler

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Forms: the parsed surface tree for Cinder
// ---------------------------------------------------------------------------

// Position represents a source location.
type Position struct {
	Offset int // byte offset
	Line   int // 1-based line number
	Column int // 1-based column number
}

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// Form is the interface implemented by all surface forms. Forms are
// immutable once produced by the reader; the lowering pass never mutates
// them.
type Form interface {
	Span() Span
	form() // marker method
	String() string
}

// SymbolForm represents an identifier reference or operator head.
type SymbolForm struct {
	SpanVal Span
	Name    string
}

func (n *SymbolForm) Span() Span     { return n.SpanVal }
func (n *SymbolForm) form()          {}
func (n *SymbolForm) String() string { return n.Name }

// StringForm represents a string literal.
type StringForm struct {
	SpanVal Span
	Value   string
}

func (n *StringForm) Span() Span     { return n.SpanVal }
func (n *StringForm) form()          {}
func (n *StringForm) String() string { return fmt.Sprintf("%q", n.Value) }

// NumberForm represents a numeric literal. The literal text is kept
// verbatim; the backend parses it against the declared type.
type NumberForm struct {
	SpanVal Span
	Text    string
	IsFloat bool
}

func (n *NumberForm) Span() Span     { return n.SpanVal }
func (n *NumberForm) form()          {}
func (n *NumberForm) String() string { return n.Text }

// BoolForm represents a boolean literal.
type BoolForm struct {
	SpanVal Span
	Value   bool
}

func (n *BoolForm) Span() Span { return n.SpanVal }
func (n *BoolForm) form()      {}
func (n *BoolForm) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// ListForm represents an operator application: (head arg ...).
type ListForm struct {
	SpanVal Span
	Items   []Form
}

func (n *ListForm) Span() Span { return n.SpanVal }
func (n *ListForm) form()      {}
func (n *ListForm) String() string {
	return "(" + joinForms(n.Items) + ")"
}

// Head returns the leading symbol name of the list, or "" if the list is
// empty or does not start with a symbol.
func (n *ListForm) Head() string {
	if len(n.Items) == 0 {
		return ""
	}
	if sym, ok := n.Items[0].(*SymbolForm); ok {
		return sym.Name
	}
	return ""
}

// Args returns the forms following the head.
func (n *ListForm) Args() []Form {
	if len(n.Items) == 0 {
		return nil
	}
	return n.Items[1:]
}

// VecForm represents a bracketed sequence: [a b c]. Used for parameter
// lists in function definitions.
type VecForm struct {
	SpanVal Span
	Items   []Form
}

func (n *VecForm) Span() Span { return n.SpanVal }
func (n *VecForm) form()      {}
func (n *VecForm) String() string {
	return "[" + joinForms(n.Items) + "]"
}

func joinForms(forms []Form) string {
	var sb strings.Builder
	for i, f := range forms {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.String())
	}
	return sb.String()
}

// SplitTyped splits a "name:type" symbol into its name and type parts.
// A symbol without a colon returns typeName == "".
func SplitTyped(name string) (string, string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}

// MakeSpan creates a span from start and end positions.
func MakeSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}
