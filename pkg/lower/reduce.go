package lower

import (
	"github.com/cinderlang/cinder/compiler"
	"github.com/cinderlang/cinder/pkg/ir"
)

// Operator heads handled by the reducers.
var arithOps = map[string]ir.Opcode{
	"+":  ir.OpAdd,
	"-":  ir.OpSub,
	"*":  ir.OpMul,
	"/":  ir.OpDiv,
	"<<": ir.OpShl,
	">>": ir.OpShr,
}

var compareOps = map[string]ir.Opcode{
	"=":    ir.OpEq,
	"not=": ir.OpNe,
	"<":    ir.OpLt,
	"<=":   ir.OpLe,
	">":    ir.OpGt,
	">=":   ir.OpGe,
}

// compileArith lowers an n-ary arithmetic or shift form as a
// left-to-right fold. The first argument seeds the accumulator; each
// following argument combines with it into a fresh slot, which becomes
// the new accumulator. n arguments emit exactly n-1 binary instructions.
//
// Every fold step's destination is bound to the fixed default type
// (long), not the caller's hint; a known type-inference gap, kept as-is.
func (c *Context) compileArith(op ir.Opcode, f *compiler.ListForm, hint ir.TypeID) (Result, error) {
	args := f.Args()
	if len(args) == 0 {
		return None, formError(ErrArity, f, "%s needs at least one argument", f.Head())
	}

	stepType, err := c.resolveType(ir.TypeLong, f)
	if err != nil {
		return None, err
	}

	acc, err := c.compileForm(args[0], false, hint)
	if err != nil {
		return None, err
	}
	if acc.IsNone() {
		return None, formError(ErrUnsupportedForm, f, "operand yields no value")
	}

	for _, form := range args[1:] {
		operand, err := c.compileForm(form, false, hint)
		if err != nil {
			return None, err
		}
		if operand.IsNone() {
			return None, formError(ErrUnsupportedForm, f, "operand yields no value")
		}

		dest := c.AllocSlot("")
		c.emit(ir.Bind(dest, stepType))
		c.emit(ir.Binary(op, dest, acc.Operand(), operand.Operand()))
		acc = FromSlot(dest)
	}

	return acc, nil
}

// compileCompare lowers a chained relational form with AND semantics:
// (< a b c) means (a < b) AND (b < c). Each operand is compiled exactly
// once, left to right. The first pairwise comparison writes directly
// into the result slot; with more than two operands each further
// comparison writes into a temporary which is ANDed into the result in
// place. Exactly two operands need no temporary and no and.
func (c *Context) compileCompare(op ir.Opcode, f *compiler.ListForm) (Result, error) {
	args := f.Args()
	if len(args) < 2 {
		return None, formError(ErrArity, f, "%s needs at least two arguments", f.Head())
	}

	boolType, err := c.resolveType(ir.TypeBoolean, f)
	if err != nil {
		return None, err
	}

	result := c.AllocSlot("")
	c.emit(ir.Bind(result, boolType))

	temp := ir.NoSlot
	if len(args) > 2 {
		temp = c.AllocSlot("")
		c.emit(ir.Bind(temp, boolType))
	}

	prev, err := c.compileForm(args[0], false, ir.NoType)
	if err != nil {
		return None, err
	}
	if prev.IsNone() {
		return None, formError(ErrUnsupportedForm, f, "operand yields no value")
	}

	for i, form := range args[1:] {
		cur, err := c.compileForm(form, false, ir.NoType)
		if err != nil {
			return None, err
		}
		if cur.IsNone() {
			return None, formError(ErrUnsupportedForm, f, "operand yields no value")
		}

		if i == 0 {
			c.emit(ir.Binary(op, result, prev.Operand(), cur.Operand()))
		} else {
			c.emit(ir.Binary(op, temp, prev.Operand(), cur.Operand()))
			c.emit(ir.Binary(ir.OpAnd, result, ir.SlotRef(result), ir.SlotRef(temp)))
		}
		prev = cur
	}

	return FromSlot(result), nil
}
