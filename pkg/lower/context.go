package lower

import (
	"github.com/cinderlang/cinder/pkg/ir"
)

// Context carries the state of one function compilation: the slot/name
// registries, the label generator, the declared return type, and the
// instruction sink. Each in-flight compilation owns its own Context, so
// independent functions can be lowered concurrently.
type Context struct {
	types *ir.TypeTable

	// Slot registries. slotNames[i] is the declared name of slot i, or
	// "" for anonymous temporaries; nameSlots is the inverse for named
	// slots only.
	slotNames []string
	nameSlots map[string]ir.Slot

	labelCount int

	// Declared return type of the function being compiled; supplies the
	// type hint for every return expression in the body.
	returnType ir.TypeID

	code []ir.Instr
}

// NewContext creates a compilation context over the given type table.
func NewContext(types *ir.TypeTable) *Context {
	c := &Context{types: types}
	c.Reset()
	return c
}

// Reset clears the slot registries, label generator, and instruction
// sink for the next function. The type table is shared and never reset.
func (c *Context) Reset() {
	c.slotNames = c.slotNames[:0]
	c.nameSlots = make(map[string]ir.Slot)
	c.labelCount = 0
	c.returnType = ir.NoType
	c.code = nil
}

// Types returns the shared type table.
func (c *Context) Types() *ir.TypeTable {
	return c.types
}

// AllocSlot allocates the next slot index, optionally registering a
// declared name for it. Indices are unique and strictly increasing
// within one function.
func (c *Context) AllocSlot(name string) ir.Slot {
	slot := ir.Slot(len(c.slotNames))
	c.slotNames = append(c.slotNames, name)
	if name != "" {
		c.nameSlots[name] = slot
	}
	return slot
}

// ResolveSlot looks up the slot declared under name.
func (c *Context) ResolveSlot(name string) (ir.Slot, bool) {
	slot, ok := c.nameSlots[name]
	return slot, ok
}

// SlotName returns the declared name of a slot, or "" for temporaries.
func (c *Context) SlotName(slot ir.Slot) string {
	if slot < 0 || int(slot) >= len(c.slotNames) {
		return ""
	}
	return c.slotNames[slot]
}

// NumSlots returns the number of slots allocated so far.
func (c *Context) NumSlots() int {
	return len(c.slotNames)
}

// NewLabel generates a fresh label, unique within this compilation.
func (c *Context) NewLabel() ir.Label {
	l := ir.Label(c.labelCount)
	c.labelCount++
	return l
}

// emit appends one instruction to the sink.
func (c *Context) emit(in ir.Instr) {
	c.code = append(c.code, in)
}

// Code returns the instructions emitted so far.
func (c *Context) Code() []ir.Instr {
	return c.code
}

// ---------------------------------------------------------------------------
// Expression results
// ---------------------------------------------------------------------------

// ResultKind discriminates what an expression compiled to.
type ResultKind uint8

const (
	// ResultNone: the form yields no value (return, while, set, ir).
	ResultNone ResultKind = iota

	// ResultSlot: the value lives in a slot.
	ResultSlot

	// ResultConst: an inline typed constant that never needed storage.
	ResultConst
)

// Result is the outcome of compiling one expression: nothing, a slot
// index, or an inline typed constant.
type Result struct {
	Kind ResultKind
	Slot ir.Slot
	Type ir.TypeID
	Text string
}

// None is the empty result.
var None = Result{Kind: ResultNone, Slot: ir.NoSlot, Type: ir.NoType}

// FromSlot wraps a slot index as a result.
func FromSlot(slot ir.Slot) Result {
	return Result{Kind: ResultSlot, Slot: slot, Type: ir.NoType}
}

// FromConst wraps an inline typed constant as a result.
func FromConst(t ir.TypeID, text string) Result {
	return Result{Kind: ResultConst, Slot: ir.NoSlot, Type: t, Text: text}
}

// IsNone reports whether the expression produced no value.
func (r Result) IsNone() bool { return r.Kind == ResultNone }

// Operand converts the result into an instruction operand.
func (r Result) Operand() ir.Operand {
	if r.Kind == ResultSlot {
		return ir.SlotRef(r.Slot)
	}
	return ir.Const(r.Type, r.Text)
}
