package ir

import "fmt"

// Slot identifies a virtual storage location. Slots are dense non-negative
// integers, allocated monotonically within one function's compilation and
// never reused until the registry is reset for the next function.
type Slot int

// NoSlot marks the absence of a destination slot.
const NoSlot Slot = -1

// Label identifies a marker in the linear instruction stream. Labels are
// opaque and unique within one function's stream.
type Label int

// NoLabel marks the absence of a label operand.
const NoLabel Label = -1

// CallConvC is the default calling convention for calls and syscalls.
const CallConvC = "c"

// OperandKind discriminates operand variants.
type OperandKind uint8

const (
	// KindSlot references a storage location by index.
	KindSlot OperandKind = 0

	// KindConst is an inline typed constant: a type id plus the
	// literal text the backend parses against it.
	KindConst OperandKind = 1
)

// Operand is one instruction operand: a slot reference or an inline
// typed constant.
type Operand struct {
	Kind OperandKind `cbor:"kind"`
	Slot Slot        `cbor:"slot"`
	Type TypeID      `cbor:"type"`
	Text string      `cbor:"text"`
}

// SlotRef builds a slot operand.
func SlotRef(s Slot) Operand {
	return Operand{Kind: KindSlot, Slot: s, Type: NoType}
}

// Const builds an inline typed constant operand.
func Const(t TypeID, text string) Operand {
	return Operand{Kind: KindConst, Slot: NoSlot, Type: t, Text: text}
}

// IsSlot reports whether the operand references a slot.
func (o Operand) IsSlot() bool { return o.Kind == KindSlot }

// Instr is one IR instruction: an opcode plus typed operands. Which
// fields are meaningful depends on the opcode:
//
//	bind        Dest, Type
//	move        Dest, Args[0]
//	add..and    Dest, Args[0], Args[1]
//	branch(-not) Label, Args[0] (condition slot)
//	jump, label Label
//	return      Args[0] optional
//	call        Conv, Dest (NoSlot when discarded), Args[0] target, Args[1:]
//	syscall     Conv, Dest (NoSlot when discarded), Args
type Instr struct {
	Op    Opcode    `cbor:"op"`
	Dest  Slot      `cbor:"dest"`
	Type  TypeID    `cbor:"type"`
	Label Label     `cbor:"label"`
	Conv  string    `cbor:"conv,omitempty"`
	Args  []Operand `cbor:"args,omitempty"`
}

// Bind declares a slot's type before first use.
func Bind(slot Slot, t TypeID) Instr {
	return Instr{Op: OpBind, Dest: slot, Type: t, Label: NoLabel}
}

// Move stores a value into a slot.
func Move(slot Slot, value Operand) Instr {
	return Instr{Op: OpMove, Dest: slot, Type: NoType, Label: NoLabel, Args: []Operand{value}}
}

// Binary combines two operands into a destination slot.
func Binary(op Opcode, dest Slot, a, b Operand) Instr {
	return Instr{Op: op, Dest: dest, Type: NoType, Label: NoLabel, Args: []Operand{a, b}}
}

// Branch jumps to the label when the condition slot holds true.
func Branch(cond Slot, l Label) Instr {
	return Instr{Op: OpBranch, Dest: NoSlot, Type: NoType, Label: l, Args: []Operand{SlotRef(cond)}}
}

// BranchNot jumps to the label when the condition slot holds false.
func BranchNot(cond Slot, l Label) Instr {
	return Instr{Op: OpBranchNot, Dest: NoSlot, Type: NoType, Label: l, Args: []Operand{SlotRef(cond)}}
}

// Jump transfers control to the label unconditionally.
func Jump(l Label) Instr {
	return Instr{Op: OpJump, Dest: NoSlot, Type: NoType, Label: l}
}

// Mark places a label marker in the stream.
func Mark(l Label) Instr {
	return Instr{Op: OpLabel, Dest: NoSlot, Type: NoType, Label: l}
}

// Ret returns a value from the function.
func Ret(value Operand) Instr {
	return Instr{Op: OpReturn, Dest: NoSlot, Type: NoType, Label: NoLabel, Args: []Operand{value}}
}

// RetVoid returns from the function with no value.
func RetVoid() Instr {
	return Instr{Op: OpReturn, Dest: NoSlot, Type: NoType, Label: NoLabel}
}

// NewCall calls a named target. dest is NoSlot when the result is
// discarded; target is a pointer-typed constant naming the callee.
func NewCall(conv string, dest Slot, target Operand, args []Operand) Instr {
	return Instr{
		Op:    OpCall,
		Dest:  dest,
		Type:  NoType,
		Label: NoLabel,
		Conv:  conv,
		Args:  append([]Operand{target}, args...),
	}
}

// NewSyscall emits a raw syscall. dest is NoSlot when discarded.
func NewSyscall(conv string, dest Slot, args []Operand) Instr {
	return Instr{Op: OpSyscall, Dest: dest, Type: NoType, Label: NoLabel, Conv: conv, Args: args}
}

// HasDest reports whether the instruction writes a destination slot.
func (in Instr) HasDest() bool {
	return in.Dest != NoSlot
}

func (in Instr) String() string {
	return fmt.Sprintf("%s%s", in.Op, formatOperands(in))
}
