package ir

import "fmt"

// Opcode identifies one IR instruction.
// Opcodes are organized into ranges by category for easy identification.
type Opcode byte

const (
	// ========================================================================
	// Data movement (0x00-0x0F)
	// ========================================================================

	OpBind Opcode = 0x00 // Declare a slot's type: bind <slot> <type>
	OpMove Opcode = 0x01 // Store a value into a slot: move <slot> <value>

	// ========================================================================
	// Arithmetic and bitwise (0x10-0x1F)
	// ========================================================================

	OpAdd Opcode = 0x10 // dest = a + b
	OpSub Opcode = 0x11 // dest = a - b
	OpMul Opcode = 0x12 // dest = a * b
	OpDiv Opcode = 0x13 // dest = a / b
	OpShl Opcode = 0x14 // dest = a << b
	OpShr Opcode = 0x15 // dest = a >> b

	// ========================================================================
	// Comparison (0x20-0x2F)
	// ========================================================================

	OpEq Opcode = 0x20 // dest = a == b
	OpNe Opcode = 0x21 // dest = a != b
	OpLt Opcode = 0x22 // dest = a < b
	OpLe Opcode = 0x23 // dest = a <= b
	OpGt Opcode = 0x24 // dest = a > b
	OpGe Opcode = 0x25 // dest = a >= b

	// ========================================================================
	// Logic (0x28-0x2F)
	// ========================================================================

	OpAnd Opcode = 0x28 // dest = a AND b (boolean)

	// ========================================================================
	// Control flow (0x30-0x3F)
	// ========================================================================

	OpBranch    Opcode = 0x30 // Jump to label if cond slot is true
	OpBranchNot Opcode = 0x31 // Jump to label if cond slot is false
	OpJump      Opcode = 0x32 // Unconditional jump to label
	OpLabel     Opcode = 0x33 // Label marker partitioning the stream
	OpReturn    Opcode = 0x34 // Return, optionally with a value

	// ========================================================================
	// Calls (0x40-0x4F)
	// ========================================================================

	OpCall    Opcode = 0x40 // Call target with args: call <conv> <dest?> <target> <args...>
	OpSyscall Opcode = 0x41 // Raw syscall: syscall <conv> <dest?> <args...>
)

var opNames = map[Opcode]string{
	OpBind:      "bind",
	OpMove:      "move",
	OpAdd:       "add",
	OpSub:       "sub",
	OpMul:       "mul",
	OpDiv:       "div",
	OpShl:       "shl",
	OpShr:       "shr",
	OpEq:        "eq",
	OpNe:        "ne",
	OpLt:        "lt",
	OpLe:        "le",
	OpGt:        "gt",
	OpGe:        "ge",
	OpAnd:       "and",
	OpBranch:    "branch",
	OpBranchNot: "branch-not",
	OpJump:      "jump",
	OpLabel:     "label",
	OpReturn:    "return",
	OpCall:      "call",
	OpSyscall:   "syscall",
}

// String returns the assembler mnemonic for the opcode.
func (op Opcode) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Opcode(0x%02X)", byte(op))
}

// OpcodeByName maps a mnemonic back to its opcode.
func OpcodeByName(name string) (Opcode, bool) {
	for op, n := range opNames {
		if n == name {
			return op, true
		}
	}
	return 0, false
}

// IsBinary reports whether the opcode combines two operands into a dest.
func (op Opcode) IsBinary() bool {
	return op >= OpAdd && op <= OpAnd
}

// IsComparison reports whether the opcode is a relational operation.
func (op Opcode) IsComparison() bool {
	return op >= OpEq && op <= OpGe
}
