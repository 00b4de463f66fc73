package ir

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of the function: the
// link-name and parameter-count header followed by one line per
// instruction. types may be nil, in which case type operands print as
// their raw ids.
func Disassemble(fn *Function, types *TypeTable) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("; === %s ===\n", fn.LinkName))
	sb.WriteString(fmt.Sprintf("; params: %d\n", fn.ParamCount))

	for _, in := range fn.Code {
		if in.Op == OpLabel {
			sb.WriteString(fmt.Sprintf("L%d:\n", in.Label))
			continue
		}
		sb.WriteString("  ")
		sb.WriteString(formatInstr(in, types))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// formatInstr renders one instruction with an optional type table.
func formatInstr(in Instr, types *TypeTable) string {
	var parts []string

	switch in.Op {
	case OpBind:
		parts = []string{formatSlot(in.Dest), typeName(in.Type, types)}

	case OpBranch, OpBranchNot:
		parts = []string{formatOperand(in.Args[0], types), formatLabel(in.Label)}

	case OpJump, OpLabel:
		parts = []string{formatLabel(in.Label)}

	case OpCall, OpSyscall:
		parts = append(parts, in.Conv)
		if in.HasDest() {
			parts = append(parts, formatSlot(in.Dest))
		} else {
			parts = append(parts, "_")
		}
		for _, arg := range in.Args {
			parts = append(parts, formatOperand(arg, types))
		}

	default:
		if in.HasDest() {
			parts = append(parts, formatSlot(in.Dest))
		}
		for _, arg := range in.Args {
			parts = append(parts, formatOperand(arg, types))
		}
	}

	if len(parts) == 0 {
		return in.Op.String()
	}
	return in.Op.String() + " " + strings.Join(parts, " ")
}

// formatOperands renders operands without a type table; used by
// Instr.String.
func formatOperands(in Instr) string {
	s := formatInstr(in, nil)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[i:]
	}
	return ""
}

func formatSlot(s Slot) string {
	return fmt.Sprintf("%%%d", s)
}

func formatLabel(l Label) string {
	return fmt.Sprintf("L%d", l)
}

func formatOperand(o Operand, types *TypeTable) string {
	if o.IsSlot() {
		return formatSlot(o.Slot)
	}
	return fmt.Sprintf("(%s %s)", typeName(o.Type, types), o.Text)
}

func typeName(id TypeID, types *TypeTable) string {
	if types != nil {
		return types.Name(id)
	}
	return fmt.Sprintf("t%d", id)
}
