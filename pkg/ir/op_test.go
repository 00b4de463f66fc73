package ir

import "testing"

func TestOpcodeNames(t *testing.T) {
	tests := []struct {
		op   Opcode
		name string
	}{
		{OpBind, "bind"},
		{OpMove, "move"},
		{OpAdd, "add"},
		{OpShr, "shr"},
		{OpNe, "ne"},
		{OpAnd, "and"},
		{OpBranchNot, "branch-not"},
		{OpSyscall, "syscall"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.name {
			t.Errorf("%#02x String() = %q, want %q", byte(tt.op), got, tt.name)
		}
		op, ok := OpcodeByName(tt.name)
		if !ok || op != tt.op {
			t.Errorf("OpcodeByName(%q) = %v, %v, want %v, true", tt.name, op, ok, tt.op)
		}
	}

	if _, ok := OpcodeByName("bogus"); ok {
		t.Error("OpcodeByName(bogus) succeeded")
	}
}

func TestOpcodeCategories(t *testing.T) {
	if !OpAdd.IsBinary() || !OpAnd.IsBinary() || !OpLt.IsBinary() {
		t.Error("arithmetic/logic opcodes not classified as binary")
	}
	if OpBind.IsBinary() || OpBranch.IsBinary() {
		t.Error("non-binary opcode classified as binary")
	}
	if !OpEq.IsComparison() || !OpGe.IsComparison() {
		t.Error("comparison opcodes not classified as comparison")
	}
	if OpAnd.IsComparison() || OpAdd.IsComparison() {
		t.Error("non-comparison opcode classified as comparison")
	}
}
