package lower

import (
	"testing"

	"github.com/cinderlang/cinder/pkg/ir"
)

func TestArithFoldShape(t *testing.T) {
	// Four operands fold into exactly three adds, each step's
	// destination feeding the next step's left operand.
	fn := compileOne(t, `(defn f:long [a:long b:long c:long d:long]
		(return (+ a b c d)))`)

	if got := countOps(fn.Code, ir.OpAdd); got != 3 {
		t.Fatalf("got %d adds, want 3:\n%s", got, ir.Disassemble(fn, ir.DefaultTypes()))
	}

	var adds []ir.Instr
	for _, in := range fn.Code {
		if in.Op == ir.OpAdd {
			adds = append(adds, in)
		}
	}
	for i := 1; i < len(adds); i++ {
		left := adds[i].Args[0]
		if !left.IsSlot() || left.Slot != adds[i-1].Dest {
			t.Errorf("add %d left operand = %+v, want slot %%%d from previous step",
				i, left, adds[i-1].Dest)
		}
	}

	// Destinations are fresh and increasing.
	for i := 1; i < len(adds); i++ {
		if adds[i].Dest <= adds[i-1].Dest {
			t.Errorf("add %d dest %%%d not above previous %%%d",
				i, adds[i].Dest, adds[i-1].Dest)
		}
	}
}

func TestArithSingleOperand(t *testing.T) {
	// One operand seeds the accumulator and folds zero steps.
	fn := compileOne(t, "(defn f:long [a:long] (return (+ a)))")

	wantCode(t, fn, []string{
		"bind %0 t3",
		"return %0",
	})
}

func TestArithStepTypeIsLong(t *testing.T) {
	// Fold destinations always bind to long, whatever the hint says.
	fn := compileOne(t, "(defn f:int [a:int b:int] (return (+ a b)))")

	long, _ := ir.DefaultTypes().Lookup(ir.TypeLong)
	for _, in := range fn.Code {
		if in.Op == ir.OpBind && in.Dest == 2 && in.Type != long {
			t.Errorf("fold dest bound to type %d, want %d (long)", in.Type, long)
		}
	}
}

func TestArithOperators(t *testing.T) {
	tests := []struct {
		head string
		op   ir.Opcode
	}{
		{"+", ir.OpAdd},
		{"-", ir.OpSub},
		{"*", ir.OpMul},
		{"/", ir.OpDiv},
		{"<<", ir.OpShl},
		{">>", ir.OpShr},
	}

	for _, tt := range tests {
		fn := compileOne(t, "(defn f:long [a:long b:long] (return ("+tt.head+" a b)))")
		if got := countOps(fn.Code, tt.op); got != 1 {
			t.Errorf("%s lowered to %d %s instructions, want 1", tt.head, got, tt.op)
		}
	}
}

func TestComparePair(t *testing.T) {
	// Two operands: one comparison straight into the result, no
	// temporary, no and.
	fn := compileOne(t, "(defn f:boolean [a:long b:long] (return (< a b)))")

	wantCode(t, fn, []string{
		"bind %0 t3",
		"bind %1 t3",
		"bind %2 t6",
		"lt %2 %0 %1",
		"return %2",
	})

	if got := countOps(fn.Code, ir.OpAnd); got != 0 {
		t.Errorf("pairwise comparison emitted %d ands, want 0", got)
	}
}

func TestCompareChain(t *testing.T) {
	// k operands chain into k-1 comparisons and k-2 ands; each interior
	// operand is compiled once and shared between adjacent pairs.
	fn := compileOne(t, `(defn f:boolean [a:long b:long c:long d:long]
		(return (< a b c d)))`)

	if got := countOps(fn.Code, ir.OpLt); got != 3 {
		t.Fatalf("got %d comparisons, want 3:\n%s", got, ir.Disassemble(fn, ir.DefaultTypes()))
	}
	if got := countOps(fn.Code, ir.OpAnd); got != 2 {
		t.Fatalf("got %d ands, want 2", got)
	}

	var cmps []ir.Instr
	for _, in := range fn.Code {
		if in.Op == ir.OpLt {
			cmps = append(cmps, in)
		}
	}
	// Adjacent pairs share the interior operand: (a b), (b c), (c d).
	for i := 1; i < len(cmps); i++ {
		if cmps[i].Args[0].Slot != cmps[i-1].Args[1].Slot {
			t.Errorf("comparison %d left operand %%%d, want shared %%%d",
				i, cmps[i].Args[0].Slot, cmps[i-1].Args[1].Slot)
		}
	}

	// Each and folds the temporary into the running result in place.
	result := cmps[0].Dest
	temp := cmps[1].Dest
	for _, in := range fn.Code {
		if in.Op != ir.OpAnd {
			continue
		}
		if in.Dest != result {
			t.Errorf("and writes %%%d, want result slot %%%d", in.Dest, result)
		}
		if in.Args[0].Slot != result || in.Args[1].Slot != temp {
			t.Errorf("and operands %%%d %%%d, want %%%d %%%d",
				in.Args[0].Slot, in.Args[1].Slot, result, temp)
		}
	}
}

func TestCompareOperators(t *testing.T) {
	tests := []struct {
		head string
		op   ir.Opcode
	}{
		{"=", ir.OpEq},
		{"not=", ir.OpNe},
		{"<", ir.OpLt},
		{"<=", ir.OpLe},
		{">", ir.OpGt},
		{">=", ir.OpGe},
	}

	for _, tt := range tests {
		fn := compileOne(t, "(defn f:boolean [a:long b:long] (return ("+tt.head+" a b)))")
		if got := countOps(fn.Code, tt.op); got != 1 {
			t.Errorf("%s lowered to %d %s instructions, want 1", tt.head, got, tt.op)
		}
	}
}

func TestNestedArithInCompare(t *testing.T) {
	fn := compileOne(t, "(defn f:boolean [a:long] (return (< (+ a 1) 10)))")

	wantCode(t, fn, []string{
		"bind %0 t3",
		"bind %1 t6",
		"bind %2 t3",
		"add %2 %0 (t3 1)",
		"lt %1 %2 (t3 10)",
		"return %1",
	})
}
