package compiler

import (
	"strings"
	"testing"
)

func TestReadSimpleList(t *testing.T) {
	forms, err := ReadString("(+ 1 2)")
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("got %d forms, want 1", len(forms))
	}

	list, ok := forms[0].(*ListForm)
	if !ok {
		t.Fatalf("form is %T, want *ListForm", forms[0])
	}
	if list.Head() != "+" {
		t.Errorf("Head() = %q, want %q", list.Head(), "+")
	}
	if len(list.Args()) != 2 {
		t.Errorf("got %d args, want 2", len(list.Args()))
	}
}

func TestReadNestedForms(t *testing.T) {
	forms, err := ReadString("(def x:int (+ 1 (* 2 3)))")
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}

	list := forms[0].(*ListForm)
	if list.Head() != "def" {
		t.Fatalf("Head() = %q, want %q", list.Head(), "def")
	}

	inner, ok := list.Args()[1].(*ListForm)
	if !ok {
		t.Fatalf("second arg is %T, want *ListForm", list.Args()[1])
	}
	if inner.Head() != "+" {
		t.Errorf("inner Head() = %q, want %q", inner.Head(), "+")
	}

	nested, ok := inner.Args()[1].(*ListForm)
	if !ok {
		t.Fatalf("nested arg is %T, want *ListForm", inner.Args()[1])
	}
	if nested.Head() != "*" {
		t.Errorf("nested Head() = %q, want %q", nested.Head(), "*")
	}
}

func TestReadVector(t *testing.T) {
	forms, err := ReadString("(defn f:int [a:int b:long] (return a))")
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}

	list := forms[0].(*ListForm)
	vec, ok := list.Args()[1].(*VecForm)
	if !ok {
		t.Fatalf("param form is %T, want *VecForm", list.Args()[1])
	}
	if len(vec.Items) != 2 {
		t.Fatalf("got %d params, want 2", len(vec.Items))
	}

	sym := vec.Items[0].(*SymbolForm)
	name, typ := SplitTyped(sym.Name)
	if name != "a" || typ != "int" {
		t.Errorf("SplitTyped(%q) = %q, %q, want a, int", sym.Name, name, typ)
	}
}

func TestReadLiterals(t *testing.T) {
	forms, err := ReadString(`42 3.14 "hello" true false sym`)
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	if len(forms) != 6 {
		t.Fatalf("got %d forms, want 6", len(forms))
	}

	num := forms[0].(*NumberForm)
	if num.Text != "42" || num.IsFloat {
		t.Errorf("int literal = %q (float=%v), want 42 (float=false)", num.Text, num.IsFloat)
	}

	flt := forms[1].(*NumberForm)
	if flt.Text != "3.14" || !flt.IsFloat {
		t.Errorf("float literal = %q (float=%v), want 3.14 (float=true)", flt.Text, flt.IsFloat)
	}

	str := forms[2].(*StringForm)
	if str.Value != "hello" {
		t.Errorf("string literal = %q, want %q", str.Value, "hello")
	}

	if b := forms[3].(*BoolForm); !b.Value {
		t.Error("true literal parsed as false")
	}
	if b := forms[4].(*BoolForm); b.Value {
		t.Error("false literal parsed as true")
	}

	sym := forms[5].(*SymbolForm)
	if sym.Name != "sym" {
		t.Errorf("symbol = %q, want %q", sym.Name, "sym")
	}
}

func TestReadHexIsNotFloat(t *testing.T) {
	forms, err := ReadString("0x1e")
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	num := forms[0].(*NumberForm)
	if num.IsFloat {
		t.Errorf("0x1e parsed as float")
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		input string
		match string
	}{
		{"(+ 1 2", "missing"},
		{")", "unexpected"},
		{"]", "unexpected"},
		{`"unterminated`, "unterminated"},
	}

	for _, tt := range tests {
		_, err := ReadString(tt.input)
		if err == nil {
			t.Errorf("ReadString(%q) succeeded, want error", tt.input)
			continue
		}
		if !strings.Contains(err.Error(), tt.match) {
			t.Errorf("ReadString(%q) error = %q, want substring %q", tt.input, err.Error(), tt.match)
		}
	}
}

func TestReadMultipleTopLevel(t *testing.T) {
	source := `
; a couple of definitions
(deftype handle)
(defn main:int [] (return 0))
`
	forms, err := ReadString(source)
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("got %d forms, want 2", len(forms))
	}
	if forms[0].(*ListForm).Head() != "deftype" {
		t.Errorf("first form head = %q, want deftype", forms[0].(*ListForm).Head())
	}
	if forms[1].(*ListForm).Head() != "defn" {
		t.Errorf("second form head = %q, want defn", forms[1].(*ListForm).Head())
	}
}

func TestFormString(t *testing.T) {
	forms, err := ReadString(`(def x:int (+ 1 2))`)
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	got := forms[0].String()
	want := "(def x:int (+ 1 2))"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
