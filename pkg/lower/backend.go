package lower

import (
	"github.com/cinderlang/cinder/pkg/ir"
)

// Backend is the external assembler/codegen collaborator. It receives
// primitive-type declarations at setup time and one instruction list per
// function, and independently performs its own type-checking, register
// allocation, and final code generation. The frontend never reads its
// output; the relationship is fire-and-forget per function.
type Backend interface {
	// DeclareType announces a registered type before any function that
	// references it is emitted.
	DeclareType(name string, id ir.TypeID) error

	// Emit hands one compiled function to the backend as an atomic unit.
	Emit(fn *ir.Function) error
}

// DeclareTypes declares every type in the table to the backend, in
// registration order.
func DeclareTypes(b Backend, types *ir.TypeTable) error {
	for id, name := range types.Names() {
		if err := b.DeclareType(name, ir.TypeID(id)); err != nil {
			return err
		}
	}
	return nil
}

// Recorder is a Backend that collects everything it is handed. Used by
// tests and by the disassembly path of the CLI.
type Recorder struct {
	Types     map[string]ir.TypeID
	Functions []*ir.Function
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Types: make(map[string]ir.TypeID)}
}

// DeclareType records a type declaration.
func (r *Recorder) DeclareType(name string, id ir.TypeID) error {
	r.Types[name] = id
	return nil
}

// Emit records a compiled function.
func (r *Recorder) Emit(fn *ir.Function) error {
	r.Functions = append(r.Functions, fn)
	return nil
}

// Function returns the recorded function with the given link name, or
// nil if none was emitted.
func (r *Recorder) Function(linkName string) *ir.Function {
	for _, fn := range r.Functions {
		if fn.LinkName == linkName {
			return fn
		}
	}
	return nil
}
