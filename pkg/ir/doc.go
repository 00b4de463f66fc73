// Package ir defines the flat, typed, register-machine intermediate
// representation emitted by the Cinder frontend and consumed by an
// external assembler/codegen backend.
//
// The representation is deliberately simple:
//
//   - Instr: one opcode plus typed operands. An operand is either a slot
//     reference (a virtual storage location, dense non-negative index) or
//     an inline typed constant (a type id plus verbatim literal text).
//
//   - Function: the atomic unit handed to a backend: a link-name and
//     parameter-count header followed by a strictly linear instruction
//     stream. Labels partition the stream for control flow; there is no
//     nesting.
//
//   - TypeTable: the append-only name↔id registry for declared types.
//     Primitives are installed once at setup; backend-specific extras are
//     appended before any function is compiled.
//
// Functions serialize to canonical CBOR (see wire.go) so that identical
// code produces identical bytes, which the artifact store relies on for
// content hashing. Disassemble renders the same stream as text for
// debugging and golden tests.
//
// The package performs no checking of its own: type-checking, register
// allocation, and final code generation belong to the backend.
package ir
