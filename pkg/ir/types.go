package ir

// TypeID references a registered type by its dense index.
type TypeID int

// NoType marks the absence of a type operand.
const NoType TypeID = -1

// Names of the primitive types every backend understands.
const (
	TypeFloat   = "float"   // 32-bit float
	TypeDouble  = "double"  // 64-bit float
	TypeInt     = "int"     // 32-bit signed
	TypeLong    = "long"    // 64-bit signed
	TypeUlong   = "ulong"   // 64-bit unsigned
	TypePointer = "pointer" // pointer-sized
	TypeBoolean = "boolean" // 1-bit logical
)

// TypeTable is the append-only name↔id registry for declared types.
// Primitive types are installed once at setup; backend-specific extras
// are appended before any function is compiled. The table is never
// mutated during function compilation.
type TypeTable struct {
	names []string
	ids   map[string]TypeID
}

// NewTypeTable creates an empty type table.
func NewTypeTable() *TypeTable {
	return &TypeTable{
		ids: make(map[string]TypeID),
	}
}

// DefaultTypes returns a table with the primitive types installed.
func DefaultTypes() *TypeTable {
	t := NewTypeTable()
	for _, name := range []string{
		TypeFloat, TypeDouble, TypeInt, TypeLong, TypeUlong, TypePointer, TypeBoolean,
	} {
		t.Register(name)
	}
	return t
}

// Register adds a type name and returns its id. Registering an existing
// name returns the id it already has.
func (t *TypeTable) Register(name string) TypeID {
	if id, ok := t.ids[name]; ok {
		return id
	}
	id := TypeID(len(t.names))
	t.names = append(t.names, name)
	t.ids[name] = id
	return id
}

// Lookup resolves a type name to its id.
func (t *TypeTable) Lookup(name string) (TypeID, bool) {
	id, ok := t.ids[name]
	return id, ok
}

// Name returns the name registered for the given id.
func (t *TypeTable) Name(id TypeID) string {
	if id < 0 || int(id) >= len(t.names) {
		return "?"
	}
	return t.names[id]
}

// Len returns the number of registered types.
func (t *TypeTable) Len() int {
	return len(t.names)
}

// Names returns the registered names in registration order.
func (t *TypeTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}
