package ir

// Function is the atomic unit handed to the backend: a link-name and
// parameter-count header followed by the lowered instruction stream.
// The first ParamCount bind instructions declare the parameter slots in
// declaration order.
type Function struct {
	LinkName   string  `cbor:"link_name"`
	ParamCount int     `cbor:"param_count"`
	Code       []Instr `cbor:"code"`
}
