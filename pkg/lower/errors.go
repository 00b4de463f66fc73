package lower

import (
	"errors"
	"fmt"

	"github.com/cinderlang/cinder/compiler"
)

// Lowering error kinds. Every error returned by this package wraps one
// of these sentinels so callers can classify failures with errors.Is.
var (
	// ErrUnboundName: an identifier was used before being declared.
	ErrUnboundName = errors.New("unbound name")

	// ErrUnknownType: a type name was never registered.
	ErrUnknownType = errors.New("unknown type")

	// ErrTypeMismatch: an explicit type assertion does not match a
	// constant's carried type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrArity: wrong operand count for an operator.
	ErrArity = errors.New("wrong number of arguments")

	// ErrUnsupportedForm: a form shape the compiler does not recognize.
	ErrUnsupportedForm = errors.New("unsupported form")
)

// formError wraps a sentinel with a description and the offending form.
func formError(kind error, form compiler.Form, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if form != nil {
		return fmt.Errorf("%w: %s in %s", kind, msg, form)
	}
	return fmt.Errorf("%w: %s", kind, msg)
}
