package ir

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Canonical CBOR encoding so identical functions serialize to identical
// bytes regardless of encoder state.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("ir: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalFunction serializes a Function to CBOR bytes.
func MarshalFunction(fn *Function) ([]byte, error) {
	return cborEncMode.Marshal(fn)
}

// UnmarshalFunction deserializes a Function from CBOR bytes.
func UnmarshalFunction(data []byte) (*Function, error) {
	var fn Function
	if err := cbor.Unmarshal(data, &fn); err != nil {
		return nil, fmt.Errorf("ir: unmarshal function: %w", err)
	}
	return &fn, nil
}
