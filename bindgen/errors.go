package bindgen

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrUnknownABIType indicates a Solidity type outside the supported table.
	ErrUnknownABIType = errors.New("bindgen: unknown ABI type")

	// ErrUnsupportedMember indicates an ABI member kind that has no binding.
	ErrUnsupportedMember = errors.New("bindgen: unsupported ABI member")
)

// UnknownTypeError is returned by MapType for a type it cannot map.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("bindgen: unknown ABI type %q", e.Type)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownABIType
}

// ClassificationError is returned for ABI members that are neither a
// constructor, a function nor an event.
type ClassificationError struct {
	Name string
	Kind string
}

func (e *ClassificationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("bindgen: unsupported ABI member of type %q", e.Kind)
	}
	return fmt.Sprintf("bindgen: unsupported ABI member %q of type %q", e.Name, e.Kind)
}

func (e *ClassificationError) Unwrap() error {
	return ErrUnsupportedMember
}

// SynthesisError places a generation failure in its contract and member.
type SynthesisError struct {
	Contract string
	Member   string
	Err      error
}

func (e *SynthesisError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("bindgen: contract %s: %v", e.Contract, e.Err)
	}
	return fmt.Sprintf("bindgen: contract %s, member %s: %v", e.Contract, e.Member, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}
