package units

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompatible is returned when two quantities have dimensionally
	// incompatible units for the requested operation.
	ErrIncompatible = errors.New("incompatible units")

	// ErrNonPositive is returned when a linear quantity that is zero or
	// negative is converted to a magnitude.
	ErrNonPositive = errors.New("non-positive value has no magnitude")

	// ErrOutOfRange is returned when a value does not fit the requested
	// integer representation.
	ErrOutOfRange = errors.New("value out of int64 range")
)

// UnitError describes a failed quantity operation.
type UnitError struct {
	Op   string // "add", "subtract", "multiply", "divide", "convert", "int64"
	From Unit
	To   Unit
	Err  error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("units: %s %q and %q: %v", e.Op, e.From, e.To, e.Err)
}

func (e *UnitError) Unwrap() error { return e.Err }

func incompatible(op string, from, to Unit) error {
	return &UnitError{Op: op, From: from, To: to, Err: ErrIncompatible}
}
