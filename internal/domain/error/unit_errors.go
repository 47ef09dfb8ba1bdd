package error

import (
	"errors"
	"fmt"
)

// Unit conversion errors.
var (
	// ErrUnitUndefined is returned when a unit string cannot be resolved.
	ErrUnitUndefined = errors.New("unit not defined")

	// ErrIncompatibleDimensions is returned when two units measure different quantities.
	ErrIncompatibleDimensions = errors.New("incompatible unit dimensions")
)

// UnitErrorCode defines error codes for unit conversion errors.
// Format: UNT-XXYYYY where XX is category and YYYY is specific error.
type UnitErrorCode string

const (
	ErrCodeUnitUndefined          UnitErrorCode = "UNT-010001"
	ErrCodeIncompatibleDimensions UnitErrorCode = "UNT-010002"
)

// UnitUndefinedError reports a unit string the conversion table does not know.
type UnitUndefinedError struct {
	Unit string
}

// Error implements the error interface.
func (e *UnitUndefinedError) Error() string {
	return fmt.Sprintf("unit not defined: %q", e.Unit)
}

// Is matches ErrUnitUndefined.
func (e *UnitUndefinedError) Is(target error) bool {
	return target == ErrUnitUndefined
}

// Code returns the error code.
func (e *UnitUndefinedError) Code() UnitErrorCode {
	return ErrCodeUnitUndefined
}

// NewUnitUndefinedError creates a new UnitUndefinedError.
func NewUnitUndefinedError(unit string) *UnitUndefinedError {
	return &UnitUndefinedError{Unit: unit}
}

// IncompatibleDimensionsError reports a conversion between units of different dimensions.
type IncompatibleDimensionsError struct {
	FromUnit string
	ToUnit   string
}

// Error implements the error interface.
func (e *IncompatibleDimensionsError) Error() string {
	return fmt.Sprintf("cannot convert from %q to %q", e.FromUnit, e.ToUnit)
}

// Is matches ErrIncompatibleDimensions.
func (e *IncompatibleDimensionsError) Is(target error) bool {
	return target == ErrIncompatibleDimensions
}

// Code returns the error code.
func (e *IncompatibleDimensionsError) Code() UnitErrorCode {
	return ErrCodeIncompatibleDimensions
}

// NewIncompatibleDimensionsError creates a new IncompatibleDimensionsError.
func NewIncompatibleDimensionsError(from, to string) *IncompatibleDimensionsError {
	return &IncompatibleDimensionsError{FromUnit: from, ToUnit: to}
}
