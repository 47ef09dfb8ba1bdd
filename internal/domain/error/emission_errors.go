package error

import "errors"

// Emission calculation and reporting errors.
var (
	// ErrInvalidInput is returned when an input value fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFactorNotFound is returned when an emission factor does not exist.
	ErrFactorNotFound = errors.New("emission factor not found")

	// ErrCalculationFailed is returned when an activity value cannot be converted to the factor unit.
	ErrCalculationFailed = errors.New("emission calculation failed")

	// ErrInvalidDateRange is returned when a start date falls after an end date.
	ErrInvalidDateRange = errors.New("start_date must not be after end_date")

	// ErrReportNotFound is returned when a report does not exist for the requesting user.
	ErrReportNotFound = errors.New("report not found")

	// ErrInvalidFactor is returned when a new emission factor violates its invariants.
	ErrInvalidFactor = errors.New("invalid emission factor")

	// ErrPersistenceFailed is returned when the store rejects a read or write.
	ErrPersistenceFailed = errors.New("persistence failed")
)

// EmissionErrorCode defines error codes for emission errors.
// Format: EMI-XXYYYY where XX is category and YYYY is specific error.
type EmissionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidInput      EmissionErrorCode = "EMI-010001"
	ErrCodeFactorNotFound    EmissionErrorCode = "EMI-010002"
	ErrCodeCalculationFailed EmissionErrorCode = "EMI-010003"
	ErrCodeInvalidDateRange  EmissionErrorCode = "EMI-010004"
	ErrCodeReportNotFound    EmissionErrorCode = "EMI-010005"
	ErrCodeInvalidFactor     EmissionErrorCode = "EMI-010006"

	// Internal errors (99XXXX)
	ErrCodePersistenceFailed EmissionErrorCode = "EMI-990001"
)

var sentinelByCode = map[EmissionErrorCode]error{
	ErrCodeInvalidInput:      ErrInvalidInput,
	ErrCodeFactorNotFound:    ErrFactorNotFound,
	ErrCodeCalculationFailed: ErrCalculationFailed,
	ErrCodeInvalidDateRange:  ErrInvalidDateRange,
	ErrCodeReportNotFound:    ErrReportNotFound,
	ErrCodeInvalidFactor:     ErrInvalidFactor,
	ErrCodePersistenceFailed: ErrPersistenceFailed,
}

// EmissionError represents an emission error with code and message.
// Field names the offending input for validation errors.
type EmissionError struct {
	Code    EmissionErrorCode
	Message string
	Field   string
	Err     error
}

// Error implements the error interface.
func (e *EmissionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmissionError) Unwrap() error {
	return e.Err
}

// Is reports whether the error belongs to the category named by target.
// An invalid date range is also an invalid input.
func (e *EmissionError) Is(target error) bool {
	if sentinel, ok := sentinelByCode[e.Code]; ok && sentinel == target {
		return true
	}
	return target == ErrInvalidInput && e.Code == ErrCodeInvalidDateRange
}

// NewEmissionError creates a new EmissionError with the given code and message.
func NewEmissionError(code EmissionErrorCode, message string, err error) *EmissionError {
	return &EmissionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewInvalidInputError creates an InvalidInput error for a named field.
func NewInvalidInputError(field, reason string) *EmissionError {
	return &EmissionError{
		Code:    ErrCodeInvalidInput,
		Message: field + ": " + reason,
		Field:   field,
	}
}

// NewPersistenceError wraps a store failure.
func NewPersistenceError(message string, err error) *EmissionError {
	return NewEmissionError(ErrCodePersistenceFailed, message, err)
}
