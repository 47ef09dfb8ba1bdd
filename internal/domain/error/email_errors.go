package error

import "errors"

// Notification delivery errors.
var (
	ErrEmailQueueFailed      = errors.New("failed to queue email")
	ErrInvalidTemplate       = errors.New("invalid email template")
	ErrPermanentEmailFailure = errors.New("permanent email failure")
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// EmailErrorCode identifies a notification failure. Format: EMAIL-XXYYYY.
type EmailErrorCode string

const (
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"

	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020001"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020002"

	ErrCodeInvalidTemplate EmailErrorCode = "EMAIL-030001"
)

var emailSentinels = map[EmailErrorCode]error{
	ErrCodeEmailQueueFailed:      ErrEmailQueueFailed,
	ErrCodePermanentEmailFailure: ErrPermanentEmailFailure,
	ErrCodeTemporaryEmailFailure: ErrTemporaryEmailFailure,
	ErrCodeInvalidTemplate:       ErrInvalidTemplate,
}

// EmailError is a coded notification failure wrapping the provider or store error.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel registered for the error's code.
func (e *EmailError) Is(target error) bool {
	s, ok := emailSentinels[e.Code]
	return ok && s == target
}

// IsPermanent reports whether retrying cannot succeed.
func (e *EmailError) IsPermanent() bool {
	return e.Code == ErrCodePermanentEmailFailure || e.Code == ErrCodeInvalidTemplate
}

// NewEmailError creates a new EmailError.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}
