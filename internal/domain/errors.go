package domain

import "fmt"

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Account linking errors
	CodeNotLinked          ErrorCode = "NOT_LINKED"
	CodeLinkFailed         ErrorCode = "LINK_FAILED"
	CodeIdentityUnresolved ErrorCode = "IDENTITY_UNRESOLVED"
	CodeTooManyAttempts    ErrorCode = "TOO_MANY_ATTEMPTS"
	CodeStorage            ErrorCode = "STORAGE_ERROR"

	// LMS errors
	CodeUpstream ErrorCode = "UPSTREAM_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"details,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a detail visible to the API caller.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewNotLinkedError() *DomainError {
	return NewError(CodeNotLinked, "Moodle account not linked for this user.", nil)
}

func NewLinkFailedError(cause error) *DomainError {
	return NewError(CodeLinkFailed, "Failed to obtain Moodle token. Please check Moodle credentials and server configuration.", cause)
}

func NewIdentityUnresolvedError(message string, cause error) *DomainError {
	return NewError(CodeIdentityUnresolved, message, cause)
}

func NewTooManyAttemptsError() *DomainError {
	return NewError(CodeTooManyAttempts, "Too many failed link attempts. Please try again later.", nil)
}

func NewStorageError(message string, cause error) *DomainError {
	return NewError(CodeStorage, message, cause)
}

func NewUpstreamError(message string, cause error) *DomainError {
	return NewError(CodeUpstream, message, cause)
}
