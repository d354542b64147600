package entity

import "errors"

// Domain error codes.
const (
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeInvalidConfig           = "INVALID_CONFIG"
)

// DomainError represents a domain-specific error.
type DomainError struct {
	message string
	code    string
}

// NewDomainError creates a new domain error.
func NewDomainError(message, code string) *DomainError {
	return &DomainError{
		message: message,
		code:    code,
	}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.message
}

// Code returns the error code.
func (e *DomainError) Code() string {
	return e.code
}

// Message returns the error message.
func (e *DomainError) Message() string {
	return e.message
}

// IsDomainErrorWithCode reports whether err is a DomainError carrying code.
func IsDomainErrorWithCode(err error, code string) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.code == code
}
