package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
)

// Validation errors
var (
	ErrInvalidChunkCategory = NewDomainError(ErrCodeValidation, "invalid chunk category")
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
)

// Not found errors
var (
	ErrChunkNotFound   = NewDomainError(ErrCodeNotFound, "knowledge chunk not found")
	ErrProjectNotFound = NewDomainError(ErrCodeNotFound, "project not found")
	ErrSkillNotFound   = NewDomainError(ErrCodeNotFound, "skill not found")
	ErrMessageNotFound = NewDomainError(ErrCodeNotFound, "contact message not found")
)

// Already exists errors
var (
	ErrProjectAlreadyExists = NewDomainError(ErrCodeAlreadyExists, "project with this slug already exists")
)

// Ingestion errors
var (
	// ErrEmptySourceDocument is fatal to a bulk ingestion: clearing the
	// store only happens after the source document loads and parses.
	ErrEmptySourceDocument = NewDomainError(ErrCodeInvalidOperation, "source document is empty or unreadable")
)

// Authorization errors
var (
	ErrInvalidAdminToken = NewDomainError(ErrCodeUnauthorized, "invalid admin token")
)
