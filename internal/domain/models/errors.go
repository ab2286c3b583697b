package models

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindConflict    ErrorKind = "conflict"
	KindUpload      ErrorKind = "upload"
	KindPersistence ErrorKind = "persistence"
	KindNotFound    ErrorKind = "not_found"
)

// DomainError is the error the photo and spot workflows return to the transport
// layer. Message is safe to show to the caller.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(message string, err error) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message, Err: err}
}

func NewUploadError(err error) *DomainError {
	return &DomainError{Kind: KindUpload, Message: err.Error(), Err: err}
}

func NewPersistenceError(err error) *DomainError {
	return &DomainError{Kind: KindPersistence, Message: err.Error(), Err: err}
}

func NewNotFoundError(message string, err error) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message, Err: err}
}

// KindOf returns the kind of the first DomainError in err's chain, or an empty
// kind when there is none.
func KindOf(err error) ErrorKind {
	var pe *DomainError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
