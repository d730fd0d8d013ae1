package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

// ErrInvalidState covers claim attempts on rows that are not in the
// required status (claiming an incomplete quest, re-claiming a claimed one).
func ErrInvalidState(msg string) *AppError {
	return &AppError{Code: "INVALID_STATE", Message: msg, Status: 409}
}

func ErrAlreadyClaimed(resource string) *AppError {
	return &AppError{Code: "ALREADY_CLAIMED", Message: fmt.Sprintf("%s already claimed", resource), Status: 409}
}

// ErrOutOfWindow rejects calendar claims for any day other than today.
func ErrOutOfWindow(msg string) *AppError {
	return &AppError{Code: "OUT_OF_WINDOW", Message: msg, Status: 422}
}

// ErrConfiguration signals bad admin catalog data (zero-weight chest,
// reward-less quest). Not a user error and never retried.
func ErrConfiguration(msg string) *AppError {
	return &AppError{Code: "CONFIGURATION_ERROR", Message: msg, Status: 500}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
