package errors

import (
	"errors"
	"fmt"
)

// fields pairs context keys with values: key, value, key, value...
type fields []any

func newError(errorType ErrorType, code, message string, cause error, kv fields) *AppError {
	ctx := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			ctx[key] = kv[i+1]
		}
	}
	return &AppError{Type: errorType, Message: message, Code: code, Cause: cause, Context: ctx}
}

// NewValidationError rejects a command whose input failed validation. The
// store is left exactly as it was.
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, "VALIDATION_FAILED", message, cause, nil)
}

// NewDuplicateIDError rejects an add whose identifier is already taken
func NewDuplicateIDError(resource string, identifier string) *AppError {
	return newError(ErrorTypeDuplicateID, "DUPLICATE_ID",
		fmt.Sprintf("%s already exists: %s", resource, identifier), nil,
		fields{"resource", resource, "identifier", identifier})
}

// NewIndexError rejects a positional access outside [0, length)
func NewIndexError(resource string, index int, length int) *AppError {
	return newError(ErrorTypeIndex, "INDEX_OUT_OF_RANGE",
		fmt.Sprintf("%s index %d out of range [0,%d)", resource, index, length), nil,
		fields{"resource", resource, "index", index, "length", length})
}

// NewBoundaryError wraps a failure reported by the auth, company or upload
// backend. errors.Is and errors.As still reach the cause.
func NewBoundaryError(operation string, cause error) *AppError {
	return newError(ErrorTypeBoundary, "BOUNDARY_ERROR",
		operation+" failed", cause, fields{"operation", operation})
}

// NewNotFoundError reports a missing resource
func NewNotFoundError(resource string, identifier string) *AppError {
	return newError(ErrorTypeNotFound, "NOT_FOUND",
		fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		fields{"resource", resource, "identifier", identifier})
}

// NewDatabaseError wraps a local persistence failure
func NewDatabaseError(operation string, cause error) *AppError {
	return newError(ErrorTypeDatabase, "DATABASE_ERROR",
		"database operation failed: "+operation, cause, fields{"operation", operation})
}

// NewInvalidInputError reports a command line argument that could not be parsed
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, "INVALID_INPUT",
		fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		fields{"field", field, "value", value, "reason", reason})
}

// NewTimeoutError reports a backend call that outlived its deadline
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newError(ErrorTypeTimeout, "TIMEOUT",
		"operation timed out: "+operation, nil,
		fields{"operation", operation, "timeout", timeout})
}

// NewUnauthorizedError reports a missing or rejected credential
func NewUnauthorizedError(operation string, cause error) *AppError {
	return newError(ErrorTypeUnauthorized, "UNAUTHORIZED",
		"not authorized to "+operation, cause, fields{"operation", operation})
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType reports whether err's chain holds an AppError of errorType
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// userFacing lists the types whose message can be shown to the user as is
var userFacing = map[ErrorType]bool{
	ErrorTypeValidation:   true,
	ErrorTypeDuplicateID:  true,
	ErrorTypeIndex:        true,
	ErrorTypeNotFound:     true,
	ErrorTypeInvalidInput: true,
}

// GetUserMessage returns the text shown in the transient notification
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if userFacing[appErr.Type] {
		return appErr.Message
	}

	switch appErr.Type {
	case ErrorTypeBoundary:
		if appErr.Cause == nil {
			return appErr.Message
		}
		return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
	case ErrorTypeDatabase:
		return "A database error occurred. Please try again."
	case ErrorTypeTimeout:
		return "The operation timed out. Please try again."
	case ErrorTypeUnauthorized:
		return "Your session has expired. Please log in again."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// GetErrorCode returns the machine readable code of err
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError is false for mistakes the user can fix themselves
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	return !userFacing[appErr.Type] && appErr.Type != ErrorTypeUnauthorized
}
