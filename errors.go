package uploadkit

import (
	"errors"
	"fmt"
)

// Common storage errors
var (
	ErrNotExist    = errors.New("file does not exist")
	ErrExist       = errors.New("file already exists")
	ErrNotAllowed  = errors.New("operation not allowed")
	ErrIsDir       = errors.New("is a directory")
	ErrNotDir      = errors.New("not a directory")
	ErrInvalidSize = errors.New("storage size limit exceeded")
	ErrNoStorage   = errors.New("no storage configured")
	ErrNoHandle    = errors.New("file has no temporary handle")
)

// PathError records an error and the operation and file path that caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// IsNotExist reports whether an error indicates that a file or directory
// does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsPermission reports whether an error indicates a rejected path
func IsPermission(err error) bool {
	return errors.Is(err, ErrNotAllowed)
}

// IsExist reports whether an error indicates that a file already exists
func IsExist(err error) bool {
	return errors.Is(err, ErrExist)
}

// ErrorCode identifies a single upload failure. Transport codes share their
// numeric values with the classic multipart upload error table; filter codes
// start at 100.
type ErrorCode int

const (
	ErrOK        ErrorCode = 0
	ErrIniSize   ErrorCode = 1 // exceeds the server-side size limit
	ErrFormSize  ErrorCode = 2 // exceeds the form-declared size limit
	ErrPartial   ErrorCode = 3
	ErrNoFile    ErrorCode = 4
	ErrNoTmpDir  ErrorCode = 6
	ErrCantWrite ErrorCode = 7
	ErrExtension ErrorCode = 8 // upload stopped by a server extension

	ErrExtensionFilter ErrorCode = 100
	ErrCategoryFilter  ErrorCode = 101
	ErrSizeFilter      ErrorCode = 102
	ErrCustom          ErrorCode = 200
)

var defaultMessages = map[ErrorCode]string{
	ErrOK:              "There is no error, the file uploaded with success",
	ErrIniSize:         "The uploaded file exceeds the maximum upload size allowed by the server",
	ErrFormSize:        "The uploaded file exceeds the MAX_FILE_SIZE directive that was specified in the HTML form",
	ErrPartial:         "The uploaded file was only partially uploaded",
	ErrNoFile:          "No file was uploaded",
	ErrNoTmpDir:        "Missing a temporary folder",
	ErrCantWrite:       "Failed to write file to disk",
	ErrExtension:       "A server extension stopped the file upload",
	ErrExtensionFilter: "File type not allowed",
	ErrCategoryFilter:  "File not allowed",
	ErrSizeFilter:      "File size not allowed",
}

const unknownErrorMessage = "Unknown File Error"

// DefaultMessage returns the built-in message for code.
func DefaultMessage(code ErrorCode) string {
	if msg, ok := defaultMessages[code]; ok {
		return msg
	}
	return unknownErrorMessage
}

// IsTransport reports whether code came from the upload transport rather
// than from a policy filter.
func (c ErrorCode) IsTransport() bool {
	return c > ErrOK && c < ErrExtensionFilter
}

// ValidationErrorType represents different types of validation errors
type ValidationErrorType string

const (
	ErrorTypeTransport ValidationErrorType = "transport"
	ErrorTypeSize      ValidationErrorType = "size"
	ErrorTypeExtension ValidationErrorType = "extension"
	ErrorTypeCategory  ValidationErrorType = "category"
	ErrorTypeCustom    ValidationErrorType = "custom"
)

// ValidationError is a single failure recorded while validating a file.
type ValidationError struct {
	// Type categorizes the failure (transport, size, extension, category, custom).
	Type ValidationErrorType

	// Code is the numeric upload error code.
	Code ErrorCode

	// Message is the resolved human-readable message.
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation error: %s", e.Type, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(errType ValidationErrorType, code ErrorCode, message string) *ValidationError {
	return &ValidationError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsErrorOfType checks if an error is a ValidationError of the specified type
func IsErrorOfType(err error, errType ValidationErrorType) bool {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Type == errType
	}
	return false
}

// GetErrorType returns the type of a ValidationError, or empty string if not a ValidationError
func GetErrorType(err error) ValidationErrorType {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Type
	}
	return ""
}

// GetErrorCode returns the code of a ValidationError, or ErrOK if not a ValidationError
func GetErrorCode(err error) ErrorCode {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Code
	}
	return ErrOK
}
