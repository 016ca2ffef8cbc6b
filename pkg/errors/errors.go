package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Precondition errors, reported before any mutation
	ErrSourceMissing ErrorCode = "SOURCE_MISSING"
	ErrDestMissing   ErrorCode = "DEST_MISSING"
	ErrNotDirectory  ErrorCode = "NOT_DIRECTORY"
	ErrNotFramework  ErrorCode = "NOT_FRAMEWORK"

	// Errors raised while walking or linking
	ErrWalk          ErrorCode = "WALK"
	ErrVanished      ErrorCode = "VANISHED"
	ErrBackupFailed  ErrorCode = "BACKUP_FAILED"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrSymlinkRemove ErrorCode = "SYMLINK_REMOVE"
	ErrFileExists    ErrorCode = "FILE_EXISTS"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrRestoreFailed ErrorCode = "RESTORE_FAILED"

	// Manifest errors
	ErrManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"
	ErrManifestInvalid  ErrorCode = "MANIFEST_INVALID"
	ErrManifestMismatch ErrorCode = "MANIFEST_MISMATCH"
)

// ModlinkError represents a structured error with code and details
type ModlinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModlinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ModlinkError) Unwrap() error {
	return e.Wrapped
}

// Is matches any ModlinkError carrying the same code
func (e *ModlinkError) Is(target error) bool {
	var targetErr *ModlinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ModlinkError with the given code and message
func New(code ErrorCode, message string) *ModlinkError {
	return &ModlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ModlinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModlinkError {
	return &ModlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ModlinkError
func Wrap(err error, code ErrorCode, message string) *ModlinkError {
	if err == nil {
		return nil
	}
	return &ModlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModlinkError {
	if err == nil {
		return nil
	}
	return &ModlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ModlinkError) WithDetail(key string, value interface{}) *ModlinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var modErr *ModlinkError
	if errors.As(err, &modErr) {
		return modErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ModlinkError
func GetErrorCode(err error) ErrorCode {
	var modErr *ModlinkError
	if errors.As(err, &modErr) {
		return modErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ModlinkError
func GetErrorDetails(err error) map[string]interface{} {
	var modErr *ModlinkError
	if errors.As(err, &modErr) {
		return modErr.Details
	}
	return nil
}
