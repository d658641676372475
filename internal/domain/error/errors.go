package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidBrandName = 4001
	CodeInvalidPoints    = 4002
	CodeInvalidID        = 4003
	CodeInvalidGameScore = 4004
	CodeInvalidUserData  = 4005
	CodeInvalidImageSize = 4006
	CodeInvalidRequest   = 4007
	CodeUserNotFound     = 4040
	CodeBrandNotFound    = 4041
	CodeCodeNotFound     = 4042
	CodeCodeInactive     = 4043
	CodeDuplicateScan    = 4090
	CodeDuplicateUser    = 4091
	CodeConcurrentUpdate = 4092
	CodePointsOverflow   = 4093

	// 5xxx - Server errors
	CodeInternalServer  = 5000
	CodeTokenGeneration = 5001
	CodeDatabaseFailure = 5002
)

// Base error types
var (
	// ErrBrandNotFound is returned when the requested brand doesn't exist
	ErrBrandNotFound = errors.New("brand not found")

	// ErrCodeNotFound is returned when no code matches the given token or id
	ErrCodeNotFound = errors.New("QR code not found or inactive")

	// ErrCodeInactive is returned when a code exists but has been deactivated
	ErrCodeInactive = errors.New("QR code is inactive")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateScan is returned when a user already completed a game for a code
	ErrDuplicateScan = errors.New("code already scanned by this user")

	// ErrDuplicateUser is returned when the username or email is taken
	ErrDuplicateUser = errors.New("username or email already registered")

	// ErrDuplicateCodeToken is returned when a generated token collides with a stored one
	ErrDuplicateCodeToken = errors.New("code token already in use")

	// ErrConcurrentUpdate is returned when the store aborts a transaction due to a conflicting write
	ErrConcurrentUpdate = errors.New("concurrent update conflict")

	// ErrPointsOverflow is returned when crediting would push a user's total past the supported maximum
	ErrPointsOverflow = errors.New("total points would exceed the supported maximum")

	ErrInvalidBrandName   = errors.New("brand name cannot be empty")
	ErrInvalidPointsValue = errors.New("points value must be between 0 and the supported maximum")
	ErrInvalidGameScore   = errors.New("game score cannot be negative")
	ErrInvalidUserData    = errors.New("username and a valid email are required")
	ErrInvalidID          = errors.New("ID must be positive")
	ErrInvalidImageSize   = errors.New("invalid image size")
	ErrNegativePoints     = errors.New("total points cannot be negative")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrTokenGenerationFailed is returned when no unused token was found within the attempt budget
	ErrTokenGenerationFailed = errors.New("could not generate a unique code token")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	// Inactive must be checked first since it also matches ErrCodeNotFound.
	case errors.Is(err, ErrCodeInactive):
		return CodeCodeInactive
	case errors.Is(err, ErrCodeNotFound):
		return CodeCodeNotFound
	case errors.Is(err, ErrBrandNotFound):
		return CodeBrandNotFound
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrDuplicateScan):
		return CodeDuplicateScan
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrConcurrentUpdate), errors.Is(err, ErrDuplicateCodeToken):
		return CodeConcurrentUpdate
	case errors.Is(err, ErrPointsOverflow):
		return CodePointsOverflow
	case errors.Is(err, ErrInvalidBrandName):
		return CodeInvalidBrandName
	case errors.Is(err, ErrInvalidPointsValue), errors.Is(err, ErrNegativePoints):
		return CodeInvalidPoints
	case errors.Is(err, ErrInvalidID):
		return CodeInvalidID
	case errors.Is(err, ErrInvalidGameScore):
		return CodeInvalidGameScore
	case errors.Is(err, ErrInvalidUserData):
		return CodeInvalidUserData
	case errors.Is(err, ErrInvalidImageSize):
		return CodeInvalidImageSize
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrTokenGenerationFailed):
		return CodeTokenGeneration
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseFailure
	default:
		return CodeInternalServer
	}
}

// ScanError represents a failure while registering a scan or completing a game
type ScanError struct {
	UserID uint64
	CodeID uint64
	Token  string
	Reason string
	Err    error
}

// Error implements the error interface for ScanError
func (e *ScanError) Error() string {
	return fmt.Sprintf("scan failed for user %d (code: %d, token: %q): %s - %v",
		e.UserID, e.CodeID, e.Token, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *ScanError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ScanError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "scan_error",
		"user_id":    e.UserID,
		"code_id":    e.CodeID,
		"token":      e.Token,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewScanError creates a detailed scan error
func NewScanError(userID, codeID uint64, token, reason string, err error) error {
	return &ScanError{
		UserID: userID,
		CodeID: codeID,
		Token:  token,
		Reason: reason,
		Err:    err,
	}
}

// DuplicateScanError provides detailed information about a repeated game completion
type DuplicateScanError struct {
	UserID uint64
	CodeID uint64
}

// Error implements the error interface
func (e *DuplicateScanError) Error() string {
	return fmt.Sprintf("duplicate scan detected: code %d already scanned by user %d", e.CodeID, e.UserID)
}

// Is checks if the target error is an ErrDuplicateScan
func (e *DuplicateScanError) Is(target error) bool {
	return target == ErrDuplicateScan
}

// LogFields returns a map of fields for structured logging
func (e *DuplicateScanError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "duplicate_scan",
		"user_id":    e.UserID,
		"code_id":    e.CodeID,
		"error_code": CodeDuplicateScan,
	}
}

// NewDuplicateScanError creates a new detailed duplicate scan error
func NewDuplicateScanError(userID, codeID uint64) error {
	return &DuplicateScanError{UserID: userID, CodeID: codeID}
}

// CodeInactiveError is returned when a scan targets a deactivated code.
// It matches both ErrCodeInactive and ErrCodeNotFound.
type CodeInactiveError struct {
	CodeID uint64
	Token  string
}

// Error implements the error interface
func (e *CodeInactiveError) Error() string {
	return fmt.Sprintf("code %d (token %q) is inactive", e.CodeID, e.Token)
}

// Is checks if the target error is ErrCodeInactive or ErrCodeNotFound
func (e *CodeInactiveError) Is(target error) bool {
	return target == ErrCodeInactive || target == ErrCodeNotFound
}

// LogFields returns a map of fields for structured logging
func (e *CodeInactiveError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "code_inactive",
		"code_id":    e.CodeID,
		"token":      e.Token,
		"error_code": CodeCodeInactive,
	}
}

// NewCodeInactiveError creates a new detailed inactive code error
func NewCodeInactiveError(codeID uint64, token string) error {
	return &CodeInactiveError{CodeID: codeID, Token: token}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBrandNotFound) ||
		errors.Is(err, ErrCodeNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsConflictError checks if the error signals a uniqueness or write conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateScan) ||
		errors.Is(err, ErrDuplicateUser) ||
		errors.Is(err, ErrDuplicateCodeToken) ||
		errors.Is(err, ErrConcurrentUpdate) ||
		errors.Is(err, ErrPointsOverflow)
}

// IsValidationError checks if the error was caused by bad caller input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidBrandName) ||
		errors.Is(err, ErrInvalidPointsValue) ||
		errors.Is(err, ErrNegativePoints) ||
		errors.Is(err, ErrInvalidGameScore) ||
		errors.Is(err, ErrInvalidUserData) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidImageSize) ||
		errors.Is(err, ErrInvalidRequest)
}
