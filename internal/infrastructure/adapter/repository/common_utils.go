package repository

import (
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	"gorm.io/gorm"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// uniqueViolations maps index or column names found in driver messages to
// the domain error a violation of that constraint means. Postgres reports
// the index name, SQLite reports table.column.
var uniqueViolations = []struct {
	markers []string
	err     error
}{
	{[]string{"idx_scans_user_code", "scans.user_id"}, errs.ErrDuplicateScan},
	{[]string{"idx_codes_token", "codes.token"}, errs.ErrDuplicateCodeToken},
	{[]string{"idx_users_username", "idx_users_email", "users.username", "users.email"}, errs.ErrDuplicateUser},
}

// ErrorClassifier provides methods to classify database errors
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	if err == nil {
		return ""
	}

	if c.IsDuplicateKeyError(err) {
		return DuplicateKeyError
	}
	if c.IsLockError(err) {
		return LockError
	}
	if c.IsTransientError(err) {
		return TransientError
	}
	if c.IsConnectionError(err) {
		return ConnectionError
	}
	if c.IsConstraintError(err) {
		return ConstraintError
	}

	return ""
}

// MapError converts a driver error into a domain error. notFound is
// returned for gorm.ErrRecordNotFound.
func (c *ErrorClassifier) MapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	switch c.Classify(err) {
	case DuplicateKeyError:
		if domainErr := c.UniqueViolation(err); domainErr != nil {
			return domainErr
		}
		return fmt.Errorf("%w: unexpected unique violation: %s", errs.ErrInternalServer, err.Error())
	case LockError:
		return fmt.Errorf("%w: %s", errs.ErrConcurrentUpdate, err.Error())
	case ConstraintError:
		return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	default:
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
}

// UniqueViolation returns the domain error for a known unique constraint,
// or nil when err is not a recognized violation
func (c *ErrorClassifier) UniqueViolation(err error) error {
	if !c.IsDuplicateKeyError(err) {
		return nil
	}
	msg := err.Error()
	for _, v := range uniqueViolations {
		for _, marker := range v.markers {
			if strings.Contains(msg, marker) {
				return v.err
			}
		}
	}
	return nil
}

// IsDuplicateKeyError checks if the error is a duplicate key error
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint") ||
		strings.Contains(err.Error(), "Duplicate entry")
}

// IsTransientError checks if an error is transient and can be retried
func (c *ErrorClassifier) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "connection reset") ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "timeout") ||
		strings.Contains(err.Error(), "EOF") ||
		strings.Contains(err.Error(), "server closed") ||
		strings.Contains(err.Error(), "broken pipe")
}

// IsLockError checks if the error is due to locking or an aborted serializable transaction
func (c *ErrorClassifier) IsLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "deadlock") ||
		strings.Contains(err.Error(), "lock wait timeout") ||
		strings.Contains(err.Error(), "could not serialize access") ||
		strings.Contains(err.Error(), "serialization failure") ||
		strings.Contains(err.Error(), "database is locked") ||
		strings.Contains(err.Error(), "table is locked") ||
		strings.Contains(err.Error(), "SQLITE_BUSY") ||
		strings.Contains(err.Error(), "SQLITE_LOCKED")
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "connection") ||
		strings.Contains(err.Error(), "dial") ||
		strings.Contains(err.Error(), "network") ||
		c.IsTransientError(err)
}

// IsForeignKeyError checks if the error is a foreign key violation
func (c *ErrorClassifier) IsForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(err.Error(), "foreign key") ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint")
}

// IsConstraintError checks if the error is related to constraint violations
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "constraint") ||
		strings.Contains(err.Error(), "violates") ||
		strings.Contains(err.Error(), "not null") ||
		c.IsForeignKeyError(err) ||
		c.IsDuplicateKeyError(err)
}
