package database

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/repository"
)

// ErrorMapper maps transaction-level database errors to domain errors
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError maps a begin or commit failure to a domain error. A commit
// rejected by a unique index surfaces as the matching conflict, an
// aborted serializable transaction as ErrConcurrentUpdate.
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %s", errs.ErrDatabaseConnection, operation, err.Error())
	}
	if domainErr := m.classifier.UniqueViolation(err); domainErr != nil {
		return domainErr
	}

	switch m.classifier.Classify(err) {
	case repository.LockError:
		return fmt.Errorf("%w: %s: %s", errs.ErrConcurrentUpdate, operation, err.Error())
	case repository.ConnectionError, repository.TransientError:
		return fmt.Errorf("%w: %s: %s", errs.ErrDatabaseConnection, operation, err.Error())
	default:
		return fmt.Errorf("%w: %s: %s", errs.ErrInternalServer, operation, err.Error())
	}
}
