package persistence

import (
	"context"
)

// UnitOfWork coordinates a scan insert and the matching point update
// under one commit boundary
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context.
	// It is a no-op once the transaction has been committed.
	Rollback(ctx context.Context) error

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetScanRepository returns a scan repository bound to the current transaction
	GetScanRepository(ctx context.Context) ScanRepository
}
