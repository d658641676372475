package persistence

import (
	"context"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// ScanRepository defines methods to interact with scan records
type ScanRepository interface {
	// Create inserts a scan record and assigns its ID
	//
	// Possible errors:
	// - ErrDuplicateScan: If a scan for the same (user, code) pair exists
	// - ErrConcurrentUpdate: If the store aborted the write
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, scan *entity.Scan) error

	// Exists checks whether the user already scanned the code
	Exists(ctx context.Context, userID, codeID uint64) (bool, error)

	// Aggregate counts scans, distinct users and summed points over the
	// given code IDs. An empty set yields a zero aggregate.
	Aggregate(ctx context.Context, codeIDs []uint64) (entity.ScanAggregate, error)

	// History returns the user's scans with brand names, ordered by
	// scan time then ID
	History(ctx context.Context, userID uint64) ([]entity.ScanHistoryEntry, error)
}
