package reward

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/persistence"
)

// EligibilityChecker decides whether a (user, code) pair may still be played
type EligibilityChecker struct{}

// NewEligibilityChecker creates a new EligibilityChecker
func NewEligibilityChecker() *EligibilityChecker {
	return &EligibilityChecker{}
}

// AlreadyScanned reports whether a scan exists for the pair. The repository
// decides the read scope: pass a transaction-bound one inside CompleteGame.
func (c *EligibilityChecker) AlreadyScanned(
	ctx context.Context,
	scans persistence.ScanRepository,
	userID, codeID uint64,
) (bool, error) {
	exists, err := scans.Exists(ctx, userID, codeID)
	if err != nil {
		return false, fmt.Errorf("failed to check existing scan: %w", err)
	}
	return exists, nil
}
