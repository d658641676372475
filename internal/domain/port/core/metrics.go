package core

// Scan attempt outcomes reported to RewardMetrics
const (
	OutcomeEligible       = "eligible"
	OutcomeAlreadyScanned = "already_scanned"
	OutcomeRejected       = "rejected"
)

// RewardMetrics records business-level counters for the reward engine
type RewardMetrics interface {
	// ScanAttempt counts a registered scan by outcome
	ScanAttempt(outcome string)
	// GameCompleted counts a finished game and the points it awarded
	GameCompleted(points int64)
	// GameRejected counts a game completion refused with the given error code
	GameRejected(errorCode int)
}
