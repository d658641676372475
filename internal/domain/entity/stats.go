package entity

import "time"

// ScanAggregate holds aggregate scan figures over a set of codes
type ScanAggregate struct {
	TotalScans  int64
	UniqueUsers int64
	TotalPoints int64
}

// BrandStats summarizes a brand's codes and the scans made against them
type BrandStats struct {
	BrandID                uint64
	BrandName              string
	TotalCodes             int64
	ActiveCodes            int64
	TotalScans             int64
	UniqueUsers            int64
	TotalPointsDistributed int64
}

// ScanHistoryEntry is one scan enriched with the brand it belongs to
type ScanHistoryEntry struct {
	ScanID       uint64
	CodeID       uint64
	BrandName    string
	PointsEarned int64
	GameLabel    string
	GameScore    *int64
	ScannedAt    time.Time
}

// UserHistory is a user's scans, oldest first, with their current total
type UserHistory struct {
	UserID      uint64
	Username    string
	TotalPoints int64
	Scans       []ScanHistoryEntry
}

// ScanAttempt is the outcome of registering a scan. AlreadyScanned is a
// terminal state, not an error.
type ScanAttempt struct {
	Eligible        bool
	AlreadyScanned  bool
	CodeID          uint64
	BrandName       string
	Description     string
	PointsAvailable int64
}

// GameResult is the outcome of a completed game
type GameResult struct {
	ScanID       uint64
	UserID       uint64
	CodeID       uint64
	PointsEarned int64
	TotalPoints  int64
}
