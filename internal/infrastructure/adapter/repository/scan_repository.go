package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScanRepository implements ScanRepository interface using GORM
type ScanRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewScanRepository creates a new ScanRepository instance
func NewScanRepository(db *gorm.DB, logger coreport.Logger) *ScanRepository {
	return &ScanRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

type scanAggregateRow struct {
	TotalScans  int64
	UniqueUsers int64
	TotalPoints int64
}

type scanHistoryRow struct {
	ScanID       uint64
	CodeID       uint64
	BrandName    string
	PointsEarned int64
	GameLabel    string
	GameScore    *int64
	ScannedAt    time.Time
}

func (r *ScanRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	mapped := r.errorClassifier.MapError(err, errs.ErrInternalServer)
	fields["error"] = err.Error()
	switch {
	case mapped == errs.ErrDuplicateScan:
		r.logger.Warn("Duplicate scan rejected by unique index", fields)
	case r.errorClassifier.IsLockError(err):
		r.logger.Warn(fmt.Sprintf("Conflict when %s", operation), fields)
	default:
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), fields)
	}
	return mapped
}

// Create inserts a scan record. The (user_id, code_id) unique index
// turns a concurrent duplicate into ErrDuplicateScan.
func (r *ScanRepository) Create(ctx context.Context, scan *entity.Scan) error {
	scanModel := model.Scan{
		UserID:       scan.UserID,
		CodeID:       scan.CodeID,
		PointsEarned: scan.PointsEarned,
		GameLabel:    scan.GameLabel,
		GameScore:    scan.GameScore,
		ScannedAt:    scan.ScannedAt,
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&scanModel).Error; err != nil {
		return r.handleDatabaseError("creating scan", err, map[string]any{
			"user_id": scan.UserID,
			"code_id": scan.CodeID,
		})
	}

	scan.ID = scanModel.ID
	r.logger.Debug("Scan recorded", map[string]any{
		"scan_id":       scan.ID,
		"user_id":       scan.UserID,
		"code_id":       scan.CodeID,
		"points_earned": scan.PointsEarned,
	})
	return nil
}

// Exists checks whether the user already scanned the code
func (r *ScanRepository) Exists(ctx context.Context, userID, codeID uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Scan{}).
		Where("user_id = ? AND code_id = ?", userID, codeID).
		Count(&count).Error; err != nil {
		return false, r.handleDatabaseError("checking scan", err, map[string]any{
			"user_id": userID,
			"code_id": codeID,
		})
	}
	return count > 0, nil
}

// Aggregate computes scan totals over the given codes in one query
func (r *ScanRepository) Aggregate(ctx context.Context, codeIDs []uint64) (entity.ScanAggregate, error) {
	if len(codeIDs) == 0 {
		return entity.ScanAggregate{}, nil
	}

	var row scanAggregateRow
	if err := r.db.WithContext(ctx).
		Model(&model.Scan{}).
		Select("COUNT(*) AS total_scans, COUNT(DISTINCT user_id) AS unique_users, COALESCE(SUM(points_earned), 0) AS total_points").
		Where("code_id IN ?", codeIDs).
		Scan(&row).Error; err != nil {
		return entity.ScanAggregate{}, r.handleDatabaseError("aggregating scans", err, map[string]any{
			"code_count": len(codeIDs),
		})
	}

	return entity.ScanAggregate{
		TotalScans:  row.TotalScans,
		UniqueUsers: row.UniqueUsers,
		TotalPoints: row.TotalPoints,
	}, nil
}

// History returns the user's scans joined with their brand, oldest first
func (r *ScanRepository) History(ctx context.Context, userID uint64) ([]entity.ScanHistoryEntry, error) {
	var rows []scanHistoryRow
	if err := r.db.WithContext(ctx).
		Table("scans").
		Select("scans.id AS scan_id, scans.code_id AS code_id, brands.name AS brand_name, " +
			"scans.points_earned AS points_earned, scans.game_label AS game_label, " +
			"scans.game_score AS game_score, scans.scanned_at AS scanned_at").
		Joins("JOIN codes ON codes.id = scans.code_id").
		Joins("JOIN brands ON brands.id = codes.brand_id").
		Where("scans.user_id = ?", userID).
		Order("scans.scanned_at ASC, scans.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("loading scan history", err, map[string]any{
			"user_id": userID,
		})
	}

	history := make([]entity.ScanHistoryEntry, 0, len(rows))
	for _, row := range rows {
		history = append(history, entity.ScanHistoryEntry{
			ScanID:       row.ScanID,
			CodeID:       row.CodeID,
			BrandName:    row.BrandName,
			PointsEarned: row.PointsEarned,
			GameLabel:    row.GameLabel,
			GameScore:    row.GameScore,
			ScannedAt:    row.ScannedAt,
		})
	}
	return history, nil
}
