// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation) and the training dashboard.
// Each function is context-aware and safe to call from services or handlers.
package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

// ContentStats returns aggregate metadata for the CMS listing selected by the
// optional type and status filters: the number of rows and the greatest
// UpdatedAt among them.
//
// When no rows match, the returned count is 0 and maxUpdatedAt is nil.
//
// Return values:
//   - count:        matching content rows
//   - maxUpdatedAt: pointer to the greatest UpdatedAt, or nil if no rows
//   - err:          database error, if any
func ContentStats(ctx context.Context, db *gorm.DB, typ, status string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := cmsFilter(db.WithContext(ctx).Model(&domain.CmsContent{}), typ, status)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// TrainingStats summarises the active training documents: the total, the
// number per category and the most recent UpdatedAt (nil when there are none).
func TrainingStats(ctx context.Context, db *gorm.DB) (total int64, byCategory map[string]int64, lastUpdated *time.Time, err error) {
	byCategory = map[string]int64{}

	var rows []struct {
		Category string
		N        int64
	}
	if err = db.WithContext(ctx).
		Model(&domain.AiTrainingDoc{}).
		Select("category, COUNT(*) AS n").
		Where("is_active = ?", true).
		Group("category").
		Scan(&rows).Error; err != nil {
		return 0, nil, nil, err
	}
	for _, r := range rows {
		byCategory[strings.TrimSpace(r.Category)] = r.N
		total += r.N
	}
	if total == 0 {
		return 0, byCategory, nil, nil
	}

	var row struct {
		UpdatedAt time.Time
	}
	if err = db.WithContext(ctx).
		Model(&domain.AiTrainingDoc{}).
		Select("updated_at").
		Where("is_active = ?", true).
		Order("updated_at DESC").
		Limit(1).
		Scan(&row).Error; err != nil {
		return 0, nil, nil, err
	}
	return total, byCategory, &row.UpdatedAt, nil
}
