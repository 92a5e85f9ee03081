// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for citizen
// suggestions and their support rows.
//
// Counter columns (support_count, view_count) are only ever changed through
// the server-side increments below, never through UpdateSuggestion, and they
// use UpdateColumn so that counting a view or a supporter does not bump
// updated_at (and therefore does not reorder listings).
//
// Functions that must be atomic together (insert support + increment count,
// delete support + decrement count) are composed by the service layer inside
// one db.Transaction; every function here accepts the transaction handle.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

// CreateSuggestion inserts s with fresh counters.
func CreateSuggestion(ctx context.Context, db *gorm.DB, s *domain.CitizenSuggestion) error {
	now := time.Now().UTC()
	s.ID = uuid.NewString()
	s.SupportCount = 0
	s.ViewCount = 0
	s.CreatedAt = now
	s.UpdatedAt = now
	return db.WithContext(ctx).Create(s).Error
}

// ListSuggestions returns suggestions filtered by category and/or status
// (empty means any), most recently updated first.
func ListSuggestions(ctx context.Context, db *gorm.DB, category, status string) ([]domain.CitizenSuggestion, error) {
	out := []domain.CitizenSuggestion{}
	q := db.WithContext(ctx)
	if c := strings.TrimSpace(category); c != "" {
		q = q.Where("category = ?", c)
	}
	if s := strings.TrimSpace(status); s != "" {
		q = q.Where("status = ?", s)
	}
	err := q.Order("updated_at DESC, id DESC").Find(&out).Error
	return out, err
}

// SearchSuggestions returns suggestions whose title contains q
// (case-insensitive), most recently updated first.
func SearchSuggestions(ctx context.Context, db *gorm.DB, q string) ([]domain.CitizenSuggestion, error) {
	out := []domain.CitizenSuggestion{}
	err := db.WithContext(ctx).
		Where(containsClause("title"), containsPattern(q)).
		Order("updated_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// GetSuggestion fetches a suggestion by ID, or ErrNotFound.
func GetSuggestion(ctx context.Context, db *gorm.DB, id string) (*domain.CitizenSuggestion, error) {
	var s domain.CitizenSuggestion
	if err := db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// IncrementSuggestionViews adds one to view_count. It returns ErrNotFound when
// the suggestion does not exist.
func IncrementSuggestionViews(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.CitizenSuggestion{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementSupportCount adds one to support_count.
func IncrementSupportCount(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.CitizenSuggestion{}).
		Where("id = ?", id).
		UpdateColumn("support_count", gorm.Expr("support_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementSupportCount subtracts one from support_count, never going below
// zero. A count that is already zero is left untouched without error.
func DecrementSupportCount(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).
		Model(&domain.CitizenSuggestion{}).
		Where("id = ? AND support_count > 0", id).
		UpdateColumn("support_count", gorm.Expr("support_count - ?", 1)).Error
}

// UpdateSuggestion applies column updates and bumps UpdatedAt. Callers must
// not pass counter columns.
func UpdateSuggestion(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	delete(updates, "support_count")
	delete(updates, "view_count")
	return updateByID(ctx, db, &domain.CitizenSuggestion{}, id, updates, true)
}

// DeleteSuggestion hard-deletes a suggestion together with its support rows
// and detaches implementation updates that referenced it. The statements run
// in one transaction so the cleanup does not depend on foreign-key
// enforcement being enabled in the driver.
func DeleteSuggestion(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("suggestion_id = ?", id).Delete(&domain.SuggestionSupport{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.ImplementationUpdate{}).
			Where("suggestion_id = ?", id).
			UpdateColumn("suggestion_id", nil).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &domain.CitizenSuggestion{}, id)
	})
}

// CreateSupport inserts one support row for s.SuggestionID.
func CreateSupport(ctx context.Context, db *gorm.DB, s *domain.SuggestionSupport) error {
	s.ID = uuid.NewString()
	if strings.TrimSpace(s.SupportType) == "" {
		s.SupportType = "support"
	}
	s.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Omit("Suggestion").Create(s).Error
}

// GetSupport fetches a support row by ID, or ErrNotFound.
func GetSupport(ctx context.Context, db *gorm.DB, id string) (*domain.SuggestionSupport, error) {
	var s domain.SuggestionSupport
	if err := db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSupports returns the support rows of a suggestion, newest first.
func ListSupports(ctx context.Context, db *gorm.DB, suggestionID string) ([]domain.SuggestionSupport, error) {
	out := []domain.SuggestionSupport{}
	err := db.WithContext(ctx).
		Where("suggestion_id = ?", suggestionID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// DeleteSupport removes a support row.
func DeleteSupport(ctx context.Context, db *gorm.DB, id string) error {
	return deleteByID(ctx, db, &domain.SuggestionSupport{}, id)
}
