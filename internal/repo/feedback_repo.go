// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// PublicFeedback model.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving business rules (what the public may see, which
// fields a submitter may change) to the services package.
//
// Functions:
//
//   - ListPublicFeedback(ctx, db, type, targetID) -> []domain.PublicFeedback, error
//     Approved and public rows only, newest first.
//
//   - ListFeedbackForModeration(ctx, db, status) -> []domain.PublicFeedback, error
//     Every row (optionally one moderation status), newest first.
//
//   - CreatePublicFeedback / GetPublicFeedback / UpdatePublicFeedback / DeletePublicFeedback
//     Plain CRUD keyed by ID; updates and deletes return ErrNotFound when
//     nothing matched.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

// ListPublicFeedback returns the feedback visible to the public: approved by a
// moderator and flagged public. type and targetID are optional filters.
func ListPublicFeedback(ctx context.Context, db *gorm.DB, typ, targetID string) ([]domain.PublicFeedback, error) {
	out := []domain.PublicFeedback{}
	q := db.WithContext(ctx).
		Where("moderation_status = ? AND is_public = ?", domain.ModerationApproved, true)
	if t := strings.TrimSpace(typ); t != "" {
		q = q.Where("type = ?", t)
	}
	if id := strings.TrimSpace(targetID); id != "" {
		q = q.Where("target_id = ?", id)
	}
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// ListFeedbackForModeration returns all feedback, optionally restricted to one
// moderation status, newest first.
func ListFeedbackForModeration(ctx context.Context, db *gorm.DB, status string) ([]domain.PublicFeedback, error) {
	out := []domain.PublicFeedback{}
	q := db.WithContext(ctx)
	if s := strings.TrimSpace(status); s != "" {
		q = q.Where("moderation_status = ?", s)
	}
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// CreatePublicFeedback inserts f, assigning its ID and timestamp.
func CreatePublicFeedback(ctx context.Context, db *gorm.DB, f *domain.PublicFeedback) error {
	f.ID = uuid.NewString()
	f.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(f).Error
}

// GetPublicFeedback fetches a feedback row by ID, or ErrNotFound.
func GetPublicFeedback(ctx context.Context, db *gorm.DB, id string) (*domain.PublicFeedback, error) {
	var f domain.PublicFeedback
	if err := db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdatePublicFeedback applies column updates to a feedback row.
func UpdatePublicFeedback(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	return updateByID(ctx, db, &domain.PublicFeedback{}, id, updates, false)
}

// DeletePublicFeedback removes a feedback row.
func DeletePublicFeedback(ctx context.Context, db *gorm.DB, id string) error {
	return deleteByID(ctx, db, &domain.PublicFeedback{}, id)
}
