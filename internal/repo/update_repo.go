// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for implementation
// progress updates. Updates are append-only: there is deliberately no update
// or delete function.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

// CreateImplementationUpdate inserts u, assigning its ID and timestamp.
func CreateImplementationUpdate(ctx context.Context, db *gorm.DB, u *domain.ImplementationUpdate) error {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Omit("Suggestion").Create(u).Error
}

// ListImplementationUpdates returns updates, optionally for one suggestion,
// newest first.
func ListImplementationUpdates(ctx context.Context, db *gorm.DB, suggestionID string) ([]domain.ImplementationUpdate, error) {
	out := []domain.ImplementationUpdate{}
	q := db.WithContext(ctx)
	if id := strings.TrimSpace(suggestionID); id != "" {
		q = q.Where("suggestion_id = ?", id)
	}
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}
