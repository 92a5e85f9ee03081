// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for assistant
// training documents.
//
// Deletion is logical: DeactivateTrainingDoc flips is_active and every read in
// this file only sees active rows, so a deactivated document is invisible to
// listings, search, the prompt bundle and further updates.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

// ListTrainingDocs returns active documents, optionally restricted to one
// category, most recently updated first.
func ListTrainingDocs(ctx context.Context, db *gorm.DB, category string) ([]domain.AiTrainingDoc, error) {
	out := []domain.AiTrainingDoc{}
	q := db.WithContext(ctx).Where("is_active = ?", true)
	if c := strings.TrimSpace(category); c != "" {
		q = q.Where("category = ?", c)
	}
	err := q.Order("updated_at DESC, id DESC").Find(&out).Error
	return out, err
}

// CreateTrainingDoc inserts d as an active document.
func CreateTrainingDoc(ctx context.Context, db *gorm.DB, d *domain.AiTrainingDoc) error {
	now := time.Now().UTC()
	d.ID = uuid.NewString()
	d.IsActive = true
	d.CreatedAt = now
	d.UpdatedAt = now
	return db.WithContext(ctx).Create(d).Error
}

// GetTrainingDoc fetches an active document by ID, or ErrNotFound.
func GetTrainingDoc(ctx context.Context, db *gorm.DB, id string) (*domain.AiTrainingDoc, error) {
	var d domain.AiTrainingDoc
	if err := db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateTrainingDoc applies column updates to an active document and bumps
// UpdatedAt. It returns ErrNotFound for unknown or deactivated documents.
func UpdateTrainingDoc(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	updates["updated_at"] = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.AiTrainingDoc{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateTrainingDoc soft-deletes an active document.
func DeactivateTrainingDoc(ctx context.Context, db *gorm.DB, id string) error {
	return UpdateTrainingDoc(ctx, db, id, map[string]any{"is_active": false})
}

// SearchTrainingDocs returns active documents whose content contains q
// (case-insensitive), most recently updated first.
func SearchTrainingDocs(ctx context.Context, db *gorm.DB, q string) ([]domain.AiTrainingDoc, error) {
	out := []domain.AiTrainingDoc{}
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(containsClause("content"), containsPattern(q)).
		Order("updated_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
