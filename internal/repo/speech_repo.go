// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for speech
// training samples.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

// ListSpeechData returns samples, optionally for one speaker, newest first.
func ListSpeechData(ctx context.Context, db *gorm.DB, speaker string) ([]domain.SpeechTrainingData, error) {
	out := []domain.SpeechTrainingData{}
	q := db.WithContext(ctx)
	if s := strings.TrimSpace(speaker); s != "" {
		q = q.Where("speaker = ?", s)
	}
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// CreateSpeechData inserts s as an unvalidated sample.
func CreateSpeechData(ctx context.Context, db *gorm.DB, s *domain.SpeechTrainingData) error {
	s.ID = uuid.NewString()
	s.IsValidated = false
	s.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(s).Error
}

// GetSpeechData fetches a sample by ID, or ErrNotFound.
func GetSpeechData(ctx context.Context, db *gorm.DB, id string) (*domain.SpeechTrainingData, error) {
	var s domain.SpeechTrainingData
	if err := db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSpeechData applies column updates to a sample.
func UpdateSpeechData(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	return updateByID(ctx, db, &domain.SpeechTrainingData{}, id, updates, false)
}

// ValidateSpeechData marks a sample as validated.
func ValidateSpeechData(ctx context.Context, db *gorm.DB, id string) error {
	return updateByID(ctx, db, &domain.SpeechTrainingData{}, id, map[string]any{"is_validated": true}, false)
}

// DeleteSpeechData removes a sample.
func DeleteSpeechData(ctx context.Context, db *gorm.DB, id string) error {
	return deleteByID(ctx, db, &domain.SpeechTrainingData{}, id)
}
