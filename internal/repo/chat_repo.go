// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the ChatMessage
// model: the question/answer transcript of the campaign chat widget.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only
// persistence and query composition.
//
// Error semantics:
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - CreateChatMessage(ctx, db, sessionID, userMessage, aiResponse, confidence) -> *domain.ChatMessage, error
//     Inserts one exchange with a UUID primary key and UTC timestamp.
//
//   - ListChatMessages(ctx, db, sessionID) -> []domain.ChatMessage, error
//     Returns the transcript of a session, oldest first.
//
//   - CountChatMessages(ctx, db, sessionID) -> (int64, error)
//     Returns the number of exchanges stored for a session.
//
// Usage:
//
//	// Within a service layer
//	msg, err := repo.CreateChatMessage(ctx, db, sessionID, question, answer, 0.9)
//	if err != nil {
//	    // handle DB failure
//	}
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateChatMessage inserts one question/answer exchange for sessionID.
// The row ID is a randomly generated UUID (string), and CreatedAt is set to UTC.
//
// On success, it returns the persisted ChatMessage. On failure, it returns a DB error.
func CreateChatMessage(ctx context.Context, db *gorm.DB, sessionID, userMessage, aiResponse string, confidence float64) (*domain.ChatMessage, error) {
	m := &domain.ChatMessage{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		UserMessage: userMessage,
		AIResponse:  aiResponse,
		Confidence:  confidence,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListChatMessages returns the exchanges of sessionID ordered deterministically
// (CreatedAt ASC, ID ASC). It returns an empty slice for an unknown session.
func ListChatMessages(ctx context.Context, db *gorm.DB, sessionID string) ([]domain.ChatMessage, error) {
	out := []domain.ChatMessage{}
	err := db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// CountChatMessages returns the total number of exchanges stored for sessionID.
func CountChatMessages(ctx context.Context, db *gorm.DB, sessionID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("session_id = ?", sessionID).
		Count(&total).Error
	return total, err
}
