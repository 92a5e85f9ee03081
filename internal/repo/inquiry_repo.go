// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for contact-form
// inquiries.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

// CreateInquiry inserts a new inquiry with Responded=false.
func CreateInquiry(ctx context.Context, db *gorm.DB, name, phone, district, message string) (*domain.Inquiry, error) {
	in := &domain.Inquiry{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		District:  district,
		Message:   message,
		Responded: false,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(in).Error; err != nil {
		return nil, err
	}
	return in, nil
}

// ListInquiries returns all inquiries, most recent first.
func ListInquiries(ctx context.Context, db *gorm.DB) ([]domain.Inquiry, error) {
	out := []domain.Inquiry{}
	err := db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// GetInquiry fetches a single inquiry by ID, or ErrNotFound.
func GetInquiry(ctx context.Context, db *gorm.DB, id string) (*domain.Inquiry, error) {
	var in domain.Inquiry
	if err := db.WithContext(ctx).Where("id = ?", id).First(&in).Error; err != nil {
		return nil, err
	}
	return &in, nil
}

// MarkInquiryResponded sets Responded=true. It returns ErrNotFound when the
// inquiry does not exist.
func MarkInquiryResponded(ctx context.Context, db *gorm.DB, id string) error {
	return updateByID(ctx, db, &domain.Inquiry{}, id, map[string]any{"responded": true}, false)
}
