// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for CMS content.
//
// Slug uniqueness is enforced by the ux_cms_slug index; a collision surfaces
// as a raw driver error which IsDuplicate recognises.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

// cmsFilter scopes a query to the optional type and status filters.
func cmsFilter(q *gorm.DB, typ, status string) *gorm.DB {
	if t := strings.TrimSpace(typ); t != "" {
		q = q.Where("type = ?", t)
	}
	if s := strings.TrimSpace(status); s != "" {
		q = q.Where("status = ?", s)
	}
	return q
}

// ListCmsContent returns content filtered by type and/or status (empty means
// any), most recently updated first.
func ListCmsContent(ctx context.Context, db *gorm.DB, typ, status string) ([]domain.CmsContent, error) {
	out := []domain.CmsContent{}
	err := cmsFilter(db.WithContext(ctx), typ, status).
		Order("updated_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// CreateCmsContent inserts c, assigning its ID and timestamps.
func CreateCmsContent(ctx context.Context, db *gorm.DB, c *domain.CmsContent) error {
	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	return db.WithContext(ctx).Create(c).Error
}

// GetCmsContentBySlug fetches content by its public slug, or ErrNotFound.
func GetCmsContentBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.CmsContent, error) {
	var c domain.CmsContent
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCmsContent fetches content by ID, or ErrNotFound.
func GetCmsContent(ctx context.Context, db *gorm.DB, id string) (*domain.CmsContent, error) {
	var c domain.CmsContent
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCmsContent applies column updates to the content with the given ID
// and bumps UpdatedAt. It returns ErrNotFound when the row does not exist.
func UpdateCmsContent(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	return updateByID(ctx, db, &domain.CmsContent{}, id, updates, true)
}

// DeleteCmsContent removes the content with the given ID.
func DeleteCmsContent(ctx context.Context, db *gorm.DB, id string) error {
	return deleteByID(ctx, db, &domain.CmsContent{}, id)
}
