package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/repo"
)

// CmsInput creates a CMS page or block. Status defaults to draft.
type CmsInput struct {
	Type     string               `json:"type"     binding:"required,max=64"`
	Title    string               `json:"title"    binding:"required,max=255"`
	Content  string               `json:"content"  binding:"required"`
	Slug     string               `json:"slug"     binding:"required,max=255"`
	Status   domain.ContentStatus `json:"status"`
	Metadata datatypes.JSON       `json:"metadata" swaggertype:"object"`
}

// CmsPatch carries the fields an editor may change; nil means unchanged.
type CmsPatch struct {
	Type     *string               `json:"type"     binding:"omitempty,max=64"`
	Title    *string               `json:"title"    binding:"omitempty,max=255"`
	Content  *string               `json:"content"`
	Slug     *string               `json:"slug"     binding:"omitempty,max=255"`
	Status   *domain.ContentStatus `json:"status"`
	Metadata *datatypes.JSON       `json:"metadata" swaggertype:"object"`
}

// ContentVersion summarizes a filtered listing so handlers can derive an ETag.
type ContentVersion struct {
	Count        int64
	MaxUpdatedAt *time.Time
}

// CMSService manages editable site content.
type CMSService struct {
	DB *gorm.DB
}

// List returns content filtered by type and status, most recently updated first.
func (s *CMSService) List(ctx context.Context, typ, status string) ([]domain.CmsContent, error) {
	return repo.ListCmsContent(ctx, s.DB, typ, status)
}

// Version returns the count and newest update time of the listing that List
// would produce for the same filters.
func (s *CMSService) Version(ctx context.Context, typ, status string) (ContentVersion, error) {
	n, max, err := repo.ContentStats(ctx, s.DB, typ, status)
	return ContentVersion{Count: n, MaxUpdatedAt: max}, err
}

// Create stores new content. A slug that is already used yields ErrSlugTaken.
func (s *CMSService) Create(ctx context.Context, in CmsInput) (*domain.CmsContent, error) {
	if err := firstErr(
		requireText("type", &in.Type),
		requireText("title", &in.Title),
		requireText("content", &in.Content),
		requireText("slug", &in.Slug),
	); err != nil {
		return nil, err
	}
	if err := checkSlug(in.Slug); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = domain.ContentDraft
	}
	if !in.Status.Valid() {
		return nil, invalid("status must be one of draft, published, archived")
	}

	c := &domain.CmsContent{
		Type:     in.Type,
		Title:    in.Title,
		Content:  in.Content,
		Slug:     in.Slug,
		Status:   in.Status,
		Metadata: in.Metadata,
	}
	if err := repo.CreateCmsContent(ctx, s.DB, c); err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return c, nil
}

// GetBySlug returns the content published under slug.
func (s *CMSService) GetBySlug(ctx context.Context, slug string) (*domain.CmsContent, error) {
	c, err := repo.GetCmsContentBySlug(ctx, s.DB, strings.TrimSpace(slug))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrContentNotFound
	}
	return c, err
}

// Update applies p to the content with the given id and returns the result.
func (s *CMSService) Update(ctx context.Context, id string, p CmsPatch) (*domain.CmsContent, error) {
	up := patch{}
	if err := firstErr(
		up.text("type", p.Type),
		up.text("title", p.Title),
		up.text("content", p.Content),
		up.text("slug", p.Slug),
	); err != nil {
		return nil, err
	}
	if slug, ok := up["slug"].(string); ok {
		if err := checkSlug(slug); err != nil {
			return nil, err
		}
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, invalid("status must be one of draft, published, archived")
		}
		up["status"] = *p.Status
	}
	if p.Metadata != nil {
		up["metadata"] = *p.Metadata
	}

	if len(up) > 0 {
		if err := repo.UpdateCmsContent(ctx, s.DB, id, up); err != nil {
			switch {
			case errors.Is(err, repo.ErrNotFound):
				return nil, ErrContentNotFound
			case repo.IsDuplicate(err):
				return nil, ErrSlugTaken
			}
			return nil, err
		}
	}
	c, err := repo.GetCmsContent(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrContentNotFound
	}
	return c, err
}

// Delete removes content permanently.
func (s *CMSService) Delete(ctx context.Context, id string) error {
	if err := repo.DeleteCmsContent(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrContentNotFound
		}
		return err
	}
	return nil
}

// checkSlug rejects slugs that could not appear as one URL path segment.
func checkSlug(slug string) error {
	if strings.ContainsAny(slug, " \t\r\n/?#") {
		return invalid("slug must not contain whitespace, '/', '?' or '#'")
	}
	return nil
}
