package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

func TestCmsContent_CRUD(t *testing.T) {
	db := newRepoDB(t, &domain.CmsContent{})
	ctx := context.Background()

	page := &domain.CmsContent{Type: "page", Title: "소개", Content: "후보 소개", Slug: "about", Status: domain.ContentPublished}
	if err := CreateCmsContent(ctx, db, page); err != nil {
		t.Fatalf("CreateCmsContent: %v", err)
	}
	if page.ID == "" || page.CreatedAt.IsZero() || !page.UpdatedAt.Equal(page.CreatedAt) {
		t.Fatalf("ids/timestamps not assigned: %+v", page)
	}

	got, err := GetCmsContentBySlug(ctx, db, "about")
	if err != nil || got.ID != page.ID {
		t.Fatalf("GetCmsContentBySlug: %+v %v", got, err)
	}
	if _, err := GetCmsContentBySlug(ctx, db, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	before := got.UpdatedAt
	time.Sleep(2 * time.Millisecond)
	if err := UpdateCmsContent(ctx, db, page.ID, map[string]any{"title": "후보 소개"}); err != nil {
		t.Fatalf("UpdateCmsContent: %v", err)
	}
	got, _ = GetCmsContent(ctx, db, page.ID)
	if got.Title != "후보 소개" || !got.UpdatedAt.After(before) {
		t.Fatalf("update not applied: %+v", got)
	}
	if err := UpdateCmsContent(ctx, db, "missing", map[string]any{"title": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := DeleteCmsContent(ctx, db, page.ID); err != nil {
		t.Fatalf("DeleteCmsContent: %v", err)
	}
	if err := DeleteCmsContent(ctx, db, page.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCmsContent_DuplicateSlug(t *testing.T) {
	db := newRepoDB(t, &domain.CmsContent{})
	ctx := context.Background()

	a := &domain.CmsContent{Type: "page", Title: "a", Content: "a", Slug: "same", Status: domain.ContentDraft}
	b := &domain.CmsContent{Type: "page", Title: "b", Content: "b", Slug: "same", Status: domain.ContentDraft}
	if err := CreateCmsContent(ctx, db, a); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := CreateCmsContent(ctx, db, b); !IsDuplicate(err) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestListCmsContent_FiltersAndOrder(t *testing.T) {
	db := newRepoDB(t, &domain.CmsContent{})
	ctx := context.Background()
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	seed := []domain.CmsContent{
		{ID: "c1", Type: "policy", Title: "1", Content: "x", Slug: "p1", Status: domain.ContentPublished, CreatedAt: base, UpdatedAt: base},
		{ID: "c2", Type: "policy", Title: "2", Content: "x", Slug: "p2", Status: domain.ContentDraft, CreatedAt: base, UpdatedAt: base.Add(time.Hour)},
		{ID: "c3", Type: "notice", Title: "3", Content: "x", Slug: "n1", Status: domain.ContentPublished, CreatedAt: base, UpdatedAt: base.Add(2 * time.Hour)},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	all, err := ListCmsContent(ctx, db, "", "")
	if err != nil || len(all) != 3 || all[0].ID != "c3" || all[2].ID != "c1" {
		t.Fatalf("unexpected all: %+v (%v)", all, err)
	}
	policies, _ := ListCmsContent(ctx, db, "policy", "")
	if len(policies) != 2 || policies[0].ID != "c2" {
		t.Fatalf("unexpected policies: %+v", policies)
	}
	published, _ := ListCmsContent(ctx, db, "policy", "published")
	if len(published) != 1 || published[0].ID != "c1" {
		t.Fatalf("unexpected published policies: %+v", published)
	}
}
