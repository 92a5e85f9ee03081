// Package services – SuggestionService
//
// This file implements the citizen participation portal: suggestions, their
// view counter and their support rows.
//
// Counter consistency: every change to support rows runs in the same
// database transaction as the matching support_count change, so the counter
// always equals the number of support rows. A general Update can never touch
// the counters because SuggestionPatch has no such fields.
//
// Idempotency: AddSupport accepts the request's Idempotency-Key. The key is
// recorded in the same transaction as the support row, so a retried request
// returns the original row and the count moves once.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/repo"
)

// DefaultIdempotencyTTL is how long a support Idempotency-Key is remembered.
const DefaultIdempotencyTTL = 24 * time.Hour

// SuggestionInput is a new citizen suggestion.
type SuggestionInput struct {
	Title             string          `json:"title"             binding:"required,max=255"`
	Description       string          `json:"description"       binding:"required"`
	Category          string          `json:"category"          binding:"required,max=64"`
	Priority          domain.Priority `json:"priority"`
	SubmitterName     string          `json:"submitterName"     binding:"required,max=100"`
	SubmitterPhone    *string         `json:"submitterPhone"`
	SubmitterEmail    *string         `json:"submitterEmail"    binding:"omitempty,email"`
	SubmitterDistrict string          `json:"submitterDistrict" binding:"required,max=64"`
	IsAnonymous       bool            `json:"isAnonymous"`
	ExpectedBudget    *string         `json:"expectedBudget"`
	ExpectedTimeline  *string         `json:"expectedTimeline"`
	Tags              []string        `json:"tags"`
}

// SuggestionPatch changes a suggestion; nil means unchanged. It deliberately
// has no supportCount or viewCount.
type SuggestionPatch struct {
	Title              *string                  `json:"title"       binding:"omitempty,max=255"`
	Description        *string                  `json:"description"`
	Category           *string                  `json:"category"    binding:"omitempty,max=64"`
	Priority           *domain.Priority         `json:"priority"`
	Status             *domain.SuggestionStatus `json:"status"`
	SubmitterPhone     *string                  `json:"submitterPhone"`
	SubmitterEmail     *string                  `json:"submitterEmail" binding:"omitempty,email"`
	IsAnonymous        *bool                    `json:"isAnonymous"`
	ExpectedBudget     *string                  `json:"expectedBudget"`
	ExpectedTimeline   *string                  `json:"expectedTimeline"`
	Tags               *[]string                `json:"tags"`
	AdminNotes         *string                  `json:"adminNotes"`
	ImplementationDate *time.Time               `json:"implementationDate"`
}

// SupportInput is one endorsement. Every field is optional.
type SupportInput struct {
	SupporterName     *string `json:"supporterName"`
	SupporterPhone    *string `json:"supporterPhone"`
	SupporterDistrict *string `json:"supporterDistrict"`
	SupportType       string  `json:"supportType" binding:"omitempty,max=32"`
	IsAnonymous       bool    `json:"isAnonymous"`
	Comment           *string `json:"comment"`
}

// SuggestionService implements the suggestion lifecycle.
type SuggestionService struct {
	DB *gorm.DB
	// IdempotencyTTL bounds how long a support key is honoured.
	IdempotencyTTL time.Duration
}

// Create stores a suggestion with status submitted and zero counters.
func (s *SuggestionService) Create(ctx context.Context, in SuggestionInput) (*domain.CitizenSuggestion, error) {
	if err := firstErr(
		requireText("title", &in.Title),
		requireText("description", &in.Description),
		requireText("category", &in.Category),
		requireText("submitterName", &in.SubmitterName),
		requireText("submitterDistrict", &in.SubmitterDistrict),
	); err != nil {
		return nil, err
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, invalid("priority must be one of low, medium, high, urgent")
	}

	sg := &domain.CitizenSuggestion{
		Title:             in.Title,
		Description:       in.Description,
		Category:          in.Category,
		Priority:          in.Priority,
		Status:            domain.StatusSubmitted,
		SubmitterName:     in.SubmitterName,
		SubmitterPhone:    trimPtr(in.SubmitterPhone),
		SubmitterEmail:    trimPtr(in.SubmitterEmail),
		SubmitterDistrict: in.SubmitterDistrict,
		IsAnonymous:       in.IsAnonymous,
		ExpectedBudget:    trimPtr(in.ExpectedBudget),
		ExpectedTimeline:  trimPtr(in.ExpectedTimeline),
		Tags:              datatypes.JSONSlice[string](cleanTags(in.Tags)),
	}
	if err := repo.CreateSuggestion(ctx, s.DB, sg); err != nil {
		return nil, err
	}
	return sg, nil
}

// List returns suggestions filtered by category and status.
func (s *SuggestionService) List(ctx context.Context, category, status string) ([]domain.CitizenSuggestion, error) {
	status = strings.TrimSpace(status)
	if status != "" && !domain.SuggestionStatus(status).Valid() {
		return nil, invalid("unknown status %q", status)
	}
	return repo.ListSuggestions(ctx, s.DB, category, status)
}

// Search returns suggestions whose title contains q.
func (s *SuggestionService) Search(ctx context.Context, q string) ([]domain.CitizenSuggestion, error) {
	if strings.TrimSpace(q) == "" {
		return nil, ErrEmptyQuery
	}
	return repo.SearchSuggestions(ctx, s.DB, q)
}

// Get records one view and returns the suggestion including that view.
func (s *SuggestionService) Get(ctx context.Context, id string) (*domain.CitizenSuggestion, error) {
	var out *domain.CitizenSuggestion
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.IncrementSuggestionViews(ctx, tx, id); err != nil {
			return err
		}
		sg, err := repo.GetSuggestion(ctx, tx, id)
		if err != nil {
			return err
		}
		out = sg
		return nil
	})
	if err != nil {
		return nil, suggestionErr(err)
	}
	return out, nil
}

// Update applies p and returns the result. Status may be set to any known
// value; the review workflow is not enforced here.
func (s *SuggestionService) Update(ctx context.Context, id string, p SuggestionPatch) (*domain.CitizenSuggestion, error) {
	up := patch{}
	if err := firstErr(
		up.text("title", p.Title),
		up.text("description", p.Description),
		up.text("category", p.Category),
	); err != nil {
		return nil, err
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return nil, invalid("priority must be one of low, medium, high, urgent")
		}
		up["priority"] = *p.Priority
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, invalid("unknown status %q", *p.Status)
		}
		up["status"] = *p.Status
	}
	up.optText("submitter_phone", p.SubmitterPhone)
	up.optText("submitter_email", p.SubmitterEmail)
	up.optText("expected_budget", p.ExpectedBudget)
	up.optText("expected_timeline", p.ExpectedTimeline)
	up.optText("admin_notes", p.AdminNotes)
	if p.IsAnonymous != nil {
		up["is_anonymous"] = *p.IsAnonymous
	}
	if p.Tags != nil {
		up["tags"] = datatypes.JSONSlice[string](cleanTags(*p.Tags))
	}
	if p.ImplementationDate != nil {
		up["implementation_date"] = p.ImplementationDate.UTC()
	}

	if len(up) > 0 {
		if err := repo.UpdateSuggestion(ctx, s.DB, id, up); err != nil {
			return nil, suggestionErr(err)
		}
	}
	sg, err := repo.GetSuggestion(ctx, s.DB, id)
	if err != nil {
		return nil, suggestionErr(err)
	}
	return sg, nil
}

// Delete removes a suggestion and its support rows.
func (s *SuggestionService) Delete(ctx context.Context, id string) error {
	return suggestionErr(repo.DeleteSuggestion(ctx, s.DB, id))
}

// ListSupport returns the support rows of a suggestion, newest first.
func (s *SuggestionService) ListSupport(ctx context.Context, id string) ([]domain.SuggestionSupport, error) {
	if _, err := repo.GetSuggestion(ctx, s.DB, id); err != nil {
		return nil, suggestionErr(err)
	}
	return repo.ListSupports(ctx, s.DB, id)
}

// AddSupport records one endorsement and increments support_count in the
// same transaction. With a non-empty idemKey a repeated call returns the row
// created by the first call and replayed=true.
func (s *SuggestionService) AddSupport(ctx context.Context, suggestionID string, in SupportInput, idemKey string) (sup *domain.SuggestionSupport, replayed bool, err error) {
	tr := otel.Tracer("services/SuggestionService")
	ctx, span := tr.Start(ctx, "AddSupport",
		trace.WithAttributes(
			attribute.String("suggestion.id", suggestionID),
			attribute.Bool("idempotent", idemKey != ""),
		),
	)
	defer span.End()

	scope := SupportScope(suggestionID)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if idemKey != "" {
			prev, perr := s.replay(ctx, tx, scope, idemKey)
			if perr != nil {
				return perr
			}
			if prev != nil {
				sup, replayed = prev, true
				return nil
			}
		}

		if _, err := repo.GetSuggestion(ctx, tx, suggestionID); err != nil {
			return err
		}
		row := &domain.SuggestionSupport{
			SuggestionID:      suggestionID,
			SupporterName:     trimPtr(in.SupporterName),
			SupporterPhone:    trimPtr(in.SupporterPhone),
			SupporterDistrict: trimPtr(in.SupporterDistrict),
			SupportType:       strings.TrimSpace(in.SupportType),
			IsAnonymous:       in.IsAnonymous,
			Comment:           trimPtr(in.Comment),
		}
		if err := repo.CreateSupport(ctx, tx, row); err != nil {
			return err
		}
		if err := repo.IncrementSupportCount(ctx, tx, suggestionID); err != nil {
			return err
		}
		if idemKey != "" {
			if _, err := repo.CreateIdempotency(ctx, tx, scope, idemKey, row.ID, s.ttl()); err != nil {
				return err
			}
		}
		sup = row
		return nil
	})

	// A concurrent request with the same key won the insert; serve its row.
	if errors.Is(err, repo.ErrDuplicate) {
		prev, perr := s.replay(ctx, s.DB, scope, idemKey)
		if perr == nil && prev != nil {
			return prev, true, nil
		}
	}
	if err != nil {
		span.RecordError(err)
		return nil, false, suggestionErr(err)
	}
	if !replayed {
		suggestionSupports.WithLabelValues("add").Inc()
	}
	return sup, replayed, nil
}

// RemoveSupport deletes a support row and decrements the owning suggestion's
// count in one transaction. An unknown id changes nothing.
func (s *SuggestionService) RemoveSupport(ctx context.Context, supportID string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sup, err := repo.GetSupport(ctx, tx, supportID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrSupportNotFound
			}
			return err
		}
		if err := repo.DeleteSupport(ctx, tx, sup.ID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrSupportNotFound
			}
			return err
		}
		return repo.DecrementSupportCount(ctx, tx, sup.SuggestionID)
	})
	if err != nil {
		return err
	}
	suggestionSupports.WithLabelValues("remove").Inc()
	return nil
}

// SupportScope is the idempotency scope of support requests for one suggestion.
func SupportScope(suggestionID string) string {
	return "support:" + suggestionID
}

// replay returns the support row recorded under (scope, key), or nil when the
// key is unused or expired.
func (s *SuggestionService) replay(ctx context.Context, db *gorm.DB, scope, key string) (*domain.SuggestionSupport, error) {
	rec, err := repo.GetIdempotency(ctx, db, scope, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sup, err := repo.GetSupport(ctx, db, rec.ResourceID)
	if errors.Is(err, repo.ErrNotFound) {
		// The support was withdrawn since; the key stays spent.
		return nil, ErrSupportNotFound
	}
	return sup, err
}

func (s *SuggestionService) ttl() time.Duration {
	if s.IdempotencyTTL > 0 {
		return s.IdempotencyTTL
	}
	return DefaultIdempotencyTTL
}

func suggestionErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrSuggestionNotFound
	}
	return err
}
