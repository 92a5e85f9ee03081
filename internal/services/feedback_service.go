// Package services – FeedbackService
//
// This file implements public feedback on policies, suggestions and the site.
// Submissions always enter the moderation queue as pending; only rows a
// moderator approved and the submitter marked public are ever listed
// publicly. Submitter edits cannot touch moderation fields.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/repo"
)

// FeedbackInput is a new piece of feedback. IsPublic defaults to true.
type FeedbackInput struct {
	Type              string  `json:"type"              binding:"required,max=64"`
	TargetID          *string `json:"targetId"          binding:"omitempty,max=64"`
	TargetType        *string `json:"targetType"`
	Rating            *int    `json:"rating"            binding:"omitempty,min=1,max=5"`
	FeedbackText      *string `json:"feedbackText"`
	SubmitterName     *string `json:"submitterName"`
	SubmitterDistrict *string `json:"submitterDistrict"`
	Sentiment         *string `json:"sentiment"`
	IsPublic          *bool   `json:"isPublic"`
}

// FeedbackPatch changes the submitter-owned fields of feedback.
type FeedbackPatch struct {
	Type              *string `json:"type"     binding:"omitempty,max=64"`
	TargetID          *string `json:"targetId" binding:"omitempty,max=64"`
	TargetType        *string `json:"targetType"`
	Rating            *int    `json:"rating"   binding:"omitempty,min=1,max=5"`
	FeedbackText      *string `json:"feedbackText"`
	SubmitterName     *string `json:"submitterName"`
	SubmitterDistrict *string `json:"submitterDistrict"`
	Sentiment         *string `json:"sentiment"`
	IsPublic          *bool   `json:"isPublic"`
}

// ModerationInput is a moderator decision.
type ModerationInput struct {
	Status domain.ModerationStatus `json:"status" binding:"required"`
	Notes  *string                 `json:"moderatorNotes"`
}

// FeedbackService implements feedback submission and moderation.
type FeedbackService struct {
	DB *gorm.DB
}

// ListPublic returns approved public feedback, optionally filtered by type
// and target, newest first.
func (s *FeedbackService) ListPublic(ctx context.Context, typ, targetID string) ([]domain.PublicFeedback, error) {
	return repo.ListPublicFeedback(ctx, s.DB, typ, targetID)
}

// ModerationQueue returns all feedback, optionally of one moderation status.
func (s *FeedbackService) ModerationQueue(ctx context.Context, status string) ([]domain.PublicFeedback, error) {
	status = strings.TrimSpace(status)
	if status != "" && !domain.ModerationStatus(status).Valid() {
		return nil, invalid("status must be one of pending, approved, rejected")
	}
	return repo.ListFeedbackForModeration(ctx, s.DB, status)
}

// Create stores feedback in the pending state.
func (s *FeedbackService) Create(ctx context.Context, in FeedbackInput) (*domain.PublicFeedback, error) {
	if err := requireText("type", &in.Type); err != nil {
		return nil, err
	}
	if err := checkRating(in.Rating); err != nil {
		return nil, err
	}
	text := trimPtr(in.FeedbackText)
	if in.Rating == nil && text == nil {
		return nil, invalid("rating or feedbackText is required")
	}

	f := &domain.PublicFeedback{
		Type:              in.Type,
		TargetID:          trimPtr(in.TargetID),
		TargetType:        trimPtr(in.TargetType),
		Rating:            in.Rating,
		FeedbackText:      text,
		SubmitterName:     trimPtr(in.SubmitterName),
		SubmitterDistrict: trimPtr(in.SubmitterDistrict),
		Sentiment:         trimPtr(in.Sentiment),
		IsPublic:          boolOr(in.IsPublic, true),
		ModerationStatus:  domain.ModerationPending,
	}
	if err := repo.CreatePublicFeedback(ctx, s.DB, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Update applies p and returns the result.
func (s *FeedbackService) Update(ctx context.Context, id string, p FeedbackPatch) (*domain.PublicFeedback, error) {
	up := patch{}
	if err := up.text("type", p.Type); err != nil {
		return nil, err
	}
	if p.Rating != nil {
		if err := checkRating(p.Rating); err != nil {
			return nil, err
		}
		up["rating"] = *p.Rating
	}
	up.optText("target_id", p.TargetID)
	up.optText("target_type", p.TargetType)
	up.optText("feedback_text", p.FeedbackText)
	up.optText("submitter_name", p.SubmitterName)
	up.optText("submitter_district", p.SubmitterDistrict)
	up.optText("sentiment", p.Sentiment)
	if p.IsPublic != nil {
		up["is_public"] = *p.IsPublic
	}
	return s.apply(ctx, id, up)
}

// Moderate records a moderator decision.
func (s *FeedbackService) Moderate(ctx context.Context, id string, in ModerationInput) (*domain.PublicFeedback, error) {
	if !in.Status.Valid() {
		return nil, invalid("status must be one of pending, approved, rejected")
	}
	up := patch{"moderation_status": in.Status}
	up.optText("moderator_notes", in.Notes)
	return s.apply(ctx, id, up)
}

// Delete removes feedback.
func (s *FeedbackService) Delete(ctx context.Context, id string) error {
	return feedbackErr(repo.DeletePublicFeedback(ctx, s.DB, id))
}

func (s *FeedbackService) apply(ctx context.Context, id string, up patch) (*domain.PublicFeedback, error) {
	if len(up) > 0 {
		if err := repo.UpdatePublicFeedback(ctx, s.DB, id, up); err != nil {
			return nil, feedbackErr(err)
		}
	}
	f, err := repo.GetPublicFeedback(ctx, s.DB, id)
	if err != nil {
		return nil, feedbackErr(err)
	}
	return f, nil
}

func checkRating(r *int) error {
	if r != nil && (*r < 1 || *r > 5) {
		return invalid("rating must be between 1 and 5")
	}
	return nil
}

func feedbackErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrFeedbackNotFound
	}
	return err
}
