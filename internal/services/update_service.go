package services

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/repo"
)

// ImplementationUpdateInput is a new progress entry.
type ImplementationUpdateInput struct {
	SuggestionID       *string        `json:"suggestionId"`
	PolicyID           *string        `json:"policyId"           binding:"omitempty,max=64"`
	UpdateType         string         `json:"updateType"         binding:"required,max=32"`
	Title              string         `json:"title"              binding:"required,max=255"`
	Description        string         `json:"description"        binding:"required"`
	ProgressPercentage int            `json:"progressPercentage" binding:"min=0,max=100"`
	BudgetUsed         *string        `json:"budgetUsed"`
	ExpectedCompletion *time.Time     `json:"expectedCompletion"`
	ActualCompletion   *time.Time     `json:"actualCompletion"`
	Attachments        datatypes.JSON `json:"attachments" swaggertype:"array,object"`
	IsPublic           *bool          `json:"isPublic"`
	CreatedBy          string         `json:"createdBy"          binding:"required,max=100"`
}

// UpdateService records implementation progress. Entries are append-only and
// never change the status of the suggestion they refer to.
type UpdateService struct {
	DB *gorm.DB
}

// List returns progress entries, optionally for one suggestion, newest first.
func (s *UpdateService) List(ctx context.Context, suggestionID string) ([]domain.ImplementationUpdate, error) {
	return repo.ListImplementationUpdates(ctx, s.DB, suggestionID)
}

// Create appends a progress entry. A referenced suggestion must exist.
func (s *UpdateService) Create(ctx context.Context, in ImplementationUpdateInput) (*domain.ImplementationUpdate, error) {
	if err := firstErr(
		requireText("updateType", &in.UpdateType),
		requireText("title", &in.Title),
		requireText("description", &in.Description),
		requireText("createdBy", &in.CreatedBy),
	); err != nil {
		return nil, err
	}
	if in.ProgressPercentage < 0 || in.ProgressPercentage > 100 {
		return nil, invalid("progressPercentage must be between 0 and 100")
	}

	u := &domain.ImplementationUpdate{
		SuggestionID:       trimPtr(in.SuggestionID),
		PolicyID:           trimPtr(in.PolicyID),
		UpdateType:         in.UpdateType,
		Title:              in.Title,
		Description:        in.Description,
		ProgressPercentage: in.ProgressPercentage,
		BudgetUsed:         trimPtr(in.BudgetUsed),
		ExpectedCompletion: in.ExpectedCompletion,
		ActualCompletion:   in.ActualCompletion,
		Attachments:        in.Attachments,
		IsPublic:           boolOr(in.IsPublic, true),
		CreatedBy:          in.CreatedBy,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if u.SuggestionID != nil {
			if _, err := repo.GetSuggestion(ctx, tx, *u.SuggestionID); err != nil {
				return suggestionErr(err)
			}
		}
		return repo.CreateImplementationUpdate(ctx, tx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}
