package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/repo"
)

// InquiryInput is a contact-form submission.
type InquiryInput struct {
	Name     string `json:"name"     binding:"required,max=100"`
	Phone    string `json:"phone"    binding:"required,max=32"`
	District string `json:"district" binding:"required,max=64"`
	Message  string `json:"message"  binding:"required"`
}

// InquiryService stores contact-form submissions for the campaign office.
type InquiryService struct {
	DB *gorm.DB
}

// Create stores a new inquiry with Responded=false.
func (s *InquiryService) Create(ctx context.Context, in InquiryInput) (*domain.Inquiry, error) {
	if err := firstErr(
		requireText("name", &in.Name),
		requireText("phone", &in.Phone),
		requireText("district", &in.District),
		requireText("message", &in.Message),
	); err != nil {
		return nil, err
	}
	return repo.CreateInquiry(ctx, s.DB, in.Name, in.Phone, in.District, in.Message)
}

// List returns all inquiries, newest first.
func (s *InquiryService) List(ctx context.Context) ([]domain.Inquiry, error) {
	return repo.ListInquiries(ctx, s.DB)
}

// MarkResponded flags an inquiry as answered and returns the updated row.
func (s *InquiryService) MarkResponded(ctx context.Context, id string) (*domain.Inquiry, error) {
	if err := repo.MarkInquiryResponded(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	return repo.GetInquiry(ctx, s.DB, id)
}
