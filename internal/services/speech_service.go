package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/repo"
)

// SpeechInput creates a speech sample.
type SpeechInput struct {
	Text      string  `json:"text"      binding:"required"`
	AudioPath *string `json:"audioPath"`
	Phonetics *string `json:"phonetics"`
	Speaker   string  `json:"speaker"   binding:"required,max=100"`
	Context   *string `json:"context"`
}

// SpeechPatch changes a speech sample; nil means unchanged. Validation state
// is only changed through Validate.
type SpeechPatch struct {
	Text      *string `json:"text"`
	AudioPath *string `json:"audioPath"`
	Phonetics *string `json:"phonetics"`
	Speaker   *string `json:"speaker" binding:"omitempty,max=100"`
	Context   *string `json:"context"`
}

// SpeechService manages transcribed speech samples.
type SpeechService struct {
	DB *gorm.DB
}

// List returns samples, optionally for one speaker, newest first.
func (s *SpeechService) List(ctx context.Context, speaker string) ([]domain.SpeechTrainingData, error) {
	return repo.ListSpeechData(ctx, s.DB, speaker)
}

// Create stores an unvalidated sample.
func (s *SpeechService) Create(ctx context.Context, in SpeechInput) (*domain.SpeechTrainingData, error) {
	if err := firstErr(
		requireText("text", &in.Text),
		requireText("speaker", &in.Speaker),
	); err != nil {
		return nil, err
	}
	d := &domain.SpeechTrainingData{
		Text:      in.Text,
		AudioPath: trimPtr(in.AudioPath),
		Phonetics: trimPtr(in.Phonetics),
		Speaker:   in.Speaker,
		Context:   trimPtr(in.Context),
	}
	if err := repo.CreateSpeechData(ctx, s.DB, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Update applies p and returns the result.
func (s *SpeechService) Update(ctx context.Context, id string, p SpeechPatch) (*domain.SpeechTrainingData, error) {
	up := patch{}
	if err := firstErr(
		up.text("text", p.Text),
		up.text("speaker", p.Speaker),
	); err != nil {
		return nil, err
	}
	up.optText("audio_path", p.AudioPath)
	up.optText("phonetics", p.Phonetics)
	up.optText("context", p.Context)

	if len(up) > 0 {
		if err := repo.UpdateSpeechData(ctx, s.DB, id, up); err != nil {
			return nil, speechErr(err)
		}
	}
	d, err := repo.GetSpeechData(ctx, s.DB, id)
	if err != nil {
		return nil, speechErr(err)
	}
	return d, nil
}

// Validate marks a sample as reviewed.
func (s *SpeechService) Validate(ctx context.Context, id string) error {
	return speechErr(repo.ValidateSpeechData(ctx, s.DB, id))
}

// Delete removes a sample.
func (s *SpeechService) Delete(ctx context.Context, id string) error {
	return speechErr(repo.DeleteSpeechData(ctx, s.DB, id))
}

func speechErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrSpeechNotFound
	}
	return err
}
