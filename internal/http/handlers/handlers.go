// Package handlers – service contracts and wiring.
//
// Handlers are transport-thin: they bind and validate input, call an
// application service, and translate the result into the response envelope.
// Each service is consumed through a narrow interface so tests can stub it.
package handlers

import (
	"context"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/services"
	"github.com/mhd0331/JinanCampaign/internal/trainingctx"
)

// InquiryService records contact-form submissions.
type InquiryService interface {
	Create(ctx context.Context, in services.InquiryInput) (*domain.Inquiry, error)
	List(ctx context.Context) ([]domain.Inquiry, error)
	MarkResponded(ctx context.Context, id string) (*domain.Inquiry, error)
}

// ChatService answers chat-widget questions and replays idempotent retries.
type ChatService interface {
	Answer(ctx context.Context, message, sessionID string) (*services.ChatReply, error)
	History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
	Replay(ctx context.Context, key string) (*services.ChatReply, error)
	Remember(ctx context.Context, key, messageID string)
}

// ContentService manages CMS pages.
type ContentService interface {
	List(ctx context.Context, typ, status string) ([]domain.CmsContent, error)
	Version(ctx context.Context, typ, status string) (services.ContentVersion, error)
	Create(ctx context.Context, in services.CmsInput) (*domain.CmsContent, error)
	GetBySlug(ctx context.Context, slug string) (*domain.CmsContent, error)
	Update(ctx context.Context, id string, p services.CmsPatch) (*domain.CmsContent, error)
	Delete(ctx context.Context, id string) error
}

// TrainingService manages assistant training documents.
type TrainingService interface {
	List(ctx context.Context, category string) ([]domain.AiTrainingDoc, error)
	Create(ctx context.Context, in services.TrainingDocInput) (*domain.AiTrainingDoc, error)
	Update(ctx context.Context, id string, p services.TrainingDocPatch) (*domain.AiTrainingDoc, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string) ([]domain.AiTrainingDoc, error)
	Similar(ctx context.Context, q string, limit int) ([]trainingctx.Match, error)
	Stats(ctx context.Context) (*services.TrainingStats, error)
}

// SpeechService manages speech training samples.
type SpeechService interface {
	List(ctx context.Context, speaker string) ([]domain.SpeechTrainingData, error)
	Create(ctx context.Context, in services.SpeechInput) (*domain.SpeechTrainingData, error)
	Update(ctx context.Context, id string, p services.SpeechPatch) (*domain.SpeechTrainingData, error)
	Validate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// SuggestionService runs the citizen suggestion lifecycle and its support ledger.
type SuggestionService interface {
	Create(ctx context.Context, in services.SuggestionInput) (*domain.CitizenSuggestion, error)
	List(ctx context.Context, category, status string) ([]domain.CitizenSuggestion, error)
	Search(ctx context.Context, q string) ([]domain.CitizenSuggestion, error)
	Get(ctx context.Context, id string) (*domain.CitizenSuggestion, error)
	Update(ctx context.Context, id string, p services.SuggestionPatch) (*domain.CitizenSuggestion, error)
	Delete(ctx context.Context, id string) error
	ListSupport(ctx context.Context, id string) ([]domain.SuggestionSupport, error)
	AddSupport(ctx context.Context, suggestionID string, in services.SupportInput, idemKey string) (*domain.SuggestionSupport, bool, error)
	RemoveSupport(ctx context.Context, supportID string) error
}

// FeedbackService manages public feedback and its moderation.
type FeedbackService interface {
	ListPublic(ctx context.Context, typ, targetID string) ([]domain.PublicFeedback, error)
	ModerationQueue(ctx context.Context, status string) ([]domain.PublicFeedback, error)
	Create(ctx context.Context, in services.FeedbackInput) (*domain.PublicFeedback, error)
	Update(ctx context.Context, id string, p services.FeedbackPatch) (*domain.PublicFeedback, error)
	Moderate(ctx context.Context, id string, in services.ModerationInput) (*domain.PublicFeedback, error)
	Delete(ctx context.Context, id string) error
}

// UpdateService appends implementation progress entries.
type UpdateService interface {
	List(ctx context.Context, suggestionID string) ([]domain.ImplementationUpdate, error)
	Create(ctx context.Context, in services.ImplementationUpdateInput) (*domain.ImplementationUpdate, error)
}

// Deps lists the services behind the handlers. Ping reports database
// reachability for /health; Version is echoed there.
type Deps struct {
	Inquiries   InquiryService
	Chat        ChatService
	Content     ContentService
	Training    TrainingService
	Speech      SpeechService
	Suggestions SuggestionService
	Feedback    FeedbackService
	Updates     UpdateService

	Ping    func(ctx context.Context) error
	Version string
}

// Handlers groups every HTTP endpoint of the API.
type Handlers struct {
	inquiries   InquiryService
	chat        ChatService
	content     ContentService
	training    TrainingService
	speech      SpeechService
	suggestions SuggestionService
	feedback    FeedbackService
	updates     UpdateService

	ping    func(ctx context.Context) error
	version string
}

// New constructs and returns a Handlers instance bound to the given services.
func New(d Deps) *Handlers {
	return &Handlers{
		inquiries:   d.Inquiries,
		chat:        d.Chat,
		content:     d.Content,
		training:    d.Training,
		speech:      d.Speech,
		suggestions: d.Suggestions,
		feedback:    d.Feedback,
		updates:     d.Updates,
		ping:        d.Ping,
		version:     d.Version,
	}
}
