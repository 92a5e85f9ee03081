// Package domain defines the persistence models for the campaign site:
// contact inquiries, chat transcripts, CMS pages, assistant training material,
// and the citizen participation portal (suggestions, support, feedback and
// implementation progress). These types are mapped with GORM and shared by the
// repository, service and HTTP layers.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Inquiry is a contact-form submission. It is created once and only its
// Responded flag changes afterwards.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Name / Phone / District / Message: submitted form values.
//   - Responded: false on creation, flipped by an explicit admin action.
//   - CreatedAt: managed by GORM.
type Inquiry struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"      gorm:"type:varchar(100);not null"`
	Phone     string    `json:"phone"     gorm:"type:varchar(32);not null"`
	District  string    `json:"district"  gorm:"type:varchar(64);not null"`
	Message   string    `json:"message"   gorm:"type:text;not null"`
	Responded bool      `json:"responded" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// TableName returns the database table name for Inquiry.
func (Inquiry) TableName() string { return "inquiries" }

// ChatMessage is one question/answer turn of the chat widget. Rows are
// immutable; SessionID groups a conversation and is generated by the client.
//
// Fields:
//   - SessionID: client conversation id (indexed with CreatedAt for transcripts).
//   - UserMessage / AIResponse: the exchange as shown to the user.
//   - Confidence: score attached to the answer, 0.1 for fallback replies.
type ChatMessage struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	SessionID   string    `json:"sessionId"   gorm:"type:varchar(128);not null;index:idx_chat_session,priority:1"`
	UserMessage string    `json:"userMessage" gorm:"type:text;not null"`
	AIResponse  string    `json:"aiResponse"  gorm:"column:ai_response;type:text;not null"`
	Confidence  float64   `json:"confidence"  gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"index:idx_chat_session,priority:2"`
}

// TableName returns the database table name for ChatMessage.
func (ChatMessage) TableName() string { return "chat_messages" }

// CmsContent is an editable page or block of the public site.
//
// Fields:
//   - Type: free-form content kind (e.g. "page", "policy", "notice").
//   - Slug: unique public key; uniqueness is enforced by the store.
//   - Status: draft | published | archived (free-form transitions).
//   - Metadata: arbitrary JSON attached by the editor.
type CmsContent struct {
	ID        string         `json:"id"        gorm:"type:char(36);primaryKey"`
	Type      string         `json:"type"      gorm:"type:varchar(64);not null;index"`
	Title     string         `json:"title"     gorm:"type:varchar(255);not null"`
	Content   string         `json:"content"   gorm:"type:text;not null"`
	Slug      string         `json:"slug"      gorm:"type:varchar(255);not null;uniqueIndex:ux_cms_slug"`
	Status    ContentStatus  `json:"status"    gorm:"type:varchar(16);not null;default:'draft';check:status IN ('draft','published','archived')"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"index"`
}

// TableName returns the database table name for CmsContent.
func (CmsContent) TableName() string { return "cms_contents" }

// AiTrainingDoc is a categorized snippet injected into the assistant prompt.
// Deletion is logical: IsActive=false hides the document everywhere.
type AiTrainingDoc struct {
	ID        string                       `json:"id"        gorm:"type:char(36);primaryKey"`
	Title     string                       `json:"title"     gorm:"type:varchar(255);not null"`
	Content   string                       `json:"content"   gorm:"type:text;not null"`
	Category  TrainingCategory             `json:"category"  gorm:"type:varchar(16);not null;index;check:category IN ('policy','faq','biography','speech')"`
	Tags      datatypes.JSONSlice[string]  `json:"tags"`
	Embedding datatypes.JSONSlice[float64] `json:"embedding,omitempty"`
	IsActive  bool                         `json:"isActive"  gorm:"not null;default:true;index"`
	CreatedAt time.Time                    `json:"createdAt"`
	UpdatedAt time.Time                    `json:"updatedAt" gorm:"index"`
}

// TableName returns the database table name for AiTrainingDoc.
func (AiTrainingDoc) TableName() string { return "ai_training_docs" }

// SpeechTrainingData is a transcribed speech sample. IsValidated is only set
// through the dedicated validate action.
type SpeechTrainingData struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	Text        string    `json:"text"        gorm:"type:text;not null"`
	AudioPath   *string   `json:"audioPath,omitempty"`
	Phonetics   *string   `json:"phonetics,omitempty"`
	Speaker     string    `json:"speaker"     gorm:"type:varchar(100);not null;index"`
	Context     *string   `json:"context,omitempty"`
	IsValidated bool      `json:"isValidated" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName returns the database table name for SpeechTrainingData.
func (SpeechTrainingData) TableName() string { return "speech_training_data" }

// CitizenSuggestion is a proposal submitted through the participation portal.
//
// SupportCount and ViewCount are derived counters. They are changed only by
// the support and view operations, never by a general update, and
// SupportCount always equals the number of SuggestionSupport rows that
// reference the suggestion.
type CitizenSuggestion struct {
	ID                 string                      `json:"id"          gorm:"type:char(36);primaryKey"`
	Title              string                      `json:"title"       gorm:"type:varchar(255);not null"`
	Description        string                      `json:"description" gorm:"type:text;not null"`
	Category           string                      `json:"category"    gorm:"type:varchar(64);not null;index"`
	Priority           Priority                    `json:"priority"    gorm:"type:varchar(16);not null;default:'medium';check:priority IN ('low','medium','high','urgent')"`
	Status             SuggestionStatus            `json:"status"      gorm:"type:varchar(16);not null;default:'submitted';index;check:status IN ('submitted','under_review','approved','implemented','rejected')"`
	SubmitterName      string                      `json:"submitterName"     gorm:"type:varchar(100);not null"`
	SubmitterPhone     *string                     `json:"submitterPhone,omitempty"`
	SubmitterEmail     *string                     `json:"submitterEmail,omitempty"`
	SubmitterDistrict  string                      `json:"submitterDistrict" gorm:"type:varchar(64);not null"`
	IsAnonymous        bool                        `json:"isAnonymous" gorm:"not null;default:false"`
	ExpectedBudget     *string                     `json:"expectedBudget,omitempty"`
	ExpectedTimeline   *string                     `json:"expectedTimeline,omitempty"`
	SupportCount       int                         `json:"supportCount" gorm:"not null;default:0;check:support_count >= 0"`
	ViewCount          int                         `json:"viewCount"    gorm:"not null;default:0;check:view_count >= 0"`
	Tags               datatypes.JSONSlice[string] `json:"tags"`
	AdminNotes         *string                     `json:"adminNotes,omitempty"`
	ImplementationDate *time.Time                  `json:"implementationDate,omitempty"`
	CreatedAt          time.Time                   `json:"createdAt"`
	UpdatedAt          time.Time                   `json:"updatedAt" gorm:"index"`
}

// TableName returns the database table name for CitizenSuggestion.
func (CitizenSuggestion) TableName() string { return "citizen_suggestions" }

// SuggestionSupport is one endorsement of a suggestion.
type SuggestionSupport struct {
	ID                string    `json:"id"           gorm:"type:char(36);primaryKey"`
	SuggestionID      string    `json:"suggestionId" gorm:"type:char(36);not null;index"`
	SupporterName     *string   `json:"supporterName,omitempty"`
	SupporterPhone    *string   `json:"supporterPhone,omitempty"`
	SupporterDistrict *string   `json:"supporterDistrict,omitempty"`
	SupportType       string    `json:"supportType"  gorm:"type:varchar(32);not null;default:'support'"`
	IsAnonymous       bool      `json:"isAnonymous"  gorm:"not null;default:false"`
	Comment           *string   `json:"comment,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`

	Suggestion CitizenSuggestion `json:"-" gorm:"foreignKey:SuggestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for SuggestionSupport.
func (SuggestionSupport) TableName() string { return "suggestion_supports" }

// PublicFeedback is a rating or comment about a policy, suggestion or the
// site itself. Only rows with ModerationStatus=approved (and IsPublic) are
// shown publicly.
type PublicFeedback struct {
	ID                string           `json:"id"               gorm:"type:char(36);primaryKey"`
	Type              string           `json:"type"             gorm:"type:varchar(64);not null;index"`
	TargetID          *string          `json:"targetId,omitempty" gorm:"type:varchar(64);index"`
	TargetType        *string          `json:"targetType,omitempty"`
	Rating            *int             `json:"rating,omitempty" gorm:"check:rating IS NULL OR (rating >= 1 AND rating <= 5)"`
	FeedbackText      *string          `json:"feedbackText,omitempty"`
	SubmitterName     *string          `json:"submitterName,omitempty"`
	SubmitterDistrict *string          `json:"submitterDistrict,omitempty"`
	Sentiment         *string          `json:"sentiment,omitempty"`
	IsPublic          bool             `json:"isPublic"         gorm:"not null"`
	ModerationStatus  ModerationStatus `json:"moderationStatus" gorm:"type:varchar(16);not null;default:'pending';index;check:moderation_status IN ('pending','approved','rejected')"`
	ModeratorNotes    *string          `json:"moderatorNotes,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
}

// TableName returns the database table name for PublicFeedback.
func (PublicFeedback) TableName() string { return "public_feedback" }

// ImplementationUpdate is an append-only progress entry for a suggestion or
// policy. It never changes the suggestion's own status.
type ImplementationUpdate struct {
	ID                 string         `json:"id"                 gorm:"type:char(36);primaryKey"`
	SuggestionID       *string        `json:"suggestionId,omitempty" gorm:"type:char(36);index"`
	PolicyID           *string        `json:"policyId,omitempty" gorm:"type:varchar(64)"`
	UpdateType         string         `json:"updateType"         gorm:"type:varchar(32);not null"`
	Title              string         `json:"title"              gorm:"type:varchar(255);not null"`
	Description        string         `json:"description"        gorm:"type:text;not null"`
	ProgressPercentage int            `json:"progressPercentage" gorm:"not null;default:0;check:progress_percentage >= 0 AND progress_percentage <= 100"`
	BudgetUsed         *string        `json:"budgetUsed,omitempty"`
	ExpectedCompletion *time.Time     `json:"expectedCompletion,omitempty"`
	ActualCompletion   *time.Time     `json:"actualCompletion,omitempty"`
	Attachments        datatypes.JSON `json:"attachments,omitempty"`
	IsPublic           bool           `json:"isPublic"           gorm:"not null"`
	CreatedBy          string         `json:"createdBy"          gorm:"type:varchar(100);not null"`
	CreatedAt          time.Time      `json:"createdAt"          gorm:"index"`

	Suggestion *CitizenSuggestion `json:"-" gorm:"foreignKey:SuggestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the database table name for ImplementationUpdate.
func (ImplementationUpdate) TableName() string { return "implementation_updates" }
