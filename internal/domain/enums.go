package domain

// ContentStatus is the publication state of a CMS content row.
type ContentStatus string

const (
	ContentDraft     ContentStatus = "draft"
	ContentPublished ContentStatus = "published"
	ContentArchived  ContentStatus = "archived"
)

// Valid reports whether s is one of the known content states.
func (s ContentStatus) Valid() bool {
	switch s {
	case ContentDraft, ContentPublished, ContentArchived:
		return true
	}
	return false
}

// TrainingCategory partitions training documents for prompt assembly.
type TrainingCategory string

const (
	CategoryPolicy    TrainingCategory = "policy"
	CategoryFAQ       TrainingCategory = "faq"
	CategoryBiography TrainingCategory = "biography"
	CategorySpeech    TrainingCategory = "speech"
)

// Valid reports whether c is one of the four prompt categories.
func (c TrainingCategory) Valid() bool {
	switch c {
	case CategoryPolicy, CategoryFAQ, CategoryBiography, CategorySpeech:
		return true
	}
	return false
}

// Priority of a citizen suggestion.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// SuggestionStatus tracks a suggestion through review. The usual progression is
// submitted → under_review → approved → implemented, with rejected reachable
// from any state. Transitions are not enforced.
type SuggestionStatus string

const (
	StatusSubmitted   SuggestionStatus = "submitted"
	StatusUnderReview SuggestionStatus = "under_review"
	StatusApproved    SuggestionStatus = "approved"
	StatusImplemented SuggestionStatus = "implemented"
	StatusRejected    SuggestionStatus = "rejected"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusImplemented, StatusRejected:
		return true
	}
	return false
}

// ModerationStatus gates public visibility of feedback.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

func (m ModerationStatus) Valid() bool {
	switch m {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	}
	return false
}
