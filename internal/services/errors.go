// Package services defines the business logic of the campaign backend: the
// chat assistant, the citizen participation portal and the editorial
// back office. This file centralizes service-level error values so that they
// can be consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer.
package services

import "errors"

// ErrInvalidInput wraps every field-level validation failure. The wrapped
// message names the field, e.g. "invalid input: title is required".
var ErrInvalidInput = errors.New("invalid input")

// Chat-related errors.
var (
	// ErrMissingChatFields is returned when message or sessionId is blank.
	ErrMissingChatFields = errors.New("message and sessionId are required")
)

// Not-found errors, one per resource so handlers can phrase the response.
var (
	ErrInquiryNotFound     = errors.New("inquiry not found")
	ErrContentNotFound     = errors.New("content not found")
	ErrTrainingDocNotFound = errors.New("training document not found")
	ErrSpeechNotFound      = errors.New("speech sample not found")
	ErrSuggestionNotFound  = errors.New("suggestion not found")
	ErrSupportNotFound     = errors.New("support not found")
	ErrFeedbackNotFound    = errors.New("feedback not found")
)

var (
	// ErrSlugTaken is returned when a CMS slug is already used by another row.
	ErrSlugTaken = errors.New("slug already exists")

	// ErrEmptyQuery is returned by search operations called without a query.
	ErrEmptyQuery = errors.New("search query is required")
)
