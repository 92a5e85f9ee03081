// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and give clients a stable taxonomy next to
// the human-readable message. Generic codes mirror HTTP status semantics;
// the rest name a business failure that status alone cannot convey.
//
// Handlers translate service errors with respond() and binding failures with
// badBody(), so each endpoint only names its own not-found message.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mhd0331/JinanCampaign/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeValidation       = "validation_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeUnavailable      = "service_unavailable"

	// Domain-specific:
	ErrCodeMissingChatFields = "missing_chat_fields"
	ErrCodeSlugTaken         = "slug_taken"
	ErrCodeMissingQuery      = "missing_query"
)

// notFound lists the service sentinels that map to 404.
var notFound = []error{
	services.ErrInquiryNotFound,
	services.ErrContentNotFound,
	services.ErrTrainingDocNotFound,
	services.ErrSpeechNotFound,
	services.ErrSuggestionNotFound,
	services.ErrSupportNotFound,
	services.ErrFeedbackNotFound,
}

// respond maps a service error to the matching HTTP failure. Unknown errors
// become a 500 whose detail is only logged.
func respond(c *gin.Context, err error, internalMsg string) {
	for _, nf := range notFound {
		if errors.Is(err, nf) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, nf.Error())
			return
		}
	}
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
	case errors.Is(err, services.ErrMissingChatFields):
		fail(c, http.StatusBadRequest, ErrCodeMissingChatFields, err.Error())
	case errors.Is(err, services.ErrEmptyQuery):
		fail(c, http.StatusBadRequest, ErrCodeMissingQuery, err.Error())
	case errors.Is(err, services.ErrSlugTaken):
		fail(c, http.StatusConflict, ErrCodeSlugTaken, err.Error())
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, internalMsg)
	}
}

// badBody reports a JSON binding failure. Validator errors are rendered as
// "field: rule" pairs so the client knows which input to fix.
func badBody(c *gin.Context, err error) {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		parts := make([]string, 0, len(ves))
		for _, fe := range ves {
			parts = append(parts, describeField(fe))
		}
		fail(c, http.StatusBadRequest, ErrCodeValidation, strings.Join(parts, "; "))
		return
	}
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
}

// describeField renders one validator failure using the JSON field name.
func describeField(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "email":
		return name + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
	}
}

// init makes validator report JSON field names ("sessionId" rather than
// "SessionID") so messages match what the client sent.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	}
}
