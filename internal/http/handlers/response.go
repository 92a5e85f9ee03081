// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response envelope shared by every endpoint. Success
// bodies carry "success": true and the payload under a named key; failures
// carry "success": false, a human-readable error, a stable machine-readable
// code and the request correlation ID.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "success": false,
//	  "error": "suggestion not found",
//	  "code": "not_found",
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000"
//	}
//
// Example success response:
//
//	HTTP/1.1 201 Created
//	{ "success": true, "inquiry": { "id": "…", "name": "홍길동", … } }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhd0331/JinanCampaign/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// This struct is used in OpenAPI documentation via Swagger annotations.
type ErrorResponse struct {
	Success bool `json:"success" example:"false"`
	// Human-readable message (safe to show to users)
	Error string `json:"error" example:"suggestion not found"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// SuccessResponse documents the envelope of bodiless successes (deletes).
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// fail aborts the request with the error envelope. Server errors (>=500) are
// logged with the request-scoped logger; the client only sees msg.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		ev := middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code)
		if last := c.Errors.Last(); last != nil {
			ev = ev.Err(last.Err)
		}
		ev.Msg(msg)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Success:   false,
		Error:     msg,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// Fail is the exported variant of fail() for the router's fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes {"success": true, key: value}.
func ok(c *gin.Context, status int, key string, value any) {
	c.JSON(status, gin.H{"success": true, key: value})
}

// done writes {"success": true} for operations without a payload.
func done(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
