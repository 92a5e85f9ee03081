package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mhd0331/JinanCampaign/internal/services"
)

// healthTimeout bounds the database ping of /health.
const healthTimeout = 2 * time.Second

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"              example:"healthy"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"            example:"connected"`
	Version   string    `json:"version,omitempty"   example:"1.0.0"`
	Error     string    `json:"error,omitempty"`
}

// Health godoc
// @ID          health
// @Summary     Service health
// @Description Pings the database. Returns 503 when it is unreachable.
// @Tags        System
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Failure     503  {object}  handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Database:  "connected",
		Version:   h.version,
	}
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			resp.Status = "unhealthy"
			resp.Database = "disconnected"
			resp.Error = "database unreachable"
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ListDocuments godoc
// @ID          listDocuments
// @Summary     Downloadable documents
// @Description Returns the static catalog of campaign documents.
// @Tags        Site
// @Produce     json
// @Success     200  {object}  map[string]interface{}  "{success, documents}"
// @Router      /api/documents [get]
func (h *Handlers) ListDocuments(c *gin.Context) {
	ok(c, http.StatusOK, "documents", services.Documents())
}
