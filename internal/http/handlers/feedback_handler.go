// Public-feedback HTTP handlers.
//
// Public listing only ever shows approved feedback marked public; the
// moderation queue shows everything and is meant for the back office.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhd0331/JinanCampaign/internal/services"
)

// ListFeedback godoc
// @ID          listFeedback
// @Summary     List approved public feedback
// @Tags        Public Feedback
// @Produce     json
// @Param       type      query     string  false  "Feedback type"
// @Param       targetId  query     string  false  "Target id"
// @Success     200       {object}  map[string]interface{}  "{success, feedback}"
// @Router      /api/public-feedback [get]
func (h *Handlers) ListFeedback(c *gin.Context) {
	items, err := h.feedback.ListPublic(c.Request.Context(), c.Query("type"), c.Query("targetId"))
	if err != nil {
		respond(c, err, "failed to list feedback")
		return
	}
	ok(c, http.StatusOK, "feedback", items)
}

// ModerationQueue godoc
// @ID          moderationQueue
// @Summary     Feedback moderation queue
// @Tags        Public Feedback
// @Produce     json
// @Param       status  query     string  false  "pending | approved | rejected"
// @Success     200     {object}  map[string]interface{}  "{success, feedback}"
// @Failure     400     {object}  handlers.ErrorResponse
// @Router      /api/public-feedback/moderation [get]
func (h *Handlers) ModerationQueue(c *gin.Context) {
	items, err := h.feedback.ModerationQueue(c.Request.Context(), c.Query("status"))
	if err != nil {
		respond(c, err, "failed to list moderation queue")
		return
	}
	ok(c, http.StatusOK, "feedback", items)
}

// CreateFeedback godoc
// @ID          createFeedback
// @Summary     Submit feedback
// @Description New feedback always starts in moderation status "pending".
// @Tags        Public Feedback
// @Accept      json
// @Produce     json
// @Param       body  body      services.FeedbackInput  true  "Feedback"
// @Success     201   {object}  map[string]interface{}  "{success, feedback}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Router      /api/public-feedback [post]
func (h *Handlers) CreateFeedback(c *gin.Context) {
	var in services.FeedbackInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	fb, err := h.feedback.Create(c.Request.Context(), in)
	if err != nil {
		respond(c, err, "failed to create feedback")
		return
	}
	ok(c, http.StatusCreated, "feedback", fb)
}

// UpdateFeedback godoc
// @ID          updateFeedback
// @Summary     Edit feedback
// @Tags        Public Feedback
// @Accept      json
// @Produce     json
// @Param       id    path      string                  true  "Feedback ID"  format(uuid)
// @Param       body  body      services.FeedbackPatch  true  "Fields to change"
// @Success     200   {object}  map[string]interface{}  "{success, feedback}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Router      /api/public-feedback/{id} [put]
func (h *Handlers) UpdateFeedback(c *gin.Context) {
	var p services.FeedbackPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		badBody(c, err)
		return
	}
	fb, err := h.feedback.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respond(c, err, "failed to update feedback")
		return
	}
	ok(c, http.StatusOK, "feedback", fb)
}

// ModerateFeedback godoc
// @ID          moderateFeedback
// @Summary     Record a moderation decision
// @Tags        Public Feedback
// @Accept      json
// @Produce     json
// @Param       id    path      string                    true  "Feedback ID"  format(uuid)
// @Param       body  body      services.ModerationInput  true  "Decision"
// @Success     200   {object}  map[string]interface{}  "{success, feedback}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Router      /api/public-feedback/{id}/moderate [post]
func (h *Handlers) ModerateFeedback(c *gin.Context) {
	var in services.ModerationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	fb, err := h.feedback.Moderate(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respond(c, err, "failed to moderate feedback")
		return
	}
	ok(c, http.StatusOK, "feedback", fb)
}

// DeleteFeedback godoc
// @ID          deleteFeedback
// @Summary     Delete feedback
// @Tags        Public Feedback
// @Produce     json
// @Param       id   path      string  true  "Feedback ID"  format(uuid)
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /api/public-feedback/{id} [delete]
func (h *Handlers) DeleteFeedback(c *gin.Context) {
	if err := h.feedback.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond(c, err, "failed to delete feedback")
		return
	}
	done(c)
}
