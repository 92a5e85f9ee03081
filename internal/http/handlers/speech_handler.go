// Speech-sample HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhd0331/JinanCampaign/internal/services"
)

// ListSpeech godoc
// @ID          listSpeech
// @Summary     List speech samples
// @Tags        Speech Training
// @Produce     json
// @Param       speaker  query     string  false  "Filter by speaker"
// @Success     200      {object}  map[string]interface{}  "{success, data}"
// @Router      /api/speech-training [get]
func (h *Handlers) ListSpeech(c *gin.Context) {
	items, err := h.speech.List(c.Request.Context(), c.Query("speaker"))
	if err != nil {
		respond(c, err, "failed to list speech samples")
		return
	}
	ok(c, http.StatusOK, "data", items)
}

// CreateSpeech godoc
// @ID          createSpeech
// @Summary     Add a speech sample
// @Tags        Speech Training
// @Accept      json
// @Produce     json
// @Param       body  body      services.SpeechInput  true  "Sample"
// @Success     201   {object}  map[string]interface{}  "{success, speech}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Router      /api/speech-training [post]
func (h *Handlers) CreateSpeech(c *gin.Context) {
	var in services.SpeechInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	sp, err := h.speech.Create(c.Request.Context(), in)
	if err != nil {
		respond(c, err, "failed to create speech sample")
		return
	}
	ok(c, http.StatusCreated, "speech", sp)
}

// UpdateSpeech godoc
// @ID          updateSpeech
// @Summary     Update a speech sample
// @Tags        Speech Training
// @Accept      json
// @Produce     json
// @Param       id    path      string                true  "Sample ID"  format(uuid)
// @Param       body  body      services.SpeechPatch  true  "Fields to change"
// @Success     200   {object}  map[string]interface{}  "{success, speech}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Router      /api/speech-training/{id} [put]
func (h *Handlers) UpdateSpeech(c *gin.Context) {
	var p services.SpeechPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		badBody(c, err)
		return
	}
	sp, err := h.speech.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respond(c, err, "failed to update speech sample")
		return
	}
	ok(c, http.StatusOK, "speech", sp)
}

// ValidateSpeech godoc
// @ID          validateSpeech
// @Summary     Mark a speech sample as validated
// @Tags        Speech Training
// @Produce     json
// @Param       id   path      string  true  "Sample ID"  format(uuid)
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /api/speech-training/{id}/validate [post]
func (h *Handlers) ValidateSpeech(c *gin.Context) {
	if err := h.speech.Validate(c.Request.Context(), c.Param("id")); err != nil {
		respond(c, err, "failed to validate speech sample")
		return
	}
	done(c)
}

// DeleteSpeech godoc
// @ID          deleteSpeech
// @Summary     Delete a speech sample
// @Tags        Speech Training
// @Produce     json
// @Param       id   path      string  true  "Sample ID"  format(uuid)
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /api/speech-training/{id} [delete]
func (h *Handlers) DeleteSpeech(c *gin.Context) {
	if err := h.speech.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond(c, err, "failed to delete speech sample")
		return
	}
	done(c)
}
