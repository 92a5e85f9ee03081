// Training-document HTTP handlers (assistant knowledge base).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhd0331/JinanCampaign/internal/services"
	"github.com/mhd0331/JinanCampaign/internal/utils"
)

// ListTrainingDocs godoc
// @ID          listTrainingDocs
// @Summary     List active training documents
// @Tags        AI Training
// @Produce     json
// @Param       category  query     string  false  "policy | faq | biography | speech"
// @Success     200       {object}  map[string]interface{}  "{success, docs}"
// @Failure     400       {object}  handlers.ErrorResponse
// @Router      /api/ai-training/docs [get]
func (h *Handlers) ListTrainingDocs(c *gin.Context) {
	docs, err := h.training.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respond(c, err, "failed to list training documents")
		return
	}
	ok(c, http.StatusOK, "docs", docs)
}

// CreateTrainingDoc godoc
// @ID          createTrainingDoc
// @Summary     Add a training document
// @Tags        AI Training
// @Accept      json
// @Produce     json
// @Param       body  body      services.TrainingDocInput  true  "Document"
// @Success     201   {object}  map[string]interface{}  "{success, doc}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Router      /api/ai-training/docs [post]
func (h *Handlers) CreateTrainingDoc(c *gin.Context) {
	var in services.TrainingDocInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	doc, err := h.training.Create(c.Request.Context(), in)
	if err != nil {
		respond(c, err, "failed to create training document")
		return
	}
	ok(c, http.StatusCreated, "doc", doc)
}

// UpdateTrainingDoc godoc
// @ID          updateTrainingDoc
// @Summary     Update a training document
// @Tags        AI Training
// @Accept      json
// @Produce     json
// @Param       id    path      string                     true  "Document ID"  format(uuid)
// @Param       body  body      services.TrainingDocPatch  true  "Fields to change"
// @Success     200   {object}  map[string]interface{}  "{success, doc}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Router      /api/ai-training/docs/{id} [put]
func (h *Handlers) UpdateTrainingDoc(c *gin.Context) {
	var p services.TrainingDocPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		badBody(c, err)
		return
	}
	doc, err := h.training.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respond(c, err, "failed to update training document")
		return
	}
	ok(c, http.StatusOK, "doc", doc)
}

// DeleteTrainingDoc godoc
// @ID          deleteTrainingDoc
// @Summary     Deactivate a training document
// @Tags        AI Training
// @Produce     json
// @Param       id   path      string  true  "Document ID"  format(uuid)
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /api/ai-training/docs/{id} [delete]
func (h *Handlers) DeleteTrainingDoc(c *gin.Context) {
	if err := h.training.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond(c, err, "failed to delete training document")
		return
	}
	done(c)
}

// SearchTrainingDocs godoc
// @ID          searchTrainingDocs
// @Summary     Substring search over training documents
// @Tags        AI Training
// @Produce     json
// @Param       q    query     string  true  "Search text"
// @Success     200  {object}  map[string]interface{}  "{success, docs}"
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /api/ai-training/search [get]
func (h *Handlers) SearchTrainingDocs(c *gin.Context) {
	docs, err := h.training.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respond(c, err, "failed to search training documents")
		return
	}
	ok(c, http.StatusOK, "docs", docs)
}

// SimilarTrainingDocs godoc
// @ID          similarTrainingDocs
// @Summary     Rank training documents by overlap with a query
// @Tags        AI Training
// @Produce     json
// @Param       q      query     string  true   "Query text"
// @Param       limit  query     int     false  "Maximum results"  minimum(1) maximum(20) default(5)
// @Success     200    {object}  map[string]interface{}  "{success, docs}"
// @Failure     400    {object}  handlers.ErrorResponse
// @Router      /api/ai-training/similar [get]
func (h *Handlers) SimilarTrainingDocs(c *gin.Context) {
	limit := utils.AtoiDefault(c.Query("limit"), 0)
	matches, err := h.training.Similar(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respond(c, err, "failed to rank training documents")
		return
	}
	ok(c, http.StatusOK, "docs", matches)
}

// TrainingStats godoc
// @ID          trainingStats
// @Summary     Training document statistics
// @Tags        AI Training
// @Produce     json
// @Success     200  {object}  map[string]interface{}  "{success, stats}"
// @Router      /api/ai-training/stats [get]
func (h *Handlers) TrainingStats(c *gin.Context) {
	st, err := h.training.Stats(c.Request.Context())
	if err != nil {
		respond(c, err, "failed to compute training statistics")
		return
	}
	ok(c, http.StatusOK, "stats", st)
}
