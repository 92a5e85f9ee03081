package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhd0331/JinanCampaign/internal/services"
)

// ListUpdates godoc
// @ID          listUpdates
// @Summary     List implementation progress entries
// @Tags        Implementation Updates
// @Produce     json
// @Param       suggestionId  query     string  false  "Only entries for this suggestion"
// @Success     200           {object}  map[string]interface{}  "{success, updates}"
// @Router      /api/implementation-updates [get]
func (h *Handlers) ListUpdates(c *gin.Context) {
	items, err := h.updates.List(c.Request.Context(), c.Query("suggestionId"))
	if err != nil {
		respond(c, err, "failed to list implementation updates")
		return
	}
	ok(c, http.StatusOK, "updates", items)
}

// CreateUpdate godoc
// @ID          createUpdate
// @Summary     Append an implementation progress entry
// @Tags        Implementation Updates
// @Accept      json
// @Produce     json
// @Param       body  body      services.ImplementationUpdateInput  true  "Progress entry"
// @Success     201   {object}  map[string]interface{}  "{success, update}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse  "Referenced suggestion does not exist"
// @Router      /api/implementation-updates [post]
func (h *Handlers) CreateUpdate(c *gin.Context) {
	var in services.ImplementationUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	u, err := h.updates.Create(c.Request.Context(), in)
	if err != nil {
		respond(c, err, "failed to create implementation update")
		return
	}
	ok(c, http.StatusCreated, "update", u)
}
