// Citizen-suggestion HTTP handlers.
//
//   - GET    /api/citizen-suggestions             (list, filter by category/status)
//   - POST   /api/citizen-suggestions             (submit)
//   - GET    /api/citizen-suggestions/search      (title/description search)
//   - GET    /api/citizen-suggestions/{id}        (read, counts a view)
//   - PUT    /api/citizen-suggestions/{id}        (admin patch)
//   - DELETE /api/citizen-suggestions/{id}
//   - GET    /api/citizen-suggestions/{id}/support
//   - POST   /api/citizen-suggestions/{id}/support (idempotent with Idempotency-Key)
//   - DELETE /api/suggestion-support/{id}
//
// Support count and view count are never accepted from a client; they only
// move through the support and read endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhd0331/JinanCampaign/internal/http/middleware"
	"github.com/mhd0331/JinanCampaign/internal/services"
)

// ListSuggestions godoc
// @ID          listSuggestions
// @Summary     List citizen suggestions
// @Tags        Citizen Suggestions
// @Produce     json
// @Param       category  query     string  false  "Category"
// @Param       status    query     string  false  "submitted | under_review | approved | implemented | rejected"
// @Success     200       {object}  map[string]interface{}  "{success, suggestions}"
// @Failure     400       {object}  handlers.ErrorResponse
// @Router      /api/citizen-suggestions [get]
func (h *Handlers) ListSuggestions(c *gin.Context) {
	items, err := h.suggestions.List(c.Request.Context(), c.Query("category"), c.Query("status"))
	if err != nil {
		respond(c, err, "failed to list suggestions")
		return
	}
	ok(c, http.StatusOK, "suggestions", items)
}

// CreateSuggestion godoc
// @ID          createSuggestion
// @Summary     Submit a citizen suggestion
// @Tags        Citizen Suggestions
// @Accept      json
// @Produce     json
// @Param       body  body      services.SuggestionInput  true  "Suggestion"
// @Success     201   {object}  map[string]interface{}  "{success, suggestion}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Router      /api/citizen-suggestions [post]
func (h *Handlers) CreateSuggestion(c *gin.Context) {
	var in services.SuggestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	s, err := h.suggestions.Create(c.Request.Context(), in)
	if err != nil {
		respond(c, err, "failed to create suggestion")
		return
	}
	ok(c, http.StatusCreated, "suggestion", s)
}

// SearchSuggestions godoc
// @ID          searchSuggestions
// @Summary     Search citizen suggestions
// @Tags        Citizen Suggestions
// @Produce     json
// @Param       q    query     string  true  "Search text"
// @Success     200  {object}  map[string]interface{}  "{success, suggestions}"
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /api/citizen-suggestions/search [get]
func (h *Handlers) SearchSuggestions(c *gin.Context) {
	items, err := h.suggestions.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respond(c, err, "failed to search suggestions")
		return
	}
	ok(c, http.StatusOK, "suggestions", items)
}

// GetSuggestion godoc
// @ID          getSuggestion
// @Summary     Read a suggestion
// @Description Each successful read increments the view count by one.
// @Tags        Citizen Suggestions
// @Produce     json
// @Param       id   path      string  true  "Suggestion ID"  format(uuid)
// @Success     200  {object}  map[string]interface{}  "{success, suggestion}"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /api/citizen-suggestions/{id} [get]
func (h *Handlers) GetSuggestion(c *gin.Context) {
	s, err := h.suggestions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond(c, err, "failed to load suggestion")
		return
	}
	ok(c, http.StatusOK, "suggestion", s)
}

// UpdateSuggestion godoc
// @ID          updateSuggestion
// @Summary     Update a suggestion
// @Tags        Citizen Suggestions
// @Accept      json
// @Produce     json
// @Param       id    path      string                    true  "Suggestion ID"  format(uuid)
// @Param       body  body      services.SuggestionPatch  true  "Fields to change"
// @Success     200   {object}  map[string]interface{}  "{success, suggestion}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Router      /api/citizen-suggestions/{id} [put]
func (h *Handlers) UpdateSuggestion(c *gin.Context) {
	var p services.SuggestionPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		badBody(c, err)
		return
	}
	s, err := h.suggestions.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respond(c, err, "failed to update suggestion")
		return
	}
	ok(c, http.StatusOK, "suggestion", s)
}

// DeleteSuggestion godoc
// @ID          deleteSuggestion
// @Summary     Delete a suggestion and its support
// @Tags        Citizen Suggestions
// @Produce     json
// @Param       id   path      string  true  "Suggestion ID"  format(uuid)
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /api/citizen-suggestions/{id} [delete]
func (h *Handlers) DeleteSuggestion(c *gin.Context) {
	if err := h.suggestions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond(c, err, "failed to delete suggestion")
		return
	}
	done(c)
}

// ListSupport godoc
// @ID          listSupport
// @Summary     List support for a suggestion
// @Tags        Citizen Suggestions
// @Produce     json
// @Param       id   path      string  true  "Suggestion ID"  format(uuid)
// @Success     200  {object}  map[string]interface{}  "{success, support}"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /api/citizen-suggestions/{id}/support [get]
func (h *Handlers) ListSupport(c *gin.Context) {
	items, err := h.suggestions.ListSupport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond(c, err, "failed to list support")
		return
	}
	ok(c, http.StatusOK, "support", items)
}

// AddSupport godoc
// @ID          addSupport
// @Summary     Support a suggestion
// @Description Records one support row and increments the suggestion's support count atomically.
// @Description With an Idempotency-Key, retries return the first support row with `Idempotency-Replayed: true`.
// @Tags        Citizen Suggestions
// @Accept      json
// @Produce     json
// @Param       id               path      string                 true   "Suggestion ID"  format(uuid)
// @Param       Idempotency-Key  header    string                 false  "Idempotency key for safe retries"
// @Param       body             body      services.SupportInput  true   "Supporter"
// @Success     201              {object}  map[string]interface{}  "{success, support}"
// @Success     200              {object}  map[string]interface{}  "{success, support} (replayed)"
// @Header      200              {string}  Idempotency-Replayed  "true when served from a previous request"
// @Failure     400              {object}  handlers.ErrorResponse
// @Failure     404              {object}  handlers.ErrorResponse
// @Router      /api/citizen-suggestions/{id}/support [post]
func (h *Handlers) AddSupport(c *gin.Context) {
	id := c.Param("id")

	var in services.SupportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}

	// Only a key validated for this suggestion's scope is honored.
	var idemKey string
	if key, has := middleware.GetIdempotencyKey(c); has && middleware.GetIdempotencyScope(c) == services.SupportScope(id) {
		idemKey = key
	}

	sup, replayed, err := h.suggestions.AddSupport(c.Request.Context(), id, in, idemKey)
	if err != nil {
		respond(c, err, "failed to add support")
		return
	}
	if replayed {
		c.Header(middleware.HeaderIdempotencyReplayed, "true")
		ok(c, http.StatusOK, "support", sup)
		return
	}
	ok(c, http.StatusCreated, "support", sup)
}

// RemoveSupport godoc
// @ID          removeSupport
// @Summary     Withdraw a support row
// @Tags        Citizen Suggestions
// @Produce     json
// @Param       id   path      string  true  "Support ID"  format(uuid)
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /api/suggestion-support/{id} [delete]
func (h *Handlers) RemoveSupport(c *gin.Context) {
	if err := h.suggestions.RemoveSupport(c.Request.Context(), c.Param("id")); err != nil {
		respond(c, err, "failed to remove support")
		return
	}
	done(c)
}
