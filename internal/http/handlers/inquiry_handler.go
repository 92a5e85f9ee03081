// Inquiry HTTP handlers.
//
//   - POST /api/inquiries                 (contact form)
//   - GET  /api/inquiries                 (admin list, newest first)
//   - POST /api/inquiries/{id}/responded  (mark answered)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhd0331/JinanCampaign/internal/services"
)

// CreateInquiry godoc
// @ID          createInquiry
// @Summary     Submit the contact form
// @Tags        Inquiries
// @Accept      json
// @Produce     json
// @Param       body  body      services.InquiryInput  true  "Inquiry"
// @Success     201   {object}  map[string]interface{}  "{success, inquiry}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     429   {object}  handlers.ErrorResponse
// @Failure     500   {object}  handlers.ErrorResponse
// @Router      /api/inquiries [post]
func (h *Handlers) CreateInquiry(c *gin.Context) {
	var in services.InquiryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	inq, err := h.inquiries.Create(c.Request.Context(), in)
	if err != nil {
		respond(c, err, "failed to save inquiry")
		return
	}
	ok(c, http.StatusCreated, "inquiry", inq)
}

// ListInquiries godoc
// @ID          listInquiries
// @Summary     List inquiries
// @Tags        Inquiries
// @Produce     json
// @Success     200  {object}  map[string]interface{}  "{success, inquiries}"
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /api/inquiries [get]
func (h *Handlers) ListInquiries(c *gin.Context) {
	items, err := h.inquiries.List(c.Request.Context())
	if err != nil {
		respond(c, err, "failed to list inquiries")
		return
	}
	ok(c, http.StatusOK, "inquiries", items)
}

// MarkInquiryResponded godoc
// @ID          markInquiryResponded
// @Summary     Mark an inquiry as answered
// @Tags        Inquiries
// @Produce     json
// @Param       id   path      string  true  "Inquiry ID"  format(uuid)
// @Success     200  {object}  map[string]interface{}  "{success, inquiry}"
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /api/inquiries/{id}/responded [post]
func (h *Handlers) MarkInquiryResponded(c *gin.Context) {
	inq, err := h.inquiries.MarkResponded(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond(c, err, "failed to update inquiry")
		return
	}
	ok(c, http.StatusOK, "inquiry", inq)
}
