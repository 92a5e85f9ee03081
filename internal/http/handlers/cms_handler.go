// CMS HTTP handlers.
//
//   - GET    /api/cms/content          (list, filter by type/status, weak ETag)
//   - POST   /api/cms/content          (create)
//   - GET    /api/cms/content/{slug}   (read by slug)
//   - PUT    /api/cms/content/{id}     (patch)
//   - DELETE /api/cms/content/{id}     (hard delete)
//
// The list ETag is derived from the row count and newest update time of the
// filtered set, so any write to a matching row changes it.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhd0331/JinanCampaign/internal/services"
)

// contentETag renders the weak validator of a filtered content listing.
func contentETag(typ, status string, v services.ContentVersion) string {
	var ts int64
	if v.MaxUpdatedAt != nil {
		ts = v.MaxUpdatedAt.UnixNano()
	}
	return fmt.Sprintf(`W/"cms:%s:%s:%d:%d"`, typ, status, v.Count, ts)
}

// ListContent godoc
// @ID          listContent
// @Summary     List CMS content
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Tags        CMS
// @Produce     json
// @Param       type           query   string  false  "Content type"
// @Param       status         query   string  false  "draft | published | archived"
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {object}  map[string]interface{}  "{success, content}"
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /api/cms/content [get]
func (h *Handlers) ListContent(c *gin.Context) {
	ctx := c.Request.Context()
	typ, status := c.Query("type"), c.Query("status")

	// ETag pre-check (best effort).
	if v, err := h.content.Version(ctx, typ, status); err == nil {
		etag := contentETag(typ, status, v)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, err := h.content.List(ctx, typ, status)
	if err != nil {
		respond(c, err, "failed to list content")
		return
	}
	ok(c, http.StatusOK, "content", items)
}

// CreateContent godoc
// @ID          createContent
// @Summary     Create CMS content
// @Tags        CMS
// @Accept      json
// @Produce     json
// @Param       body  body      services.CmsInput  true  "Content"
// @Success     201   {object}  map[string]interface{}  "{success, content}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     409   {object}  handlers.ErrorResponse  "Slug already exists"
// @Failure     500   {object}  handlers.ErrorResponse
// @Router      /api/cms/content [post]
func (h *Handlers) CreateContent(c *gin.Context) {
	var in services.CmsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	item, err := h.content.Create(c.Request.Context(), in)
	if err != nil {
		respond(c, err, "failed to create content")
		return
	}
	ok(c, http.StatusCreated, "content", item)
}

// GetContent godoc
// @ID          getContent
// @Summary     Read CMS content by slug
// @Tags        CMS
// @Produce     json
// @Param       key  path      string  true  "Slug"
// @Success     200  {object}  map[string]interface{}  "{success, content}"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /api/cms/content/{key} [get]
func (h *Handlers) GetContent(c *gin.Context) {
	item, err := h.content.GetBySlug(c.Request.Context(), c.Param("key"))
	if err != nil {
		respond(c, err, "failed to load content")
		return
	}
	ok(c, http.StatusOK, "content", item)
}

// UpdateContent godoc
// @ID          updateContent
// @Summary     Update CMS content
// @Tags        CMS
// @Accept      json
// @Produce     json
// @Param       key   path      string             true  "Content ID"  format(uuid)
// @Param       body  body      services.CmsPatch  true  "Fields to change"
// @Success     200   {object}  map[string]interface{}  "{success, content}"
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Failure     409   {object}  handlers.ErrorResponse
// @Router      /api/cms/content/{key} [put]
func (h *Handlers) UpdateContent(c *gin.Context) {
	var p services.CmsPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		badBody(c, err)
		return
	}
	item, err := h.content.Update(c.Request.Context(), c.Param("key"), p)
	if err != nil {
		respond(c, err, "failed to update content")
		return
	}
	ok(c, http.StatusOK, "content", item)
}

// DeleteContent godoc
// @ID          deleteContent
// @Summary     Delete CMS content
// @Tags        CMS
// @Produce     json
// @Param       key  path      string  true  "Content ID"  format(uuid)
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /api/cms/content/{key} [delete]
func (h *Handlers) DeleteContent(c *gin.Context) {
	if err := h.content.Delete(c.Request.Context(), c.Param("key")); err != nil {
		respond(c, err, "failed to delete content")
		return
	}
	done(c)
}
