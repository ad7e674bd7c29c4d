package blog

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"github.com/portfolio-space/core/internal/pkg/response"
)

// Auditor records admin writes.
type Auditor interface {
	Record(c *gin.Context, entity, objectID, repr, action, message string)
}

const auditEntity = "pages"

type Handler struct {
	svc      *Service
	migrator *Migrator
	audit    Auditor
}

func NewHandler(svc *Service, migrator *Migrator, audit Auditor) *Handler {
	return &Handler{svc: svc, migrator: migrator, audit: audit}
}

// RegisterAdminRoutes mounts the page tree admin under /pages.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/pages", authMW)
	g.GET("", h.tree)
	g.POST("", h.create)
	g.POST("/migrate-legacy", h.migrate)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.remove)
	g.GET("/:id/revisions", h.revisions)
	g.POST("/:id/revisions", h.saveRevision)
	g.POST("/:id/revisions/:version/revert", h.revert)
	g.POST("/:id/publish", h.publish)
	g.POST("/:id/unpublish", h.unpublish)
}

func (h *Handler) record(c *gin.Context, id, repr, action, msg string) {
	if h.audit != nil {
		h.audit.Record(c, auditEntity, id, repr, action, msg)
	}
}

func (h *Handler) tree(c *gin.Context) {
	items, err := h.svc.Tree()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

type createRequest struct {
	ParentID string `json:"parent_id"`
	PageInput
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	var (
		page *models.PageModel
		err  error
	)
	if req.ParentID == "" {
		page, err = h.svc.CreateIndex(req.PageInput)
	} else {
		page, err = h.svc.CreatePage(req.ParentID, req.PageInput)
	}
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if page == nil {
		response.NotFoundMsg(c, "parent page not found")
		return
	}
	h.record(c, page.ID, page.Title, models.AdminActionAdd, "created "+page.Type)
	response.Created(c, page)
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.svc.Detail(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if d == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, d)
}

func (h *Handler) remove(c *gin.Context) {
	ok, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c)
		return
	}
	h.record(c, c.Param("id"), c.Param("id"), models.AdminActionDelete, "deleted page and descendants")
	response.NoContent(c)
}

func (h *Handler) revisions(c *gin.Context) {
	page, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if page == nil {
		response.NotFound(c)
		return
	}
	items, err := h.svc.Revisions(page.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) saveRevision(c *gin.Context) {
	var in PageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rev, err := h.svc.SaveRevision(c.Param("id"), in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if rev == nil {
		response.NotFound(c)
		return
	}
	h.record(c, rev.PageID, rev.Content.Title, models.AdminActionChange, "saved revision "+strconv.Itoa(rev.Version))
	response.Created(c, rev)
}

func (h *Handler) revert(c *gin.Context) {
	version, err := strconv.Atoi(c.Param("version"))
	if err != nil || version < 1 {
		response.BadRequest(c, "invalid version")
		return
	}
	rev, err := h.svc.RevertTo(c.Param("id"), version)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if rev == nil {
		response.NotFound(c)
		return
	}
	h.record(c, rev.PageID, rev.Content.Title, models.AdminActionChange, "reverted to revision "+c.Param("version"))
	response.Created(c, rev)
}

func (h *Handler) publish(c *gin.Context) {
	page, err := h.svc.Publish(c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if page == nil {
		response.NotFound(c)
		return
	}
	h.record(c, page.ID, page.Title, models.AdminActionChange, "published")
	response.OK(c, page)
}

func (h *Handler) unpublish(c *gin.Context) {
	page, err := h.svc.Unpublish(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if page == nil {
		response.NotFound(c)
		return
	}
	h.record(c, page.ID, page.Title, models.AdminActionChange, "unpublished")
	response.OK(c, page)
}

type migrateRequest struct {
	IndexTitle string `json:"index_title"`
}

func (h *Handler) migrate(c *gin.Context) {
	var req migrateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.BadRequest(c, err.Error())
			return
		}
	}
	report, err := h.migrator.MigrateLegacy(c.Request.Context(), req.IndexTitle)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	h.record(c, "", "legacy blog", models.AdminActionBulk, "migrated "+strconv.Itoa(report.Migrated)+" legacy posts")
	response.OK(c, report)
}
