package admin

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
)

// PageSize is the default and maximum admin list page size.
const PageSize = pagination.MaxSize

// Purger drops cached public responses after a write.
type Purger func(ctx context.Context)

type Handler struct {
	registry *Registry
	audit    *AuditLog
	purge    Purger
}

func NewHandler(registry *Registry, audit *AuditLog, purge Purger) *Handler {
	return &Handler{registry: registry, audit: audit, purge: purge}
}

// RegisterRoutes mounts the entity routes, the schema listing and the admin log.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/entities", authMW, h.entities)
	rg.GET("/log/", authMW, h.logList)
	for _, e := range h.registry.Entities() {
		e := e
		g := rg.Group("/"+e.Descriptor().Key, authMW)
		g.GET("/schema", func(c *gin.Context) { h.schema(c, e) })
		g.GET("/", func(c *gin.Context) { h.list(c, e) })
		g.POST("/", func(c *gin.Context) { h.create(c, e) })
		g.POST("/actions/:action", func(c *gin.Context) { h.action(c, e) })
		g.GET("/:id", func(c *gin.Context) { h.get(c, e) })
		g.PUT("/:id", func(c *gin.Context) { h.update(c, e) })
		g.PATCH("/:id", func(c *gin.Context) { h.update(c, e) })
		g.DELETE("/:id", func(c *gin.Context) { h.remove(c, e) })
	}
}

// Schema is a descriptor with the permissions that apply right now.
type Schema struct {
	*Descriptor
	CanAdd    bool   `json:"can_add"`
	CanDelete bool   `json:"can_delete"`
	Unread    *int64 `json:"unread,omitempty"`
}

type unreadCounter interface {
	UnreadCount() (*int64, error)
}

func schemaOf(e Entity) (Schema, error) {
	canAdd, err := e.CanAdd()
	if err != nil {
		return Schema{}, err
	}
	s := Schema{Descriptor: e.Descriptor(), CanAdd: canAdd, CanDelete: e.CanDelete()}
	if uc, ok := e.(unreadCounter); ok {
		if s.Unread, err = uc.UnreadCount(); err != nil {
			return Schema{}, err
		}
	}
	return s, nil
}

func (h *Handler) entities(c *gin.Context) {
	out := make([]Schema, 0, len(h.registry.Entities()))
	for _, e := range h.registry.Entities() {
		s, err := schemaOf(e)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		out = append(out, s)
	}
	response.OK(c, out)
}

func (h *Handler) schema(c *gin.Context, e Entity) {
	s, err := schemaOf(e)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, s)
}

func (h *Handler) list(c *gin.Context, e Entity) {
	items, pag, err := e.List(ListParams{
		Search:   c.Query("q"),
		Ordering: c.Query("ordering"),
		Filters:  c.Request.URL.Query(),
		Page:     pagination.FromContextWithDefault(c, PageSize),
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) get(c *gin.Context, e Entity) {
	obj, err := e.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if obj == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, obj)
}

func readBody(c *gin.Context) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		return nil, apperr.Invalid("body", err.Error())
	}
	return body, nil
}

func (h *Handler) create(c *gin.Context, e Entity) {
	body, err := readBody(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	obj, created, err := e.Create(body)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if !created {
		// singleton already present; nothing was written
		response.OK(c, obj)
		return
	}
	h.written(c, e, obj, models.AdminActionAdd, "Added.")
	response.Created(c, obj)
}

func (h *Handler) update(c *gin.Context, e Entity) {
	body, err := readBody(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	obj, err := e.Update(c.Param("id"), body)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if obj == nil {
		response.NotFound(c)
		return
	}
	h.written(c, e, obj, models.AdminActionChange, "Changed "+changedFields(body)+".")
	response.OK(c, obj)
}

func (h *Handler) remove(c *gin.Context, e Entity) {
	if !e.CanDelete() {
		apperr.Respond(c, apperr.ErrSingletonDelete)
		return
	}
	obj, err := e.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if obj == nil {
		response.NotFound(c)
		return
	}
	ok, err := e.Delete(c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if !ok {
		response.NotFound(c)
		return
	}
	h.written(c, e, obj, models.AdminActionDelete, "Deleted.")
	response.NoContent(c)
}

type actionRequest struct {
	IDs []string `json:"ids"`
}

func (h *Handler) action(c *gin.Context, e Entity) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	name := c.Param("action")
	n, err := e.Action(name, req.IDs)
	if errors.Is(err, ErrUnknownAction) {
		response.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	h.audit.Record(c, e.Descriptor().Key, strings.Join(req.IDs, ","), name, models.AdminActionBulk, name)
	h.purgeCache(c)
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *Handler) written(c *gin.Context, e Entity, obj interface{}, action, msg string) {
	id, repr := e.Describe(obj)
	h.audit.Record(c, e.Descriptor().Key, id, repr, action, msg)
	h.purgeCache(c)
}

func (h *Handler) purgeCache(c *gin.Context) {
	if h.purge != nil {
		h.purge(c.Request.Context())
	}
}

func (h *Handler) logList(c *gin.Context) {
	items, pag, err := h.audit.List(pagination.FromContextWithDefault(c, PageSize))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}
