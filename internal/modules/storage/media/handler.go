package media

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"github.com/portfolio-space/core/internal/pkg/blob"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
)

// Auditor records admin writes.
type Auditor interface {
	Record(c *gin.Context, entity, objectID, repr, action, message string)
}

type Handler struct {
	svc   *Service
	audit Auditor
}

func NewHandler(svc *Service, audit Auditor) *Handler {
	return &Handler{svc: svc, audit: audit}
}

// RegisterAdminRoutes mounts upload, list and delete under /media.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/media", authMW)
	g.GET("", h.list)
	g.POST("", h.upload)
	g.DELETE("/:id", h.remove)
}

// RegisterPublicRoutes mounts GET /media/*key.
func (h *Handler) RegisterPublicRoutes(r gin.IRoutes) {
	r.GET(URLPrefix+"*key", h.serve)
	r.HEAD(URLPrefix+"*key", h.serve)
}

func (h *Handler) record(c *gin.Context, id, repr, action string) {
	if h.audit != nil {
		h.audit.Record(c, "media", id, repr, action, action+" "+repr)
	}
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()

	up, err := h.svc.Save(c.Request.Context(), c.PostForm("folder"), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	h.record(c, up.ID, up.Key, "add")
	response.Created(c, up)
}

func (h *Handler) list(c *gin.Context) {
	items, pag, err := h.svc.List(c.Query("folder"), pagination.FromContextWithDefault(c, pagination.MaxSize))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) remove(c *gin.Context) {
	ok, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c)
		return
	}
	h.record(c, c.Param("id"), c.Param("id"), "delete")
	response.NoContent(c)
}

// serve streams local blobs and redirects to a presigned URL for s3.
func (h *Handler) serve(c *gin.Context) {
	key, err := blob.CleanKey(strings.TrimPrefix(c.Param("key"), "/"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	store := h.svc.Store()
	if store.Driver() == blob.DriverS3 {
		if _, err := store.Head(c.Request.Context(), key); err != nil {
			h.serveError(c, err)
			return
		}
		url, err := store.PresignURL(c.Request.Context(), key, blob.DefaultPresignExpiry)
		if err != nil {
			h.serveError(c, err)
			return
		}
		c.Redirect(http.StatusFound, url)
		return
	}

	info, body, err := store.Get(c.Request.Context(), key)
	if err != nil {
		h.serveError(c, err)
		return
	}
	defer body.Close()
	c.Header("Cache-Control", "public, max-age=31536000")
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	var extra map[string]string
	if !info.LastModified.IsZero() {
		extra = map[string]string{"Last-Modified": info.LastModified.UTC().Format(http.TimeFormat)}
	}
	c.DataFromReader(http.StatusOK, info.Size, contentType, body, extra)
}

func (h *Handler) serveError(c *gin.Context, err error) {
	if errors.Is(err, blob.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	_ = c.Error(err)
	c.Status(http.StatusInternalServerError)
}
