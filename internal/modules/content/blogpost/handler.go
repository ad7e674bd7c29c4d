package blogpost

import (
	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/pkg/listing"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/blog")
	g.GET("/", h.list)
	g.GET("/featured/", h.featured)
	g.GET("/:id/", h.get)
}

func (h *Handler) list(c *gin.Context) {
	items, pag, err := h.svc.List(listing.FromContext(c), pagination.Fixed(c, pagination.APIPageSize))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) featured(c *gin.Context) {
	items, err := h.svc.Featured(listing.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetPublished(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, p)
}
