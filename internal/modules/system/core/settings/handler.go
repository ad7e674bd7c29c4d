package settings

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the read-only singleton endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bio/", h.listBio)
	rg.GET("/bio/:id/", h.getBio)
	rg.GET("/settings/", h.getSettings)
}

func (h *Handler) listBio(c *gin.Context) {
	bio, err := h.svc.Bio()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	items := []models.Bio{}
	if bio != nil {
		items = append(items, *bio)
	}
	q := pagination.Fixed(c, pagination.APIPageSize)
	if q.Page > 1 {
		items = []models.Bio{}
	}
	response.Paged(c, items, pagination.Meta(int64(len(items)), q))
}

func (h *Handler) getBio(c *gin.Context) {
	bio, err := h.svc.Bio()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if bio == nil || c.Param("id") != strconv.FormatUint(uint64(bio.ID), 10) {
		response.NotFound(c)
		return
	}
	response.OK(c, bio)
}

func (h *Handler) getSettings(c *gin.Context) {
	st, err := h.svc.SiteSettings()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": st})
}
