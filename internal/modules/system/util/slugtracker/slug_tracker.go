// Package slugtracker remembers retired URL paths so old links can redirect.
package slugtracker

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

// TypeBlogPage tags trackers that point at blog tree pages.
const TypeBlogPage = "blog_page"

// Service provides slug tracking operations.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// WithDB returns a Service bound to tx, for use inside a transaction.
func (s *Service) WithDB(tx *gorm.DB) *Service { return &Service{db: tx} }

// Track records that oldSlug for the given content type now points to targetID.
func (s *Service) Track(oldSlug, refType, targetID string) error {
	tracker := models.SlugTrackerModel{
		Slug:     oldSlug,
		Type:     refType,
		TargetID: targetID,
	}
	return s.db.Where(models.SlugTrackerModel{Slug: oldSlug, Type: refType}).
		Assign(models.SlugTrackerModel{TargetID: targetID}).
		FirstOrCreate(&tracker).Error
}

// Forget drops the tracker for slug, used when a path becomes current again.
func (s *Service) Forget(slug, refType string) error {
	return s.db.Where("slug = ? AND type = ?", slug, refType).Delete(&models.SlugTrackerModel{}).Error
}

// FindBySlug returns the current targetID for the given old slug, or ("", nil).
func (s *Service) FindBySlug(slug, refType string) (string, error) {
	var tracker models.SlugTrackerModel
	err := s.db.Where("slug = ? AND type = ?", slug, refType).First(&tracker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return tracker.TargetID, nil
}

// DeleteByTargetID removes all tracker entries for the given targets.
func (s *Service) DeleteByTargetID(targetIDs ...string) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return s.db.Where("target_id IN ?", targetIDs).Delete(&models.SlugTrackerModel{}).Error
}

// List returns every tracker of refType, newest first.
func (s *Service) List(refType string) ([]models.SlugTrackerModel, error) {
	items := []models.SlugTrackerModel{}
	err := s.db.Where("type = ?", refType).Order("created_at DESC").Find(&items).Error
	return items, err
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts the admin tracker routes. Old paths are passed as ?path=.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/slug-tracker", authMW)
	g.GET("", h.list)
	g.GET("/lookup", h.lookup)
	g.DELETE("", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(TypeBlogPage)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) lookup(c *gin.Context) {
	path := c.Query("path")
	targetID, err := h.svc.FindBySlug(path, TypeBlogPage)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if targetID == "" {
		response.NotFoundMsg(c, "no redirect for this path")
		return
	}
	response.OK(c, gin.H{"target_id": targetID, "type": TypeBlogPage, "path": path})
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Forget(c.Query("path"), TypeBlogPage); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
