// Package search runs the site-wide substring search over projects, awards
// and published legacy blog posts.
package search

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/content/award"
	"github.com/portfolio-space/core/internal/modules/content/blogpost"
	"github.com/portfolio-space/core/internal/modules/content/project"
	"github.com/portfolio-space/core/internal/pkg/listing"
	"gorm.io/gorm"
)

// PerCategory caps the hits returned for each content type.
const PerCategory = 5

// Results groups hits by content type.
type Results struct {
	Projects  []models.ProjectModel  `json:"projects"`
	Awards    []models.AwardModel    `json:"awards"`
	BlogPosts []models.BlogPostModel `json:"blog_posts"`
}

// Empty reports whether nothing matched.
func (r *Results) Empty() bool {
	return len(r.Projects) == 0 && len(r.Awards) == 0 && len(r.BlogPosts) == 0
}

func emptyResults() *Results {
	return &Results{
		Projects:  []models.ProjectModel{},
		Awards:    []models.AwardModel{},
		BlogPosts: []models.BlogPostModel{},
	}
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Search matches q case-insensitively. A blank q returns empty lists.
func (s *Service) Search(q string) (*Results, error) {
	out := emptyResults()
	q = strings.TrimSpace(q)
	if q == "" {
		return out, nil
	}

	if err := find(s.db.Model(&models.ProjectModel{}), q, []string{"title", "description"},
		project.ListSpec, &out.Projects); err != nil {
		return nil, err
	}
	if err := find(s.db.Model(&models.AwardModel{}), q, []string{"name", "description"},
		award.ListSpec, &out.Awards); err != nil {
		return nil, err
	}
	posts := s.db.Model(&models.BlogPostModel{}).Where("published = ?", true)
	if err := find(posts, q, []string{"title", "body"}, blogpost.ListSpec, &out.BlogPosts); err != nil {
		return nil, err
	}
	return out, nil
}

// find keeps each collection's default ordering so hits read like its list page.
func find[T any](db *gorm.DB, q string, fields []string, spec listing.Spec, dest *[]T) error {
	db = listing.Search(db, q, fields)
	db = listing.Order(db, "", spec.OrderFields, spec.DefaultOrder)
	if err := db.Limit(PerCategory).Find(dest).Error; err != nil {
		return err
	}
	if *dest == nil {
		*dest = []T{}
	}
	return nil
}

// WantsJSON reports whether the caller asked for a JSON answer.
func WantsJSON(c *gin.Context) bool {
	if c.Query("format") == "json" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// JSON is the JSON shape of a search answer.
func JSON(q string, r *Results) gin.H {
	return gin.H{"query": q, "results": r}
}
