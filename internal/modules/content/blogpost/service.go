package blogpost

import (
	"errors"
	"fmt"

	"github.com/portfolio-space/core/internal/database"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/content/tag"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"github.com/portfolio-space/core/internal/pkg/listing"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagSearchExpr matches posts carrying a tag whose name contains the pattern.
const TagSearchExpr = `EXISTS (SELECT 1 FROM blog_post_tags bpt JOIN tags t ON t.id = bpt.tag_id
	WHERE bpt.blog_post_id = blog_posts.id AND LOWER(t.name) LIKE ? ESCAPE '!')`

var ListSpec = listing.Spec{
	SearchFields: []string{"title", "body"},
	SearchExprs:  []string{TagSearchExpr},
	OrderFields:  []string{"date", "updated_at"},
	DefaultOrder: "-date",
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// published scopes every public query; unpublished posts never leave the admin.
func (s *Service) published(opts listing.Options) *gorm.DB {
	db := s.db.Model(&models.BlogPostModel{}).Where("published = ?", true)
	return listing.Apply(db, ListSpec, opts)
}

func (s *Service) List(opts listing.Options, q pagination.Query) ([]models.BlogPostModel, response.Pagination, error) {
	var items []models.BlogPostModel
	pag, err := pagination.Paginate(s.published(opts), q, &items)
	if err != nil {
		return nil, pag, err
	}
	return items, pag, s.AttachTags(items)
}

func (s *Service) Featured(opts listing.Options) ([]models.BlogPostModel, error) {
	items := []models.BlogPostModel{}
	err := s.published(opts).Preload("Tags").Where("featured = ?", true).Find(&items).Error
	return items, err
}

// PublishedFeaturedTop returns at most n published featured posts, newest first.
func (s *Service) PublishedFeaturedTop(n int) ([]models.BlogPostModel, error) {
	items := []models.BlogPostModel{}
	err := s.published(listing.Options{}).Preload("Tags").Where("featured = ?", true).Limit(n).Find(&items).Error
	return items, err
}

// AttachTags fills Tags on items loaded without them, keeping their order.
func (s *Service) AttachTags(items []models.BlogPostModel) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	var loaded []models.BlogPostModel
	if err := s.db.Preload("Tags").Select("id").Where("id IN ?", ids).Find(&loaded).Error; err != nil {
		return err
	}
	byID := make(map[string][]models.TagModel, len(loaded))
	for _, p := range loaded {
		byID[p.ID] = p.Tags
	}
	for i := range items {
		items[i].Tags = byID[items[i].ID]
		if items[i].Tags == nil {
			items[i].Tags = []models.TagModel{}
		}
	}
	return nil
}

// GetPublished returns the post only when it is published.
func (s *Service) GetPublished(id string) (*models.BlogPostModel, error) {
	return s.first(s.db.Preload("Tags").Where("published = ?", true), "id = ?", id)
}

// GetByID returns the post regardless of its published flag.
func (s *Service) GetByID(id string) (*models.BlogPostModel, error) {
	return s.first(s.db.Preload("Tags"), "id = ?", id)
}

func (s *Service) GetBySlug(slug string) (*models.BlogPostModel, error) {
	return s.first(s.db.Preload("Tags"), "slug = ?", slug)
}

func (s *Service) first(db *gorm.DB, cond string, arg interface{}) (*models.BlogPostModel, error) {
	var p models.BlogPostModel
	if err := db.First(&p, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// All returns every legacy post with tags, oldest first.
func (s *Service) All() ([]models.BlogPostModel, error) {
	items := []models.BlogPostModel{}
	err := s.db.Preload("Tags").Order("date ASC").Order("id ASC").Find(&items).Error
	return items, err
}

func (s *Service) slugTaken(tx *gorm.DB, slug, exceptID string) (bool, error) {
	var n int64
	q := tx.Model(&models.BlogPostModel{}).Where("slug = ?", slug)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func (s *Service) Create(dto *CreatePostDTO) (*models.BlogPostModel, error) {
	if err := dto.normalize(); err != nil {
		return nil, err
	}
	p := models.BlogPostModel{
		Title:     dto.Title,
		Slug:      dto.Slug,
		Body:      dto.Body,
		Excerpt:   dto.Excerpt,
		Image:     dto.Image,
		Author:    dto.Author,
		Published: dto.Published,
		Featured:  dto.Featured,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := s.slugTaken(tx, p.Slug, "")
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%q: %w", p.Slug, apperr.ErrSlugTaken)
		}
		tags, err := tag.Resolve(tx, dto.Tags)
		if err != nil {
			return err
		}
		p.Tags = tags
		return tx.Omit("Tags.*").Create(&p).Error
	})
	if database.IsDuplicate(err) {
		return nil, fmt.Errorf("%q: %w", p.Slug, apperr.ErrSlugTaken)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Update(id string, dto *UpdatePostDTO) (*models.BlogPostModel, error) {
	p, err := s.GetByID(id)
	if err != nil || p == nil {
		return p, err
	}
	updates, err := dto.updates()
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if slug, ok := updates["slug"].(string); ok {
			taken, err := s.slugTaken(tx, slug, id)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%q: %w", slug, apperr.ErrSlugTaken)
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(p).Omit("Tags").Updates(updates).Error; err != nil {
				return err
			}
		}
		if dto.Tags != nil {
			tags, err := tag.Resolve(tx, *dto.Tags)
			if err != nil {
				return err
			}
			return tx.Model(p).Omit("Tags.*").Association("Tags").Replace(tags)
		}
		return nil
	})
	if database.IsDuplicate(err) {
		return nil, apperr.ErrSlugTaken
	}
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes the post together with its tag links.
func (s *Service) Delete(id string) (bool, error) {
	var res *gorm.DB
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p := models.BlogPostModel{Base: models.Base{ID: id}}
		res = tx.Select(clause.Associations).Delete(&p)
		return res.Error
	})
	if err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}
