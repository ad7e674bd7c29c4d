package gallery

import (
	"errors"
	"strings"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/listing"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

var ListSpec = listing.Spec{
	SearchFields: []string{"caption", "description"},
	OrderFields:  []string{"date", "created_at"},
	DefaultOrder: "-date",
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) query(opts listing.Options) *gorm.DB {
	return listing.Apply(s.db.Model(&models.GalleryImageModel{}), ListSpec, opts)
}

func (s *Service) List(opts listing.Options, q pagination.Query) ([]models.GalleryImageModel, response.Pagination, error) {
	var items []models.GalleryImageModel
	pag, err := pagination.Paginate(s.query(opts), q, &items)
	return items, pag, err
}

func (s *Service) Featured(opts listing.Options) ([]models.GalleryImageModel, error) {
	items := []models.GalleryImageModel{}
	err := s.query(opts).Where("featured = ?", true).Find(&items).Error
	return items, err
}

func (s *Service) FeaturedTop(n int) ([]models.GalleryImageModel, error) {
	items := []models.GalleryImageModel{}
	err := s.query(listing.Options{}).Where("featured = ?", true).Limit(n).Find(&items).Error
	return items, err
}

// Page lists images for the HTML gallery. A non-empty category filters by
// exact match; an unknown category simply yields an empty page.
func (s *Service) Page(category string, q pagination.Query) ([]models.GalleryImageModel, response.Pagination, error) {
	db := s.query(listing.Options{})
	if category = strings.TrimSpace(category); category != "" {
		db = db.Where("category = ?", category)
	}
	var items []models.GalleryImageModel
	pag, err := pagination.PaginateClamped(db, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(id string) (*models.GalleryImageModel, error) {
	var img models.GalleryImageModel
	if err := s.db.First(&img, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (s *Service) Create(dto *CreateImageDTO) (*models.GalleryImageModel, error) {
	if err := dto.validate(); err != nil {
		return nil, err
	}
	img := models.GalleryImageModel{
		Image:       dto.Image,
		Caption:     dto.Caption,
		Description: dto.Description,
		Date:        dto.Date,
		Category:    dto.Category,
		Featured:    dto.Featured,
	}
	return &img, s.db.Create(&img).Error
}

func (s *Service) Update(id string, dto *UpdateImageDTO) (*models.GalleryImageModel, error) {
	img, err := s.GetByID(id)
	if err != nil || img == nil {
		return img, err
	}
	updates, err := dto.updates()
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.Model(img).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.GalleryImageModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
