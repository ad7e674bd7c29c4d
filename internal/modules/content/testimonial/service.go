package testimonial

import (
	"errors"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/listing"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

var ListSpec = listing.Spec{
	SearchFields: []string{"author", "organization", "quote"},
	OrderFields:  []string{"created_at"},
	DefaultOrder: "-created_at",
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) query(opts listing.Options) *gorm.DB {
	return listing.Apply(s.db.Model(&models.TestimonialModel{}), ListSpec, opts)
}

func (s *Service) List(opts listing.Options, q pagination.Query) ([]models.TestimonialModel, response.Pagination, error) {
	var items []models.TestimonialModel
	pag, err := pagination.Paginate(s.query(opts), q, &items)
	return items, pag, err
}

func (s *Service) Featured(opts listing.Options) ([]models.TestimonialModel, error) {
	items := []models.TestimonialModel{}
	err := s.query(opts).Where("featured = ?", true).Find(&items).Error
	return items, err
}

func (s *Service) FeaturedTop(n int) ([]models.TestimonialModel, error) {
	items := []models.TestimonialModel{}
	err := s.query(listing.Options{}).Where("featured = ?", true).Limit(n).Find(&items).Error
	return items, err
}

// All returns every testimonial, newest first.
func (s *Service) All() ([]models.TestimonialModel, error) {
	items := []models.TestimonialModel{}
	err := s.query(listing.Options{}).Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id string) (*models.TestimonialModel, error) {
	var t models.TestimonialModel
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *Service) Create(dto *CreateTestimonialDTO) (*models.TestimonialModel, error) {
	if err := dto.validate(); err != nil {
		return nil, err
	}
	t := models.TestimonialModel{
		Author:       dto.Author,
		Position:     dto.Position,
		Organization: dto.Organization,
		Quote:        dto.Quote,
		Image:        dto.Image,
		Featured:     dto.Featured,
	}
	return &t, s.db.Create(&t).Error
}

func (s *Service) Update(id string, dto *UpdateTestimonialDTO) (*models.TestimonialModel, error) {
	t, err := s.GetByID(id)
	if err != nil || t == nil {
		return t, err
	}
	updates, err := dto.updates()
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.Model(t).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.TestimonialModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
