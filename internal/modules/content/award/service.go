package award

import (
	"errors"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/listing"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

var ListSpec = listing.Spec{
	SearchFields: []string{"name", "organization", "description"},
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
	return listing.Apply(s.db.Model(&models.AwardModel{}), ListSpec, opts)
}

func (s *Service) List(opts listing.Options, q pagination.Query) ([]models.AwardModel, response.Pagination, error) {
	var items []models.AwardModel
	pag, err := pagination.Paginate(s.query(opts), q, &items)
	return items, pag, err
}

func (s *Service) Featured(opts listing.Options) ([]models.AwardModel, error) {
	items := []models.AwardModel{}
	err := s.query(opts).Where("featured = ?", true).Find(&items).Error
	return items, err
}

func (s *Service) FeaturedTop(n int) ([]models.AwardModel, error) {
	items := []models.AwardModel{}
	err := s.query(listing.Options{}).Where("featured = ?", true).Limit(n).Find(&items).Error
	return items, err
}

func (s *Service) Page(q pagination.Query) ([]models.AwardModel, response.Pagination, error) {
	var items []models.AwardModel
	pag, err := pagination.PaginateClamped(s.query(listing.Options{}), q, &items)
	return items, pag, err
}

func (s *Service) GetByID(id string) (*models.AwardModel, error) {
	var a models.AwardModel
	if err := s.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *Service) Create(dto *CreateAwardDTO) (*models.AwardModel, error) {
	if err := dto.validate(); err != nil {
		return nil, err
	}
	a := models.AwardModel{
		Name:         dto.Name,
		Organization: dto.Organization,
		Date:         dto.Date,
		Description:  dto.Description,
		Image:        dto.Image,
		Category:     dto.Category,
		Featured:     dto.Featured,
	}
	return &a, s.db.Create(&a).Error
}

func (s *Service) Update(id string, dto *UpdateAwardDTO) (*models.AwardModel, error) {
	a, err := s.GetByID(id)
	if err != nil || a == nil {
		return a, err
	}
	updates, err := dto.updates()
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.Model(a).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.AwardModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
