package project

import (
	"errors"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/listing"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

// ListSpec is the public search and ordering contract for projects.
var ListSpec = listing.Spec{
	SearchFields: []string{"title", "description"},
	OrderFields:  []string{"start_date", "created_at"},
	DefaultOrder: "-start_date",
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) query(opts listing.Options) *gorm.DB {
	return listing.Apply(s.db.Model(&models.ProjectModel{}), ListSpec, opts)
}

func (s *Service) List(opts listing.Options, q pagination.Query) ([]models.ProjectModel, response.Pagination, error) {
	var items []models.ProjectModel
	pag, err := pagination.Paginate(s.query(opts), q, &items)
	return items, pag, err
}

func (s *Service) Featured(opts listing.Options) ([]models.ProjectModel, error) {
	items := []models.ProjectModel{}
	err := s.query(opts).Where("featured = ?", true).Find(&items).Error
	return items, err
}

// FeaturedTop returns at most n featured projects, newest first.
func (s *Service) FeaturedTop(n int) ([]models.ProjectModel, error) {
	items := []models.ProjectModel{}
	err := s.query(listing.Options{}).Where("featured = ?", true).Limit(n).Find(&items).Error
	return items, err
}

// Page is the HTML listing; out-of-range pages land on the last page.
func (s *Service) Page(q pagination.Query) ([]models.ProjectModel, response.Pagination, error) {
	var items []models.ProjectModel
	pag, err := pagination.PaginateClamped(s.query(listing.Options{}), q, &items)
	return items, pag, err
}

func (s *Service) GetByID(id string) (*models.ProjectModel, error) {
	var p models.ProjectModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(dto *CreateProjectDTO) (*models.ProjectModel, error) {
	if err := dto.validate(); err != nil {
		return nil, err
	}
	p := models.ProjectModel{
		Title:               dto.Title,
		Description:         dto.Description,
		DetailedDescription: dto.DetailedDescription,
		Image:               dto.Image,
		StartDate:           dto.StartDate,
		Status:              dto.Status,
		Link:                dto.Link,
		Featured:            dto.Featured,
	}
	if dto.EndDate != nil && !dto.EndDate.IsZero() {
		end := *dto.EndDate
		p.EndDate = &end
	}
	return &p, s.db.Create(&p).Error
}

func (s *Service) Update(id string, dto *UpdateProjectDTO) (*models.ProjectModel, error) {
	p, err := s.GetByID(id)
	if err != nil || p == nil {
		return p, err
	}
	updates, err := dto.updates()
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.Model(p).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

// Delete removes the project and reports whether it existed.
func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.ProjectModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
