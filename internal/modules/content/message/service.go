package message

import (
	"errors"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"github.com/portfolio-space/core/internal/pkg/listing"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ListSpec = listing.Spec{
	SearchFields: []string{"name", "email", "subject", "message"},
	OrderFields:  []string{"sent_at"},
	DefaultOrder: "-sent_at",
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(opts listing.Options, q pagination.Query) ([]models.MessageModel, response.Pagination, error) {
	var items []models.MessageModel
	db := listing.Apply(s.db.Model(&models.MessageModel{}), ListSpec, opts)
	pag, err := pagination.Paginate(db, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(id string) (*models.MessageModel, error) {
	var m models.MessageModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// Create validates and stores a message. New messages are always unread and unreplied.
func (s *Service) Create(dto *CreateMessageDTO) (*models.MessageModel, error) {
	if err := dto.validate(); err != nil {
		return nil, err
	}
	return s.insert(dto)
}

// Record stores a contact-form submission. Only presence of the four
// fields is required; the address is kept as the visitor typed it.
func (s *Service) Record(dto *CreateMessageDTO) (*models.MessageModel, error) {
	dto.Trim()
	if dto.Missing() != "" {
		return nil, apperr.ErrMissingFields
	}
	return s.insert(dto)
}

func (s *Service) insert(dto *CreateMessageDTO) (*models.MessageModel, error) {
	m := models.MessageModel{
		Name:    dto.Name,
		Email:   dto.Email,
		Subject: dto.Subject,
		Message: dto.Message,
	}
	if err := s.db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Update(id string, dto *UpdateMessageDTO) (*models.MessageModel, error) {
	m, err := s.GetByID(id)
	if err != nil || m == nil {
		return m, err
	}
	updates, err := dto.updates()
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.Model(m).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.MessageModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// MarkRead sets read=true on ids and returns the number of rows matched.
func (s *Service) MarkRead(ids []string) (int64, error) {
	return s.setFlag(ids, "read")
}

// MarkReplied sets replied=true on ids.
func (s *Service) MarkReplied(ids []string) (int64, error) {
	return s.setFlag(ids, "replied")
}

func (s *Service) setFlag(ids []string, column string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.Model(&models.MessageModel{}).
		Where("id IN ?", ids).
		Update(column, true)
	return res.RowsAffected, res.Error
}

// UnreadCount returns how many messages are still unread.
func (s *Service) UnreadCount() (int64, error) {
	var n int64
	err := s.db.Model(&models.MessageModel{}).Where(clause.Eq{Column: clause.Column{Name: "read"}, Value: false}).Count(&n).Error
	return n, err
}
