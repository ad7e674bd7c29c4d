// Package settings stores the Bio and SiteSettings singletons as JSON
// documents in the options table.
package settings

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type document[T any] interface {
	*T
	SetMeta(id uint, created, updated time.Time)
}

// Service reads the options table on every call, so writes from the CLI or
// another replica are visible immediately.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Bio returns the biography or nil when none has been created.
func (s *Service) Bio() (*models.Bio, error) {
	return load[models.Bio](s, models.OptionBio)
}

// CreateBio stores the biography when absent. When one already exists it
// is returned unchanged with created=false.
func (s *Service) CreateBio(dto *BioDTO) (*models.Bio, bool, error) {
	if err := dto.validate(true); err != nil {
		return nil, false, err
	}
	var bio models.Bio
	if err := merge(&bio, dto); err != nil {
		return nil, false, err
	}
	return create[models.Bio](s, models.OptionBio, &bio)
}

// UpdateBio merges dto into the biography. It returns nil when there is none.
func (s *Service) UpdateBio(dto *BioDTO) (*models.Bio, error) {
	if err := dto.validate(false); err != nil {
		return nil, err
	}
	return update[models.Bio](s, models.OptionBio, dto)
}

// DeleteBio removes the biography and reports whether it existed.
func (s *Service) DeleteBio() (bool, error) {
	res := s.db.Where("name = ?", models.OptionBio).Delete(&models.OptionModel{})
	return res.RowsAffected > 0, res.Error
}

// SiteSettings returns the settings document or nil.
func (s *Service) SiteSettings() (*models.SiteSettings, error) {
	return load[models.SiteSettings](s, models.OptionSiteSettings)
}

// CreateSiteSettings stores the settings when absent, otherwise returns
// the existing document. N creates always leave exactly one document.
func (s *Service) CreateSiteSettings(dto *SiteSettingsDTO) (*models.SiteSettings, bool, error) {
	if err := dto.validate(); err != nil {
		return nil, false, err
	}
	st := models.SiteSettings{SiteTitle: models.DefaultSiteTitle}
	if err := merge(&st, dto); err != nil {
		return nil, false, err
	}
	return create[models.SiteSettings](s, models.OptionSiteSettings, &st)
}

func (s *Service) UpdateSiteSettings(dto *SiteSettingsDTO) (*models.SiteSettings, error) {
	if err := dto.validate(); err != nil {
		return nil, err
	}
	return update[models.SiteSettings](s, models.OptionSiteSettings, dto)
}

// DeleteSiteSettings always refuses.
func (s *Service) DeleteSiteSettings() error {
	return apperr.ErrSingletonDelete
}

// SiteSettingsExists reports whether the settings document has been created.
func (s *Service) SiteSettingsExists() (bool, error) {
	st, err := s.SiteSettings()
	return st != nil, err
}

func load[T any, P document[T]](s *Service, key string) (*T, error) {
	var opt models.OptionModel
	if err := s.db.Where("name = ?", key).Limit(1).Find(&opt).Error; err != nil {
		return nil, err
	}
	if opt.ID == 0 {
		return nil, nil
	}
	out := new(T)
	if err := json.Unmarshal([]byte(opt.Value), out); err != nil {
		return nil, fmt.Errorf("decode option %q: %w", key, err)
	}
	P(out).SetMeta(opt.ID, opt.CreatedAt, opt.UpdatedAt)
	return out, nil
}

// create inserts the document with ON CONFLICT DO NOTHING so that concurrent
// creates collapse onto the first row.
func create[T any, P document[T]](s *Service, key string, value *T) (*T, bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, false, err
	}
	opt := models.OptionModel{Name: key, Value: string(data)}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&opt)
	if res.Error != nil {
		return nil, false, res.Error
	}
	current, err := load[T, P](s, key)
	return current, res.RowsAffected > 0, err
}

func update[T any, P document[T]](s *Service, key string, patch interface{}) (*T, error) {
	current, err := load[T, P](s, key)
	if err != nil || current == nil {
		return nil, err
	}
	if err := merge(current, patch); err != nil {
		return nil, err
	}
	data, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	res := s.db.Model(&models.OptionModel{}).Where("name = ?", key).Update("value", string(data))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return load[T, P](s, key)
}

// merge overlays the non-empty JSON fields of patch onto dst.
func merge(dst interface{}, patch interface{}) error {
	data, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
