package award

import (
	"strings"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/apperr"
)

type CreateAwardDTO struct {
	Name         string      `json:"name" binding:"required"`
	Organization string      `json:"organization"`
	Date         models.Date `json:"date"`
	Description  string      `json:"description"`
	Image        string      `json:"image"`
	Category     string      `json:"category"`
	Featured     bool        `json:"featured"`
}

func (d *CreateAwardDTO) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return apperr.Required("name")
	}
	if strings.TrimSpace(d.Organization) == "" {
		return apperr.Required("organization")
	}
	if strings.TrimSpace(d.Description) == "" {
		return apperr.Required("description")
	}
	if d.Date.IsZero() {
		return apperr.Required("date")
	}
	if d.Category == "" {
		d.Category = models.DefaultAwardCategory
	}
	if !models.ValidChoice(d.Category, models.AwardCategories) {
		return apperr.Choice("category", d.Category, models.AwardCategories)
	}
	return nil
}

type UpdateAwardDTO struct {
	Name         *string      `json:"name"`
	Organization *string      `json:"organization"`
	Date         *models.Date `json:"date"`
	Description  *string      `json:"description"`
	Image        *string      `json:"image"`
	Category     *string      `json:"category"`
	Featured     *bool        `json:"featured"`
}

func (d *UpdateAwardDTO) updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if d.Name != nil {
		if strings.TrimSpace(*d.Name) == "" {
			return nil, apperr.Required("name")
		}
		updates["name"] = *d.Name
	}
	if d.Organization != nil {
		if strings.TrimSpace(*d.Organization) == "" {
			return nil, apperr.Required("organization")
		}
		updates["organization"] = *d.Organization
	}
	if d.Date != nil {
		if d.Date.IsZero() {
			return nil, apperr.Required("date")
		}
		updates["date"] = *d.Date
	}
	if d.Description != nil {
		if strings.TrimSpace(*d.Description) == "" {
			return nil, apperr.Required("description")
		}
		updates["description"] = *d.Description
	}
	if d.Image != nil {
		updates["image"] = *d.Image
	}
	if d.Category != nil {
		if !models.ValidChoice(*d.Category, models.AwardCategories) {
			return nil, apperr.Choice("category", *d.Category, models.AwardCategories)
		}
		updates["category"] = *d.Category
	}
	if d.Featured != nil {
		updates["featured"] = *d.Featured
	}
	return updates, nil
}
