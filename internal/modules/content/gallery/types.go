package gallery

import (
	"strings"
	"time"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/apperr"
)

type CreateImageDTO struct {
	Image       string      `json:"image"`
	Caption     string      `json:"caption"`
	Description string      `json:"description"`
	Date        models.Date `json:"date"`
	Category    string      `json:"category"`
	Featured    bool        `json:"featured"`
}

func (d *CreateImageDTO) validate() error {
	if strings.TrimSpace(d.Caption) == "" {
		return apperr.Required("caption")
	}
	if d.Date.IsZero() {
		y, m, day := time.Now().Date()
		d.Date = models.NewDate(y, m, day)
	}
	if d.Category == "" {
		d.Category = models.DefaultGalleryCategory
	}
	if !models.ValidChoice(d.Category, models.GalleryCategories) {
		return apperr.Choice("category", d.Category, models.GalleryCategories)
	}
	return nil
}

type UpdateImageDTO struct {
	Image       *string      `json:"image"`
	Caption     *string      `json:"caption"`
	Description *string      `json:"description"`
	Date        *models.Date `json:"date"`
	Category    *string      `json:"category"`
	Featured    *bool        `json:"featured"`
}

func (d *UpdateImageDTO) updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if d.Image != nil {
		updates["image"] = *d.Image
	}
	if d.Caption != nil {
		if strings.TrimSpace(*d.Caption) == "" {
			return nil, apperr.Required("caption")
		}
		updates["caption"] = *d.Caption
	}
	if d.Description != nil {
		updates["description"] = *d.Description
	}
	if d.Date != nil {
		if d.Date.IsZero() {
			return nil, apperr.Required("date")
		}
		updates["date"] = *d.Date
	}
	if d.Category != nil {
		if !models.ValidChoice(*d.Category, models.GalleryCategories) {
			return nil, apperr.Choice("category", *d.Category, models.GalleryCategories)
		}
		updates["category"] = *d.Category
	}
	if d.Featured != nil {
		updates["featured"] = *d.Featured
	}
	return updates, nil
}
