package testimonial

import (
	"strings"

	"github.com/portfolio-space/core/internal/pkg/apperr"
)

type CreateTestimonialDTO struct {
	Author       string `json:"author" binding:"required"`
	Position     string `json:"position"`
	Organization string `json:"organization"`
	Quote        string `json:"quote" binding:"required"`
	Image        string `json:"image"`
	Featured     bool   `json:"featured"`
}

func (d *CreateTestimonialDTO) validate() error {
	if strings.TrimSpace(d.Author) == "" {
		return apperr.Required("author")
	}
	if strings.TrimSpace(d.Position) == "" {
		return apperr.Required("position")
	}
	if strings.TrimSpace(d.Organization) == "" {
		return apperr.Required("organization")
	}
	if strings.TrimSpace(d.Quote) == "" {
		return apperr.Required("quote")
	}
	return nil
}

type UpdateTestimonialDTO struct {
	Author       *string `json:"author"`
	Position     *string `json:"position"`
	Organization *string `json:"organization"`
	Quote        *string `json:"quote"`
	Image        *string `json:"image"`
	Featured     *bool   `json:"featured"`
}

func (d *UpdateTestimonialDTO) updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if d.Author != nil {
		if strings.TrimSpace(*d.Author) == "" {
			return nil, apperr.Required("author")
		}
		updates["author"] = *d.Author
	}
	if d.Position != nil {
		if strings.TrimSpace(*d.Position) == "" {
			return nil, apperr.Required("position")
		}
		updates["position"] = *d.Position
	}
	if d.Organization != nil {
		if strings.TrimSpace(*d.Organization) == "" {
			return nil, apperr.Required("organization")
		}
		updates["organization"] = *d.Organization
	}
	if d.Quote != nil {
		if strings.TrimSpace(*d.Quote) == "" {
			return nil, apperr.Required("quote")
		}
		updates["quote"] = *d.Quote
	}
	if d.Image != nil {
		updates["image"] = *d.Image
	}
	if d.Featured != nil {
		updates["featured"] = *d.Featured
	}
	return updates, nil
}
