package settings

import (
	"strings"

	"github.com/portfolio-space/core/internal/pkg/apperr"
)

// BioDTO carries a full or partial biography. Nil fields are left untouched.
type BioDTO struct {
	Name         *string `json:"name,omitempty"`
	Title        *string `json:"title,omitempty"`
	Organization *string `json:"organization,omitempty"`
	Photo        *string `json:"photo,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	CV           *string `json:"cv,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	LinkedIn     *string `json:"linkedin,omitempty"`
	Twitter      *string `json:"twitter,omitempty"`
}

func (d *BioDTO) validate(creating bool) error {
	for _, f := range []struct {
		name  string
		value *string
	}{{"name", d.Name}, {"bio", d.Bio}} {
		if f.value == nil && !creating {
			continue
		}
		if f.value == nil || strings.TrimSpace(*f.value) == "" {
			return apperr.Required(f.name)
		}
	}
	return nil
}

// SiteSettingsDTO carries a full or partial settings document.
type SiteSettingsDTO struct {
	SiteTitle         *string `json:"site_title,omitempty"`
	SiteDescription   *string `json:"site_description,omitempty"`
	ContactEmail      *string `json:"contact_email,omitempty"`
	ContactPhone      *string `json:"contact_phone,omitempty"`
	Address           *string `json:"address,omitempty"`
	SocialLinkedIn    *string `json:"social_linkedin,omitempty"`
	SocialTwitter     *string `json:"social_twitter,omitempty"`
	SocialFacebook    *string `json:"social_facebook,omitempty"`
	GoogleAnalyticsID *string `json:"google_analytics_id,omitempty"`
}

func (d *SiteSettingsDTO) validate() error {
	if d.SiteTitle != nil && strings.TrimSpace(*d.SiteTitle) == "" {
		return apperr.Required("site_title")
	}
	return nil
}
