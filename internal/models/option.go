package models

import "time"

// Well-known option keys.
const (
	OptionBio          = "bio"
	OptionSiteSettings = "site_settings"
)

// OptionModel is a generic key-value store for singleton documents.
type OptionModel struct {
	ID        uint      `json:"-"     gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"  gorm:"size:100;uniqueIndex;not null"`
	Value     string    `json:"value" gorm:"type:text"` // JSON-encoded value
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (OptionModel) TableName() string { return "options" }

// Bio is the site owner's biography. At most one exists.
type Bio struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Organization string    `json:"organization"`
	Photo        string    `json:"photo"`
	Bio          string    `json:"bio"`
	CV           string    `json:"cv"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	LinkedIn     string    `json:"linkedin"`
	Twitter      string    `json:"twitter"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SiteSettings holds site-wide display and contact settings. At most one exists.
type SiteSettings struct {
	ID                uint      `json:"id"`
	SiteTitle         string    `json:"site_title"`
	SiteDescription   string    `json:"site_description"`
	ContactEmail      string    `json:"contact_email"`
	ContactPhone      string    `json:"contact_phone"`
	Address           string    `json:"address"`
	SocialLinkedIn    string    `json:"social_linkedin"`
	SocialTwitter     string    `json:"social_twitter"`
	SocialFacebook    string    `json:"social_facebook"`
	GoogleAnalyticsID string    `json:"google_analytics_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultSiteTitle is used when SiteSettings is created without a title.
const DefaultSiteTitle = "My Portfolio"

// SetMeta copies the identity and timestamps of the backing option row.
func (b *Bio) SetMeta(id uint, created, updated time.Time) {
	b.ID, b.CreatedAt, b.UpdatedAt = id, created, updated
}

// SetMeta copies the identity and timestamps of the backing option row.
func (s *SiteSettings) SetMeta(id uint, created, updated time.Time) {
	s.ID, s.CreatedAt, s.UpdatedAt = id, created, updated
}
