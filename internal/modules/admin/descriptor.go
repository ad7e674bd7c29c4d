// Package admin is the authenticated management surface: a registry of
// entity descriptors and one generic set of CRUD routes per entity.
package admin

import (
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/content/blogpost"
	"github.com/portfolio-space/core/internal/pkg/listing"
)

// Fieldset groups fields on the edit form.
type Fieldset struct {
	Name      string   `json:"name"`
	Fields    []string `json:"fields"`
	Collapsed bool     `json:"collapsed,omitempty"`
}

// Action is a bulk action over selected rows.
type Action struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Descriptor is the hand-declared admin configuration of one entity.
type Descriptor struct {
	Key            string           `json:"key"`
	Name           string           `json:"name"`
	Singleton      bool             `json:"singleton"`
	ListDisplay    []string         `json:"list_display"`
	ListFilter     []listing.Filter `json:"list_filter"`
	SearchFields   []string         `json:"search_fields"`
	Ordering       string           `json:"ordering"`
	ReadOnlyFields []string         `json:"readonly_fields"`
	Fieldsets      []Fieldset       `json:"fieldsets"`
	Actions        []Action         `json:"actions"`

	// searchColumns replace SearchFields when some of them are not columns.
	searchColumns []string
	// searchExprs extend the column search through joins.
	searchExprs []string
	// sortable columns accepted by ?ordering=.
	sortable []string
}

var (
	timestamps = Fieldset{Name: "Timestamps", Fields: []string{"created_at", "updated_at"}, Collapsed: true}
	created    = []string{"created_at", "updated_at"}
)

func boolFilter(field string) listing.Filter { return listing.Filter{Field: field, Kind: listing.FilterBool} }
func dateFilter(field string) listing.Filter { return listing.Filter{Field: field, Kind: listing.FilterDate} }
func choiceFilter(field string, choices []string) listing.Filter {
	return listing.Filter{Field: field, Kind: listing.FilterChoice, Choices: choices}
}

var BioDescriptor = Descriptor{
	Key:            "bio",
	Name:           "Bio",
	Singleton:      true,
	ListDisplay:    []string{"name", "title", "organization", "updated_at"},
	ReadOnlyFields: created,
	Fieldsets: []Fieldset{
		{Name: "Personal Information", Fields: []string{"name", "title", "organization", "photo", "bio"}},
		{Name: "Contact Information", Fields: []string{"email", "phone", "linkedin", "twitter"}},
		{Name: "Documents", Fields: []string{"cv"}},
		timestamps,
	},
}

var ProjectDescriptor = Descriptor{
	Key:            "projects",
	Name:           "Projects",
	ListDisplay:    []string{"title", "status", "start_date", "featured", "created_at"},
	ListFilter:     []listing.Filter{choiceFilter("status", models.ProjectStatuses), boolFilter("featured"), dateFilter("start_date")},
	SearchFields:   []string{"title", "description"},
	Ordering:       "-start_date",
	ReadOnlyFields: created,
	Fieldsets: []Fieldset{
		{Name: "Project Information", Fields: []string{"title", "description", "detailed_description", "image"}},
		{Name: "Timeline", Fields: []string{"start_date", "end_date", "status"}},
		{Name: "Display Options", Fields: []string{"featured", "link"}},
		timestamps,
	},
	sortable: []string{"title", "status", "start_date", "featured", "created_at"},
}

var AwardDescriptor = Descriptor{
	Key:            "awards",
	Name:           "Awards",
	ListDisplay:    []string{"name", "organization", "date", "category", "featured"},
	ListFilter:     []listing.Filter{choiceFilter("category", models.AwardCategories), boolFilter("featured"), dateFilter("date")},
	SearchFields:   []string{"name", "organization", "description"},
	Ordering:       "-date",
	ReadOnlyFields: created,
	Fieldsets: []Fieldset{
		{Name: "Award Information", Fields: []string{"name", "organization", "description", "image"}},
		{Name: "Details", Fields: []string{"date", "category", "featured"}},
		timestamps,
	},
	sortable: []string{"name", "organization", "date", "category", "featured", "created_at"},
}

var GalleryDescriptor = Descriptor{
	Key:            "gallery",
	Name:           "Gallery images",
	ListDisplay:    []string{"caption", "category", "date", "featured"},
	ListFilter:     []listing.Filter{choiceFilter("category", models.GalleryCategories), boolFilter("featured"), dateFilter("date")},
	SearchFields:   []string{"caption", "description"},
	Ordering:       "-date",
	ReadOnlyFields: []string{"created_at", "image_preview"},
	Fieldsets: []Fieldset{
		{Name: "Image Information", Fields: []string{"image", "image_preview", "caption", "description"}},
		{Name: "Categorization", Fields: []string{"category", "date", "featured"}},
		{Name: "Timestamps", Fields: []string{"created_at"}, Collapsed: true},
	},
	sortable: []string{"caption", "category", "date", "featured", "created_at"},
}

var BlogPostDescriptor = Descriptor{
	Key:            "blog-posts",
	Name:           "Blog posts",
	ListDisplay:    []string{"title", "author", "published", "featured", "date"},
	ListFilter:     []listing.Filter{boolFilter("published"), boolFilter("featured"), dateFilter("date")},
	SearchFields:   []string{"title", "body", "tags"},
	Ordering:       "-date",
	ReadOnlyFields: []string{"date", "updated_at"},
	Fieldsets: []Fieldset{
		{Name: "Post Information", Fields: []string{"title", "slug", "excerpt", "body", "image"}},
		{Name: "Author & Publishing", Fields: []string{"author", "published", "featured", "tags"}},
		{Name: "Timestamps", Fields: []string{"date", "updated_at"}, Collapsed: true},
	},
	searchColumns: []string{"title", "body"},
	searchExprs:   []string{blogpost.TagSearchExpr},
	sortable:      []string{"title", "author", "published", "featured", "date", "updated_at"},
}

var TestimonialDescriptor = Descriptor{
	Key:            "testimonials",
	Name:           "Testimonials",
	ListDisplay:    []string{"author", "organization", "featured", "created_at"},
	ListFilter:     []listing.Filter{boolFilter("featured"), dateFilter("created_at")},
	SearchFields:   []string{"author", "organization", "quote"},
	Ordering:       "-created_at",
	ReadOnlyFields: []string{"created_at"},
	Fieldsets: []Fieldset{
		{Name: "Testimonial Information", Fields: []string{"author", "position", "organization", "quote", "image"}},
		{Name: "Display Options", Fields: []string{"featured"}},
		{Name: "Timestamps", Fields: []string{"created_at"}, Collapsed: true},
	},
	sortable: []string{"author", "organization", "featured", "created_at"},
}

// Message bulk actions.
const (
	ActionMarkRead    = "mark_as_read"
	ActionMarkReplied = "mark_as_replied"
)

var MessageDescriptor = Descriptor{
	Key:            "messages",
	Name:           "Messages",
	ListDisplay:    []string{"name", "email", "subject", "read", "replied", "sent_at"},
	ListFilter:     []listing.Filter{boolFilter("read"), boolFilter("replied"), dateFilter("sent_at")},
	SearchFields:   []string{"name", "email", "subject", "message"},
	Ordering:       "-sent_at",
	ReadOnlyFields: []string{"sent_at"},
	Fieldsets: []Fieldset{
		{Name: "Message Information", Fields: []string{"name", "email", "subject", "message"}},
		{Name: "Status", Fields: []string{"read", "replied"}},
		{Name: "Timestamps", Fields: []string{"sent_at"}, Collapsed: true},
	},
	Actions: []Action{
		{Name: ActionMarkRead, Description: "Mark selected messages as read"},
		{Name: ActionMarkReplied, Description: "Mark selected messages as replied"},
	},
	sortable: []string{"name", "email", "subject", "read", "replied", "sent_at"},
}

var SiteSettingsDescriptor = Descriptor{
	Key:            "site-settings",
	Name:           "Site settings",
	Singleton:      true,
	ListDisplay:    []string{"site_title", "contact_email", "updated_at"},
	ReadOnlyFields: created,
	Fieldsets: []Fieldset{
		{Name: "Site Information", Fields: []string{"site_title", "site_description"}},
		{Name: "Contact Information", Fields: []string{"contact_email", "contact_phone", "address"}},
		{Name: "Social Media", Fields: []string{"social_linkedin", "social_twitter", "social_facebook"}},
		{Name: "Analytics", Fields: []string{"google_analytics_id"}},
		timestamps,
	},
}

func (d *Descriptor) columns() []string {
	if d.searchColumns != nil {
		return d.searchColumns
	}
	return d.SearchFields
}
