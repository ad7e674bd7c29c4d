package models

import "time"

// Page types of the blog tree.
const (
	PageTypeBlogIndex = "blog_index"
	PageTypeBlogPage  = "blog_page"
)

// MaxIntroLength bounds the intro of a blog page.
const MaxIntroLength = 250

// PageModel is a node of the blog page tree. Live columns hold the
// published content; drafts live in PageRevisionModel.
type PageModel struct {
	Base
	ParentID              *string    `json:"parent_id"                gorm:"type:char(36);index"`
	Type                  string     `json:"type"                     gorm:"size:20;index;not null"`
	Depth                 int        `json:"depth"`
	URLPath               string     `json:"url_path"                 gorm:"size:255;index"`
	Title                 string     `json:"title"                    gorm:"size:255;not null"`
	Slug                  string     `json:"slug"                     gorm:"size:255;index;not null"`
	Live                  bool       `json:"live"                     gorm:"index;default:false"`
	HasUnpublishedChanges bool       `json:"has_unpublished_changes"  gorm:"default:false"`
	FirstPublishedAt      *time.Time `json:"first_published_at"       gorm:"index"`
	LastPublishedAt       *time.Time `json:"last_published_at"`
	LatestRevisionID      *string    `json:"latest_revision_id"       gorm:"type:char(36)"`
	LiveRevisionID        *string    `json:"live_revision_id"         gorm:"type:char(36)"`
	Intro                 string     `json:"intro"                    gorm:"type:text"`
	Body                  string     `json:"body"                     gorm:"type:text"`
	Date                  *Date      `json:"date"                     gorm:"type:date"`
	HeaderImage           string     `json:"header_image"`
	Tags                  []TagModel `json:"tags"                     gorm:"many2many:blog_page_tags;joinForeignKey:PageID;joinReferences:TagID"`
}

func (PageModel) TableName() string { return "blog_pages" }

// IsIndex reports whether the page is a blog index.
func (p *PageModel) IsIndex() bool { return p.Type == PageTypeBlogIndex }

// PageContent is the editable content of a page, snapshotted per revision.
type PageContent struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Intro       string   `json:"intro"`
	Body        string   `json:"body,omitempty"`
	Date        *Date    `json:"date,omitempty"`
	HeaderImage string   `json:"header_image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// PageRevisionModel stores one saved version of a page.
type PageRevisionModel struct {
	Base
	PageID      string      `json:"page_id"      gorm:"type:char(36);index;not null"`
	Version     int         `json:"version"`
	Content     PageContent `json:"content"      gorm:"type:text;serializer:json"`
	PublishedAt *time.Time  `json:"published_at"`
}

func (PageRevisionModel) TableName() string { return "page_revisions" }
