package models

import "time"

// Project statuses.
const (
	ProjectOngoing   = "ongoing"
	ProjectCompleted = "completed"
	ProjectPlanned   = "planned"
)

// ProjectStatuses lists valid project statuses in display order.
var ProjectStatuses = []string{ProjectOngoing, ProjectCompleted, ProjectPlanned}

// ProjectModel is a portfolio project.
type ProjectModel struct {
	Base
	Title               string `json:"title"                gorm:"size:200;not null"`
	Description         string `json:"description"          gorm:"type:text"`
	DetailedDescription string `json:"detailed_description" gorm:"type:text"`
	Image               string `json:"image"`
	StartDate           Date   `json:"start_date"           gorm:"type:date;index"`
	EndDate             *Date  `json:"end_date"             gorm:"type:date"`
	Status              string `json:"status"               gorm:"size:20;index;default:'ongoing'"`
	Link                string `json:"link"`
	Featured            bool   `json:"featured"             gorm:"index;default:false"`
}

func (ProjectModel) TableName() string { return "projects" }

// Award categories.
var AwardCategories = []string{"agriculture", "leadership", "research", "service", "international"}

// DefaultAwardCategory is applied when a category is not provided.
const DefaultAwardCategory = "agriculture"

// AwardModel is an award or recognition.
type AwardModel struct {
	Base
	Name         string `json:"name"         gorm:"size:200;not null"`
	Organization string `json:"organization" gorm:"size:200"`
	Date         Date   `json:"date"         gorm:"type:date;index"`
	Description  string `json:"description"  gorm:"type:text"`
	Image        string `json:"image"`
	Category     string `json:"category"     gorm:"size:20;index"`
	Featured     bool   `json:"featured"     gorm:"index;default:false"`
}

func (AwardModel) TableName() string { return "awards" }

// Gallery categories.
var GalleryCategories = []string{"events", "field_work", "meetings", "awards", "projects", "general"}

// DefaultGalleryCategory is applied when a category is not provided.
const DefaultGalleryCategory = "general"

// GalleryImageModel is a single gallery image.
type GalleryImageModel struct {
	Base
	Image       string `json:"image"`
	Caption     string `json:"caption"     gorm:"size:200"`
	Description string `json:"description" gorm:"type:text"`
	Date        Date   `json:"date"        gorm:"type:date;index"`
	Category    string `json:"category"    gorm:"size:20;index;default:'general'"`
	Featured    bool   `json:"featured"    gorm:"index;default:false"`
}

func (GalleryImageModel) TableName() string { return "gallery_images" }

// TestimonialModel is a quote from a colleague or partner.
type TestimonialModel struct {
	Base
	Author       string `json:"author"       gorm:"size:100;not null"`
	Position     string `json:"position"     gorm:"size:200"`
	Organization string `json:"organization" gorm:"size:200"`
	Quote        string `json:"quote"        gorm:"type:text"`
	Image        string `json:"image"`
	Featured     bool   `json:"featured"     gorm:"index;default:false"`
}

func (TestimonialModel) TableName() string { return "testimonials" }

// MessageModel is a contact form submission.
type MessageModel struct {
	Base
	Name    string    `json:"name"    gorm:"size:100;not null"`
	Email   string    `json:"email"   gorm:"size:254;not null"`
	Subject string    `json:"subject" gorm:"size:200;not null"`
	Message string    `json:"message" gorm:"type:text"`
	SentAt  time.Time `json:"sent_at" gorm:"autoCreateTime;index"`
	Read    bool      `json:"read"    gorm:"index;default:false"`
	Replied bool      `json:"replied" gorm:"index;default:false"`
}

func (MessageModel) TableName() string { return "messages" }

// ValidChoice reports whether v is one of choices.
func ValidChoice(v string, choices []string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}
