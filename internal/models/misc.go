package models

// Admin log actions.
const (
	AdminActionAdd    = "add"
	AdminActionChange = "change"
	AdminActionDelete = "delete"
	AdminActionBulk   = "action"
)

// AdminLogModel records a write performed through the admin surface.
type AdminLogModel struct {
	Base
	UserID     string `json:"user_id"     gorm:"type:char(36);index"`
	Username   string `json:"username"    gorm:"size:150"`
	Entity     string `json:"entity"      gorm:"size:50;index"`
	ObjectID   string `json:"object_id"   gorm:"size:64"`
	ObjectRepr string `json:"object_repr" gorm:"size:200"`
	Action     string `json:"action"      gorm:"size:20"`
	Message    string `json:"message"     gorm:"type:text"`
}

func (AdminLogModel) TableName() string { return "admin_logs" }

// MediaModel tracks an uploaded media blob.
type MediaModel struct {
	Base
	Key         string `json:"key"          gorm:"size:255;uniqueIndex;not null"`
	Folder      string `json:"folder"       gorm:"size:50;index"`
	Filename    string `json:"filename"     gorm:"size:255"`
	ContentType string `json:"content_type" gorm:"size:100"`
	Size        int64  `json:"size"`
	Driver      string `json:"driver"       gorm:"size:20"`
}

func (MediaModel) TableName() string { return "media" }

// SlugTrackerModel records a retired URL path so it can redirect.
type SlugTrackerModel struct {
	Base
	Slug     string `json:"slug"      gorm:"size:255;index;not null"`
	Type     string `json:"type"      gorm:"size:20;index;not null"`
	TargetID string `json:"target_id" gorm:"type:char(36);index;not null"`
}

func (SlugTrackerModel) TableName() string { return "slug_trackers" }

// All returns every model managed by migrations, in dependency order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&TagModel{},
		&ProjectModel{},
		&AwardModel{},
		&GalleryImageModel{},
		&BlogPostModel{},
		&TestimonialModel{},
		&MessageModel{},
		&OptionModel{},
		&PageModel{},
		&PageRevisionModel{},
		&AdminLogModel{},
		&MediaModel{},
		&SlugTrackerModel{},
	}
}
