package models

import "time"

// MaxExcerptLength bounds BlogPostModel.Excerpt.
const MaxExcerptLength = 300

// BlogPostModel is a legacy flat blog post.
type BlogPostModel struct {
	Base
	Title     string     `json:"title"     gorm:"size:200;not null"`
	Slug      string     `json:"slug"      gorm:"size:200;uniqueIndex;not null"`
	Body      string     `json:"body"      gorm:"type:text"`
	Excerpt   string     `json:"excerpt"   gorm:"size:300"`
	Image     string     `json:"image"`
	Author    string     `json:"author"    gorm:"size:100"`
	Published bool       `json:"published" gorm:"index;default:false"`
	Featured  bool       `json:"featured"  gorm:"index;default:false"`
	Date      time.Time  `json:"date"      gorm:"autoCreateTime;index"`
	Tags      []TagModel `json:"tags"      gorm:"many2many:blog_post_tags;joinForeignKey:BlogPostID;joinReferences:TagID"`
}

func (BlogPostModel) TableName() string { return "blog_posts" }

// TagNames returns the names of the attached tags.
func (p *BlogPostModel) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

// TagModel is a tag shared by legacy posts and blog pages.
type TagModel struct {
	Base
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"size:100;uniqueIndex;not null"`
}

func (TagModel) TableName() string { return "tags" }
