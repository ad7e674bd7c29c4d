package blogpost

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"github.com/portfolio-space/core/internal/pkg/textutil"
)

type CreatePostDTO struct {
	Title     string   `json:"title" binding:"required"`
	Slug      string   `json:"slug"`
	Body      string   `json:"body"`
	Excerpt   string   `json:"excerpt"`
	Image     string   `json:"image"`
	Author    string   `json:"author"`
	Published bool     `json:"published"`
	Featured  bool     `json:"featured"`
	Tags      []string `json:"tags"`
}

func (d *CreatePostDTO) normalize() error {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return apperr.Required("title")
	}
	d.Slug = strings.TrimSpace(d.Slug)
	if d.Slug == "" {
		d.Slug = textutil.Slugify(d.Title)
	}
	if err := checkSlug(d.Slug); err != nil {
		return err
	}
	if strings.TrimSpace(d.Body) == "" {
		return apperr.Required("body")
	}
	if strings.TrimSpace(d.Excerpt) == "" {
		// leave room for the ellipsis Excerpt may append
		d.Excerpt = textutil.Excerpt(d.Body, models.MaxExcerptLength-1)
	}
	return checkExcerpt(d.Excerpt)
}

type UpdatePostDTO struct {
	Title     *string   `json:"title"`
	Slug      *string   `json:"slug"`
	Body      *string   `json:"body"`
	Excerpt   *string   `json:"excerpt"`
	Image     *string   `json:"image"`
	Author    *string   `json:"author"`
	Published *bool     `json:"published"`
	Featured  *bool     `json:"featured"`
	Tags      *[]string `json:"tags"`
}

func (d *UpdatePostDTO) updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if d.Title != nil {
		title := strings.TrimSpace(*d.Title)
		if title == "" {
			return nil, apperr.Required("title")
		}
		updates["title"] = title
	}
	if d.Slug != nil {
		slug := strings.TrimSpace(*d.Slug)
		if err := checkSlug(slug); err != nil {
			return nil, err
		}
		updates["slug"] = slug
	}
	if d.Body != nil {
		if strings.TrimSpace(*d.Body) == "" {
			return nil, apperr.Required("body")
		}
		updates["body"] = *d.Body
	}
	if d.Excerpt != nil {
		if err := checkExcerpt(*d.Excerpt); err != nil {
			return nil, err
		}
		updates["excerpt"] = *d.Excerpt
	}
	if d.Image != nil {
		updates["image"] = *d.Image
	}
	if d.Author != nil {
		updates["author"] = *d.Author
	}
	if d.Published != nil {
		updates["published"] = *d.Published
	}
	if d.Featured != nil {
		updates["featured"] = *d.Featured
	}
	return updates, nil
}

func checkSlug(slug string) error {
	if slug == "" {
		return apperr.Required("slug")
	}
	if textutil.Slugify(slug) != slug {
		return apperr.Invalid("slug", "use lowercase letters, numbers and hyphens only")
	}
	return nil
}

func checkExcerpt(excerpt string) error {
	if utf8.RuneCountInString(excerpt) > models.MaxExcerptLength {
		return apperr.Invalid("excerpt", fmt.Sprintf("at most %d characters", models.MaxExcerptLength))
	}
	return nil
}
