// Package blog is the page-tree blog: index pages at the root, blog pages
// beneath them, draft revisions and explicit publishing.
package blog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"github.com/portfolio-space/core/internal/pkg/textutil"
)

// PostsPerPage is the page size of an index listing.
const PostsPerPage = 6

// PublicPrefix is where the root index is served.
const PublicPrefix = "/blog/"

// DefaultIndexTitle is used when no index title is given.
const DefaultIndexTitle = "Blog"

// PageInput is the editable content of a page.
type PageInput struct {
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Intro       string       `json:"intro"`
	Body        string       `json:"body"`
	Date        *models.Date `json:"date"`
	HeaderImage string       `json:"header_image"`
	Tags        []string     `json:"tags"`
}

// normalize validates in for a page of pageType and fills derived fields.
func (in *PageInput) normalize(pageType string) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return apperr.Required("title")
	}
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = textutil.Slugify(in.Title)
	}
	if in.Slug == "" {
		return apperr.Required("slug")
	}
	if textutil.Slugify(in.Slug) != in.Slug {
		return apperr.Invalid("slug", "use lowercase letters, numbers and hyphens only")
	}
	if pageType == models.PageTypeBlogIndex {
		in.Body, in.Date, in.HeaderImage, in.Tags = "", nil, "", nil
		return nil
	}
	if utf8.RuneCountInString(in.Intro) > models.MaxIntroLength {
		return apperr.Invalid("intro", fmt.Sprintf("at most %d characters", models.MaxIntroLength))
	}
	if in.Date == nil || in.Date.IsZero() {
		y, m, d := time.Now().Date()
		today := models.NewDate(y, m, d)
		in.Date = &today
	}
	in.Tags = textutil.NormalizeTags(in.Tags)
	return nil
}

func (in *PageInput) content() models.PageContent {
	return models.PageContent{
		Title:       in.Title,
		Slug:        in.Slug,
		Intro:       in.Intro,
		Body:        in.Body,
		Date:        in.Date,
		HeaderImage: in.HeaderImage,
		Tags:        in.Tags,
	}
}

func inputFrom(c models.PageContent) PageInput {
	return PageInput{
		Title:       c.Title,
		Slug:        c.Slug,
		Intro:       c.Intro,
		Body:        c.Body,
		Date:        c.Date,
		HeaderImage: c.HeaderImage,
		Tags:        append([]string(nil), c.Tags...),
	}
}

// PageDetail is a page together with its latest draft.
type PageDetail struct {
	models.PageModel
	Draft *models.PageRevisionModel `json:"draft"`
}

// MigrationReport summarizes a legacy migration run.
type MigrationReport struct {
	IndexCreated bool `json:"index_created"`
	Migrated     int  `json:"migrated"`
	Skipped      int  `json:"skipped"`
}

func childPath(parent *models.PageModel, slug string) string {
	if parent == nil {
		return "/" + slug + "/"
	}
	return parent.URLPath + slug + "/"
}
