package blog

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/content/blogpost"
	"github.com/portfolio-space/core/internal/pkg/textutil"
	"go.uber.org/zap"
)

// Migrator copies legacy blog posts into the page tree.
type Migrator struct {
	blog  *Service
	posts *blogpost.Service
	log   *zap.Logger
}

func NewMigrator(blog *Service, posts *blogpost.Service, log *zap.Logger) *Migrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Migrator{blog: blog, posts: posts, log: log}
}

// MigrateLegacy publishes every legacy post under the root index, creating
// the index titled indexTitle if needed. Posts whose slug already exists
// under the index are skipped and left untouched.
func (m *Migrator) MigrateLegacy(ctx context.Context, indexTitle string) (MigrationReport, error) {
	var report MigrationReport
	index, created, err := m.blog.EnsureIndex(indexTitle)
	if err != nil {
		return report, fmt.Errorf("ensure index: %w", err)
	}
	report.IndexCreated = created

	posts, err := m.posts.All()
	if err != nil {
		return report, fmt.Errorf("load legacy posts: %w", err)
	}
	for i := range posts {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		p := &posts[i]
		slug := p.Slug
		if slug == "" {
			slug = textutil.Slugify(p.Title)
		}
		exists, err := m.blog.ChildExists(index.ID, slug)
		if err != nil {
			return report, err
		}
		if exists {
			report.Skipped++
			continue
		}

		page, err := m.blog.CreatePage(index.ID, legacyInput(p, slug))
		if err != nil {
			return report, fmt.Errorf("migrate %q: %w", slug, err)
		}
		if _, err := m.blog.Publish(page.ID); err != nil {
			return report, fmt.Errorf("publish %q: %w", slug, err)
		}
		if !p.Date.IsZero() {
			if err := m.blog.backdate(page.ID, p.Date); err != nil {
				return report, err
			}
		}
		report.Migrated++
		m.log.Info("migrated legacy post", zap.String("slug", slug), zap.String("page_id", page.ID))
	}
	return report, nil
}

func legacyInput(p *models.BlogPostModel, slug string) PageInput {
	intro := p.Excerpt
	if utf8.RuneCountInString(intro) > models.MaxIntroLength {
		intro = textutil.Truncate(intro, models.MaxIntroLength-1)
	}
	in := PageInput{
		Title:       p.Title,
		Slug:        slug,
		Intro:       intro,
		Body:        p.Body,
		HeaderImage: p.Image,
		Tags:        p.TagNames(),
	}
	if !p.Date.IsZero() {
		d := models.NewDate(p.Date.Date())
		in.Date = &d
	}
	return in
}
