// Package seed fills an empty database with sample portfolio content.
package seed

import (
	"fmt"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/content/award"
	"github.com/portfolio-space/core/internal/modules/content/blogpost"
	"github.com/portfolio-space/core/internal/modules/content/project"
	"github.com/portfolio-space/core/internal/modules/content/testimonial"
	"github.com/portfolio-space/core/internal/modules/system/core/settings"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Result counts the rows created by a run. Rows that already existed are not counted.
type Result struct {
	SiteSettings bool `json:"site_settings"`
	Bio          bool `json:"bio"`
	Projects     int  `json:"projects"`
	Awards       int  `json:"awards"`
	BlogPosts    int  `json:"blog_posts"`
	Testimonials int  `json:"testimonials"`
}

func (r Result) String() string {
	return fmt.Sprintf("site_settings=%t bio=%t projects=%d awards=%d blog_posts=%d testimonials=%d",
		r.SiteSettings, r.Bio, r.Projects, r.Awards, r.BlogPosts, r.Testimonials)
}

type Seeder struct {
	db           *gorm.DB
	settings     *settings.Service
	projects     *project.Service
	awards       *award.Service
	posts        *blogpost.Service
	testimonials *testimonial.Service
	log          *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{
		db:           db,
		settings:     settings.NewService(db),
		projects:     project.NewService(db),
		awards:       award.NewService(db),
		posts:        blogpost.NewService(db),
		testimonials: testimonial.NewService(db),
		log:          log.Named("seed"),
	}
}

// Run creates every sample row that is not present yet. Rows are matched on
// their natural keys, so running twice creates nothing the second time.
func (s *Seeder) Run() (Result, error) {
	var res Result
	var err error

	if _, res.SiteSettings, err = s.settings.CreateSiteSettings(&sampleSiteSettings); err != nil {
		return res, fmt.Errorf("site settings: %w", err)
	}
	if _, res.Bio, err = s.settings.CreateBio(&sampleBio); err != nil {
		return res, fmt.Errorf("bio: %w", err)
	}

	for i := range sampleProjects {
		dto := sampleProjects[i]
		if ok, err := s.exists(&models.ProjectModel{}, "title = ?", dto.Title); err != nil {
			return res, err
		} else if ok {
			continue
		}
		if _, err := s.projects.Create(&dto); err != nil {
			return res, fmt.Errorf("project %q: %w", dto.Title, err)
		}
		s.log.Info("created project", zap.String("title", dto.Title))
		res.Projects++
	}

	for i := range sampleAwards {
		dto := sampleAwards[i]
		if ok, err := s.exists(&models.AwardModel{}, "name = ? AND organization = ?", dto.Name, dto.Organization); err != nil {
			return res, err
		} else if ok {
			continue
		}
		if _, err := s.awards.Create(&dto); err != nil {
			return res, fmt.Errorf("award %q: %w", dto.Name, err)
		}
		s.log.Info("created award", zap.String("name", dto.Name))
		res.Awards++
	}

	for i := range samplePosts {
		dto := samplePosts[i]
		if ok, err := s.exists(&models.BlogPostModel{}, "slug = ?", dto.Slug); err != nil {
			return res, err
		} else if ok {
			continue
		}
		if _, err := s.posts.Create(&dto); err != nil {
			return res, fmt.Errorf("blog post %q: %w", dto.Slug, err)
		}
		s.log.Info("created blog post", zap.String("slug", dto.Slug))
		res.BlogPosts++
	}

	for i := range sampleTestimonials {
		dto := sampleTestimonials[i]
		if ok, err := s.exists(&models.TestimonialModel{}, "author = ? AND organization = ?", dto.Author, dto.Organization); err != nil {
			return res, err
		} else if ok {
			continue
		}
		if _, err := s.testimonials.Create(&dto); err != nil {
			return res, fmt.Errorf("testimonial %q: %w", dto.Author, err)
		}
		s.log.Info("created testimonial", zap.String("author", dto.Author))
		res.Testimonials++
	}
	return res, nil
}

func (s *Seeder) exists(model interface{}, query string, args ...interface{}) (bool, error) {
	var n int64
	if err := s.db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
