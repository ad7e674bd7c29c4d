package seed

import (
	"testing"

	"github.com/portfolio-space/core/internal/database/dbtest"
	"github.com/portfolio-space/core/internal/models"
)

func TestRunIsIdempotent(t *testing.T) {
	db := dbtest.Open(t)
	s := New(db, nil)

	first, err := s.Run()
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	want := Result{
		SiteSettings: true,
		Bio:          true,
		Projects:     len(sampleProjects),
		Awards:       len(sampleAwards),
		BlogPosts:    len(samplePosts),
		Testimonials: len(sampleTestimonials),
	}
	if first != want {
		t.Fatalf("first run = %v, want %v", first, want)
	}

	second, err := s.Run()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second != (Result{}) {
		t.Fatalf("second run created rows: %v", second)
	}

	var published int64
	db.Model(&models.BlogPostModel{}).Where("published = ?", true).Count(&published)
	if published != 2 {
		t.Fatalf("published posts = %d", published)
	}
	var tags int64
	db.Model(&models.TagModel{}).Count(&tags)
	if tags != 8 {
		t.Fatalf("tags = %d", tags)
	}
}
