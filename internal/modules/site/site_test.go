package site

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/database/dbtest"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/blog"
	"github.com/portfolio-space/core/internal/modules/contact"
	"github.com/portfolio-space/core/internal/modules/content/award"
	"github.com/portfolio-space/core/internal/modules/content/blogpost"
	"github.com/portfolio-space/core/internal/modules/content/gallery"
	"github.com/portfolio-space/core/internal/modules/content/message"
	"github.com/portfolio-space/core/internal/modules/content/project"
	"github.com/portfolio-space/core/internal/modules/content/testimonial"
	"github.com/portfolio-space/core/internal/modules/search"
	"github.com/portfolio-space/core/internal/modules/system/core/settings"
	"github.com/portfolio-space/core/internal/modules/system/util/slugtracker"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	r    *gin.Engine
	deps Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	d := Deps{
		Settings:     settings.NewService(db),
		Projects:     project.NewService(db),
		Awards:       award.NewService(db),
		Gallery:      gallery.NewService(db),
		Posts:        blogpost.NewService(db),
		Testimonials: testimonial.NewService(db),
		Contact:      contact.NewService(message.NewService(db), nil, nil),
		Search:       search.NewService(db),
		Blog:         blog.NewService(db, slugtracker.NewService(db), nil),
	}
	h, err := NewHandler(d)
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	r := gin.New()
	h.RegisterRoutes(r)
	r.NoRoute(h.NotFound)
	return &fixture{db: db, r: r, deps: d}
}

func (f *fixture) get(t *testing.T, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	return w
}

func str(s string) *string { return &s }

func TestPagesRenderOnEmptySite(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		path string
		want int
		text string
	}{
		{"/", http.StatusOK, models.DefaultSiteTitle},
		{"/about/", http.StatusNotFound, "does not exist"},
		{"/projects/", http.StatusOK, "No projects yet."},
		{"/projects/missing/", http.StatusNotFound, "does not exist"},
		{"/awards/", http.StatusOK, "No awards yet."},
		{"/gallery/?category=nonsense", http.StatusOK, "No images in this category."},
		{"/testimonials/", http.StatusOK, "No testimonials yet."},
		{"/contact/", http.StatusOK, `name="subject"`},
		{"/search/?q=", http.StatusOK, "Type something"},
		{"/blog/", http.StatusNotFound, "does not exist"},
		{"/nowhere", http.StatusNotFound, "does not exist"},
	}
	for _, tc := range cases {
		w := f.get(t, tc.path)
		if w.Code != tc.want || !strings.Contains(w.Body.String(), tc.text) {
			t.Errorf("GET %s = %d, want %d containing %q", tc.path, w.Code, tc.want, tc.text)
		}
	}
}

func TestAboutAndSettings(t *testing.T) {
	f := newFixture(t)
	if _, _, err := f.deps.Settings.CreateBio(&settings.BioDTO{Name: str("Ada Lovelace"), Bio: str("Writes **notes**.")}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := f.deps.Settings.CreateSiteSettings(&settings.SiteSettingsDTO{SiteTitle: str("Ada's Desk")}); err != nil {
		t.Fatal(err)
	}
	w := f.get(t, "/about/")
	body := w.Body.String()
	if w.Code != http.StatusOK || !strings.Contains(body, "<strong>notes</strong>") || !strings.Contains(body, "Ada&#39;s Desk") {
		t.Fatalf("about = %d %s", w.Code, body)
	}
}

func TestProjectsPageClamps(t *testing.T) {
	f := newFixture(t)
	for i := 1; i <= ProjectsPerPage+1; i++ {
		_, err := f.deps.Projects.Create(&project.CreateProjectDTO{
			Title:       fmt.Sprintf("Project %d", i),
			Description: "d",
			StartDate:   models.NewDate(2020, 1, i),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	w := f.get(t, "/projects/?page=9")
	body := w.Body.String()
	if w.Code != http.StatusOK || !strings.Contains(body, "Page 2 of 2") || !strings.Contains(body, "Project 1") {
		t.Fatalf("clamped page = %d %s", w.Code, body)
	}
	if strings.Contains(body, "Project 7") {
		t.Fatal("newest project leaked onto the last page")
	}
}

func TestContactForm(t *testing.T) {
	f := newFixture(t)

	post := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		f.r.ServeHTTP(w, req)
		return w
	}

	w := post(url.Values{"name": {"Grace"}, "email": {"g@example.com"}, "subject": {""}, "message": {"Hi"}})
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), contact.MsgFieldsMissing) ||
		!strings.Contains(w.Body.String(), `value="Grace"`) {
		t.Fatalf("missing field = %d %s", w.Code, w.Body)
	}
	var n int64
	f.db.Model(&models.MessageModel{}).Count(&n)
	if n != 0 {
		t.Fatalf("rows after invalid submit = %d", n)
	}

	w = post(url.Values{"name": {"Grace"}, "email": {"g@example.com"}, "subject": {"Hello"}, "message": {"Hi"}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/contact/" {
		t.Fatalf("submit = %d %v", w.Code, w.Header())
	}
	f.db.Model(&models.MessageModel{}).Count(&n)
	if n != 1 {
		t.Fatalf("rows = %d", n)
	}

	req := httptest.NewRequest(http.MethodGet, "/contact/", nil)
	for _, ck := range w.Result().Cookies() {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), contact.MsgThanks) {
		t.Fatalf("flash missing: %s", w.Body)
	}
}

func TestSearchJSON(t *testing.T) {
	f := newFixture(t)
	w := f.get(t, "/search/?q=%20%20", "Accept", "application/json")
	var got struct {
		Query   string                       `json:"query"`
		Results map[string][]json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v %s", err, w.Body)
	}
	for _, k := range []string{"projects", "awards", "blog_posts"} {
		v, ok := got.Results[k]
		if !ok || v == nil || len(v) != 0 {
			t.Errorf("results[%s] = %v", k, v)
		}
	}
}

func TestBlogRoutes(t *testing.T) {
	f := newFixture(t)
	svc := f.deps.Blog
	idx, _, err := svc.EnsureIndex("")
	if err != nil {
		t.Fatal(err)
	}
	page, err := svc.CreatePage(idx.ID, blog.PageInput{Title: "First Post", Body: "Hello *world*", Tags: []string{"Go"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Publish(page.ID); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		path string
		want int
		text string
	}{
		{"/blog/", http.StatusOK, `href="/blog/first-post/"`},
		{"/blog/first-post/", http.StatusOK, "<em>world</em>"},
		{"/blog/tags/go/", http.StatusOK, "Posts tagged <strong>Go</strong>"},
		{"/blog/?tag=rust", http.StatusOK, "No posts yet."},
		{"/blog/nope/", http.StatusNotFound, "does not exist"},
	}
	for _, tc := range cases {
		w := f.get(t, tc.path)
		if w.Code != tc.want || !strings.Contains(w.Body.String(), tc.text) {
			t.Errorf("GET %s = %d, want %d containing %q\n%s", tc.path, w.Code, tc.want, tc.text, w.Body)
		}
	}

	if _, err := svc.SaveRevision(page.ID, blog.PageInput{Title: "First Post", Slug: "renamed", Body: "x"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Publish(page.ID); err != nil {
		t.Fatal(err)
	}
	w := f.get(t, "/blog/first-post/")
	if w.Code != http.StatusMovedPermanently || w.Header().Get("Location") != "/blog/renamed/" {
		t.Fatalf("redirect = %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestHomeCapsFeaturedSections(t *testing.T) {
	f := newFixture(t)
	day := func(i int) models.Date { return models.NewDate(2024, time.January, 1+i) }
	seed := func(rows ...interface{}) {
		for _, row := range rows {
			if err := f.db.Create(row).Error; err != nil {
				t.Fatal(err)
			}
		}
	}
	for i := 0; i < HomeGallery+2; i++ {
		featured := i < HomeGallery+1
		seed(
			&models.ProjectModel{Title: fmt.Sprintf("home-project-%d", i), StartDate: day(i), Status: models.ProjectOngoing, Featured: featured},
			&models.AwardModel{Name: fmt.Sprintf("home-award-%d", i), Date: day(i), Category: "service", Featured: featured},
			&models.GalleryImageModel{Image: "gallery/x.jpg", Caption: fmt.Sprintf("home-gallery-%d", i), Date: day(i), Category: "general", Featured: featured},
			&models.BlogPostModel{Title: fmt.Sprintf("home-post-%d", i), Slug: fmt.Sprintf("home-post-%d", i), Published: true, Featured: featured},
			&models.BlogPostModel{Title: fmt.Sprintf("home-draft-%d", i), Slug: fmt.Sprintf("home-draft-%d", i), Featured: true},
			&models.TestimonialModel{Author: "Reviewer", Quote: fmt.Sprintf("home-quote-%d", i), Featured: featured},
		)
	}

	w := f.get(t, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("home = %d", w.Code)
	}
	body := w.Body.String()
	cases := []struct {
		marker string
		want   int
	}{
		{">home-project-", HomeProjects},
		{"<strong>home-award-", HomeAwards},
		{"<figcaption>home-gallery-", HomeGallery},
		{"<h3>home-post-", HomePosts},
		{"home-draft-", 0},
		{"<blockquote>home-quote-", HomeTestimonials},
	}
	for _, tc := range cases {
		if got := strings.Count(body, tc.marker); got != tc.want {
			t.Errorf("home shows %d items for %q, want %d", got, tc.marker, tc.want)
		}
	}
}

func TestContactFormThrottled(t *testing.T) {
	f := newFixture(t)
	h, err := NewHandler(f.deps)
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	h.RegisterRoutes(r, h.FormLimited)

	form := url.Values{"name": {"Grace"}, "email": {"g@example.com"}, "subject": {"Hello"}, "message": {"Hi"}}
	req := httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests || !strings.Contains(w.Body.String(), msgTooMany) ||
		!strings.Contains(w.Body.String(), `value="Grace"`) {
		t.Fatalf("throttled = %d %s", w.Code, w.Body)
	}
	var n int64
	f.db.Model(&models.MessageModel{}).Count(&n)
	if n != 0 {
		t.Fatalf("rows after throttled submit = %d", n)
	}
}
