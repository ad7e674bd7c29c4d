package sitemap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/database/dbtest"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/blog"
	"github.com/portfolio-space/core/internal/modules/system/util/slugtracker"
)

func TestSitemap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	b := blog.NewService(db, slugtracker.NewService(db), nil)
	proj := models.ProjectModel{Title: "Irrigation", StartDate: models.NewDate(2022, 1, 1)}
	if err := db.Create(&proj).Error; err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	NewHandler(db, b, "https://example.org", nil).RegisterRoutes(r)
	get := func() string {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		return w.Body.String()
	}

	body := get()
	for _, s := range []string{
		"<loc>https://example.org/</loc>",
		"<loc>https://example.org/contact/</loc>",
		"<loc>https://example.org/projects/" + proj.ID + "/</loc>",
	} {
		if !strings.Contains(body, s) {
			t.Errorf("missing %q", s)
		}
	}
	if strings.Contains(body, "/blog/") {
		t.Error("blog listed without an index")
	}

	idx, _, err := b.EnsureIndex("")
	if err != nil {
		t.Fatal(err)
	}
	p, err := b.CreatePage(idx.ID, blog.PageInput{Title: "Harvest"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Publish(p.ID); err != nil {
		t.Fatal(err)
	}
	body = get()
	for _, s := range []string{"<loc>https://example.org/blog/</loc>", "<loc>https://example.org/blog/harvest/</loc>"} {
		if !strings.Contains(body, s) {
			t.Errorf("missing %q", s)
		}
	}
}
