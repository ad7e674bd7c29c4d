package feed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/database/dbtest"
	"github.com/portfolio-space/core/internal/modules/blog"
	"github.com/portfolio-space/core/internal/modules/system/core/settings"
	"github.com/portfolio-space/core/internal/modules/system/util/slugtracker"
)

func TestFeeds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	b := blog.NewService(db, slugtracker.NewService(db), nil)
	st := settings.NewService(db)
	title := "Field & Notes"
	if _, _, err := st.CreateSiteSettings(&settings.SiteSettingsDTO{SiteTitle: &title}); err != nil {
		t.Fatal(err)
	}
	idx, _, err := b.EnsureIndex("")
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []blog.PageInput{
		{Title: "Soil <Health>", Body: "**Bold** start of a long body."},
		{Title: "Draft only", Body: "never published"},
	} {
		p, err := b.CreatePage(idx.ID, in)
		if err != nil {
			t.Fatal(err)
		}
		if in.Title != "Draft only" {
			if _, err := b.Publish(p.ID); err != nil {
				t.Fatal(err)
			}
		}
	}

	r := gin.New()
	NewHandler(b, st, "https://example.org/", nil).RegisterRoutes(r)

	cases := []struct {
		path, contentType string
		want              []string
	}{
		{"/feed.xml", "application/rss+xml", []string{
			"<title>Field &amp; Notes</title>",
			"<title>Soil &lt;Health&gt;</title>",
			"<link>https://example.org/blog/soil-health/</link>",
			"<description>Bold start of a long body.</description>",
		}},
		{"/atom.xml", "application/atom+xml", []string{
			`<feed xmlns="http://www.w3.org/2005/Atom">`,
			`<link href="https://example.org/blog/soil-health/"/>`,
		}},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		body := w.Body.String()
		if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), tc.contentType) {
			t.Fatalf("%s = %d %q", tc.path, w.Code, w.Header().Get("Content-Type"))
		}
		for _, s := range tc.want {
			if !strings.Contains(body, s) {
				t.Errorf("%s missing %q\n%s", tc.path, s, body)
			}
		}
		if strings.Contains(body, "Draft only") {
			t.Errorf("%s lists a draft", tc.path)
		}
	}
}
