package search

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/database/dbtest"
	"github.com/portfolio-space/core/internal/models"
)

func TestSearchBlankQuery(t *testing.T) {
	svc := NewService(dbtest.Open(t))
	for _, q := range []string{"", "   "} {
		r, err := svc.Search(q)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if !r.Empty() || r.Projects == nil || r.Awards == nil || r.BlogPosts == nil {
			t.Fatalf("search %q = %+v", q, r)
		}
	}
}

func TestSearchCapsAndFilters(t *testing.T) {
	db := dbtest.Open(t)
	for i := 0; i < 7; i++ {
		p := models.ProjectModel{Title: fmt.Sprintf("Soil Study %d", i), Description: "x",
			StartDate: models.NewDate(2020, 1, i+1), Status: models.ProjectOngoing}
		if err := db.Create(&p).Error; err != nil {
			t.Fatal(err)
		}
	}
	awards := []models.AwardModel{
		{Name: "Prize", Organization: "SOIL board", Description: "d", Category: "research", Date: models.NewDate(2021, 1, 1)},
		{Name: "Medal", Organization: "x", Description: "healthy soil", Category: "research", Date: models.NewDate(2021, 1, 1)},
	}
	for i := range awards {
		if err := db.Create(&awards[i]).Error; err != nil {
			t.Fatal(err)
		}
	}
	posts := []models.BlogPostModel{
		{Title: "Soil notes", Slug: "soil-notes", Body: "b", Published: true},
		{Title: "Soil draft", Slug: "soil-draft", Body: "b", Published: false},
	}
	for i := range posts {
		if err := db.Create(&posts[i]).Error; err != nil {
			t.Fatal(err)
		}
	}

	r, err := NewService(db).Search("SOIL")
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Projects) != PerCategory {
		t.Fatalf("projects = %d", len(r.Projects))
	}
	if r.Projects[0].Title != "Soil Study 6" {
		t.Fatalf("first project = %q", r.Projects[0].Title)
	}
	// organization is not a search field for the site search.
	if len(r.Awards) != 1 || r.Awards[0].Name != "Medal" {
		t.Fatalf("awards = %+v", r.Awards)
	}
	if len(r.BlogPosts) != 1 || r.BlogPosts[0].Slug != "soil-notes" {
		t.Fatalf("posts = %+v", r.BlogPosts)
	}
}

func TestWantsJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		url, accept string
		want        bool
	}{
		{"/search/?q=a", "", false},
		{"/search/?q=a&format=json", "", true},
		{"/search/?q=a", "application/json", true},
		{"/search/?q=a", "text/html", false},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", tc.url, nil)
		if tc.accept != "" {
			c.Request.Header.Set("Accept", tc.accept)
		}
		if got := WantsJSON(c); got != tc.want {
			t.Fatalf("%s accept=%q: got %v", tc.url, tc.accept, got)
		}
	}
}
