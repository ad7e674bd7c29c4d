package award

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/database/dbtest"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"github.com/portfolio-space/core/internal/pkg/listing"
	"github.com/portfolio-space/core/internal/pkg/pagination"
)

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc := NewService(dbtest.Open(t))
	_, err := svc.Create(&CreateAwardDTO{Name: "Medal", Organization: "FAO", Description: "d", Date: models.NewDate(2024, 1, 1), Category: "sports"})
	if !errors.Is(err, apperr.ErrInvalidChoice) {
		t.Fatalf("err = %v", err)
	}
	var n int64
	svc.db.Model(&models.AwardModel{}).Count(&n)
	if n != 0 {
		t.Fatalf("rows = %d", n)
	}
}

func TestListAndPage(t *testing.T) {
	svc := NewService(dbtest.Open(t))
	for i, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"} {
		_, err := svc.Create(&CreateAwardDTO{
			Name:         name,
			Organization: "Ministry of Agriculture",
			Description:  "Recognition",
			Date:         models.NewDate(2015+i, 6, 1),
			Category:     "research",
			Featured:     i%3 == 0,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	items, pag, err := svc.Page(pagination.Query{Page: 1, Size: 9})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(items) != 9 || pag.TotalPage != 2 || items[0].Name != "J" {
		t.Fatalf("page 1: len=%d pages=%d first=%s", len(items), pag.TotalPage, items[0].Name)
	}
	items, _, err = svc.List(listing.Options{Search: "ministry", Ordering: "date"}, pagination.Query{Page: 1, Size: 20})
	if err != nil || len(items) != 10 || items[0].Name != "A" {
		t.Fatalf("search asc: %v len=%d", err, len(items))
	}
	top, err := svc.FeaturedTop(3)
	if err != nil || len(top) != 3 || top[0].Name != "J" {
		t.Fatalf("featured top: %v %+v", err, top)
	}
}

func TestGetMissingIs404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(dbtest.Open(t))).RegisterRoutes(r.Group("/api"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/awards/missing/", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCreateDefaultsCategory(t *testing.T) {
	svc := NewService(dbtest.Open(t))
	a, err := svc.Create(&CreateAwardDTO{Name: "Medal", Organization: "FAO", Description: "d", Date: models.NewDate(2024, 1, 1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Category != models.DefaultAwardCategory {
		t.Fatalf("category = %q", a.Category)
	}
}
