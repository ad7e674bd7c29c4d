package testimonial

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/database/dbtest"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/listing"
)

func TestAllNewestFirstAndSearch(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, author := range []string{"Amina", "Brian", "Claire"} {
		row := models.TestimonialModel{Author: author, Quote: "Great work with farmers", Organization: "FAO"}
		row.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	all, err := svc.All()
	if err != nil || len(all) != 3 || all[0].Author != "Claire" {
		t.Fatalf("all: %v %+v", err, all)
	}
	found, err := svc.Featured(listing.Options{})
	if err != nil || len(found) != 0 {
		t.Fatalf("featured: %v %+v", err, found)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/testimonials/?search=bri", nil))
	var body struct {
		Data []models.TestimonialModel `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusOK || len(body.Data) != 1 || body.Data[0].Author != "Brian" {
		t.Fatalf("search: %d %s", w.Code, w.Body.String())
	}
}
