package settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/database/dbtest"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/apperr"
)

func str(s string) *string { return &s }

func TestSiteSettingsCreateIsIdempotent(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)

	if st, err := svc.SiteSettings(); err != nil || st != nil {
		t.Fatalf("expected no settings, got %+v %v", st, err)
	}
	first, created, err := svc.CreateSiteSettings(&SiteSettingsDTO{ContactEmail: str("a@b.co")})
	if err != nil || !created {
		t.Fatalf("first create: %v created=%v", err, created)
	}
	if first.SiteTitle != models.DefaultSiteTitle || first.ID == 0 {
		t.Fatalf("first = %+v", first)
	}
	for i := 0; i < 5; i++ {
		again, created, err := svc.CreateSiteSettings(&SiteSettingsDTO{SiteTitle: str("Other")})
		if err != nil || created {
			t.Fatalf("create %d: %v created=%v", i, err, created)
		}
		if again.ID != first.ID || again.SiteTitle != models.DefaultSiteTitle {
			t.Fatalf("create %d returned %+v", i, again)
		}
	}
	var rows int64
	db.Model(&models.OptionModel{}).Where("name = ?", models.OptionSiteSettings).Count(&rows)
	if rows != 1 {
		t.Fatalf("rows = %d", rows)
	}
	if err := svc.DeleteSiteSettings(); !errors.Is(err, apperr.ErrSingletonDelete) {
		t.Fatalf("delete err = %v", err)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	svc := NewService(dbtest.Open(t))
	if got, err := svc.UpdateBio(&BioDTO{Phone: str("1")}); err != nil || got != nil {
		t.Fatalf("update without bio = %+v %v", got, err)
	}
	if _, _, err := svc.CreateBio(&BioDTO{Name: str("Paul")}); !errors.Is(err, apperr.ErrMissingFields) {
		t.Fatalf("bio without text err = %v", err)
	}
	_, _, err := svc.CreateBio(&BioDTO{Name: str("Paul"), Title: str("Commissioner"), Bio: str("Long text")})
	if err != nil {
		t.Fatalf("create bio: %v", err)
	}
	got, err := svc.UpdateBio(&BioDTO{Phone: str("+256")})
	if err != nil {
		t.Fatalf("update bio: %v", err)
	}
	if got.Phone != "+256" || got.Title != "Commissioner" || got.Name != "Paul" {
		t.Fatalf("merged bio = %+v", got)
	}
	if _, err := svc.UpdateBio(&BioDTO{Name: str(" ")}); !errors.Is(err, apperr.ErrMissingFields) {
		t.Fatalf("blank name err = %v", err)
	}
	ok, err := svc.DeleteBio()
	if err != nil || !ok {
		t.Fatalf("delete bio: %v %v", ok, err)
	}
	if bio, _ := svc.Bio(); bio != nil {
		t.Fatalf("bio survived delete")
	}
}

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewService(dbtest.Open(t))
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}
	if w := get("/api/settings/"); w.Code != http.StatusOK || w.Body.String() != `{"data":null}` {
		t.Fatalf("empty settings = %d %s", w.Code, w.Body.String())
	}
	bio, _, err := svc.CreateBio(&BioDTO{Name: str("Paul"), Bio: str("x")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	w := get("/api/bio/")
	var body struct {
		Data []models.Bio `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body.Data) != 1 {
		t.Fatalf("bio list: %v %s", err, w.Body.String())
	}
	if w := get("/api/bio/" + strconv.Itoa(int(bio.ID)) + "/"); w.Code != http.StatusOK {
		t.Fatalf("bio detail = %d", w.Code)
	}
	if w := get("/api/bio/999/"); w.Code != http.StatusNotFound {
		t.Fatalf("wrong bio id = %d", w.Code)
	}
}

func TestWritesFromAnotherServiceAreVisible(t *testing.T) {
	db := dbtest.Open(t)
	server, cli := NewService(db), NewService(db)

	if bio, err := server.Bio(); err != nil || bio != nil {
		t.Fatalf("bio before create = %+v %v", bio, err)
	}
	if _, _, err := cli.CreateBio(&BioDTO{Name: str("Amara"), Title: str("Agronomist"), Bio: str("Field work")}); err != nil {
		t.Fatal(err)
	}
	bio, err := server.Bio()
	if err != nil || bio == nil || bio.Name != "Amara" {
		t.Fatalf("bio after create elsewhere = %+v %v", bio, err)
	}

	if _, _, err := cli.CreateSiteSettings(&SiteSettingsDTO{ContactEmail: str("old@example.org")}); err != nil {
		t.Fatal(err)
	}
	if _, err := server.SiteSettings(); err != nil {
		t.Fatal(err)
	}
	if _, err := cli.UpdateSiteSettings(&SiteSettingsDTO{ContactEmail: str("new@example.org")}); err != nil {
		t.Fatal(err)
	}
	st, err := server.SiteSettings()
	if err != nil || st == nil || st.ContactEmail != "new@example.org" {
		t.Fatalf("settings after update elsewhere = %+v %v", st, err)
	}
}
