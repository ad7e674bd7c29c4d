package blogpost

import (
	"encoding/json"
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
	"gorm.io/gorm"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	return NewService(db), db
}

func mustCreate(t *testing.T, svc *Service, dto CreatePostDTO) *models.BlogPostModel {
	t.Helper()
	if dto.Body == "" {
		dto.Body = "Body of " + dto.Title
	}
	p, err := svc.Create(&dto)
	if err != nil {
		t.Fatalf("create %q: %v", dto.Title, err)
	}
	return p
}

func TestCreateSlugAndTags(t *testing.T) {
	svc, _ := newService(t)
	p := mustCreate(t, svc, CreatePostDTO{Title: "Hello Field Day", Tags: []string{"Farming", "farming", "Soil"}})
	if p.Slug != "hello-field-day" {
		t.Fatalf("slug = %q", p.Slug)
	}
	if got := p.TagNames(); len(got) != 2 {
		t.Fatalf("tags = %v", got)
	}
	_, err := svc.Create(&CreatePostDTO{Title: "Hello field day", Body: "x"})
	if !errors.Is(err, apperr.ErrSlugTaken) {
		t.Fatalf("duplicate slug err = %v", err)
	}
	_, err = svc.Create(&CreatePostDTO{Title: "Bad", Slug: "Not A Slug", Body: "x"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("bad slug err = %v", err)
	}
	long := make([]rune, models.MaxExcerptLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Create(&CreatePostDTO{Title: "Long", Body: "x", Excerpt: string(long)})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("long excerpt err = %v", err)
	}
}

func TestPublishedOnly(t *testing.T) {
	svc, _ := newService(t)
	pub := mustCreate(t, svc, CreatePostDTO{Title: "Public", Published: true, Featured: true, Tags: []string{"Water"}})
	draft := mustCreate(t, svc, CreatePostDTO{Title: "Draft", Featured: true})

	items, pag, err := svc.List(listing.Options{}, pagination.Query{Page: 1, Size: 20})
	if err != nil || pag.Total != 1 || items[0].ID != pub.ID || len(items[0].Tags) != 1 {
		t.Fatalf("list: %v %+v", err, items)
	}
	featured, err := svc.Featured(listing.Options{})
	if err != nil || len(featured) != 1 {
		t.Fatalf("featured: %v %+v", err, featured)
	}
	if got, _ := svc.GetPublished(draft.ID); got != nil {
		t.Fatalf("draft leaked through GetPublished")
	}
	if got, _ := svc.GetByID(draft.ID); got == nil {
		t.Fatalf("GetByID should see drafts")
	}
	byTag, _, err := svc.List(listing.Options{Search: "wat"}, pagination.Query{Page: 1, Size: 20})
	if err != nil || len(byTag) != 1 {
		t.Fatalf("tag search: %v %+v", err, byTag)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blog/"+draft.ID+"/", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("draft by id status = %d", w.Code)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blog/featured/", nil))
	var body struct {
		Data []models.BlogPostModel `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body.Data) != 1 {
		t.Fatalf("featured body: %v %s", err, w.Body.String())
	}
}

func TestUpdateReplacesTagsAndDeleteClearsLinks(t *testing.T) {
	svc, db := newService(t)
	p := mustCreate(t, svc, CreatePostDTO{Title: "Post", Tags: []string{"a", "b"}})
	tags := []string{"c"}
	published := true
	got, err := svc.Update(p.ID, &UpdatePostDTO{Tags: &tags, Published: &published})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if names := got.TagNames(); len(names) != 1 || names[0] != "c" || !got.Published {
		t.Fatalf("updated = %+v", got)
	}
	other := mustCreate(t, svc, CreatePostDTO{Title: "Other"})
	slug := "post"
	if _, err := svc.Update(other.ID, &UpdatePostDTO{Slug: &slug}); !errors.Is(err, apperr.ErrSlugTaken) {
		t.Fatalf("slug clash err = %v", err)
	}

	ok, err := svc.Delete(p.ID)
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	var links int64
	db.Table("blog_post_tags").Where("blog_post_id = ?", p.ID).Count(&links)
	if links != 0 {
		t.Fatalf("join rows left: %d", links)
	}
}

func TestCreateDerivesExcerpt(t *testing.T) {
	svc, _ := newService(t)
	p := mustCreate(t, svc, CreatePostDTO{Title: "Derived", Body: "<p>Field <strong>notes</strong> from Gulu.</p>"})
	if p.Excerpt != "Field notes from Gulu." {
		t.Fatalf("excerpt = %q", p.Excerpt)
	}
}
