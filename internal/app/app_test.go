package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/config"
	"github.com/portfolio-space/core/internal/database/dbtest"
	"github.com/portfolio-space/core/internal/modules/auth"
	"github.com/portfolio-space/core/internal/pkg/blob"
)

func newTestApp(t *testing.T, mutate ...func(*config.AppConfig)) (*App, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.AppConfig{
		Port:         8000,
		SecretKey:    "app-test-secret",
		AllowedHosts: []string{"*"},
		BaseURL:      "https://example.org",
		Debug:        true,
	}
	for _, m := range mutate {
		m(cfg)
	}
	db := dbtest.Open(t)
	a, err := build(nil, cfg, db, nil, blob.NewMemory())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return a, auth.NewService(db)
}

func serve(a *App, method, path, body string, header ...string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		r.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, r)
	return w
}

func TestRoutesMounted(t *testing.T) {
	a, _ := newTestApp(t)
	cases := []struct {
		method, path string
		want         int
		contentType  string
	}{
		{http.MethodGet, "/", http.StatusOK, "text/html"},
		{http.MethodGet, "/api/health", http.StatusOK, "application/json"},
		{http.MethodGet, "/api/projects/", http.StatusOK, "application/json"},
		{http.MethodGet, "/api/blog/featured/", http.StatusOK, "application/json"},
		{http.MethodGet, "/api/settings/", http.StatusOK, "application/json"},
		{http.MethodGet, "/api/messages/", http.StatusUnauthorized, "application/json"},
		{http.MethodGet, "/api/nothing/", http.StatusNotFound, "application/json"},
		{http.MethodGet, "/admin/api/entities", http.StatusUnauthorized, "application/json"},
		{http.MethodGet, "/nothing/", http.StatusNotFound, "text/html"},
		{http.MethodGet, "/feed.xml", http.StatusOK, "application/rss+xml"},
		{http.MethodGet, "/sitemap.xml", http.StatusOK, "application/xml"},
		{http.MethodGet, "/metrics", http.StatusOK, "text/plain"},
	}
	for _, tc := range cases {
		w := serve(a, tc.method, tc.path, "")
		if w.Code != tc.want || !strings.HasPrefix(w.Header().Get("Content-Type"), tc.contentType) {
			t.Errorf("%s %s = %d %q, want %d %q", tc.method, tc.path, w.Code, w.Header().Get("Content-Type"), tc.want, tc.contentType)
		}
	}
	if w := serve(a, http.MethodGet, "/", ""); w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("security headers missing")
	}
}

func TestAdminLoginAndWrite(t *testing.T) {
	a, users := newTestApp(t)
	if _, err := users.CreateAdmin("admin", "correct-horse"); err != nil {
		t.Fatal(err)
	}

	if w := serve(a, http.MethodPost, "/admin/api/auth/login", `{"username":"admin","password":"wrong-horse"}`); w.Code != http.StatusForbidden {
		t.Fatalf("bad login = %d", w.Code)
	}
	w := serve(a, http.MethodPost, "/admin/api/auth/login", `{"username":"admin","password":"correct-horse"}`)
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil || login.Token == "" {
		t.Fatalf("login = %d %s", w.Code, w.Body)
	}
	bearer := []string{"Authorization", "Bearer " + login.Token}

	w = serve(a, http.MethodPost, "/admin/api/projects/",
		`{"title":"Irrigation","description":"drip lines","start_date":"2024-02-01","featured":true}`, bearer...)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body)
	}

	w = serve(a, http.MethodGet, "/api/projects/featured/", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Irrigation") {
		t.Fatalf("featured = %d %s", w.Code, w.Body)
	}
	if w := serve(a, http.MethodGet, "/api/messages/", "", bearer...); w.Code != http.StatusOK {
		t.Fatalf("messages with token = %d", w.Code)
	}
	if w := serve(a, http.MethodGet, "/admin/api/auth/me", "", bearer...); !strings.Contains(w.Body.String(), `"admin"`) {
		t.Fatalf("me = %d %s", w.Code, w.Body)
	}
}

func TestContactRateLimited(t *testing.T) {
	a, _ := newTestApp(t)
	body := `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello"}`
	for i := 0; i < contactLimit; i++ {
		w := serve(a, http.MethodPost, "/api/contact/", body)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"success":true`) {
			t.Fatalf("submit %d = %d %s", i, w.Code, w.Body)
		}
	}
	w := serve(a, http.MethodPost, "/api/contact/", body)
	if w.Code != http.StatusTooManyRequests || !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("limited = %d %s", w.Code, w.Body)
	}

	postForm := func() int {
		r := httptest.NewRequest(http.MethodPost, "/contact/", bytes.NewBufferString("name=a&email=b&subject=c&message=d"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, r)
		return rec.Code
	}
	for i := 0; i < contactLimit; i++ {
		if code := postForm(); code != http.StatusSeeOther {
			t.Fatalf("form counts separately, submit %d got %d", i, code)
		}
	}
	if code := postForm(); code != http.StatusTooManyRequests {
		t.Fatalf("form limited = %d", code)
	}
}

func TestAllowedHosts(t *testing.T) {
	a, _ := newTestApp(t, func(c *config.AppConfig) { c.AllowedHosts = []string{".example.org"} })
	r := httptest.NewRequest(http.MethodGet, "/api/projects/", nil)
	r.Host = "evil.test"
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("foreign host = %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/projects/", nil)
	r.Host = "www.example.org"
	w = httptest.NewRecorder()
	a.Router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("subdomain = %d", w.Code)
	}
}

func TestMatchOriginPattern(t *testing.T) {
	cases := []struct {
		pattern, origin string
		want            bool
	}{
		{"example.org", "https://example.org", true},
		{"*.example.org", "https://cms.example.org", true},
		{"*.example.org", "https://example.net", false},
		{"localhost:*", "http://localhost:5173", true},
		{"localhost:3000", "http://localhost:4000", false},
	}
	for _, tc := range cases {
		if got := matchOriginPattern(tc.pattern, extractOriginHost(tc.origin)); got != tc.want {
			t.Errorf("match(%q, %q) = %v", tc.pattern, tc.origin, got)
		}
	}
}
