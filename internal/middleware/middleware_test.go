package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/database/dbtest"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHostAllowed(t *testing.T) {
	cases := []struct {
		host     string
		patterns []string
		want     bool
	}{
		{"example.com", []string{"example.com"}, true},
		{"Example.com:8000", []string{"example.com"}, true},
		{"www.example.com", []string{".example.com"}, true},
		{"example.com", []string{".example.com"}, true},
		{"evil-example.com", []string{".example.com"}, false},
		{"anything.io", []string{"*"}, true},
		{"[::1]:8000", []string{"[::1]"}, true},
		{"other.com", []string{"example.com"}, false},
		{"example.com", nil, false},
	}
	for _, tc := range cases {
		if got := HostAllowed(tc.host, tc.patterns); got != tc.want {
			t.Fatalf("HostAllowed(%q, %v) = %v", tc.host, tc.patterns, got)
		}
	}
}

func TestAllowedHosts_DebugDefaultsToLocalhost(t *testing.T) {
	r := gin.New()
	r.Use(AllowedHosts(nil, true), SecurityHeaders(true))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "localhost:8000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("localhost: %d %v", w.Code, w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "attacker.test"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("foreign host status = %d", w.Code)
	}
}

func TestIsSecure(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if IsSecure(req) {
		t.Fatalf("plain request reported secure")
	}
	req.Header.Set("X-Forwarded-Proto", "https")
	if !IsSecure(req) {
		t.Fatalf("forwarded https not trusted")
	}
}

func TestRateLimit_MemoryLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/contact", RateLimit(NewMemoryLimiter(), RateLimitOptions{
		Name:   "contact",
		Max:    2,
		Window: time.Minute,
		OnLimit: func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false})
		},
	}), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("other ip throttled: %d", w.Code)
	}
}

func TestAuth(t *testing.T) {
	db := dbtest.Open(t)
	user := models.UserModel{Username: "admin", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	jwt.SetSecret("middleware-test-secret")
	token, _, err := jwt.Sign(user.ID, user.Username, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	ghost, _, _ := jwt.Sign("00000000-0000-0000-0000-000000000000", "ghost", time.Hour)

	r := gin.New()
	r.GET("/me", Auth(db), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUsername(c))
	})

	cases := []struct {
		header string
		want   int
	}{
		{"Bearer " + token, http.StatusOK},
		{"bearer " + token, http.StatusOK},
		{"", http.StatusUnauthorized},
		{"Bearer garbage", http.StatusUnauthorized},
		{"Bearer " + ghost, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("header %q: status %d", tc.header, w.Code)
		}
		if tc.want == http.StatusOK && w.Body.String() != "admin" {
			t.Fatalf("username = %q", w.Body.String())
		}
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/projects/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/projects/", nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	if !strings.Contains(body, `portfolio_http_requests_total{method="GET",route="/api/projects/",status="200"} 1`) {
		t.Fatalf("metrics output missing request counter:\n%s", body)
	}
}

func TestHTTPCache_PassThroughWithoutRedis(t *testing.T) {
	r := gin.New()
	r.Use(HTTPCache(nil, HTTPCacheOptions{}))
	calls := 0
	r.GET("/api/x", func(c *gin.Context) {
		calls++
		c.String(http.StatusOK, "fresh")
	})
	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/x", nil))
	}
	if calls != 2 {
		t.Fatalf("handler calls = %d", calls)
	}
}
