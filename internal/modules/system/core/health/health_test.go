package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/database/dbtest"
)

func newRouter(t *testing.T, logDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(Deps{DB: dbtest.Open(t), LogDir: logDir}).RegisterRoutes(r.Group("/api"), r.Group("/admin/api"))
	return r
}

func TestHealthReportsDatabase(t *testing.T) {
	r := newRouter(t, t.TempDir())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["database"] != true || body["status"] != "ok" {
		t.Fatalf("body = %v", body)
	}
	if _, ok := body["redis"]; ok {
		t.Fatalf("redis reported without a client")
	}
}

func TestLogRoutesStayInsideLogDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "portfolio_2024-01-01.log"), []byte("line\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := newRouter(t, dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/api/health/log/list", nil))
	var list struct {
		Data []logItem `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list.Data) != 1 {
		t.Fatalf("list: %v %s", err, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/api/health/log?filename=../../etc/portfolio_2024-01-01.log", nil))
	if w.Code != http.StatusOK || w.Body.String() != "line\n" {
		t.Fatalf("read = %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/api/health/log?filename=portfolio_2024-01-01.log", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", w.Code)
	}
	if _, err := os.Stat(filepath.Join(dir, "portfolio_2024-01-01.log")); !os.IsNotExist(err) {
		t.Fatalf("old log not removed: %v", err)
	}
}
