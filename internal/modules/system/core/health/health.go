package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/database"
	pkgmail "github.com/portfolio-space/core/internal/pkg/mail"
	"github.com/portfolio-space/core/internal/pkg/nativelog"
	pkgredis "github.com/portfolio-space/core/internal/pkg/redis"
	"github.com/portfolio-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

type logItem struct {
	Size     string `json:"size"`
	Filename string `json:"filename"`
	Created  int64  `json:"created"`
}

// Deps are the collaborators probed or exposed by the health routes.
type Deps struct {
	DB     *gorm.DB
	Redis  *pkgredis.Client
	Mailer *pkgmail.Sender
	// MailTo resolves the address that receives the test email.
	MailTo func() string
	LogDir string
}

type Handler struct {
	deps Deps
}

func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// RegisterRoutes mounts GET /health on public and the log and mail tools on admin.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/health", h.health)

	g := admin.Group("/health")
	g.GET("/email/test", h.emailTest)
	g.GET("/log/list", h.listLogs)
	g.GET("/log", h.readLog)
	g.DELETE("/log", h.deleteLog)
}

func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	dbOK := database.Ping(h.deps.DB) == nil
	body := gin.H{"status": "ok", "database": dbOK}
	healthy := dbOK
	if h.deps.Redis != nil {
		redisOK := h.deps.Redis.Ping(ctx) == nil
		body["redis"] = redisOK
		healthy = healthy && redisOK
	}
	code := http.StatusOK
	if !healthy {
		body["status"] = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, body)
}

func (h *Handler) emailTest(c *gin.Context) {
	if !h.deps.Mailer.Enabled() {
		response.UnprocessableEntity(c, "mail is not enabled")
		return
	}
	to := ""
	if h.deps.MailTo != nil {
		to = h.deps.MailTo()
	}
	if to == "" {
		response.UnprocessableEntity(c, "no contact email configured")
		return
	}
	err := h.deps.Mailer.Send(pkgmail.Message{
		To:      []string{to},
		Subject: "Portfolio mail test",
		HTML:    "<h1>Mail is configured.</h1><p>If you can read this, contact notifications will be delivered.</p>",
	})
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.OK(c, gin.H{"ok": true})
}

func (h *Handler) listLogs(c *gin.Context) {
	entries, err := os.ReadDir(h.deps.LogDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			response.OK(c, []logItem{})
			return
		}
		response.InternalError(c, err)
		return
	}
	items := make([]logItem, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		items = append(items, logItem{
			Size:     formatByteSize(info.Size()),
			Filename: entry.Name(),
			Created:  info.ModTime().UnixMilli(),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Created > items[j].Created
	})
	response.OK(c, items)
}

// logPath confines filename to the log directory.
func (h *Handler) logPath(c *gin.Context) (string, bool) {
	filename := filepath.Base(strings.TrimSpace(c.Query("filename")))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		response.UnprocessableEntity(c, "filename must be string")
		return "", false
	}
	return filepath.Join(h.deps.LogDir, filename), true
}

func (h *Handler) readLog(c *gin.Context) {
	path, ok := h.logPath(c)
	if !ok {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		response.BadRequest(c, "log file not exists")
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

// deleteLog truncates today's file, which is still being written, and removes older ones.
func (h *Handler) deleteLog(c *gin.Context) {
	path, ok := h.logPath(c)
	if !ok {
		return
	}
	today := filepath.Join(h.deps.LogDir, nativelog.TodayFilename(time.Now()))
	var err error
	if filepath.Clean(path) == filepath.Clean(today) {
		err = os.WriteFile(path, nil, 0o644)
	} else {
		err = os.Remove(path)
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func formatByteSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
