// Package sitemap serves /sitemap.xml.
package sitemap

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/blog"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	db      *gorm.DB
	blog    *blog.Service
	baseURL string
	log     *zap.Logger
}

func NewHandler(db *gorm.DB, b *blog.Service, baseURL string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{db: db, blog: b, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/sitemap.xml", h.render)
}

func (h *Handler) render(c *gin.Context) {
	urls, err := h.build()
	if err != nil {
		h.log.Error("build sitemap", zap.Error(err))
		c.String(http.StatusInternalServerError, "error generating sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(renderXML(urls)))
}

type sitemapURL struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

var staticPages = []struct {
	path, freq string
	priority   float64
}{
	{"/", "daily", 1.0},
	{"/about/", "monthly", 0.8},
	{"/projects/", "weekly", 0.8},
	{"/awards/", "monthly", 0.6},
	{"/gallery/", "weekly", 0.6},
	{"/testimonials/", "monthly", 0.5},
	{"/contact/", "yearly", 0.5},
}

func (h *Handler) build() ([]sitemapURL, error) {
	now := time.Now()
	urls := make([]sitemapURL, 0, len(staticPages)+16)
	for _, p := range staticPages {
		urls = append(urls, sitemapURL{Loc: h.baseURL + p.path, LastMod: now, ChangeFreq: p.freq, Priority: p.priority})
	}

	var projects []models.ProjectModel
	if err := h.db.Select("id, updated_at").Order("start_date DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	for _, p := range projects {
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/projects/%s/", h.baseURL, p.ID),
			LastMod:    p.UpdatedAt,
			ChangeFreq: "monthly",
			Priority:   0.7,
		})
	}

	root, err := h.blog.RootIndex()
	if err != nil || root == nil || !root.Live {
		return urls, err
	}
	pages, err := h.blog.LivePages()
	if err != nil {
		return nil, err
	}
	for _, p := range pages {
		if p.URLPath != root.URLPath && !strings.HasPrefix(p.URLPath, root.URLPath) {
			continue
		}
		u := sitemapURL{
			Loc:        h.baseURL + blog.PublicPath(root.URLPath, p.URLPath),
			LastMod:    p.UpdatedAt,
			ChangeFreq: "weekly",
			Priority:   0.6,
		}
		if p.IsIndex() {
			u.ChangeFreq, u.Priority = "daily", 0.8
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func renderXML(urls []sitemapURL) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`)
	for _, u := range urls {
		fmt.Fprintf(&b, `  <url>
    <loc>%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%.1f</priority>
  </url>
`, escapeXML(u.Loc), u.LastMod.Format("2006-01-02"), u.ChangeFreq, u.Priority)
	}
	b.WriteString(`</urlset>`)
	return b.String()
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeXML(s string) string { return xmlEscaper.Replace(s) }
