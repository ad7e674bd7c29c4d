// Package feed serves RSS and Atom feeds of the live blog pages.
package feed

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/blog"
	"github.com/portfolio-space/core/internal/modules/processing/markdown"
	"github.com/portfolio-space/core/internal/modules/system/core/settings"
	"github.com/portfolio-space/core/internal/pkg/textutil"
	"go.uber.org/zap"
)

// Size is the number of entries in a feed.
const Size = 20

const descriptionLength = 300

type Handler struct {
	blog     *blog.Service
	settings *settings.Service
	baseURL  string
	log      *zap.Logger
}

func NewHandler(b *blog.Service, st *settings.Service, baseURL string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{blog: b, settings: st, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// RegisterRoutes mounts /feed.xml and /atom.xml.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/feed.xml", func(c *gin.Context) { h.render(c, "rss") })
	r.GET("/atom.xml", func(c *gin.Context) { h.render(c, "atom") })
}

type channel struct {
	Title       string
	Description string
	Link        string
}

type item struct {
	Title       string
	Link        string
	GUID        string
	PubDate     time.Time
	Description string
}

func (h *Handler) render(c *gin.Context, kind string) {
	ch, items, err := h.build()
	if err != nil {
		h.log.Error("build feed", zap.Error(err))
		c.String(http.StatusInternalServerError, "error generating feed")
		return
	}
	if kind == "atom" {
		c.Data(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(buildAtom(ch, items)))
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(buildRSS(ch, items)))
}

func (h *Handler) build() (channel, []item, error) {
	ch := channel{Title: models.DefaultSiteTitle, Link: h.baseURL + blog.PublicPrefix}
	st, err := h.settings.SiteSettings()
	if err != nil {
		return ch, nil, err
	}
	if st != nil {
		if st.SiteTitle != "" {
			ch.Title = st.SiteTitle
		}
		ch.Description = st.SiteDescription
	}

	root, err := h.blog.RootIndex()
	if err != nil {
		return ch, nil, err
	}
	rootPath := blog.PublicPrefix
	if root != nil {
		rootPath = root.URLPath
		if ch.Description == "" {
			ch.Description = root.Intro
		}
	}

	pages, err := h.blog.RecentLive(Size)
	if err != nil {
		return ch, nil, err
	}
	items := make([]item, 0, len(pages))
	for _, p := range pages {
		link := h.baseURL + blog.PublicPath(rootPath, p.URLPath)
		it := item{Title: p.Title, Link: link, GUID: link, Description: summary(&p)}
		if p.FirstPublishedAt != nil {
			it.PubDate = *p.FirstPublishedAt
		}
		items = append(items, it)
	}
	return ch, items, nil
}

// summary is the plain-text description of a page: its intro, or the start
// of its rendered body.
func summary(p *models.PageModel) string {
	if s := strings.TrimSpace(p.Intro); s != "" {
		return s
	}
	return textutil.Excerpt(markdown.Render(p.Body), descriptionLength)
}

func buildRSS(ch channel, items []item) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>%s</title>
    <link>%s</link>
    <description>%s</description>
    <lastBuildDate>%s</lastBuildDate>
`, escapeXML(ch.Title), escapeXML(ch.Link), escapeXML(ch.Description), time.Now().UTC().Format(time.RFC1123Z))

	for _, it := range items {
		fmt.Fprintf(&b, `    <item>
      <title>%s</title>
      <link>%s</link>
      <guid isPermaLink="true">%s</guid>
      <pubDate>%s</pubDate>
      <description>%s</description>
    </item>
`, escapeXML(it.Title), escapeXML(it.Link), escapeXML(it.GUID),
			it.PubDate.UTC().Format(time.RFC1123Z), escapeXML(it.Description))
	}

	b.WriteString("  </channel>\n</rss>")
	return b.String()
}

func buildAtom(ch channel, items []item) string {
	updated := time.Now().UTC()
	if len(items) > 0 && !items[0].PubDate.IsZero() {
		updated = items[0].PubDate.UTC()
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>%s</title>
  <subtitle>%s</subtitle>
  <link href="%s"/>
  <updated>%s</updated>
  <id>%s</id>
`, escapeXML(ch.Title), escapeXML(ch.Description), escapeXML(ch.Link), updated.Format(time.RFC3339), escapeXML(ch.Link))

	for _, it := range items {
		fmt.Fprintf(&b, `  <entry>
    <title>%s</title>
    <link href="%s"/>
    <id>%s</id>
    <updated>%s</updated>
    <summary>%s</summary>
  </entry>
`, escapeXML(it.Title), escapeXML(it.Link), escapeXML(it.GUID),
			it.PubDate.UTC().Format(time.RFC3339), escapeXML(it.Description))
	}

	b.WriteString("</feed>")
	return b.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeXML(s string) string { return xmlEscaper.Replace(s) }
