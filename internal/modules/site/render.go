package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/processing/markdown"
	"github.com/portfolio-space/core/internal/modules/storage/media"
	"github.com/portfolio-space/core/internal/pkg/flash"
	"github.com/portfolio-space/core/internal/pkg/response"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home", "about", "projects", "project_detail", "awards", "gallery",
	"testimonials", "contact", "search", "blog_index", "blog_page", "error",
}

type navItem struct {
	Key, Label, Path string
}

var nav = []navItem{
	{"home", "Home", "/"},
	{"about", "About", "/about/"},
	{"projects", "Projects", "/projects/"},
	{"awards", "Awards", "/awards/"},
	{"gallery", "Gallery", "/gallery/"},
	{"blog", "Blog", "/blog/"},
	{"testimonials", "Testimonials", "/testimonials/"},
	{"contact", "Contact", "/contact/"},
}

var funcs = template.FuncMap{
	"md":       markdown.HTML,
	"media":    mediaURL,
	"label":    label,
	"navItems": func() []navItem { return nav },
	"add":      func(a, b int) int { return a + b },
	"sub":      func(a, b int) int { return a - b },
	"pageURL":  pageURL,
	"siteTitle": func(st *models.SiteSettings) string {
		if st == nil || strings.TrimSpace(st.SiteTitle) == "" {
			return models.DefaultSiteTitle
		}
		return st.SiteTitle
	},
}

// mediaURL turns a stored media reference into a link. Absolute URLs and
// rooted paths pass through; bare keys are served from /media/.
func mediaURL(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "/"), strings.Contains(ref, "://"):
		return ref
	}
	return media.URL(ref)
}

// label renders a choice value such as "field_work" as "Field Work".
func label(v string) string {
	words := strings.Fields(strings.ReplaceAll(v, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func pageURL(base string, params url.Values, page int) string {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))
	return base + "?" + q.Encode()
}

// pager feeds the shared pager partial.
type pager struct {
	Pag    response.Pagination
	Base   string
	Params url.Values
}

// view is the data every template receives.
type view struct {
	Title    string
	Section  string
	Query    string
	Settings *models.SiteSettings
	Flash    []flash.Message
	Year     int
	Data     interface{}
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	r := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.Must(base.Clone()).ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *renderer) render(c *gin.Context, status int, page string, v view) {
	t, ok := r.pages[page]
	if !ok {
		_ = c.Error(fmt.Errorf("unknown template %q", page))
		c.Status(http.StatusInternalServerError)
		return
	}
	if v.Year == 0 {
		v.Year = time.Now().Year()
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
