// Package site serves the server-rendered public pages.
package site

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/blog"
	"github.com/portfolio-space/core/internal/modules/contact"
	"github.com/portfolio-space/core/internal/modules/content/award"
	"github.com/portfolio-space/core/internal/modules/content/blogpost"
	"github.com/portfolio-space/core/internal/modules/content/gallery"
	"github.com/portfolio-space/core/internal/modules/content/project"
	"github.com/portfolio-space/core/internal/modules/content/testimonial"
	"github.com/portfolio-space/core/internal/modules/search"
	"github.com/portfolio-space/core/internal/modules/system/core/settings"
	"github.com/portfolio-space/core/internal/pkg/flash"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"go.uber.org/zap"
)

// Home page caps.
const (
	HomeProjects     = 3
	HomeAwards       = 3
	HomeGallery      = 6
	HomePosts        = 3
	HomeTestimonials = 3
)

// List page sizes.
const (
	ProjectsPerPage = 6
	AwardsPerPage   = 9
	GalleryPerPage  = 12
)

// Deps are the services the pages read from.
type Deps struct {
	Settings     *settings.Service
	Projects     *project.Service
	Awards       *award.Service
	Gallery      *gallery.Service
	Posts        *blogpost.Service
	Testimonials *testimonial.Service
	Contact      *contact.Service
	Search       *search.Service
	Blog         *blog.Service
	Log          *zap.Logger
}

type Handler struct {
	d  Deps
	tp *renderer
}

func NewHandler(d Deps) (*Handler, error) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	tp, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{d: d, tp: tp}, nil
}

// RegisterRoutes mounts every public page. contactMW guard POST /contact/.
func (h *Handler) RegisterRoutes(r gin.IRoutes, contactMW ...gin.HandlerFunc) {
	r.GET("/", h.home)
	r.GET("/about/", h.about)
	r.GET("/projects/", h.projects)
	r.GET("/projects/:id/", h.projectDetail)
	r.GET("/awards/", h.awards)
	r.GET("/gallery/", h.gallery)
	r.GET("/testimonials/", h.testimonials)
	r.GET("/contact/", h.contactForm)
	r.POST("/contact/", append(contactMW, h.contactSubmit)...)
	r.GET("/search/", h.search)
	// one catch-all; gin cannot mix it with a static /blog/tags/ sibling
	r.GET(blog.PublicPrefix+"*path", h.blog)
}

// view builds the common template data.
func (h *Handler) view(c *gin.Context, section, title string, data interface{}) view {
	st, err := h.d.Settings.SiteSettings()
	if err != nil {
		h.d.Log.Warn("load site settings", zap.Error(err))
	}
	return view{
		Title:    title,
		Section:  section,
		Query:    c.Query("q"),
		Settings: st,
		Flash:    flash.Pop(c),
		Data:     data,
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.d.Log.Error("render page", zap.String("path", c.Request.URL.Path), zap.Error(err))
	h.errorPage(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

func (h *Handler) errorPage(c *gin.Context, status int, message string) {
	h.tp.render(c, status, "error", h.view(c, "", http.StatusText(status), gin.H{
		"Status":  status,
		"Message": message,
	}))
}

// NotFound renders the not-found page.
func (h *Handler) NotFound(c *gin.Context) {
	h.errorPage(c, http.StatusNotFound, "The page you are looking for does not exist.")
}

type homeData struct {
	Bio          *models.Bio
	Projects     []models.ProjectModel
	Awards       []models.AwardModel
	Gallery      []models.GalleryImageModel
	Posts        []models.BlogPostModel
	Testimonials []models.TestimonialModel
}

func (h *Handler) home(c *gin.Context) {
	var d homeData
	var err error
	if d.Bio, err = h.d.Settings.Bio(); err != nil {
		h.fail(c, err)
		return
	}
	if d.Projects, err = h.d.Projects.FeaturedTop(HomeProjects); err != nil {
		h.fail(c, err)
		return
	}
	if d.Awards, err = h.d.Awards.FeaturedTop(HomeAwards); err != nil {
		h.fail(c, err)
		return
	}
	if d.Gallery, err = h.d.Gallery.FeaturedTop(HomeGallery); err != nil {
		h.fail(c, err)
		return
	}
	if d.Posts, err = h.d.Posts.PublishedFeaturedTop(HomePosts); err != nil {
		h.fail(c, err)
		return
	}
	if d.Testimonials, err = h.d.Testimonials.FeaturedTop(HomeTestimonials); err != nil {
		h.fail(c, err)
		return
	}
	h.tp.render(c, http.StatusOK, "home", h.view(c, "home", "", d))
}

func (h *Handler) about(c *gin.Context) {
	bio, err := h.d.Settings.Bio()
	if err != nil {
		h.fail(c, err)
		return
	}
	if bio == nil {
		h.NotFound(c)
		return
	}
	h.tp.render(c, http.StatusOK, "about", h.view(c, "about", "About", bio))
}

type listData struct {
	Items interface{}
	Pager pager
}

func (h *Handler) projects(c *gin.Context) {
	items, pag, err := h.d.Projects.Page(pagination.Fixed(c, ProjectsPerPage))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.tp.render(c, http.StatusOK, "projects", h.view(c, "projects", "Projects",
		listData{Items: items, Pager: pager{Pag: pag, Base: "/projects/"}}))
}

func (h *Handler) projectDetail(c *gin.Context) {
	p, err := h.d.Projects.GetByID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if p == nil {
		h.NotFound(c)
		return
	}
	h.tp.render(c, http.StatusOK, "project_detail", h.view(c, "projects", p.Title, p))
}

func (h *Handler) awards(c *gin.Context) {
	items, pag, err := h.d.Awards.Page(pagination.Fixed(c, AwardsPerPage))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.tp.render(c, http.StatusOK, "awards", h.view(c, "awards", "Awards",
		listData{Items: items, Pager: pager{Pag: pag, Base: "/awards/"}}))
}

type galleryData struct {
	listData
	Categories []string
	Current    string
}

func (h *Handler) gallery(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	items, pag, err := h.d.Gallery.Page(category, pagination.Fixed(c, GalleryPerPage))
	if err != nil {
		h.fail(c, err)
		return
	}
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	h.tp.render(c, http.StatusOK, "gallery", h.view(c, "gallery", "Gallery", galleryData{
		listData:   listData{Items: items, Pager: pager{Pag: pag, Base: "/gallery/", Params: params}},
		Categories: models.GalleryCategories,
		Current:    category,
	}))
}

func (h *Handler) testimonials(c *gin.Context) {
	items, err := h.d.Testimonials.All()
	if err != nil {
		h.fail(c, err)
		return
	}
	h.tp.render(c, http.StatusOK, "testimonials", h.view(c, "testimonials", "Testimonials", items))
}

type contactData struct {
	Form  contact.Input
	Error string
}

func (h *Handler) contactForm(c *gin.Context) {
	h.tp.render(c, http.StatusOK, "contact", h.view(c, "contact", "Contact", contactData{}))
}

func (h *Handler) contactSubmit(c *gin.Context) {
	var in contact.Input
	if err := c.ShouldBind(&in); err != nil {
		h.contactError(c, in, contact.MsgGenericError)
		return
	}
	if _, err := h.d.Contact.Submit(c.Request.Context(), in); err != nil {
		if errors.Is(err, contact.ErrMissingFields) {
			h.contactError(c, in, contact.MsgFieldsMissing)
			return
		}
		h.fail(c, err)
		return
	}
	flash.Set(c, flash.Success, contact.MsgThanks)
	c.Redirect(http.StatusSeeOther, "/contact/")
}

func (h *Handler) contactError(c *gin.Context, in contact.Input, msg string) {
	h.tp.render(c, http.StatusBadRequest, "contact", h.view(c, "contact", "Contact", contactData{Form: in, Error: msg}))
}

const msgTooMany = "Too many messages. Please wait a minute and try again."

// FormLimited answers a throttled contact POST with 429 and the form, keeping what was typed.
func (h *Handler) FormLimited(c *gin.Context) {
	var in contact.Input
	_ = c.ShouldBind(&in)
	h.tp.render(c, http.StatusTooManyRequests, "contact", h.view(c, "contact", "Contact", contactData{Form: in, Error: msgTooMany}))
	c.Abort()
}

func (h *Handler) search(c *gin.Context) {
	q := c.Query("q")
	res, err := h.d.Search.Search(q)
	if err != nil {
		if search.WantsJSON(c) {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": contact.MsgGenericError})
			return
		}
		h.fail(c, err)
		return
	}
	if search.WantsJSON(c) {
		c.JSON(http.StatusOK, search.JSON(q, res))
		return
	}
	h.tp.render(c, http.StatusOK, "search", h.view(c, "", "Search", res))
}
