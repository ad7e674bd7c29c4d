package site

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/blog"
	"github.com/portfolio-space/core/internal/pkg/pagination"
)

type blogIndexData struct {
	listData
	Index *models.PageModel
	Tag   string
	Tags  []models.TagModel
	root  string
}

// Link is the public URL of a page under the blog prefix.
func (d blogIndexData) Link(p models.PageModel) string {
	return blog.PublicPath(d.root, p.URLPath)
}

func (h *Handler) blog(c *gin.Context) {
	root, err := h.d.Blog.RootIndex()
	if err != nil {
		h.fail(c, err)
		return
	}
	if root == nil || !root.Live {
		h.NotFound(c)
		return
	}

	rel := strings.Trim(c.Param("path"), "/")
	switch {
	case rel == "":
		h.blogIndex(c, root, root, strings.TrimSpace(c.Query("tag")))
		return
	case strings.HasPrefix(rel, "tags/"):
		tag := strings.TrimPrefix(rel, "tags/")
		if tag == "" || strings.Contains(tag, "/") {
			h.NotFound(c)
			return
		}
		h.blogIndex(c, root, root, tag)
		return
	}

	page, redirect, err := h.d.Blog.Resolve(root.URLPath + rel + "/")
	if err != nil {
		h.fail(c, err)
		return
	}
	if redirect != "" {
		c.Redirect(http.StatusMovedPermanently, blog.PublicPath(root.URLPath, redirect))
		return
	}
	if page == nil {
		h.NotFound(c)
		return
	}
	if page.IsIndex() {
		h.blogIndex(c, root, page, strings.TrimSpace(c.Query("tag")))
		return
	}
	h.tp.render(c, http.StatusOK, "blog_page", h.view(c, "blog", page.Title, page))
}

func (h *Handler) blogIndex(c *gin.Context, root, index *models.PageModel, tagSlug string) {
	items, pag, err := h.d.Blog.ListLivePosts(index.ID, tagSlug, pagination.Fixed(c, blog.PostsPerPage))
	if err != nil {
		h.fail(c, err)
		return
	}
	tags, err := h.d.Blog.Tags()
	if err != nil {
		h.fail(c, err)
		return
	}
	tagName := tagSlug
	for _, t := range tags {
		if t.Slug == tagSlug {
			tagName = t.Name
		}
	}
	params := url.Values{}
	base := blog.PublicPath(root.URLPath, index.URLPath)
	if tagSlug != "" {
		params.Set("tag", tagSlug)
	}
	h.tp.render(c, http.StatusOK, "blog_index", h.view(c, "blog", index.Title, blogIndexData{
		listData: listData{Items: items, Pager: pager{Pag: pag, Base: base, Params: params}},
		Index:    index,
		Tag:      tagName,
		Tags:     tags,
		root:     root.URLPath,
	}))
}
