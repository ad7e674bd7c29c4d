package blog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/content/tag"
	"github.com/portfolio-space/core/internal/modules/system/util/slugtracker"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"github.com/portfolio-space/core/internal/pkg/listing"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagFilterExpr keeps pages carrying the tag with the bound slug.
const TagFilterExpr = `EXISTS (SELECT 1 FROM blog_page_tags bpt JOIN tags t ON t.id = bpt.tag_id
	WHERE bpt.page_id = blog_pages.id AND t.slug = ?)`

var errParentNotFound = errors.New("parent page not found")

type Service struct {
	db    *gorm.DB
	slugs *slugtracker.Service
	log   *zap.Logger
}

func NewService(db *gorm.DB, slugs *slugtracker.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, slugs: slugs, log: log}
}

func (s *Service) load(tx *gorm.DB, id string) (*models.PageModel, error) {
	var p models.PageModel
	if err := tx.Where("id = ?", id).Limit(1).Find(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, nil
	}
	return &p, nil
}

// GetByID returns the page with its live tags, or nil.
func (s *Service) GetByID(id string) (*models.PageModel, error) {
	var p models.PageModel
	if err := s.db.Preload("Tags").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Detail returns the page with its latest draft revision.
func (s *Service) Detail(id string) (*PageDetail, error) {
	p, err := s.GetByID(id)
	if err != nil || p == nil {
		return nil, err
	}
	rev, err := s.latestRevision(s.db, p)
	if err != nil {
		return nil, err
	}
	return &PageDetail{PageModel: *p, Draft: rev}, nil
}

// RootIndex returns the oldest root index page, or nil.
func (s *Service) RootIndex() (*models.PageModel, error) {
	var p models.PageModel
	err := s.db.Where("parent_id IS NULL AND type = ?", models.PageTypeBlogIndex).
		Order("created_at ASC").Order("id ASC").Limit(1).Find(&p).Error
	if err != nil || p.ID == "" {
		return nil, err
	}
	return &p, nil
}

// EnsureIndex returns the root index, creating and publishing one titled
// title when none exists.
func (s *Service) EnsureIndex(title string) (*models.PageModel, bool, error) {
	idx, err := s.RootIndex()
	if err != nil || idx != nil {
		return idx, false, err
	}
	if strings.TrimSpace(title) == "" {
		title = DefaultIndexTitle
	}
	idx, err = s.create(nil, models.PageTypeBlogIndex, PageInput{Title: title})
	if err != nil {
		return nil, false, err
	}
	idx, err = s.Publish(idx.ID)
	if err != nil {
		return nil, false, err
	}
	s.log.Info("created blog index", zap.String("title", idx.Title), zap.String("path", idx.URLPath))
	return idx, true, nil
}

// CreateIndex adds a root index page as a draft.
func (s *Service) CreateIndex(in PageInput) (*models.PageModel, error) {
	return s.create(nil, models.PageTypeBlogIndex, in)
}

// CreatePage adds a non-live blog page under the index parentID.
// It returns nil when the parent does not exist.
func (s *Service) CreatePage(parentID string, in PageInput) (*models.PageModel, error) {
	return s.create(&parentID, models.PageTypeBlogPage, in)
}

func (s *Service) create(parentID *string, pageType string, in PageInput) (*models.PageModel, error) {
	if err := in.normalize(pageType); err != nil {
		return nil, err
	}
	var page *models.PageModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var parent *models.PageModel
		if parentID != nil {
			p, err := s.load(tx, *parentID)
			if err != nil {
				return err
			}
			if p == nil {
				return errParentNotFound
			}
			if !p.IsIndex() {
				return fmt.Errorf("parent %s: %w", p.ID, apperr.ErrNotIndex)
			}
			parent = p
		}
		if err := checkSibling(tx, parentID, in.Slug, ""); err != nil {
			return err
		}

		page = &models.PageModel{
			ParentID:              parentID,
			Type:                  pageType,
			URLPath:               childPath(parent, in.Slug),
			HasUnpublishedChanges: true,
		}
		if parent != nil {
			page.Depth = parent.Depth + 1
		}
		applyContent(page, in.content())
		if err := tx.Omit(clause.Associations).Create(page).Error; err != nil {
			return err
		}
		rev, err := saveRevision(tx, page, in.content())
		if err != nil {
			return err
		}
		page.LatestRevisionID = &rev.ID
		return nil
	})
	if errors.Is(err, errParentNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func applyContent(p *models.PageModel, c models.PageContent) {
	p.Title = c.Title
	p.Slug = c.Slug
	p.Intro = c.Intro
	p.Body = c.Body
	p.Date = c.Date
	p.HeaderImage = c.HeaderImage
}

func checkSibling(tx *gorm.DB, parentID *string, slug, exceptID string) error {
	q := tx.Model(&models.PageModel{}).Where("slug = ?", slug)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%q: %w", slug, apperr.ErrSlugTaken)
	}
	return nil
}

// saveRevision appends the next version for page and marks it as its latest draft.
func saveRevision(tx *gorm.DB, page *models.PageModel, content models.PageContent) (*models.PageRevisionModel, error) {
	var latest int
	row := tx.Model(&models.PageRevisionModel{}).Where("page_id = ?", page.ID).
		Select("COALESCE(MAX(version), 0)").Row()
	if err := row.Scan(&latest); err != nil {
		return nil, err
	}
	rev := models.PageRevisionModel{PageID: page.ID, Version: latest + 1, Content: content}
	if err := tx.Create(&rev).Error; err != nil {
		return nil, err
	}
	err := tx.Model(&models.PageModel{}).Where("id = ?", page.ID).Updates(map[string]interface{}{
		"latest_revision_id":      rev.ID,
		"has_unpublished_changes": true,
	}).Error
	return &rev, err
}

func (s *Service) latestRevision(tx *gorm.DB, page *models.PageModel) (*models.PageRevisionModel, error) {
	var rev models.PageRevisionModel
	err := tx.Where("page_id = ?", page.ID).Order("version DESC").Limit(1).Find(&rev).Error
	if err != nil || rev.ID == "" {
		return nil, err
	}
	return &rev, nil
}

// SaveRevision stores a new draft. Live columns are left as they are.
func (s *Service) SaveRevision(pageID string, in PageInput) (*models.PageRevisionModel, error) {
	var rev *models.PageRevisionModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		page, err := s.load(tx, pageID)
		if err != nil || page == nil {
			return err
		}
		if err := in.normalize(page.Type); err != nil {
			return err
		}
		if err := checkSibling(tx, page.ParentID, in.Slug, page.ID); err != nil {
			return err
		}
		rev, err = saveRevision(tx, page, in.content())
		return err
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// Publish makes the latest revision live. A changed slug moves the page and
// its descendants; paths that were public are kept as redirects.
func (s *Service) Publish(pageID string) (*models.PageModel, error) {
	found := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		page, err := s.load(tx, pageID)
		if err != nil || page == nil {
			return err
		}
		found = true
		rev, err := s.latestRevision(tx, page)
		if err != nil {
			return err
		}
		if rev == nil {
			return fmt.Errorf("page %s has no revision", page.ID)
		}
		c := rev.Content
		if err := checkSibling(tx, page.ParentID, c.Slug, page.ID); err != nil {
			return err
		}
		var parent *models.PageModel
		if page.ParentID != nil {
			if parent, err = s.load(tx, *page.ParentID); err != nil {
				return err
			}
		}

		now := time.Now()
		oldPath, newPath := page.URLPath, childPath(parent, c.Slug)
		wasPublic := page.FirstPublishedAt != nil
		updates := map[string]interface{}{
			"title":                   c.Title,
			"slug":                    c.Slug,
			"intro":                   c.Intro,
			"body":                    c.Body,
			"header_image":            c.HeaderImage,
			"url_path":                newPath,
			"live":                    true,
			"has_unpublished_changes": false,
			"last_published_at":       now,
			"live_revision_id":        rev.ID,
		}
		if c.Date != nil {
			updates["date"] = *c.Date
		} else {
			updates["date"] = nil
		}
		if page.FirstPublishedAt == nil {
			updates["first_published_at"] = now
		}
		if err := tx.Model(page).Omit(clause.Associations).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(rev).Update("published_at", now).Error; err != nil {
			return err
		}
		if page.Type == models.PageTypeBlogPage {
			tags, err := tag.Resolve(tx, c.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(page).Omit("Tags.*").Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		if newPath != oldPath {
			return s.move(tx, page.ID, oldPath, newPath, wasPublic)
		}
		return nil
	})
	if err != nil || !found {
		return nil, err
	}
	return s.GetByID(pageID)
}

// move rewrites url_path under oldPath and tracks the paths that were public.
func (s *Service) move(tx *gorm.DB, pageID, oldPath, newPath string, wasPublic bool) error {
	tracker := s.slugs.WithDB(tx)
	if wasPublic {
		if err := tracker.Track(oldPath, slugtracker.TypeBlogPage, pageID); err != nil {
			return err
		}
	}
	if err := tracker.Forget(newPath, slugtracker.TypeBlogPage); err != nil {
		return err
	}
	var desc []models.PageModel
	err := tx.Where("url_path LIKE ? ESCAPE '!' AND id <> ?", listing.EscapeLike(oldPath)+"%", pageID).
		Find(&desc).Error
	if err != nil {
		return err
	}
	for _, d := range desc {
		moved := newPath + strings.TrimPrefix(d.URLPath, oldPath)
		if err := tx.Model(&models.PageModel{}).Where("id = ?", d.ID).Update("url_path", moved).Error; err != nil {
			return err
		}
		if d.FirstPublishedAt != nil {
			if err := tracker.Track(d.URLPath, slugtracker.TypeBlogPage, d.ID); err != nil {
				return err
			}
		}
	}
	s.log.Info("moved blog page", zap.String("from", oldPath), zap.String("to", newPath), zap.Int("descendants", len(desc)))
	return nil
}

func subtreeIDs(tx *gorm.DB, page *models.PageModel) ([]string, error) {
	var ids []string
	err := tx.Model(&models.PageModel{}).
		Where("url_path LIKE ? ESCAPE '!'", listing.EscapeLike(page.URLPath)+"%").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id == page.ID {
			return ids, nil
		}
	}
	return append(ids, page.ID), nil
}

// Unpublish takes the page and its descendants offline.
func (s *Service) Unpublish(pageID string) (*models.PageModel, error) {
	page, err := s.load(s.db, pageID)
	if err != nil || page == nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		ids, err := subtreeIDs(tx, page)
		if err != nil {
			return err
		}
		return tx.Model(&models.PageModel{}).Where("id IN ? AND live = ?", ids, true).
			Updates(map[string]interface{}{"live": false, "has_unpublished_changes": true}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(pageID)
}

// Revisions lists the page's revisions, newest first.
func (s *Service) Revisions(pageID string) ([]models.PageRevisionModel, error) {
	items := []models.PageRevisionModel{}
	err := s.db.Where("page_id = ?", pageID).Order("version DESC").Find(&items).Error
	return items, err
}

// RevertTo saves a new revision copying version. It returns nil when the
// page or the version does not exist.
func (s *Service) RevertTo(pageID string, version int) (*models.PageRevisionModel, error) {
	var rev *models.PageRevisionModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		page, err := s.load(tx, pageID)
		if err != nil || page == nil {
			return err
		}
		var old models.PageRevisionModel
		if err := tx.Where("page_id = ? AND version = ?", pageID, version).Limit(1).Find(&old).Error; err != nil {
			return err
		}
		if old.ID == "" {
			return nil
		}
		if err := checkSibling(tx, page.ParentID, old.Content.Slug, page.ID); err != nil {
			return err
		}
		rev, err = saveRevision(tx, page, old.Content)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// Delete removes the page, its descendants and their revisions.
func (s *Service) Delete(pageID string) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		page, err := s.load(tx, pageID)
		if err != nil || page == nil {
			return err
		}
		ids, err := subtreeIDs(tx, page)
		if err != nil {
			return err
		}
		if err := tx.Where("page_id IN ?", ids).Delete(&models.PageRevisionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM blog_page_tags WHERE page_id IN ?", ids).Error; err != nil {
			return err
		}
		if err := s.slugs.WithDB(tx).DeleteByTargetID(ids...); err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.PageModel{})
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

// Tree lists every page in tree order.
func (s *Service) Tree() ([]models.PageModel, error) {
	items := []models.PageModel{}
	err := s.db.Order("url_path ASC").Find(&items).Error
	return items, err
}

func (s *Service) livePosts() *gorm.DB {
	return s.db.Model(&models.PageModel{}).
		Where("type = ? AND live = ?", models.PageTypeBlogPage, true)
}

// ListLivePosts pages the live children of indexID, newest first, optionally
// restricted to the tag with slug tagSlug.
func (s *Service) ListLivePosts(indexID, tagSlug string, q pagination.Query) ([]models.PageModel, response.Pagination, error) {
	db := s.livePosts().Where("parent_id = ?", indexID)
	if tagSlug != "" {
		db = db.Where(TagFilterExpr, tagSlug)
	}
	db = db.Order("first_published_at DESC").Order("id DESC")
	var items []models.PageModel
	pag, err := pagination.PaginateClamped(db, q, &items)
	if err != nil {
		return nil, pag, err
	}
	return items, pag, s.attachTags(items)
}

// RecentLive returns the n most recently published live blog pages.
func (s *Service) RecentLive(n int) ([]models.PageModel, error) {
	items := []models.PageModel{}
	err := s.livePosts().Preload("Tags").Order("first_published_at DESC").Limit(n).Find(&items).Error
	return items, err
}

// LivePages lists every live page of any type in tree order.
func (s *Service) LivePages() ([]models.PageModel, error) {
	items := []models.PageModel{}
	err := s.db.Where("live = ?", true).Order("url_path ASC").Find(&items).Error
	return items, err
}

func (s *Service) attachTags(items []models.PageModel) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	var loaded []models.PageModel
	if err := s.db.Preload("Tags").Select("id").Where("id IN ?", ids).Find(&loaded).Error; err != nil {
		return err
	}
	byID := make(map[string][]models.TagModel, len(loaded))
	for _, p := range loaded {
		byID[p.ID] = p.Tags
	}
	for i := range items {
		items[i].Tags = byID[items[i].ID]
		if items[i].Tags == nil {
			items[i].Tags = []models.TagModel{}
		}
	}
	return nil
}

// NormalizePath gives path a leading and a trailing slash.
func NormalizePath(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return "/"
	}
	return "/" + path + "/"
}

// PublicPath maps a url_path below the root index onto the public blog
// prefix, so public URLs stay put when the index is renamed.
func PublicPath(rootPath, urlPath string) string {
	if rel := strings.TrimPrefix(urlPath, rootPath); rel != urlPath {
		return PublicPrefix + rel
	}
	return urlPath
}

// GetLiveByPath returns the live page at path, or nil.
func (s *Service) GetLiveByPath(path string) (*models.PageModel, error) {
	var p models.PageModel
	err := s.db.Preload("Tags").Where("url_path = ? AND live = ?", NormalizePath(path), true).
		Limit(1).Find(&p).Error
	if err != nil || p.ID == "" {
		return nil, err
	}
	return &p, nil
}

// Resolve finds the live page at path. When only a retired path matches, it
// returns the current path of its live target instead.
func (s *Service) Resolve(path string) (*models.PageModel, string, error) {
	page, err := s.GetLiveByPath(path)
	if err != nil || page != nil {
		return page, "", err
	}
	targetID, err := s.slugs.FindBySlug(NormalizePath(path), slugtracker.TypeBlogPage)
	if err != nil || targetID == "" {
		return nil, "", err
	}
	target, err := s.load(s.db, targetID)
	if err != nil || target == nil || !target.Live {
		return nil, "", err
	}
	return nil, target.URLPath, nil
}

// Tags lists tags attached to at least one live page, by name.
func (s *Service) Tags() ([]models.TagModel, error) {
	tags := []models.TagModel{}
	err := s.db.Model(&models.TagModel{}).
		Where(`EXISTS (SELECT 1 FROM blog_page_tags bpt JOIN blog_pages p ON p.id = bpt.page_id
			WHERE bpt.tag_id = tags.id AND p.live = ?)`, true).
		Order("name ASC").Find(&tags).Error
	return tags, err
}

// ChildExists reports whether parentID already has a child with slug.
func (s *Service) ChildExists(parentID, slug string) (bool, error) {
	var n int64
	err := s.db.Model(&models.PageModel{}).Where("parent_id = ? AND slug = ?", parentID, slug).Count(&n).Error
	return n > 0, err
}

// backdate sets first_published_at, used to keep legacy publication order.
func (s *Service) backdate(pageID string, at time.Time) error {
	return s.db.Model(&models.PageModel{}).Where("id = ?", pageID).Update("first_published_at", at).Error
}
