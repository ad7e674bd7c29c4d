package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/system/core/settings"
	"github.com/portfolio-space/core/internal/pkg/apperr"
	"github.com/portfolio-space/core/internal/pkg/listing"
	"github.com/portfolio-space/core/internal/pkg/pagination"
	"github.com/portfolio-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

// ErrUnknownAction is returned for a bulk action the entity does not declare.
var ErrUnknownAction = errors.New("unknown action")

// ListParams are the admin list query parameters.
type ListParams struct {
	Search   string
	Ordering string
	Filters  url.Values
	Page     pagination.Query
}

// Entity is one registered admin model.
type Entity interface {
	Descriptor() *Descriptor
	List(p ListParams) (interface{}, response.Pagination, error)
	// Get returns nil when the row does not exist.
	Get(id string) (interface{}, error)
	// Create reports created=false when an existing singleton was returned.
	Create(body []byte) (obj interface{}, created bool, err error)
	Update(id string, body []byte) (interface{}, error)
	Delete(id string) (bool, error)
	CanAdd() (bool, error)
	CanDelete() bool
	Action(name string, ids []string) (int64, error)
	Describe(obj interface{}) (id, repr string)
}

func decode(body []byte, dst interface{}) error {
	if len(body) == 0 {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperr.Invalid("body", err.Error())
	}
	return nil
}

// CollectionOps wires a content service into the admin.
type CollectionOps[M any, C any, U any] struct {
	Get       func(id string) (*M, error)
	Create    func(dto *C) (*M, error)
	Update    func(id string, dto *U) (*M, error)
	Delete    func(id string) (bool, error)
	Repr      func(m *M) string
	Actions   map[string]func(ids []string) (int64, error)
	AfterList func(items []M) error
	// Unread, when set, is reported on the schema as the unread badge.
	Unread func() (int64, error)
}

type collection[M any, C any, U any] struct {
	desc *Descriptor
	db   *gorm.DB
	ops  CollectionOps[M, C, U]
}

// NewCollection exposes a gorm-backed collection with ops as its write path.
func NewCollection[M any, C any, U any](db *gorm.DB, desc *Descriptor, ops CollectionOps[M, C, U]) Entity {
	return &collection[M, C, U]{desc: desc, db: db, ops: ops}
}

func (e *collection[M, C, U]) Descriptor() *Descriptor { return e.desc }

func (e *collection[M, C, U]) List(p ListParams) (interface{}, response.Pagination, error) {
	db := e.db.Model(new(M))
	db = listing.Search(db, p.Search, e.desc.columns(), e.desc.searchExprs...)
	db, err := listing.ApplyFilters(db, e.desc.ListFilter, p.Filters)
	if err != nil {
		return nil, response.Pagination{}, apperr.Invalid("filter", err.Error())
	}
	db = listing.Order(db, p.Ordering, e.desc.sortable, e.desc.Ordering)

	var items []M
	pag, err := pagination.Paginate(db, p.Page, &items)
	if err != nil {
		return nil, pag, err
	}
	if e.ops.AfterList != nil {
		if err := e.ops.AfterList(items); err != nil {
			return nil, pag, err
		}
	}
	return items, pag, nil
}

func (e *collection[M, C, U]) Get(id string) (interface{}, error) {
	m, err := e.ops.Get(id)
	if err != nil || m == nil {
		return nil, err
	}
	return m, nil
}

func (e *collection[M, C, U]) Create(body []byte) (interface{}, bool, error) {
	dto := new(C)
	if err := decode(body, dto); err != nil {
		return nil, false, err
	}
	m, err := e.ops.Create(dto)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

func (e *collection[M, C, U]) Update(id string, body []byte) (interface{}, error) {
	dto := new(U)
	if err := decode(body, dto); err != nil {
		return nil, err
	}
	m, err := e.ops.Update(id, dto)
	if err != nil || m == nil {
		return nil, err
	}
	return m, nil
}

func (e *collection[M, C, U]) Delete(id string) (bool, error) { return e.ops.Delete(id) }

func (e *collection[M, C, U]) CanAdd() (bool, error) { return true, nil }

func (e *collection[M, C, U]) CanDelete() bool { return true }

// UnreadCount returns nil when the collection has no unread notion.
func (e *collection[M, C, U]) UnreadCount() (*int64, error) {
	if e.ops.Unread == nil {
		return nil, nil
	}
	n, err := e.ops.Unread()
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (e *collection[M, C, U]) Action(name string, ids []string) (int64, error) {
	fn, ok := e.ops.Actions[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownAction)
	}
	return fn(ids)
}

func (e *collection[M, C, U]) Describe(obj interface{}) (string, string) {
	m, ok := obj.(*M)
	if !ok || m == nil {
		return "", ""
	}
	id := ""
	if k, ok := interface{}(m).(interface{ Key() string }); ok {
		id = k.Key()
	}
	return id, e.ops.Repr(m)
}

// singletonPage lists a singleton as zero or one rows.
func singletonPage[T any](doc *T, q pagination.Query) ([]*T, response.Pagination) {
	items := []*T{}
	if doc != nil {
		items = append(items, doc)
	}
	return items, pagination.Meta(int64(len(items)), q)
}

func sameID(id string, docID uint) bool {
	n, err := strconv.ParseUint(id, 10, 64)
	return err == nil && uint(n) == docID
}

type bioEntity struct{ svc *settings.Service }

// NewBioEntity exposes the Bio singleton.
func NewBioEntity(svc *settings.Service) Entity { return &bioEntity{svc: svc} }

func (e *bioEntity) Descriptor() *Descriptor { return &BioDescriptor }

func (e *bioEntity) List(p ListParams) (interface{}, response.Pagination, error) {
	bio, err := e.svc.Bio()
	if err != nil {
		return nil, response.Pagination{}, err
	}
	items, pag := singletonPage(bio, p.Page)
	return items, pag, nil
}

func (e *bioEntity) Get(id string) (interface{}, error) {
	bio, err := e.svc.Bio()
	if err != nil || bio == nil || !sameID(id, bio.ID) {
		return nil, err
	}
	return bio, nil
}

func (e *bioEntity) Create(body []byte) (interface{}, bool, error) {
	var dto settings.BioDTO
	if err := decode(body, &dto); err != nil {
		return nil, false, err
	}
	return e.svc.CreateBio(&dto)
}

func (e *bioEntity) Update(id string, body []byte) (interface{}, error) {
	var dto settings.BioDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	if cur, err := e.Get(id); err != nil || cur == nil {
		return nil, err
	}
	bio, err := e.svc.UpdateBio(&dto)
	if err != nil || bio == nil {
		return nil, err
	}
	return bio, nil
}

func (e *bioEntity) Delete(id string) (bool, error) {
	if cur, err := e.Get(id); err != nil || cur == nil {
		return false, err
	}
	return e.svc.DeleteBio()
}

func (e *bioEntity) CanAdd() (bool, error) {
	bio, err := e.svc.Bio()
	return bio == nil, err
}

func (e *bioEntity) CanDelete() bool { return true }

func (e *bioEntity) Action(name string, _ []string) (int64, error) {
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownAction)
}

func (e *bioEntity) Describe(obj interface{}) (string, string) {
	bio, ok := obj.(*models.Bio)
	if !ok || bio == nil {
		return "", ""
	}
	return strconv.FormatUint(uint64(bio.ID), 10), bio.Name
}

type siteSettingsEntity struct{ svc *settings.Service }

// NewSiteSettingsEntity exposes the SiteSettings singleton. It cannot be deleted.
func NewSiteSettingsEntity(svc *settings.Service) Entity { return &siteSettingsEntity{svc: svc} }

func (e *siteSettingsEntity) Descriptor() *Descriptor { return &SiteSettingsDescriptor }

func (e *siteSettingsEntity) List(p ListParams) (interface{}, response.Pagination, error) {
	st, err := e.svc.SiteSettings()
	if err != nil {
		return nil, response.Pagination{}, err
	}
	items, pag := singletonPage(st, p.Page)
	return items, pag, nil
}

func (e *siteSettingsEntity) Get(id string) (interface{}, error) {
	st, err := e.svc.SiteSettings()
	if err != nil || st == nil || !sameID(id, st.ID) {
		return nil, err
	}
	return st, nil
}

func (e *siteSettingsEntity) Create(body []byte) (interface{}, bool, error) {
	var dto settings.SiteSettingsDTO
	if err := decode(body, &dto); err != nil {
		return nil, false, err
	}
	return e.svc.CreateSiteSettings(&dto)
}

func (e *siteSettingsEntity) Update(id string, body []byte) (interface{}, error) {
	var dto settings.SiteSettingsDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	if cur, err := e.Get(id); err != nil || cur == nil {
		return nil, err
	}
	st, err := e.svc.UpdateSiteSettings(&dto)
	if err != nil || st == nil {
		return nil, err
	}
	return st, nil
}

func (e *siteSettingsEntity) Delete(string) (bool, error) {
	return false, e.svc.DeleteSiteSettings()
}

func (e *siteSettingsEntity) CanAdd() (bool, error) {
	exists, err := e.svc.SiteSettingsExists()
	return !exists, err
}

func (e *siteSettingsEntity) CanDelete() bool { return false }

func (e *siteSettingsEntity) Action(name string, _ []string) (int64, error) {
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownAction)
}

func (e *siteSettingsEntity) Describe(obj interface{}) (string, string) {
	st, ok := obj.(*models.SiteSettings)
	if !ok || st == nil {
		return "", ""
	}
	return strconv.FormatUint(uint64(st.ID), 10), st.SiteTitle
}
