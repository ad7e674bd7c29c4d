package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100

	// APIPageSize is the fixed page size of the public REST collections.
	APIPageSize = 20
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// FromContextWithDefault reads ?page= and ?size=, falling back to defaultSize
// and capping size at MaxSize.
func FromContextWithDefault(c *gin.Context, defaultSize int) Query {
	q := Query{
		Page: max(parseIntOr(c.Query("page"), DefaultPage), 1),
		Size: parseIntOr(c.Query("size"), defaultSize),
	}
	if q.Size < 1 {
		q.Size = defaultSize
	}
	q.Size = min(q.Size, MaxSize)
	return q
}

// Fixed reads only ?page= and always uses size.
func Fixed(c *gin.Context, size int) Query {
	return Query{Page: max(parseIntOr(c.Query("page"), DefaultPage), 1), Size: size}
}

// Paginate applies limit/offset to a GORM query and returns the pagination
// metadata. A page past the end yields an empty slice.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	return paginate(db, q, dest, false)
}

// PaginateClamped is Paginate but moves an out-of-range page onto the last page.
func PaginateClamped[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	return paginate(db, q, dest, true)
}

func paginate[T any](db *gorm.DB, q Query, dest *[]T, clamp bool) (response.Pagination, error) {
	if q.Size < 1 {
		q.Size = DefaultSize
	}
	q.Page = max(q.Page, 1)

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if clamp {
		q.Page = min(q.Page, max(pageCount(total, q.Size), 1))
	}
	if err := db.Offset((q.Page - 1) * q.Size).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}
	if *dest == nil {
		*dest = []T{}
	}
	return Meta(total, q), nil
}

// Meta computes pagination metadata for a known total.
func Meta(total int64, q Query) response.Pagination {
	pages := pageCount(total, q.Size)
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   pages,
		Size:        q.Size,
		HasNextPage: q.Page < pages,
	}
}

func pageCount(total int64, size int) int {
	return int((total + int64(size) - 1) / int64(size))
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
