// Package listing applies the search, ordering and filter query conventions
// shared by the REST API and the admin surface.
package listing

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/portfolio-space/core/internal/models"
)

// Options carries the per-request list parameters.
type Options struct {
	Search   string
	Ordering string
}

// FromContext reads ?search= and ?ordering=.
func FromContext(c *gin.Context) Options {
	return Options{Search: c.Query("search"), Ordering: c.Query("ordering")}
}

// Spec declares what a collection allows.
type Spec struct {
	// SearchFields are column names matched case-insensitively.
	SearchFields []string
	// SearchExprs are raw boolean SQL fragments with a single placeholder
	// bound to the LIKE pattern, for matches through joins.
	SearchExprs  []string
	OrderFields  []string
	DefaultOrder string
}

// EscapeLike escapes LIKE wildcards in s using '!' as the escape character.
func EscapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}

// ContainsPattern builds a lowercase %s% pattern for s.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(strings.ToLower(s)) + "%"
}

// Search restricts db to rows where any field contains q, ignoring case.
// An empty q leaves db unchanged.
func Search(db *gorm.DB, q string, fields []string, exprs ...string) *gorm.DB {
	q = strings.TrimSpace(q)
	if q == "" || (len(fields) == 0 && len(exprs) == 0) {
		return db
	}
	pattern := ContainsPattern(q)
	parts := make([]string, 0, len(fields)+len(exprs))
	args := make([]interface{}, 0, len(fields)+len(exprs))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '!'", db.Statement.Quote(f)))
		args = append(args, pattern)
	}
	for _, e := range exprs {
		parts = append(parts, e)
		args = append(args, pattern)
	}
	return db.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// OrderClauses parses a comma separated ordering parameter against allowed.
// Unknown fields are dropped; when none survive the default applies.
func OrderClauses(raw string, allowed []string, def string) []clause.OrderByColumn {
	var out []clause.OrderByColumn
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field := strings.TrimPrefix(part, "-")
		if !models.ValidChoice(field, allowed) || seen[field] {
			continue
		}
		seen[field] = true
		out = append(out, orderColumn(part))
	}
	if len(out) == 0 && def != "" {
		for _, part := range strings.Split(def, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, orderColumn(part))
			}
		}
	}
	return out
}

func orderColumn(part string) clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Name: strings.TrimPrefix(part, "-")},
		Desc:   strings.HasPrefix(part, "-"),
	}
}

// Order applies the parsed ordering plus a stable id tie-breaker.
func Order(db *gorm.DB, raw string, allowed []string, def string) *gorm.DB {
	for _, c := range OrderClauses(raw, allowed, def) {
		db = db.Order(c)
	}
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true})
}

// Apply runs Search then Order for spec.
func Apply(db *gorm.DB, spec Spec, opts Options) *gorm.DB {
	db = Search(db, opts.Search, spec.SearchFields, spec.SearchExprs...)
	return Order(db, opts.Ordering, spec.OrderFields, spec.DefaultOrder)
}

// FilterKind is the kind of an admin list filter.
type FilterKind string

const (
	FilterBool   FilterKind = "bool"
	FilterChoice FilterKind = "choice"
	FilterDate   FilterKind = "date"
)

// Filter declares a filterable column.
type Filter struct {
	Field   string     `json:"field"`
	Kind    FilterKind `json:"kind"`
	Choices []string   `json:"choices,omitempty"`
}

// ApplyFilters restricts db by the filter values present in values.
//
//	bool:   field=true|false|1|0
//	choice: field=<choice>
//	date:   field__gte=YYYY-MM-DD, field__lte=YYYY-MM-DD
func ApplyFilters(db *gorm.DB, filters []Filter, values url.Values) (*gorm.DB, error) {
	for _, f := range filters {
		switch f.Kind {
		case FilterBool:
			raw := strings.TrimSpace(values.Get(f.Field))
			if raw == "" {
				continue
			}
			b, ok := parseBool(raw)
			if !ok {
				return nil, fmt.Errorf("invalid value %q for %s", raw, f.Field)
			}
			db = db.Where(clause.Eq{Column: clause.Column{Name: f.Field}, Value: b})
		case FilterChoice:
			raw := strings.TrimSpace(values.Get(f.Field))
			if raw == "" {
				continue
			}
			if len(f.Choices) > 0 && !models.ValidChoice(raw, f.Choices) {
				return nil, fmt.Errorf("invalid value %q for %s", raw, f.Field)
			}
			db = db.Where(clause.Eq{Column: clause.Column{Name: f.Field}, Value: raw})
		case FilterDate:
			var err error
			if db, err = dateBound(db, f.Field, values.Get(f.Field+"__gte"), false); err != nil {
				return nil, err
			}
			if db, err = dateBound(db, f.Field, values.Get(f.Field+"__lte"), true); err != nil {
				return nil, err
			}
		}
	}
	return db, nil
}

// dateBound compares against the start of the day, or of the following day
// for inclusive upper bounds, so date and datetime columns behave alike.
func dateBound(db *gorm.DB, field, raw string, upper bool) (*gorm.DB, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return db, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	col := clause.Column{Name: field}
	if upper {
		return db.Where(clause.Lt{Column: col, Value: d.AddDate(0, 0, 1)}), nil
	}
	return db.Where(clause.Gte{Column: col, Value: d.Time}), nil
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	}
	return false, false
}
