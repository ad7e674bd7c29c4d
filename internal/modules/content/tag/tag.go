// Package tag resolves free-form tag names into shared tag rows.
package tag

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/portfolio-space/core/internal/database"
	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/textutil"
	"gorm.io/gorm"
)

// SlugFor returns the slug a tag name is stored under.
func SlugFor(name string) string {
	if s := textutil.Slugify(name); s != "" {
		return s
	}
	return "tag-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Resolve returns tag rows for names, creating the missing ones.
// Names are normalized first, so the result never holds duplicates.
func Resolve(tx *gorm.DB, names []string) ([]models.TagModel, error) {
	names = textutil.NormalizeTags(names)
	out := make([]models.TagModel, 0, len(names))
	seen := map[string]bool{}
	for _, name := range names {
		t, err := resolveOne(tx, name)
		if err != nil {
			return nil, err
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, *t)
	}
	return out, nil
}

// maxSlugAttempts bounds the search for a free "-N" suffix.
const maxSlugAttempts = 50

// resolveOne finds the tag named name (case-insensitively) or creates it.
// A new tag whose slug already belongs to a differently named tag gets the
// first free suffixed slug, so "C++" and "C#" stay two tags (c, c-2).
func resolveOne(tx *gorm.DB, name string) (*models.TagModel, error) {
	if t, err := byName(tx, name); err != nil || t != nil {
		return t, err
	}
	base := SlugFor(name)
	for i := 1; i <= maxSlugAttempts; i++ {
		slug := base
		if i > 1 {
			slug = fmt.Sprintf("%s-%d", base, i)
		}
		var taken int64
		if err := tx.Model(&models.TagModel{}).Where("slug = ?", slug).Count(&taken).Error; err != nil {
			return nil, err
		}
		if taken > 0 {
			continue
		}
		t := models.TagModel{Name: name, Slug: slug}
		err := tx.Create(&t).Error
		if err == nil {
			return &t, nil
		}
		if !database.IsDuplicate(err) {
			return nil, err
		}
		// a concurrent writer took the name or the slug
		if found, err := byName(tx, name); err != nil || found != nil {
			return found, err
		}
	}
	return nil, fmt.Errorf("tag %q: no free slug after %d attempts", name, maxSlugAttempts)
}

func byName(tx *gorm.DB, name string) (*models.TagModel, error) {
	var t models.TagModel
	if err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).Limit(1).Find(&t).Error; err != nil {
		return nil, err
	}
	if t.ID == "" {
		return nil, nil
	}
	return &t, nil
}

// BySlug returns the tag with slug or nil.
func BySlug(db *gorm.DB, slug string) (*models.TagModel, error) {
	var t models.TagModel
	if err := db.Where("slug = ?", slug).Limit(1).Find(&t).Error; err != nil {
		return nil, err
	}
	if t.ID == "" {
		return nil, nil
	}
	return &t, nil
}
