package tag

import (
	"testing"

	"github.com/portfolio-space/core/internal/database/dbtest"
	"github.com/portfolio-space/core/internal/models"
)

func TestResolveCreatesOnceAndDeduplicates(t *testing.T) {
	db := dbtest.Open(t)
	first, err := Resolve(db, []string{" Agriculture", "agriculture", "Climate  Change", ""})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(first) != 2 || first[0].Name != "Agriculture" || first[1].Slug != "climate-change" {
		t.Fatalf("first = %+v", first)
	}
	again, err := Resolve(db, []string{"AGRICULTURE"})
	if err != nil || len(again) != 1 || again[0].ID != first[0].ID {
		t.Fatalf("again = %+v %v", again, err)
	}
	var n int64
	db.Model(&models.TagModel{}).Count(&n)
	if n != 2 {
		t.Fatalf("tag rows = %d", n)
	}
	got, err := BySlug(db, "climate-change")
	if err != nil || got == nil || got.Name != "Climate Change" {
		t.Fatalf("by slug = %+v %v", got, err)
	}
	if missing, _ := BySlug(db, "nope"); missing != nil {
		t.Fatalf("expected nil for unknown slug")
	}
}

func TestResolveKeepsNamesWithSameSlugApart(t *testing.T) {
	db := dbtest.Open(t)
	cases := []struct {
		name string
		slug string
	}{
		{"C++", "c"},
		{"C#", "c-2"},
		{"C", "c-3"},
	}
	ids := map[string]bool{}
	for _, tc := range cases {
		got, err := Resolve(db, []string{tc.name})
		if err != nil || len(got) != 1 {
			t.Fatalf("resolve %q = %+v %v", tc.name, got, err)
		}
		if got[0].Name != tc.name || got[0].Slug != tc.slug {
			t.Errorf("resolve %q = name %q slug %q, want slug %q", tc.name, got[0].Name, got[0].Slug, tc.slug)
		}
		if ids[got[0].ID] {
			t.Errorf("resolve %q reused an existing tag", tc.name)
		}
		ids[got[0].ID] = true
	}

	again, err := Resolve(db, []string{"c#"})
	if err != nil || len(again) != 1 || again[0].Slug != "c-2" {
		t.Fatalf("resolve c# again = %+v %v", again, err)
	}
	var n int64
	db.Model(&models.TagModel{}).Count(&n)
	if n != 3 {
		t.Fatalf("tag rows = %d", n)
	}
}
