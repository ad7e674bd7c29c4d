package listing

import (
	"net/url"
	"testing"
	"time"

	"github.com/portfolio-space/core/internal/database/dbtest"
	"github.com/portfolio-space/core/internal/models"
)

func TestOrderClauses(t *testing.T) {
	allowed := []string{"start_date", "created_at"}
	cases := []struct {
		raw  string
		want []string
	}{
		{"", []string{"start_date DESC"}},
		{"created_at", []string{"created_at ASC"}},
		{"-created_at,start_date", []string{"created_at DESC", "start_date ASC"}},
		{"bogus,-bogus", []string{"start_date DESC"}},
		{"created_at,created_at", []string{"created_at ASC"}},
	}
	for _, tc := range cases {
		got := OrderClauses(tc.raw, allowed, "-start_date")
		if len(got) != len(tc.want) {
			t.Fatalf("%q: got %d clauses", tc.raw, len(got))
		}
		for i, c := range got {
			dir := "ASC"
			if c.Desc {
				dir = "DESC"
			}
			if c.Column.Name+" "+dir != tc.want[i] {
				t.Fatalf("%q[%d]: got %s %s", tc.raw, i, c.Column.Name, dir)
			}
		}
	}
}

func TestEscapeLike(t *testing.T) {
	if got := EscapeLike("100%_!"); got != "100!%!_!!" {
		t.Fatalf("EscapeLike = %q", got)
	}
	if got := ContainsPattern("Soil"); got != "%soil%" {
		t.Fatalf("ContainsPattern = %q", got)
	}
}

func TestApply_SearchAndOrder(t *testing.T) {
	db := dbtest.Open(t)
	for _, p := range []models.ProjectModel{
		{Title: "Soil Health", Description: "Cassava trials", StartDate: models.NewDate(2021, 3, 1)},
		{Title: "Water", Description: "Irrigation 50% uptake", StartDate: models.NewDate(2023, 1, 1)},
		{Title: "Youth", Description: "SOIL clubs", StartDate: models.NewDate(2022, 6, 1)},
	} {
		p := p
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	spec := Spec{SearchFields: []string{"title", "description"}, OrderFields: []string{"start_date"}, DefaultOrder: "-start_date"}

	var got []models.ProjectModel
	if err := Apply(db.Model(&models.ProjectModel{}), spec, Options{Search: "soil"}).Find(&got).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Youth" || got[1].Title != "Soil Health" {
		t.Fatalf("unexpected search result %+v", got)
	}

	got = nil
	if err := Apply(db.Model(&models.ProjectModel{}), spec, Options{Search: "50%"}).Find(&got).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Water" {
		t.Fatalf("wildcard search = %+v", got)
	}

	got = nil
	if err := Apply(db.Model(&models.ProjectModel{}), spec, Options{Ordering: "start_date"}).Find(&got).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if got[0].Title != "Soil Health" || got[2].Title != "Water" {
		t.Fatalf("ascending order = %+v", got)
	}
}

func TestApplyFilters(t *testing.T) {
	db := dbtest.Open(t)
	msgs := []models.MessageModel{
		{Name: "a", Email: "a@x.io", Subject: "s", Message: "m", Read: true},
		{Name: "b", Email: "b@x.io", Subject: "s", Message: "m"},
	}
	for i := range msgs {
		if err := db.Create(&msgs[i]).Error; err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	filters := []Filter{{Field: "read", Kind: FilterBool}, {Field: "sent_at", Kind: FilterDate}}

	q, err := ApplyFilters(db.Model(&models.MessageModel{}), filters, url.Values{"read": {"1"}})
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	var n int64
	q.Count(&n)
	if n != 1 {
		t.Fatalf("read=1 count = %d", n)
	}

	today := time.Now().Format(models.DateLayout)
	q, err = ApplyFilters(db.Model(&models.MessageModel{}), filters, url.Values{"sent_at__gte": {"2000-01-01"}, "sent_at__lte": {today}})
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	q.Count(&n)
	if n != 2 {
		t.Fatalf("date range count = %d", n)
	}

	if _, err := ApplyFilters(db, filters, url.Values{"read": {"maybe"}}); err == nil {
		t.Fatalf("expected error for invalid bool")
	}
	if _, err := ApplyFilters(db, filters, url.Values{"sent_at__gte": {"yesterday"}}); err == nil {
		t.Fatalf("expected error for invalid date")
	}
	choice := []Filter{{Field: "status", Kind: FilterChoice, Choices: models.ProjectStatuses}}
	if _, err := ApplyFilters(db, choice, url.Values{"status": {"abandoned"}}); err == nil {
		t.Fatalf("expected error for invalid choice")
	}
}
