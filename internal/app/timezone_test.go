package app

import (
	"testing"
	"time"
)

func TestLoadZone(t *testing.T) {
	cases := []struct {
		name    string
		offset  int
		wantErr bool
	}{
		{"UTC", 0, false},
		{"+03:00", 3 * 3600, false},
		{"-05:30", -(5*3600 + 30*60), false},
		{"Mars/Olympus", 0, true},
		{"+3", 0, true},
	}
	for _, tc := range cases {
		loc, err := loadZone(tc.name)
		if (err != nil) != tc.wantErr {
			t.Fatalf("loadZone(%q) err = %v", tc.name, err)
		}
		if err != nil {
			continue
		}
		if _, off := time.Date(2024, time.January, 15, 12, 0, 0, 0, loc).Zone(); off != tc.offset {
			t.Errorf("loadZone(%q) offset = %d, want %d", tc.name, off, tc.offset)
		}
	}
}
