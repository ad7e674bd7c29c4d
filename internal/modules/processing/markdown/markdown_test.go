package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	cases := []struct {
		name, in string
		contains []string
		absent   []string
	}{
		{"empty", "   ", nil, []string{"<p>"}},
		{"emphasis", "**bold** text", []string{"<strong>bold</strong>"}, nil},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", []string{"<table>", "<td>1</td>"}, nil},
		{"raw html dropped", "<script>alert(1)</script>\n\ntext", []string{"text"}, []string{"<script>"}},
		{"image lazy", "![plot](/media/a.png)", []string{`loading="lazy"`, `src="/media/a.png"`}, []string{"<figure>"}},
		{"captioned image", "![!Field day](/media/b.png)", []string{"<figure>", "<figcaption>Field day</figcaption>"}, []string{"<p><figure>"}},
		{"banner", "::: banner {warn bad!class}\nheads up\n:::", []string{`class="container banner warn"`, "heads up"}, []string{"bad!class"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Render(tc.in)
			for _, want := range tc.contains {
				if !strings.Contains(got, want) {
					t.Fatalf("Render(%q) = %q, missing %q", tc.in, got, want)
				}
			}
			for _, bad := range tc.absent {
				if strings.Contains(got, bad) {
					t.Fatalf("Render(%q) = %q, has %q", tc.in, got, bad)
				}
			}
		})
	}
}
