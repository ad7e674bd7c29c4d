package textutil

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":             "hello-world",
		"  Soil   Health 2024 ":     "soil-health-2024",
		"Café Ügandä":               "cafe-uganda",
		"already-a_slug":            "already-a-slug",
		"!!!":                       "",
		"Agri-Tech: What's Next?":   "agri-tech-whats-next",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlainText(t *testing.T) {
	in := `<p>Hello <strong>farm</strong>ers</p><script>alert(1)</script><ul><li>one</li><li>two</li></ul>`
	if got := PlainText(in); got != "Hello farmers one two" {
		t.Fatalf("PlainText = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("Truncate short = %q", got)
	}
	if got := Truncate("the quick brown fox jumps", 14); got != "the quick…" {
		t.Fatalf("Truncate = %q", got)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := SplitTags(" Soil, soil ,Water,, climate  change ")
	want := []string{"Soil", "Water", "climate change"}
	if len(got) != len(want) {
		t.Fatalf("SplitTags = %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SplitTags = %#v", got)
		}
	}
}
