package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := fmt.Sprintf(`debug: true
database_url: sqlite://%s
paths:
  logs: %s
  media: %s
storage:
  driver: memory
`, filepath.Join(dir, "portfolio.db"), filepath.Join(dir, "logs"), filepath.Join(dir, "media"))
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func ctl(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	base := []string{"-config", cfg, "-env", filepath.Join(filepath.Dir(cfg), "none.env")}
	err := run(context.Background(), append(base, args...), &out)
	return out.String(), err
}

func TestCommands(t *testing.T) {
	cfg := writeConfig(t)

	cases := []struct {
		name string
		args []string
		want string
	}{
		{"migrate", []string{"migrate"}, "up to date"},
		{"seed", []string{"seed"}, "projects=4"},
		{"seed again", []string{"seed"}, "projects=0"},
		{"migrate blog", []string{"migrate-blog", "-index-title", "Field Notes"}, "Migrated 3 legacy posts"},
		{"migrate blog again", []string{"migrate-blog"}, "Migrated 0 legacy posts"},
		{"create admin", []string{"create-admin", "-username", "root", "-password", "long-enough"}, "Created admin root"},
		{"reset admin", []string{"create-admin", "-username", "root", "-password", "another-one", "-reset"}, "Password reset for root"},
	}
	for _, tc := range cases {
		out, err := ctl(t, cfg, tc.args...)
		if err != nil {
			t.Fatalf("%s: %v\n%s", tc.name, err, out)
		}
		if !strings.Contains(out, tc.want) {
			t.Errorf("%s: output %q lacks %q", tc.name, out, tc.want)
		}
	}
}

func TestCommandErrors(t *testing.T) {
	cfg := writeConfig(t)
	if _, err := ctl(t, cfg); err == nil {
		t.Fatal("missing command accepted")
	}
	if out, err := ctl(t, cfg, "explode"); err == nil || !strings.Contains(out, "migrate-blog") {
		t.Fatalf("unknown command: %v %q", err, out)
	}
	if _, err := ctl(t, cfg, "create-admin", "-username", "root", "-password", "short"); err == nil {
		t.Fatal("weak password accepted")
	}
	if _, err := ctl(t, cfg, "create-admin", "-username", "root", "-password", "long-enough"); err != nil {
		t.Fatal(err)
	}
	if _, err := ctl(t, cfg, "create-admin", "-username", "root", "-password", "long-enough"); err == nil {
		t.Fatal("duplicate admin accepted without -reset")
	}
}
