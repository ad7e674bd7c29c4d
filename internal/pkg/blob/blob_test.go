package blob

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	info, err := s.Put(ctx, "gallery/a.png", strings.NewReader("png-bytes"), PutOptions{})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len("png-bytes")) || info.ContentType != "image/png" {
		t.Fatalf("put info = %+v", info)
	}
	if _, err := s.Put(ctx, "cv/b.pdf", strings.NewReader("pdf"), PutOptions{ContentType: "application/pdf"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, rc, err := s.Get(ctx, "gallery/a.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "png-bytes" || got.Key != "gallery/a.png" {
		t.Fatalf("get = %+v %q", got, body)
	}

	list, err := s.List(ctx, "gallery/")
	if err != nil || len(list) != 1 || list[0].Key != "gallery/a.png" {
		t.Fatalf("list = %+v, %v", list, err)
	}
	all, _ := s.List(ctx, "")
	if len(all) != 2 {
		t.Fatalf("list all = %+v", all)
	}

	if err := s.Delete(ctx, "gallery/a.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Head(ctx, "gallery/a.png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("head after delete = %v", err)
	}
	if _, _, err := s.Get(ctx, "missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing = %v", err)
	}
	if _, err := s.PresignURL(ctx, "cv/b.pdf", 0); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("presign = %v", err)
	}
}

func TestFSStore(t *testing.T) {
	s, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("new fs: %v", err)
	}
	exerciseStore(t, s)
	if _, err := s.Put(context.Background(), "../escape.txt", strings.NewReader("x"), PutOptions{}); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestCleanKey(t *testing.T) {
	for _, bad := range []string{"", "/abs", "a/../b", "a//b", `a\b`, "./a"} {
		if _, err := CleanKey(bad); err == nil {
			t.Fatalf("CleanKey(%q) should fail", bad)
		}
	}
	if k, err := CleanKey(" photos/me.jpg "); err != nil || k != "photos/me.jpg" {
		t.Fatalf("CleanKey = %q, %v", k, err)
	}
}

func TestS3Store_PresignURL(t *testing.T) {
	s, err := NewS3(context.Background(), S3Config{
		Bucket:          "portfolio-media",
		Region:          "eu-west-1",
		Endpoint:        "https://minio.example.test",
		AccessKeyID:     "AKIATEST",
		SecretAccessKey: "secret",
		PathStyle:       true,
	})
	if err != nil {
		t.Fatalf("new s3: %v", err)
	}
	if s.Driver() != DriverS3 {
		t.Fatalf("driver = %s", s.Driver())
	}
	raw, err := s.PresignURL(context.Background(), "photos/me.jpg", 0)
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if u.Host != "minio.example.test" || u.Path != "/portfolio-media/photos/me.jpg" {
		t.Fatalf("presigned url = %s", raw)
	}
	if u.Query().Get("X-Amz-Expires") != "900" {
		t.Fatalf("expiry = %s", u.Query().Get("X-Amz-Expires"))
	}
}

func TestNewS3_RequiresBucket(t *testing.T) {
	if _, err := NewS3(context.Background(), S3Config{}); err == nil {
		t.Fatalf("expected error without bucket")
	}
}
