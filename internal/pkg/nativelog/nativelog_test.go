package nativelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriter_DailyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	day := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return day }
	t.Cleanup(func() { _ = w.Close() })

	if _, err := w.Write([]byte("first\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	w.now = func() time.Time { return day.AddDate(0, 0, 1) }
	if _, err := w.Write([]byte("second\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	first, err := os.ReadFile(filepath.Join(dir, "portfolio_2024-05-01.log"))
	if err != nil || strings.TrimSpace(string(first)) != "first" {
		t.Fatalf("first file = %q, %v", first, err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "portfolio_2024-05-02.log"))
	if err != nil || strings.TrimSpace(string(second)) != "second" {
		t.Fatalf("second file = %q, %v", second, err)
	}
}

func TestNewZapLogger_WritesFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewZapLogger(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	logger.Info("contact message stored")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, TodayFilename(time.Now())))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "contact message stored") || strings.Contains(string(data), "hidden") {
		t.Fatalf("log file = %q", data)
	}
}
