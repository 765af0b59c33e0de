package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/crimson-sun/strictwatch/internal/connector"
)

func TestOpenReadsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	content := "first\r\nsecond\n\nlast-without-newline"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := (&Connector{}).Open(context.Background(), connector.ConnectorConfig{Path: path})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	want := []string{"first", "second", "", "last-without-newline"}
	for i, w := range want {
		got, err := r.ReadLine()
		if err != nil {
			t.Fatalf("line %d: ReadLine() error: %v", i, err)
		}
		if got != w {
			t.Errorf("line %d = %q, want %q", i, got, w)
		}
	}
	if _, err := r.ReadLine(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF at end, got %v", err)
	}
	// Repeated reads past the end keep reporting EOF.
	if _, err := r.ReadLine(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF on second read, got %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := (&Connector{}).Open(context.Background(), connector.ConnectorConfig{
		Path: filepath.Join(t.TempDir(), "missing.txt"),
	})
	if !errors.Is(err, connector.ErrStreamUnavailable) {
		t.Fatalf("expected ErrStreamUnavailable, got %v", err)
	}
}

func TestOpenNoPath(t *testing.T) {
	_, err := (&Connector{}).Open(context.Background(), connector.ConnectorConfig{})
	if !errors.Is(err, connector.ErrStreamUnavailable) {
		t.Fatalf("expected ErrStreamUnavailable, got %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	if err := os.WriteFile(path, []byte("a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := (&Connector{}).Open(context.Background(), connector.ConnectorConfig{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("first Close() error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
	if _, err := r.ReadLine(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadLine after Close = %v, want io.EOF", err)
	}
}
