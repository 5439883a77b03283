package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_AppendFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.csv")
	fsys := NewOSFileSystem()
	ctx := context.Background()

	if err := fsys.AppendFile(ctx, path, []byte("one\n"), PermFile); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := fsys.AppendFile(ctx, path, []byte("two\n"), PermFile); err != nil {
		t.Fatalf("second append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("content = %q, want %q", data, "one\ntwo\n")
	}
}

func TestOSFileSystem_MkdirAllAndReadDir(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOSFileSystem()
	ctx := context.Background()

	nested := filepath.Join(dir, "a", "b")
	if err := fsys.MkdirAll(ctx, nested, PermDir); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	entries, err := fsys.ReadDir(ctx, filepath.Join(dir, "a"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "b" || !entries[0].IsDir() {
		t.Errorf("entries = %v, want single directory b", entries)
	}
}
