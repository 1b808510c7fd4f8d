package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRemover_DeletesFile(t *testing.T) {
	base := t.TempDir()

	dir := filepath.Join(base, "uploads", "pets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "milo.jpg")
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	r := New(base)
	if err := r.Remove(context.Background(), "/uploads/pets/milo.jpg"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file deleted")
	}
}

func TestRemover_MissingFileIsNoError(t *testing.T) {
	r := New(t.TempDir())
	if err := r.Remove(context.Background(), "/uploads/pets/nope.jpg"); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}

func TestRemover_EmptyURLIsNoop(t *testing.T) {
	r := New(t.TempDir())
	if err := r.Remove(context.Background(), "   "); err != nil {
		t.Fatalf("expected nil for empty url, got %v", err)
	}
}

func TestRemover_RejectsPathTraversal(t *testing.T) {
	r := New(t.TempDir())
	if err := r.Remove(context.Background(), "/../../etc/passwd"); err == nil {
		t.Fatalf("expected error for path outside base dir")
	}
}
