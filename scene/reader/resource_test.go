package reader

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestResourceLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.txt")
	if err := os.WriteFile(path, []byte("sphere"), 0o644); err != nil {
		t.Fatalf("expected the fixture to be written; got %v", err)
	}

	res, err := NewResource(path, nil)
	if err != nil {
		t.Fatalf("expected the resource to open; got %v", err)
	}
	defer res.Close()

	if res.IsRemote() {
		t.Fatalf("expected a local resource")
	}

	data, err := io.ReadAll(res)
	if err != nil || string(data) != "sphere" {
		t.Fatalf("expected to stream the file content; got %q, %v", data, err)
	}
}

func TestResourceRelativeResolution(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "scene.txt"), []byte("plane"), 0o644); err != nil {
		t.Fatalf("expected the fixture to be written; got %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "texture.pfm"), []byte("payload"), 0o644); err != nil {
		t.Fatalf("expected the fixture to be written; got %v", err)
	}

	base, err := NewResource(filepath.Join(dir, "scene.txt"), nil)
	if err != nil {
		t.Fatalf("expected the base resource to open; got %v", err)
	}
	defer base.Close()

	// a bare filename resolves next to the resource that references it
	rel, err := NewResource("texture.pfm", base)
	if err != nil {
		t.Fatalf("expected the relative resource to open; got %v", err)
	}
	defer rel.Close()

	data, err := io.ReadAll(rel)
	if err != nil || string(data) != "payload" {
		t.Fatalf("expected the relative path to resolve; got %q, %v", data, err)
	}
}

func TestResourceMissingFile(t *testing.T) {
	if _, err := NewResource(filepath.Join(t.TempDir(), "missing.txt"), nil); err == nil {
		t.Fatalf("expected an error opening a missing file")
	}
}

func TestResourceUnsupportedScheme(t *testing.T) {
	if _, err := NewResource("ftp://example.com/scene.txt", nil); err == nil {
		t.Fatalf("expected an error for an unsupported scheme")
	}
}
