package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"toyc/internal/project"
)

func TestFindManifestInStartDir(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(manifestPath, []byte("[package]\nname = \"demo\"\nfiles = [\"a.tc\"]\n"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	path, ok, err := project.FindManifest(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected to find the manifest")
	}
	if abs, _ := filepath.Abs(manifestPath); path != abs {
		t.Fatalf("expected path %q, got %q", abs, path)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, project.ManifestName), []byte("[package]\nname = \"demo\"\nfiles = [\"a.tc\"]\n"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	_, ok, err := project.FindManifest(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected to find the manifest by walking up")
	}
}

func TestFindManifestNotFound(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := project.FindManifest(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no manifest to be found in an empty temp dir tree")
	}
}

func TestFindProjectRootReturnsManifestDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, project.ManifestName), []byte("[package]\nname = \"demo\"\nfiles = [\"a.tc\"]\n"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	root, ok, err := project.FindProjectRoot(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected to find a project root")
	}
	absDir, _ := filepath.Abs(dir)
	if root != absDir {
		t.Fatalf("expected root %q, got %q", absDir, root)
	}
}
