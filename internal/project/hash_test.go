package project_test

import (
	"testing"

	"toyc/internal/project"
)

func TestCombineIsDeterministic(t *testing.T) {
	a := project.Digest{1, 2, 3}
	b := project.Digest{4, 5, 6}
	first := project.Combine(a, b)
	second := project.Combine(a, b)
	if first != second {
		t.Fatalf("expected Combine to be deterministic for identical input")
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	a := project.Digest{1, 2, 3}
	b := project.Digest{4, 5, 6}
	if project.Combine(a, b) == project.Combine(b, a) {
		t.Fatalf("expected Combine(a, b) to differ from Combine(b, a)")
	}
}

func TestCombineNoDepsStillHashesContent(t *testing.T) {
	a := project.Digest{1, 2, 3}
	var zero project.Digest
	if project.Combine(a) == zero {
		t.Fatalf("expected Combine with no deps to still hash content into a non-zero digest")
	}
}

func TestManifestHashEmptyIsZero(t *testing.T) {
	var zero project.Digest
	if got := project.ManifestHash(nil); got != zero {
		t.Fatalf("expected ManifestHash(nil) to be the zero digest, got %v", got)
	}
}

func TestManifestHashChangesWithContent(t *testing.T) {
	files1 := []project.LoadedFile{{Path: "a.tc", Hash: project.Digest{1}}}
	files2 := []project.LoadedFile{{Path: "a.tc", Hash: project.Digest{2}}}
	if project.ManifestHash(files1) == project.ManifestHash(files2) {
		t.Fatalf("expected different file hashes to produce a different manifest hash")
	}
}

func TestManifestHashIsOrderSensitive(t *testing.T) {
	files1 := []project.LoadedFile{{Hash: project.Digest{1}}, {Hash: project.Digest{2}}}
	files2 := []project.LoadedFile{{Hash: project.Digest{2}}, {Hash: project.Digest{1}}}
	if project.ManifestHash(files1) == project.ManifestHash(files2) {
		t.Fatalf("expected manifest hash to depend on file order")
	}
}
