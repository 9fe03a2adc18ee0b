package project

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"

	"toyc/internal/source"
)

// Manifest is the decoded [package] section of a toyc.toml project file. A
// ToyC project is just a flat list of source files compiled as one
// translation unit (spec.md has no separate-compilation concept, so there is
// nothing here to resolve a dependency graph over — unlike a module-aware
// language's manifest, this one names files, not packages).
type Manifest struct {
	Name  string   `toml:"name"`
	Files []string `toml:"files"`
}

type manifestFile struct {
	Package Manifest `toml:"package"`
}

// LoadManifest parses and validates a toyc.toml file.
func LoadManifest(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: missing [package]", path)
	}
	if strings.TrimSpace(cfg.Package.Name) == "" {
		return Manifest{}, fmt.Errorf("%s: [package].name is required", path)
	}
	if len(cfg.Package.Files) == 0 {
		return Manifest{}, fmt.Errorf("%s: [package].files must list at least one source file", path)
	}
	return cfg.Package, nil
}

// ResolveFiles returns the manifest's file list with relative entries joined
// onto manifestDir (absolute entries pass through unchanged), so the results
// are absolute whenever manifestDir is.
func (m Manifest) ResolveFiles(manifestDir string) []string {
	out := make([]string, len(m.Files))
	for i, f := range m.Files {
		if filepath.IsAbs(f) {
			out[i] = f
		} else {
			out[i] = filepath.Join(manifestDir, f)
		}
	}
	return out
}

// LoadedFile pairs a manifest entry with its loaded FileID and content hash.
type LoadedFile struct {
	Path string
	ID   source.FileID
	Hash Digest
}

// LoadFiles loads every file in paths into fs concurrently. The returned
// slice preserves the input order regardless of completion order, so
// downstream concatenation of function lists stays deterministic.
func LoadFiles(ctx context.Context, fs *source.FileSet, paths []string) ([]LoadedFile, error) {
	out := make([]LoadedFile, len(paths))
	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			// FileSet is not safe for concurrent use; serialize access to it.
			mu.Lock()
			defer mu.Unlock()
			id, err := fs.Load(p)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			out[i] = LoadedFile{Path: p, ID: id, Hash: fs.Get(id).Hash}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ManifestHash combines every loaded file's content hash into one digest,
// used as the build cache key for a whole project (internal/buildcache).
func ManifestHash(files []LoadedFile) Digest {
	hashes := make([]Digest, len(files))
	for i, f := range files {
		hashes[i] = f.Hash
	}
	if len(hashes) == 0 {
		return Digest{}
	}
	return Combine(hashes[0], hashes[1:]...)
}
