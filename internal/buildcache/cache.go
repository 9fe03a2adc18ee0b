// Package buildcache stores the generated assembly for a project build on
// disk, keyed by the digest of its source files, so an unchanged toyc.toml
// project can skip straight to writing output on the next build.
package buildcache

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"toyc/internal/project"
)

// schemaVersion guards against decoding a payload written by an incompatible
// version of this package; bump it whenever Payload's fields change shape.
const schemaVersion uint16 = 1

// Cache stores one Payload per project digest under a cache directory.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Payload is the cached outcome of compiling a project: its assembly text
// plus enough metadata to confirm the cache entry still matches the inputs
// that produced it.
type Payload struct {
	Schema     uint16
	Name       string
	FilePaths  []string
	FileHashes []project.Digest
	Digest     project.Digest
	Assembly   string
	Broken     bool
}

// Open initializes and returns a disk cache at the standard per-app cache
// location ($XDG_CACHE_HOME/<app> or ~/.cache/<app>).
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "builds", hexKey+".mp")
}

// Put serializes and atomically writes payload under key.
func (c *Cache) Put(key project.Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = schemaVersion
	payload.Digest = key

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	removeTmp := true
	defer func() {
		if removeTmp {
			_ = os.Remove(f.Name())
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), p); err != nil {
		return err
	}
	removeTmp = false
	return nil
}

// Get reads and deserializes the payload stored under key, if any. A false
// result with no error means the entry is simply absent.
func (c *Cache) Get(key project.Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != schemaVersion {
		return false, nil
	}
	return true, nil
}

// Matches reports whether a cached payload's recorded file list and hashes
// still match the project's current loaded files.
func (p *Payload) Matches(files []project.LoadedFile) bool {
	if p.Broken || len(p.FilePaths) != len(files) {
		return false
	}
	for i, f := range files {
		if p.FilePaths[i] != f.Path || p.FileHashes[i] != f.Hash {
			return false
		}
	}
	return true
}

// FromFiles builds an (unsaved) Payload from a project's loaded files and
// its generated assembly.
func FromFiles(name string, files []project.LoadedFile, assembly string, broken bool) *Payload {
	paths := make([]string, len(files))
	hashes := make([]project.Digest, len(files))
	for i, f := range files {
		paths[i] = f.Path
		hashes[i] = f.Hash
	}
	return &Payload{
		Schema:     schemaVersion,
		Name:       name,
		FilePaths:  paths,
		FileHashes: hashes,
		Assembly:   assembly,
		Broken:     broken,
	}
}

// DropAll invalidates every cached entry by renaming the cache directory
// aside and removing it, rather than risk an in-progress reader observing a
// partially-deleted tree.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
