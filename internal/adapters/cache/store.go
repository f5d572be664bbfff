// Package cache persists a domain.BuildCache to a fixed-width binary file
// that survives the deletion of any build output directory, since it
// lives under the project's own .eventchains directory rather than
// alongside the object files it describes.
package cache

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

const (
	pathFieldSize  = 4096
	maxDeps        = domain.MaxDependenciesPerEntry
	maxCacheBound  = 1 << 20 // sanity cap on entry counts read from disk
	cacheFileName  = "cache.dat"
)

// Store implements ports.CacheStore with the on-disk layout: a 4-byte
// version, an 8-byte entry count, then that many fixed-size records —
// source path, object path, source hash, source mtime, last-compiled
// time, up to 128 dependency path/hash slots, a dependency count, and a
// valid byte.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

func cachePath(cacheDir string) string {
	return filepath.Join(cacheDir, cacheFileName)
}

// Load implements ports.CacheStore. A missing, truncated, or
// version-mismatched file yields a fresh empty cache rather than an
// error — persistence is a performance optimization, never a
// correctness requirement.
func (s *Store) Load(projectDir, cacheDir string) (*domain.BuildCache, error) {
	fresh := domain.NewBuildCache(projectDir, cacheDir)

	f, err := os.Open(cachePath(cacheDir)) //nolint:gosec // fixed filename under our own cache dir
	if err != nil {
		if os.IsNotExist(err) {
			return fresh, nil
		}
		return fresh, nil
	}
	defer f.Close() //nolint:errcheck

	r := bufio.NewReader(f)

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fresh, nil
	}
	if version != domain.CacheVersion {
		return fresh, nil
	}

	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fresh, nil
	}
	if count > maxCacheBound {
		return fresh, nil
	}

	cache := domain.NewBuildCache(projectDir, cacheDir)
	for i := uint64(0); i < count; i++ {
		entry, err := readEntry(r)
		if err != nil {
			return fresh, nil // short read: discard everything, per load semantics
		}
		if entry.SourcePath.String() != "" {
			cache.Entries[entry.SourcePath.String()] = entry
		}
	}
	return cache, nil
}

// Save implements ports.CacheStore, writing to a temp file and renaming
// it over the live cache so a crash mid-write never corrupts the
// previous, still-valid file.
func (s *Store) Save(cache *domain.BuildCache) error {
	if err := os.MkdirAll(cache.CacheDir, 0o755); err != nil {
		return domain.WithKind(zerr.Wrap(err, "create cache directory"), domain.ErrKindCacheIOFailed)
	}

	tmpPath := cachePath(cache.CacheDir) + ".tmp"
	f, err := os.Create(tmpPath) //nolint:gosec // fixed filename under our own cache dir
	if err != nil {
		return domain.WithKind(zerr.Wrap(err, "create temp cache file"), domain.ErrKindCacheIOFailed)
	}

	if err := writeCache(f, cache); err != nil {
		f.Close() //nolint:errcheck
		os.Remove(tmpPath) //nolint:errcheck
		return domain.WithKind(zerr.Wrap(err, "write cache"), domain.ErrKindCacheIOFailed)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath) //nolint:errcheck
		return domain.WithKind(zerr.Wrap(err, "close temp cache file"), domain.ErrKindCacheIOFailed)
	}

	if err := os.Rename(tmpPath, cachePath(cache.CacheDir)); err != nil {
		// rename-over-existing is rejected on some platforms; fall back to
		// remove-then-rename.
		if rmErr := os.Remove(cachePath(cache.CacheDir)); rmErr == nil {
			if err := os.Rename(tmpPath, cachePath(cache.CacheDir)); err == nil {
				return nil
			}
		}
		os.Remove(tmpPath) //nolint:errcheck
		return domain.WithKind(zerr.Wrap(err, "rename cache file into place"), domain.ErrKindCacheIOFailed)
	}
	return nil
}

// Clear implements ports.CacheStore.
func (s *Store) Clear(projectDir, cacheDir string) error {
	err := os.Remove(cachePath(cacheDir))
	if err != nil && !os.IsNotExist(err) {
		return domain.WithKind(zerr.Wrap(err, "remove cache file"), domain.ErrKindCacheIOFailed)
	}
	return nil
}

func writeCache(w io.Writer, cache *domain.BuildCache) error {
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, domain.CacheVersion); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(cache.Entries))); err != nil {
		return err
	}
	for _, entry := range cache.Entries {
		if err := writeEntry(bw, entry); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeEntry(w io.Writer, entry *domain.CacheEntry) error {
	if err := writeFixedString(w, entry.SourcePath.String()); err != nil {
		return err
	}
	if err := writeFixedString(w, entry.ObjectPath.String()); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, entry.SourceHash); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, entry.SourceMtime.Unix()); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, entry.LastCompiled.Unix()); err != nil {
		return err
	}

	deps := entry.Dependencies
	if len(deps) > maxDeps {
		deps = deps[:maxDeps]
	}
	for i := 0; i < maxDeps; i++ {
		if i < len(deps) {
			if err := writeFixedString(w, deps[i].Path.String()); err != nil {
				return err
			}
		} else {
			if err := writeFixedString(w, ""); err != nil {
				return err
			}
		}
	}
	for i := 0; i < maxDeps; i++ {
		var hash uint64
		if i < len(deps) {
			hash = deps[i].Hash
		}
		if err := binary.Write(w, binary.LittleEndian, hash); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(deps))); err != nil {
		return err
	}

	var validByte byte
	if entry.Valid {
		validByte = 1
	}
	_, err := w.Write([]byte{validByte})
	return err
}

func readEntry(r io.Reader) (*domain.CacheEntry, error) {
	sourcePath, err := readFixedString(r)
	if err != nil {
		return nil, err
	}
	objectPath, err := readFixedString(r)
	if err != nil {
		return nil, err
	}

	var sourceHash uint64
	if err := binary.Read(r, binary.LittleEndian, &sourceHash); err != nil {
		return nil, err
	}
	var sourceMtime, lastCompiled int64
	if err := binary.Read(r, binary.LittleEndian, &sourceMtime); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &lastCompiled); err != nil {
		return nil, err
	}

	depPaths := make([]string, maxDeps)
	for i := range depPaths {
		p, err := readFixedString(r)
		if err != nil {
			return nil, err
		}
		depPaths[i] = p
	}
	depHashes := make([]uint64, maxDeps)
	for i := range depHashes {
		if err := binary.Read(r, binary.LittleEndian, &depHashes[i]); err != nil {
			return nil, err
		}
	}

	var depCount uint64
	if err := binary.Read(r, binary.LittleEndian, &depCount); err != nil {
		return nil, err
	}
	if depCount > uint64(maxDeps) {
		depCount = uint64(maxDeps)
	}

	var validByte [1]byte
	if _, err := io.ReadFull(r, validByte[:]); err != nil {
		return nil, err
	}

	deps := make([]domain.DependencyHash, depCount)
	for i := uint64(0); i < depCount; i++ {
		deps[i] = domain.DependencyHash{Path: domain.NewInternedString(depPaths[i]), Hash: depHashes[i]}
	}

	return &domain.CacheEntry{
		SourcePath:   domain.NewInternedString(sourcePath),
		ObjectPath:   domain.NewInternedString(objectPath),
		SourceHash:   sourceHash,
		SourceMtime:  unixTime(sourceMtime),
		LastCompiled: unixTime(lastCompiled),
		Dependencies: deps,
		Valid:        validByte[0] != 0,
	}, nil
}

func unixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

func writeFixedString(w io.Writer, s string) error {
	buf := make([]byte, pathFieldSize)
	if len(s) > pathFieldSize-1 {
		s = s[:pathFieldSize-1]
	}
	copy(buf, s)
	_, err := w.Write(buf)
	return err
}

func readFixedString(r io.Reader) (string, error) {
	buf := make([]byte, pathFieldSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return string(buf[:n]), nil
}
