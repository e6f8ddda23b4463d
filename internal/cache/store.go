package cache

import (
	"container/list"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"symdex/internal/paths"
	"symdex/internal/symbols"
)

// Store is the LRU-bounded cache of per-file analysis results.
//
// Records and the access-order list are kept consistent by construction:
// every mutation goes through Put, Invalidate, InvalidateAll, RemoveStale,
// or eviction inside Put, each of which updates both together.
type Store struct {
	repoRoot   string
	dir        string // persisted document directory
	maxEntries int
	revision   string // last-observed repository revision (opaque)

	records map[string]*list.Element // path -> element in order; element value is *FileRecord
	order   *list.List               // front = most recently used, back = eviction candidate

	logger *slog.Logger
}

// NewStore creates an empty store persisting under dir.
// maxEntries <= 0 selects DefaultMaxEntries.
func NewStore(repoRoot, dir string, maxEntries int, logger *slog.Logger) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{
		repoRoot:   repoRoot,
		dir:        dir,
		maxEntries: maxEntries,
		records:    make(map[string]*list.Element),
		order:      list.New(),
		logger:     logger,
	}
}

// Open creates a store and loads any persisted state from dir.
// A missing, unreadable, or malformed store is a cold start, never an error.
func Open(repoRoot, dir string, maxEntries int, logger *slog.Logger) *Store {
	s := NewStore(repoRoot, dir, maxEntries, logger)
	s.load()
	return s
}

// IsChanged reports whether the file at path differs from its cached record.
//
// Three tiers, cheapest first: no record means changed; matching mtime and
// size means unchanged with no hashing; otherwise the content hash decides.
// When metadata differs but the hash still matches (touch, checkout that
// rewrites timestamps), the record's metadata is refreshed so future calls
// take the fast path again.
func (s *Store) IsChanged(path string, modTime time.Time, size int64) bool {
	elem, ok := s.records[path]
	if !ok {
		return true
	}
	rec := elem.Value.(*FileRecord)

	if rec.MtimeNS == modTime.UnixNano() && rec.Size == size {
		return false
	}

	currentHash, err := s.hashFile(path)
	if err != nil {
		s.logger.Debug("hash failed, treating as changed", "path", path, "error", err.Error())
		return true
	}

	if currentHash == rec.ContentHash {
		rec.MtimeNS = modTime.UnixNano()
		rec.Size = size
		return false
	}

	return true
}

// Get returns the cached symbols for path and bumps its recency.
// Callers must have confirmed freshness via IsChanged first.
func (s *Store) Get(path string) ([]symbols.Symbol, bool) {
	elem, ok := s.records[path]
	if !ok {
		return nil, false
	}
	rec := elem.Value.(*FileRecord)
	rec.LastAccessed = time.Now()
	s.order.MoveToFront(elem)
	return rec.Symbols, true
}

// Put creates or overwrites the record for path and evicts from the LRU end
// until the store is within capacity. Eviction never fails; an evicted
// file's next access is simply a miss.
func (s *Store) Put(path string, modTime time.Time, size int64, contentHash string, syms []symbols.Symbol) {
	if elem, ok := s.records[path]; ok {
		rec := elem.Value.(*FileRecord)
		rec.MtimeNS = modTime.UnixNano()
		rec.Size = size
		rec.ContentHash = contentHash
		rec.Symbols = syms
		rec.LastAccessed = time.Now()
		s.order.MoveToFront(elem)
		return
	}

	rec := &FileRecord{
		Path:         path,
		MtimeNS:      modTime.UnixNano(),
		Size:         size,
		ContentHash:  contentHash,
		Symbols:      syms,
		LastAccessed: time.Now(),
	}
	s.records[path] = s.order.PushFront(rec)

	for len(s.records) > s.maxEntries {
		s.evictOldest()
	}
}

// evictOldest drops the least recently used record.
func (s *Store) evictOldest() {
	back := s.order.Back()
	if back == nil {
		return
	}
	rec := back.Value.(*FileRecord)
	s.order.Remove(back)
	delete(s.records, rec.Path)
	s.logger.Debug("evicted cache entry", "path", rec.Path)
}

// Invalidate removes a single entry if present; no-op otherwise.
func (s *Store) Invalidate(path string) {
	elem, ok := s.records[path]
	if !ok {
		return
	}
	s.order.Remove(elem)
	delete(s.records, path)
}

// InvalidateAll clears every record. The stored revision is kept; callers
// invalidating on a revision change update it separately.
func (s *Store) InvalidateAll() {
	s.records = make(map[string]*list.Element)
	s.order.Init()
}

// RemoveStale drops records for paths no longer present in existing and
// returns the number removed.
func (s *Store) RemoveStale(existing map[string]struct{}) int {
	var stale []string
	for path := range s.records {
		if _, ok := existing[path]; !ok {
			stale = append(stale, path)
		}
	}
	for _, path := range stale {
		s.Invalidate(path)
	}
	return len(stale)
}

// Revision returns the last-observed repository revision ("" if never set).
func (s *Store) Revision() string {
	return s.revision
}

// SetRevision records the current repository revision.
func (s *Store) SetRevision(rev string) {
	s.revision = rev
}

// Len returns the number of resident records.
func (s *Store) Len() int {
	return len(s.records)
}

// Contains reports whether path has a resident record without touching
// LRU order.
func (s *Store) Contains(path string) bool {
	_, ok := s.records[path]
	return ok
}

// Stats returns a read-only snapshot. It does not mutate LRU order.
// SizeBytes is the exact on-disk size of the persisted documents (0 until
// the first Save).
func (s *Store) Stats() StoreStats {
	stats := StoreStats{
		ResidentFiles: len(s.records),
		StorageDir:    s.dir,
	}
	for _, elem := range s.records {
		stats.TotalSymbols += len(elem.Value.(*FileRecord).Symbols)
	}
	for _, name := range []string{metadataFile, symbolsFile} {
		if info, err := os.Stat(s.documentPath(name)); err == nil {
			stats.SizeBytes += info.Size()
		}
	}
	return stats
}

// HashBytes computes the sha256 hex digest of data.
func HashBytes(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// hashFile computes the sha256 hex digest of the file at the canonical path.
func (s *Store) hashFile(path string) (string, error) {
	f, err := os.Open(paths.JoinRepoPath(s.repoRoot, path))
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // Best effort cleanup

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
