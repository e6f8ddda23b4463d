package cache

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"symdex/internal/errors"
	"symdex/internal/symbols"
)

const storeFormatVersion = 1

// metadataDoc is the persisted form of the store minus symbol payloads.
type metadataDoc struct {
	Version      int                 `json:"version"`
	RepoRevision string              `json:"repoRevision"`
	MaxEntries   int                 `json:"maxEntries"`
	AccessOrder  []string            `json:"accessOrder"` // least recently used first
	Files        map[string]fileMeta `json:"files"`
}

type fileMeta struct {
	MtimeNS        int64  `json:"mtimeNs"`
	Size           int64  `json:"size"`
	Hash           string `json:"hash"`
	SymbolCount    int    `json:"symbolCount"`
	LastAccessedNS int64  `json:"lastAccessedNs"`
}

// Save persists the store as two documents: metadata.json and the
// zstd-compressed symbols.json.zst. Each document is written to a temp file
// in the same directory and renamed into place, so a crash mid-write never
// leaves a corrupt store visible to the next load.
func (s *Store) Save() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.New(errors.PersistFailed, "failed to create cache directory", err, nil)
	}

	meta := metadataDoc{
		Version:      storeFormatVersion,
		RepoRevision: s.revision,
		MaxEntries:   s.maxEntries,
		AccessOrder:  make([]string, 0, len(s.records)),
		Files:        make(map[string]fileMeta, len(s.records)),
	}
	symbolDoc := make(map[string][]symbols.Symbol, len(s.records))

	// Walk from the back so AccessOrder reads least recently used first.
	for elem := s.order.Back(); elem != nil; elem = elem.Prev() {
		rec := elem.Value.(*FileRecord)
		meta.AccessOrder = append(meta.AccessOrder, rec.Path)
		meta.Files[rec.Path] = fileMeta{
			MtimeNS:        rec.MtimeNS,
			Size:           rec.Size,
			Hash:           rec.ContentHash,
			SymbolCount:    len(rec.Symbols),
			LastAccessedNS: rec.LastAccessed.UnixNano(),
		}
		symbolDoc[rec.Path] = rec.Symbols
	}

	if err := s.writeAtomic(metadataFile, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(&meta)
	}); err != nil {
		return errors.New(errors.PersistFailed, "failed to write cache metadata", err, nil)
	}

	if err := s.writeAtomic(symbolsFile, func(w io.Writer) error {
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if err := json.NewEncoder(zw).Encode(symbolDoc); err != nil {
			zw.Close() //nolint:errcheck // Already failing
			return err
		}
		return zw.Close()
	}); err != nil {
		return errors.New(errors.PersistFailed, "failed to write cache symbols", err, nil)
	}

	s.logger.Debug("cache persisted", "files", len(s.records), "dir", s.dir)
	return nil
}

// load restores persisted state. Any missing, unreadable, or malformed
// document degrades to a cold start; load never fails to the caller.
func (s *Store) load() {
	meta, ok := s.loadMetadata()
	if !ok {
		return
	}

	symbolDoc := s.loadSymbols()

	s.revision = meta.RepoRevision

	restored := make(map[string]bool, len(meta.Files))
	insert := func(path string, fm fileMeta) {
		syms, ok := symbolDoc[path]
		if !ok {
			// Metadata without symbol data is a miss for that path.
			s.logger.Debug("dropping cache entry without symbol data", "path", path)
			return
		}
		rec := &FileRecord{
			Path:         path,
			MtimeNS:      fm.MtimeNS,
			Size:         fm.Size,
			ContentHash:  fm.Hash,
			Symbols:      syms,
			LastAccessed: time.Unix(0, fm.LastAccessedNS),
		}
		s.records[path] = s.order.PushFront(rec)
	}

	// AccessOrder is least recently used first; pushing each entry to the
	// front rebuilds the same recency order.
	for _, path := range meta.AccessOrder {
		fm, ok := meta.Files[path]
		if !ok || restored[path] {
			continue
		}
		restored[path] = true
		insert(path, fm)
	}
	// Records missing from AccessOrder still load, as oldest.
	for path, fm := range meta.Files {
		if !restored[path] {
			rec := &FileRecord{
				Path:         path,
				MtimeNS:      fm.MtimeNS,
				Size:         fm.Size,
				ContentHash:  fm.Hash,
				LastAccessed: time.Unix(0, fm.LastAccessedNS),
			}
			if syms, ok := symbolDoc[path]; ok {
				rec.Symbols = syms
				s.records[path] = s.order.PushBack(rec)
			}
		}
	}

	// The configured capacity wins over the persisted one; shrinkage is
	// applied immediately from the LRU end.
	for len(s.records) > s.maxEntries {
		s.evictOldest()
	}

	s.logger.Debug("cache loaded", "files", len(s.records), "revision", s.revision)
}

// loadMetadata reads metadata.json; ok is false on a cold start.
func (s *Store) loadMetadata() (*metadataDoc, bool) {
	data, err := os.ReadFile(s.documentPath(metadataFile))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cache metadata unreadable, starting cold", "error", err.Error())
		}
		return nil, false
	}

	var meta metadataDoc
	if err := json.Unmarshal(data, &meta); err != nil {
		s.logger.Warn("cache metadata malformed, starting cold", "error", err.Error())
		return nil, false
	}
	if meta.Version != storeFormatVersion {
		s.logger.Warn("cache format version mismatch, starting cold",
			"found", meta.Version, "expected", storeFormatVersion)
		return nil, false
	}

	return &meta, true
}

// loadSymbols reads symbols.json.zst. Failures yield an empty map, which
// makes every metadata entry a miss rather than an error.
func (s *Store) loadSymbols() map[string][]symbols.Symbol {
	f, err := os.Open(s.documentPath(symbolsFile))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cache symbols unreadable", "error", err.Error())
		}
		return map[string][]symbols.Symbol{}
	}
	defer f.Close() //nolint:errcheck // Best effort cleanup

	zr, err := zstd.NewReader(f)
	if err != nil {
		s.logger.Warn("cache symbols malformed", "error", err.Error())
		return map[string][]symbols.Symbol{}
	}
	defer zr.Close()

	var doc map[string][]symbols.Symbol
	if err := json.NewDecoder(zr).Decode(&doc); err != nil {
		s.logger.Warn("cache symbols malformed", "error", err.Error())
		return map[string][]symbols.Symbol{}
	}

	return doc
}

// writeAtomic writes a document via temp file + rename in the cache dir.
func (s *Store) writeAtomic(name string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()         //nolint:errcheck // Already failing
		os.Remove(tmpName)  //nolint:errcheck // Best effort cleanup
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		return err
	}

	// CreateTemp opens 0600; match the 0644 the other persisted files use.
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		return err
	}

	if err := os.Rename(tmpName, s.documentPath(name)); err != nil {
		os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		return err
	}
	return nil
}

func (s *Store) documentPath(name string) string {
	return filepath.Join(s.dir, name)
}
