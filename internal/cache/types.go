// Package cache implements the persistent per-file analysis cache.
//
// A Store tracks one FileRecord per analyzed file, decides whether a file's
// content differs from what was last analyzed (mtime/size fast path, sha256
// ground truth), bounds residency with LRU eviction, and persists itself as
// two documents under the repository's .symdex/cache directory.
//
// A Store is owned by a single analysis session. It performs no internal
// locking: concurrent use from multiple goroutines or processes against the
// same storage directory is the caller's responsibility to avoid.
package cache

import (
	"time"

	"symdex/internal/symbols"
)

// FileRecord is the cached state of one analyzed file.
type FileRecord struct {
	// Path is the canonical repo-relative path (forward slashes)
	Path string

	// MtimeNS is the last-observed modification time (Unix nanoseconds)
	MtimeNS int64

	// Size is the last-observed file size in bytes
	Size int64

	// ContentHash is the sha256 hex digest of the file contents at analysis time
	ContentHash string

	// Symbols is the cached analysis result. Updated together with
	// ContentHash, never separately.
	Symbols []symbols.Symbol

	// LastAccessed orders records for LRU eviction
	LastAccessed time.Time
}

// StoreStats is a read-only snapshot of the store's size and location.
type StoreStats struct {
	ResidentFiles int    `json:"residentFiles"`
	TotalSymbols  int    `json:"totalSymbols"`
	SizeBytes     int64  `json:"sizeBytes"` // exact byte size of the persisted documents
	StorageDir    string `json:"storageDir"`
}

// DefaultMaxEntries bounds the store when no capacity is configured.
const DefaultMaxEntries = 10000

// Persisted document names under the cache directory.
const (
	metadataFile = "metadata.json"
	symbolsFile  = "symbols.json.zst"
)
