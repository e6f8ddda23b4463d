package incremental

import (
	"time"

	"symdex/internal/cache"
)

// counters tracks process-lifetime analysis statistics.
// Reset only by an explicit Clear.
type counters struct {
	cacheHits         int64
	cacheMisses       int64
	filesAnalyzed     int64
	failures          int64
	totalAnalysisTime time.Duration
}

func (c *counters) reset() {
	*c = counters{}
}

// Snapshot is a read-only view of the orchestrator's statistics.
type Snapshot struct {
	SessionID           string           `json:"sessionId"`
	CacheHits           int64            `json:"cacheHits"`
	CacheMisses         int64            `json:"cacheMisses"`
	HitRate             float64          `json:"hitRate"`
	FilesAnalyzed       int64            `json:"filesAnalyzed"`
	Failures            int64            `json:"failures"`
	TotalAnalysisTime   time.Duration    `json:"totalAnalysisTimeNs"`
	AverageAnalysisTime time.Duration    `json:"averageAnalysisTimeNs"`
	Store               cache.StoreStats `json:"store"`
}

// snapshot derives the rates from the raw counters.
func (c *counters) snapshot() Snapshot {
	s := Snapshot{
		CacheHits:         c.cacheHits,
		CacheMisses:       c.cacheMisses,
		FilesAnalyzed:     c.filesAnalyzed,
		Failures:          c.failures,
		TotalAnalysisTime: c.totalAnalysisTime,
	}
	if total := c.cacheHits + c.cacheMisses; total > 0 {
		s.HitRate = float64(c.cacheHits) / float64(total)
	}
	if c.filesAnalyzed > 0 {
		s.AverageAnalysisTime = c.totalAnalysisTime / time.Duration(c.filesAnalyzed)
	}
	return s
}
