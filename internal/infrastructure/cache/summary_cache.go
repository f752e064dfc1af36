package cache

import (
	"context"
	"fmt"

	"github.com/caixa/backend/internal/domain/ledger"
)

// SummaryCache memoizes serialized projection results keyed by the record
// snapshot version and query range. Projections are pure recomputations
// from the snapshot, so a (version, range) pair fully identifies a result;
// invalidation is implicit because any write changes the version.
type SummaryCache interface {
	// Get returns the cached payload for the key, or found=false.
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)

	// Set stores the payload under the key with the cache's TTL.
	Set(ctx context.Context, key string, payload []byte) error

	// Close releases any resources held by the cache.
	Close() error
}

// SummaryKey builds the cache key for an aggregated period summary.
func SummaryKey(recordsVersion string, r ledger.DateRange) string {
	return fmt.Sprintf("summary:%s:%s:%s", recordsVersion, r.Start, r.End)
}

// CalendarKey builds the cache key for a month grid.
func CalendarKey(recordsVersion string, ym ledger.YearMonth) string {
	return fmt.Sprintf("calendar:%s:%s", recordsVersion, ym)
}
