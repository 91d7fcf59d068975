package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/rs/zerolog/log"
)

// currentCacheVersion defines the version of the cached commit detail encoding
const currentCacheVersion = 1

// cachedCommitSource serves commit details from the activity store.
// Every other call goes straight to the wrapped source.
type cachedCommitSource struct {
	contract.CommitSource
	store contract.CacheStore
	ttl   time.Duration
	now   func() time.Time
}

var _ contract.CommitSource = &cachedCommitSource{} // Compile-time check

func newCachedCommitSource(source contract.CommitSource, store contract.CacheStore, ttl time.Duration) *cachedCommitSource {
	if ttl <= 0 {
		ttl = contract.DefaultCacheTTL
	}
	return &cachedCommitSource{CommitSource: source, store: store, ttl: ttl, now: time.Now}
}

// CommitDetail implements the CommitSource interface.
func (c *cachedCommitSource) CommitDetail(ctx context.Context, ev schema.CommitEvent) (schema.CommitDetail, error) {
	key := commitCacheKey(ev)

	// Check for cache hit
	if detail, ok := c.checkCacheHit(key); ok {
		return detail, nil
	}

	// Cache miss: compute and store
	return c.computeAndStore(ctx, ev, key)
}

// checkCacheHit attempts to retrieve and validate a cached detail
func (c *cachedCommitSource) checkCacheHit(key string) (schema.CommitDetail, bool) {
	data, version, ts, err := c.store.Get(key)
	if err != nil {
		return schema.CommitDetail{}, false // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || c.now().Sub(time.Unix(ts, 0)) > c.ttl {
		return schema.CommitDetail{}, false
	}

	var detail schema.CommitDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return schema.CommitDetail{}, false
	}
	return detail, true
}

// computeAndStore fetches the detail and stores it in cache
func (c *cachedCommitSource) computeAndStore(ctx context.Context, ev schema.CommitEvent, key string) (schema.CommitDetail, error) {
	detail, err := c.CommitSource.CommitDetail(ctx, ev)
	if err != nil {
		return schema.CommitDetail{}, err
	}

	if data, err := json.Marshal(detail); err == nil {
		if err := c.store.Set(key, data, currentCacheVersion, c.now().Unix()); err != nil {
			log.Debug().Err(err).Str("sha", ev.SHA).Msg("commit detail not cached")
		}
	}
	return detail, nil
}

// commitCacheKey identifies a commit across repositories.
func commitCacheKey(ev schema.CommitEvent) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(ev.Project+"@"+ev.SHA)))
}
