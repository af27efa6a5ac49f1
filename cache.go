package collective

import (
	"context"
	"sync"
	"time"
)

// summaryCache is an in-memory cache of article summaries and the
// taxonomy with a TTL. Every admin mutation invalidates the whole cache;
// there is no per-article granularity.
type summaryCache struct {
	mu       sync.RWMutex
	articles []ArticleSummary
	taxonomy Taxonomy
	fetched  time.Time
	ttl      time.Duration
	store    *Store
}

func newSummaryCache(s *Store, ttl time.Duration) *summaryCache {
	return &summaryCache{store: s, ttl: ttl}
}

func (c *summaryCache) valid() bool {
	return c.articles != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *summaryCache) Invalidate() {
	c.mu.Lock()
	c.articles = nil
	c.taxonomy = Taxonomy{}
	c.mu.Unlock()
}

// ensureLoaded returns cached summaries and taxonomy, reloading from the
// store when stale. It tries a read lock first and only takes the write
// lock for a reload.
func (c *summaryCache) ensureLoaded(ctx context.Context) ([]ArticleSummary, Taxonomy, error) {
	c.mu.RLock()
	if c.valid() {
		articles, taxonomy := c.articles, c.taxonomy
		c.mu.RUnlock()
		return articles, taxonomy, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.articles, c.taxonomy, nil
	}
	rows, err := c.store.ListArticles(ctx)
	if err != nil {
		return nil, Taxonomy{}, err
	}
	taxonomy, err := c.store.Taxonomy(ctx)
	if err != nil {
		return nil, Taxonomy{}, err
	}
	articles := make([]ArticleSummary, 0, len(rows))
	for _, r := range rows {
		articles = append(articles, r.ArticleSummary)
	}
	c.articles = articles
	c.taxonomy = taxonomy
	c.fetched = time.Now()
	return c.articles, c.taxonomy, nil
}

// Summaries returns all article summaries, newest first.
func (c *summaryCache) Summaries(ctx context.Context) ([]ArticleSummary, error) {
	articles, _, err := c.ensureLoaded(ctx)
	return articles, err
}

// Taxonomy returns the cached taxonomy.
func (c *summaryCache) Taxonomy(ctx context.Context) (Taxonomy, error) {
	_, taxonomy, err := c.ensureLoaded(ctx)
	return taxonomy, err
}
