package site

import (
	"context"
	"sync"
	"time"
)

// PostCache is an in-memory TTL cache of the published-post set and its
// categories, serving the HTTP read surface. The query layer underneath
// stays uncached; anonymous list traffic is what makes repeated full
// scans wasteful.
type PostCache struct {
	mu         sync.RWMutex
	posts      []BlogPost
	categories []string
	fetched    time.Time
	ttl        time.Duration
	blog       *Blog
}

// NewPostCache creates a PostCache backed by the given Blog.
func NewPostCache(blog *Blog, ttl time.Duration) *PostCache {
	return &PostCache{blog: blog, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.categories = nil
	c.mu.Unlock()
}

// ensureLoaded returns cached posts and categories after ensuring the
// cache is fresh. An empty load is not cached: the blog layer degrades a
// store failure to an empty result, and pinning that for a whole TTL
// would hide recovery.
func (c *PostCache) ensureLoaded(ctx context.Context) ([]BlogPost, []string) {
	c.mu.RLock()
	if c.valid() {
		posts, categories := c.posts, c.categories
		c.mu.RUnlock()
		return posts, categories
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, c.categories
	}
	posts := c.blog.Posts(ctx, 0)
	if len(posts) == 0 {
		return nil, nil
	}
	c.posts = posts
	c.categories = categoriesOf(posts)
	c.fetched = time.Now()
	return c.posts, c.categories
}

// Posts returns published posts, newest first, capped at limit when
// limit > 0.
func (c *PostCache) Posts(ctx context.Context, limit int) []BlogPost {
	posts, _ := c.ensureLoaded(ctx)
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}

// PostsByCategory returns published posts with an exact category match.
func (c *PostCache) PostsByCategory(ctx context.Context, category string) []BlogPost {
	posts, _ := c.ensureLoaded(ctx)
	return filterByCategory(posts, category)
}

// Related returns published posts in the same category excluding the given
// id, capped at limit when limit > 0.
func (c *PostCache) Related(ctx context.Context, excludeID, category string, limit int) []BlogPost {
	posts, _ := c.ensureLoaded(ctx)
	return relatedOf(posts, excludeID, category, limit)
}

// Categories returns the distinct categories of published posts.
func (c *PostCache) Categories(ctx context.Context) []string {
	_, categories := c.ensureLoaded(ctx)
	return categories
}
