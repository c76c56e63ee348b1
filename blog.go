package site

import (
	"context"
	"errors"
	"sort"

	"github.com/labstack/gommon/log"
)

// PostSource is the narrow store surface the query layer reads through.
type PostSource interface {
	AllPosts(ctx context.Context) ([]BlogPost, error)
	PostBySlug(ctx context.Context, slug string) (BlogPost, error)
}

// Blog answers read-only questions about the published-post set.
//
// Every multi-result query scans the whole collection and filters and
// sorts in-process, so the store never needs a compound index per filter
// combination. That trades a linear scan per call for zero index
// provisioning, which is fine while the collection stays marketing-blog
// sized.
//
// Reads fail soft: a store failure is logged and degrades to an empty
// result, never an error. Showing an empty list beats an error page on a
// marketing site; write paths do not get this treatment.
type Blog struct {
	source PostSource
	logger *log.Logger
}

// NewBlog creates a Blog over the given source.
func NewBlog(source PostSource) *Blog {
	return &Blog{source: source, logger: log.New("blog")}
}

// published returns the published subset, newest first. ok is false when
// the source failed.
func (b *Blog) published(ctx context.Context) ([]BlogPost, bool) {
	all, err := b.source.AllPosts(ctx)
	if err != nil {
		b.logger.Errorf("fetch posts: %v", err)
		return nil, false
	}
	var posts []BlogPost
	for _, p := range all {
		if p.Status == StatusPublished {
			posts = append(posts, p)
		}
	}
	sortByPublishedAt(posts)
	return posts, true
}

// Posts returns published posts, newest first. A limit > 0 caps the
// result; anything else means all.
func (b *Blog) Posts(ctx context.Context, limit int) []BlogPost {
	posts, _ := b.published(ctx)
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}

// PostBySlug returns the published post with the given slug, or false when
// no such post exists or the store is unreachable.
func (b *Blog) PostBySlug(ctx context.Context, slug string) (BlogPost, bool) {
	post, err := b.source.PostBySlug(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return BlogPost{}, false
	}
	if err != nil {
		b.logger.Errorf("fetch post %q: %v", slug, err)
		return BlogPost{}, false
	}
	return post, true
}

// PostsByCategory returns published posts with an exact, case-sensitive
// category match, newest first.
func (b *Blog) PostsByCategory(ctx context.Context, category string) []BlogPost {
	posts, _ := b.published(ctx)
	return filterByCategory(posts, category)
}

// RelatedPosts returns published posts in the same category, excluding the
// post identified by excludeID, newest first. A limit > 0 caps the result.
func (b *Blog) RelatedPosts(ctx context.Context, excludeID, category string, limit int) []BlogPost {
	posts, _ := b.published(ctx)
	return relatedOf(posts, excludeID, category, limit)
}

// Categories returns the distinct non-empty categories of published posts
// in first-seen order.
func (b *Blog) Categories(ctx context.Context) []string {
	posts, _ := b.published(ctx)
	return categoriesOf(posts)
}

func sortByPublishedAt(posts []BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
}

func filterByCategory(posts []BlogPost, category string) []BlogPost {
	var filtered []BlogPost
	for _, p := range posts {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func relatedOf(posts []BlogPost, excludeID, category string, limit int) []BlogPost {
	var related []BlogPost
	for _, p := range posts {
		if p.ID.Hex() == excludeID || p.Category != category {
			continue
		}
		related = append(related, p)
		if limit > 0 && len(related) == limit {
			break
		}
	}
	return related
}

func categoriesOf(posts []BlogPost) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range posts {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
