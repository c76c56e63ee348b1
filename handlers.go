package site

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const defaultRelatedLimit = 3

// handleListPosts serves published posts, optionally capped by ?limit= or
// filtered by an exact ?category= match.
func (a *App) handleListPosts(c echo.Context) error {
	ctx := c.Request().Context()
	if category := c.QueryParam("category"); category != "" {
		return c.JSON(http.StatusOK, postList(a.Cache.PostsByCategory(ctx, category)))
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return c.JSON(http.StatusOK, postList(a.Cache.Posts(ctx, limit)))
}

// handleGetPost serves a single published post by slug. The lookup goes
// straight to the store rather than the cache so a freshly published post
// is readable the moment its link goes out.
func (a *App) handleGetPost(c echo.Context) error {
	post, ok := a.Blog.PostBySlug(c.Request().Context(), c.Param("slug"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
	}
	return c.JSON(http.StatusOK, post)
}

// handleRelatedPosts serves posts in the same category as the given post,
// excluding it, capped at ?limit= (default 3).
func (a *App) handleRelatedPosts(c echo.Context) error {
	ctx := c.Request().Context()
	post, ok := a.Blog.PostBySlug(ctx, c.Param("slug"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
	}
	limit := defaultRelatedLimit
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return c.JSON(http.StatusOK, postList(a.Cache.Related(ctx, post.ID.Hex(), post.Category, limit)))
}

// handleCategories serves the distinct categories of published posts.
func (a *App) handleCategories(c echo.Context) error {
	categories := a.Cache.Categories(c.Request().Context())
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, categories)
}

func (a *App) handleHealthz(c echo.Context) error {
	if a.Store != nil {
		if err := a.Store.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// handleRobots generates robots.txt dynamically using the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts := a.Cache.Posts(c.Request().Context(), 0)
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts := a.Cache.Posts(c.Request().Context(), 0)
	return a.renderRSS(c, posts)
}

// postList folds a nil slice to an empty one so the API always serializes
// an array, never null.
func postList(posts []BlogPost) []BlogPost {
	if posts == nil {
		return []BlogPost{}
	}
	return posts
}
