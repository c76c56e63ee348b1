// Package site is the backend for a multi-locale marketing website. It
// reads blog content out of a MongoDB document store, serves it to the
// frontend as JSON plus RSS and sitemap feeds, and persists contact and
// newsletter form submissions.
package site

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

// App wires together the store, query layer, cache, limiter, and HTTP
// surface.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Blog   *Blog
	Cache  *PostCache
	Forms  SubmissionStore

	submitLimiter *SubmitLimiter
}

// New creates an App with the given configuration. Call Start to connect
// the store and serve.
func New(cfg Config) *App {
	cfg.setDefaults()
	return &App{
		Config: cfg,
		Echo:   echo.New(),
	}
}

// Start connects to the document store, wires middleware and routes, and
// serves until the listener fails or the server is shut down.
func (a *App) Start(ctx context.Context) error {
	store, err := Dial(ctx, a.Config.MongoURI, a.Config.MongoDatabase)
	if err != nil {
		return fmt.Errorf("site: dial store: %w", err)
	}
	a.Store = store
	a.Blog = NewBlog(store)
	a.Cache = NewPostCache(a.Blog, a.Config.PostCacheTTL)
	a.Forms = store
	a.submitLimiter = NewSubmitLimiter(a.Config.SubmitLimit, a.Config.SubmitWindow)

	a.setupMiddleware()
	a.setupRoutes()

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/healthz", a.handleHealthz)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/api/blog", a.handleListPosts)
	e.GET("/api/blog/categories", a.handleCategories)
	e.GET("/api/blog/:slug", a.handleGetPost)
	e.GET("/api/blog/:slug/related", a.handleRelatedPosts)

	e.POST("/api/contact", a.handleContact)
	e.POST("/api/newsletter/subscribe", a.handleSubscribe)
}

// Close releases the store connection. Call when shutting down.
func (a *App) Close(ctx context.Context) error {
	if a.Store != nil {
		return a.Store.Close(ctx)
	}
	return nil
}
