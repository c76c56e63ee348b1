package site

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func getPath(a *App, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func decodePosts(t *testing.T, rec *httptest.ResponseRecorder) []BlogPost {
	t.Helper()
	var posts []BlogPost
	if err := json.Unmarshal(rec.Body.Bytes(), &posts); err != nil {
		t.Fatalf("response is not a post list: %v\n%s", err, rec.Body.String())
	}
	return posts
}

func TestListPosts(t *testing.T) {
	a := newTestApp(&fakeStore{posts: []BlogPost{
		post("a", "Design", StatusPublished, day(1)),
		post("b", "Design", StatusPublished, day(2)),
		post("c", "Design", StatusDraft, day(3)),
	}})

	rec := getPath(a, "/api/blog")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	posts := decodePosts(t, rec)
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	if posts[0].Slug != "b" {
		t.Errorf("first post = %s, want b (newest)", posts[0].Slug)
	}
}

func TestListPostsEmptyIsArray(t *testing.T) {
	a := newTestApp(&fakeStore{})

	rec := getPath(a, "/api/blog")
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("empty list body = %s, want []", body)
	}
}

func TestListPostsLimit(t *testing.T) {
	a := newTestApp(&fakeStore{posts: []BlogPost{
		post("a", "Design", StatusPublished, day(1)),
		post("b", "Design", StatusPublished, day(2)),
		post("c", "Design", StatusPublished, day(3)),
	}})

	posts := decodePosts(t, getPath(a, "/api/blog?limit=2"))
	if len(posts) != 2 {
		t.Errorf("posts = %d, want 2", len(posts))
	}
}

func TestListPostsByCategory(t *testing.T) {
	a := newTestApp(&fakeStore{posts: []BlogPost{
		post("a", "Design", StatusPublished, day(1)),
		post("b", "Engineering", StatusPublished, day(2)),
	}})

	posts := decodePosts(t, getPath(a, "/api/blog?category=Engineering"))
	if len(posts) != 1 || posts[0].Slug != "b" {
		t.Errorf("category filter returned %v", posts)
	}
}

func TestGetPost(t *testing.T) {
	a := newTestApp(&fakeStore{posts: []BlogPost{
		post("hello-world", "Design", StatusPublished, day(1)),
	}})

	rec := getPath(a, "/api/blog/hello-world")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got BlogPost
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if got.Slug != "hello-world" {
		t.Errorf("slug = %q", got.Slug)
	}

	if rec := getPath(a, "/api/blog/missing"); rec.Code != http.StatusNotFound {
		t.Errorf("missing slug status = %d, want 404", rec.Code)
	}
}

func TestRelatedPostsEndpoint(t *testing.T) {
	current := post("current", "Design", StatusPublished, day(9))
	a := newTestApp(&fakeStore{posts: []BlogPost{
		current,
		post("r1", "Design", StatusPublished, day(4)),
		post("r2", "Design", StatusPublished, day(3)),
		post("r3", "Design", StatusPublished, day(2)),
		post("r4", "Design", StatusPublished, day(1)),
	}})

	posts := decodePosts(t, getPath(a, "/api/blog/current/related"))
	if len(posts) != 3 {
		t.Fatalf("related = %d, want default cap 3", len(posts))
	}
	for _, p := range posts {
		if p.Slug == "current" {
			t.Error("related must exclude the current post")
		}
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	a := newTestApp(&fakeStore{posts: []BlogPost{
		post("a", "Design", StatusPublished, day(2)),
		post("b", "Engineering", StatusPublished, day(1)),
	}})

	rec := getPath(a, "/api/blog/categories")
	var categories []string
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Design" {
		t.Errorf("categories = %v", categories)
	}
}

func TestFeed(t *testing.T) {
	a := newTestApp(&fakeStore{posts: []BlogPost{
		post("hello-world", "Design", StatusPublished, day(1)),
	}})

	rec := getPath(a, "/feed.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "rss+xml") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "https://example.com/blog/hello-world/") {
		t.Errorf("feed missing post link:\n%s", rec.Body.String())
	}
}

func TestSitemap(t *testing.T) {
	a := newTestApp(&fakeStore{posts: []BlogPost{
		post("hello-world", "Design", StatusPublished, day(1)),
	}})

	rec := getPath(a, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<loc>https://example.com/blog/hello-world/</loc>") {
		t.Errorf("sitemap missing post URL:\n%s", body)
	}
	if !strings.Contains(body, "<lastmod>2024-01-01</lastmod>") {
		t.Errorf("sitemap missing lastmod:\n%s", body)
	}
}

func TestRobots(t *testing.T) {
	a := newTestApp(&fakeStore{})

	rec := getPath(a, "/robots.txt")
	if !strings.Contains(rec.Body.String(), "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("robots.txt = %s", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	a := newTestApp(&fakeStore{})

	rec := getPath(a, "/healthz")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
