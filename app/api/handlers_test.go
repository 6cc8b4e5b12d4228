package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/faizal97/site/app/content"
	"github.com/faizal97/site/app/feed"
	"github.com/faizal97/site/app/github"
	"github.com/mmcdole/gofeed"
)

type fakeRepoFetcher struct {
	repos     []github.Repo
	err       error
	requested string
}

func (f *fakeRepoFetcher) FetchRepos(ctx context.Context, username string) ([]github.Repo, error) {
	f.requested = username
	return f.repos, f.err
}

func writeContent(t *testing.T, dir, name, body string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func setupContent(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeContent(t, dir, "blog/a.md", "---\ntitle: Post A\ndescription: First\npubDate: 2024-01-01\n---\n")
	writeContent(t, dir, "blog/b.md", "---\ntitle: Post B\ndescription: Hidden\npubDate: 2024-06-01\ndraft: true\n---\n")
	writeContent(t, dir, "blog/c.md", "---\ntitle: Post C\ndescription: Latest\npubDate: 2024-03-01\nupdatedDate: 2024-04-02\ntags: [go]\n---\n")
	writeContent(t, dir, "projects/one.md", "---\ntitle: One\ndescription: D\ntechnologies: [Go]\nstatus: personal\nrole: R\nscale: S\norder: 2\n---\n")
	writeContent(t, dir, "projects/two.md", "---\ntitle: Two\ndescription: D\ntechnologies: [Go]\nstatus: open-source\nrole: R\nscale: S\nfeatured: true\n---\n")
	return dir
}

func newTestServer(contentDir string, repos RepoFetcher, siteURL string) http.Handler {
	handler := NewHandler(content.NewCollections(contentDir), feed.NewGenerator(), repos, siteURL, "faizal97", "test")
	return NewServer(handler)
}

func doGet(t *testing.T, server http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestGetRSS(t *testing.T) {
	server := newTestServer(setupContent(t), &fakeRepoFetcher{}, "https://example.com")

	w := doGet(t, server, "/rss.xml")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/xml; charset=utf-8" {
		t.Errorf("Expected XML content type, got '%s'", ct)
	}
	if w.Header().Get("X-Feed-Items") != "2" {
		t.Errorf("Expected X-Feed-Items 2, got '%s'", w.Header().Get("X-Feed-Items"))
	}

	parsed, err := gofeed.NewParser().ParseString(w.Body.String())
	if err != nil {
		t.Fatalf("Expected valid RSS, got: %v", err)
	}

	if len(parsed.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(parsed.Items))
	}
	if parsed.Items[0].Title != "Post C" || parsed.Items[1].Title != "Post A" {
		t.Errorf("Unexpected item order: %s, %s", parsed.Items[0].Title, parsed.Items[1].Title)
	}
	if parsed.Items[0].Link != "https://example.com/blog/c/" {
		t.Errorf("Expected link 'https://example.com/blog/c/', got '%s'", parsed.Items[0].Link)
	}
}

func TestGetRSSDefaultSite(t *testing.T) {
	server := newTestServer(setupContent(t), &fakeRepoFetcher{}, "")

	w := doGet(t, server, "/rss.xml")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "https://faizal97.github.io/blog/a/") {
		t.Error("Expected links built from the default site URL")
	}
}

func TestGetRSSInvalidContent(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "blog/broken.md", "---\ntitle: Broken\n---\n")

	server := newTestServer(dir, &fakeRepoFetcher{}, "https://example.com")

	w := doGet(t, server, "/rss.xml")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestGetPosts(t *testing.T) {
	server := newTestServer(setupContent(t), &fakeRepoFetcher{}, "https://example.com")

	w := doGet(t, server, "/api/posts")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body struct {
		Posts []postView `json:"posts"`
		Total int        `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if body.Total != 2 || len(body.Posts) != 2 {
		t.Fatalf("Expected 2 posts, got %d", body.Total)
	}

	first := body.Posts[0]
	if first.ID != "c" {
		t.Errorf("Expected newest post 'c' first, got '%s'", first.ID)
	}
	if first.Date != "March 1, 2024" {
		t.Errorf("Expected long date 'March 1, 2024', got '%s'", first.Date)
	}
	if first.DateShort != "Mar 1, 2024" {
		t.Errorf("Expected short date 'Mar 1, 2024', got '%s'", first.DateShort)
	}
	if first.Updated != "April 2, 2024" {
		t.Errorf("Expected updated 'April 2, 2024', got '%s'", first.Updated)
	}
	if first.Link != "https://example.com/blog/c/" {
		t.Errorf("Unexpected link '%s'", first.Link)
	}
	if body.Posts[1].Tags == nil {
		t.Error("Expected tags to be an empty list, not null")
	}
}

func TestGetProjects(t *testing.T) {
	server := newTestServer(setupContent(t), &fakeRepoFetcher{}, "")

	w := doGet(t, server, "/api/projects")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body struct {
		Projects []content.Entry[content.Project] `json:"projects"`
		Total    int                              `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if body.Total != 2 {
		t.Fatalf("Expected 2 projects, got %d", body.Total)
	}
	if body.Projects[0].ID != "two" {
		t.Errorf("Expected featured project first, got '%s'", body.Projects[0].ID)
	}
	if body.Projects[0].Data.Status != content.StatusOpenSource {
		t.Errorf("Expected status 'open-source', got '%s'", body.Projects[0].Data.Status)
	}
}

func TestGetRepos(t *testing.T) {
	fetcher := &fakeRepoFetcher{repos: []github.Repo{{Name: "foo", StargazersCount: 3}}}
	server := newTestServer(setupContent(t), fetcher, "")

	w := doGet(t, server, "/api/repos")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if fetcher.requested != "faizal97" {
		t.Errorf("Expected configured user 'faizal97', got '%s'", fetcher.requested)
	}

	var body struct {
		Repos []github.Repo `json:"repos"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Total != 1 || body.Repos[0].Name != "foo" {
		t.Errorf("Unexpected repos: %+v", body.Repos)
	}

	doGet(t, server, "/api/repos?user=octocat")
	if fetcher.requested != "octocat" {
		t.Errorf("Expected user 'octocat', got '%s'", fetcher.requested)
	}
}

func TestGetReposError(t *testing.T) {
	fetcher := &fakeRepoFetcher{err: errors.New("connection refused")}
	server := newTestServer(setupContent(t), fetcher, "")

	w := doGet(t, server, "/api/repos")
	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", w.Code)
	}
}

func TestGetHealth(t *testing.T) {
	server := newTestServer(setupContent(t), &fakeRepoFetcher{}, "")

	w := doGet(t, server, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	collections, ok := body["collections"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected collections in health response, got %v", body)
	}
	blog := collections["blog"].(map[string]interface{})
	if blog["entries"].(float64) != 3 {
		t.Errorf("Expected 3 blog entries, got %v", blog["entries"])
	}
	if body["version"] != "test" {
		t.Errorf("Expected version 'test', got %v", body["version"])
	}
}

func TestGetHealthUnhealthyCollection(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "projects/bad.md", "---\ntitle: Bad\n---\n")

	server := newTestServer(dir, &fakeRepoFetcher{}, "")

	w := doGet(t, server, "/health")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t.TempDir(), &fakeRepoFetcher{}, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header")
	}
}

func TestGetPostsLinksMatchFeed(t *testing.T) {
	server := newTestServer(setupContent(t), &fakeRepoFetcher{}, "https://example.com/base/")

	var body struct {
		Posts []postView `json:"posts"`
	}
	if err := json.Unmarshal(doGet(t, server, "/api/posts").Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	parsed, err := gofeed.NewParser().ParseString(doGet(t, server, "/rss.xml").Body.String())
	if err != nil {
		t.Fatal(err)
	}

	if len(body.Posts) != len(parsed.Items) {
		t.Fatalf("Expected %d posts, got %d", len(parsed.Items), len(body.Posts))
	}
	for i, item := range parsed.Items {
		if body.Posts[i].Link != item.Link {
			t.Errorf("Post %d: JSON link '%s' differs from feed link '%s'", i, body.Posts[i].Link, item.Link)
		}
	}
}

func TestGetPostsInvalidSite(t *testing.T) {
	server := newTestServer(setupContent(t), &fakeRepoFetcher{}, "example.com")

	if w := doGet(t, server, "/api/posts"); w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}
