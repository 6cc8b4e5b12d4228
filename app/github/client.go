package github

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const (
	DefaultBaseURL  = "https://api.github.com"
	DefaultUsername = "faizal97"

	acceptHeader = "application/vnd.github.v3+json"
	pageSize     = "100"
	maxRepos     = 9
	pagesSuffix  = ".github.io"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient(httpClient *http.Client, baseURL, userAgent string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cmp.Or(baseURL, DefaultBaseURL), "/"),
		userAgent:  userAgent,
	}
}

// FetchRepos returns up to nine of the user's own repositories, most starred
// first. A non-2xx answer from GitHub is logged and yields an empty list.
func (c *Client) FetchRepos(ctx context.Context, username string) ([]Repo, error) {
	username = cmp.Or(username, DefaultUsername)

	endpoint, err := c.reposURL(username)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", acceptHeader)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Error("GitHub API error", "status", resp.StatusCode, "user", username)
		_, _ = io.Copy(io.Discard, resp.Body)
		return []Repo{}, nil
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("failed to decode repositories: %w", err)
	}

	return selectRepos(repos), nil
}

func (c *Client) reposURL(username string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid GitHub API URL %q: %w", c.baseURL, err)
	}

	u := base.JoinPath("users", username, "repos")

	query := url.Values{}
	query.Set("per_page", pageSize)
	query.Set("sort", "stargazers_count")
	query.Set("direction", "desc")
	u.RawQuery = query.Encode()

	return u.String(), nil
}

func selectRepos(repos []Repo) []Repo {
	selected := make([]Repo, 0, min(len(repos), maxRepos))
	for _, repo := range repos {
		if repo.Fork || strings.HasSuffix(repo.Name, pagesSuffix) {
			continue
		}
		selected = append(selected, repo)
		if len(selected) == maxRepos {
			break
		}
	}
	return selected
}
