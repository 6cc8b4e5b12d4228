package api

import (
	"context"

	"github.com/faizal97/site/app/content"
	"github.com/faizal97/site/app/feed"
	"github.com/faizal97/site/app/github"
)

type GeneratorInterface interface {
	Run(site string, posts []content.Entry[content.BlogPost]) (string, error)
}

var _ GeneratorInterface = (*feed.Generator)(nil)

type RepoFetcher interface {
	FetchRepos(ctx context.Context, username string) ([]github.Repo, error)
}

var _ RepoFetcher = (*github.Client)(nil)

type Handler struct {
	collections *content.Collections
	generator   GeneratorInterface
	repos       RepoFetcher
	siteURL     string
	githubUser  string
	version     string
}

type postView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	Date        string   `json:"date"`
	DateShort   string   `json:"date_short"`
	Updated     string   `json:"updated,omitempty"`
	HeroImage   string   `json:"hero_image,omitempty"`
	Tags        []string `json:"tags"`
}
