package feed

import (
	"cmp"
	"fmt"
	"net/url"
	"strings"

	"github.com/faizal97/site/app/content"
	"github.com/faizal97/site/app/format"
	"github.com/gorilla/feeds"
)

const (
	Title       = "Faizal Ardian Putra — Blog"
	Description = "Thoughts on backend development, API design, and software engineering."

	// DefaultSiteURL is used when the hosting context has no site URL.
	DefaultSiteURL = "https://faizal97.github.io"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// SiteURL picks the configured site URL, falling back to DefaultSiteURL.
func SiteURL(configured string) string {
	return strings.TrimRight(cmp.Or(strings.TrimSpace(configured), DefaultSiteURL), "/")
}

// ParseSiteURL resolves the configured site URL through SiteURL and rejects
// anything that is not an absolute http(s) URL.
func ParseSiteURL(configured string) (*url.URL, error) {
	site := SiteURL(configured)
	base, err := url.Parse(site)
	if err != nil {
		return nil, fmt.Errorf("invalid site URL %q: %w", site, err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("invalid site URL %q: must be absolute", site)
	}
	return base, nil
}

// PostLink is the absolute URL of a blog post, /blog/{id}/ resolved against
// the site URL.
func PostLink(base *url.URL, id string) string {
	return base.ResolveReference(&url.URL{Path: "/blog/" + id + "/"}).String()
}

// Run renders the RSS 2.0 document for the given blog entries. Drafts are
// left out and items are ordered newest first.
func (g *Generator) Run(site string, posts []content.Entry[content.BlogPost]) (string, error) {
	base, err := ParseSiteURL(site)
	if err != nil {
		return "", err
	}

	published := content.PublishedPosts(posts)

	f := &feeds.Feed{
		Title:       Title,
		Link:        &feeds.Link{Href: base.String()},
		Description: Description,
		Items:       make([]*feeds.Item, 0, len(published)),
	}

	if len(published) > 0 {
		f.Created = published[0].Data.PubDate.Time
	}

	for _, post := range published {
		link := PostLink(base, post.ID)
		f.Items = append(f.Items, &feeds.Item{
			Id:          link,
			Title:       post.Data.Title,
			Link:        &feeds.Link{Href: link},
			Description: post.Data.Description,
			Created:     post.Data.PubDate.Time,
		})
	}

	rss := (&feeds.Rss{Feed: f}).RssFeed()
	rss.Language = format.Locale.String()

	doc, err := feeds.ToXML(rss)
	if err != nil {
		return "", fmt.Errorf("failed to render RSS: %w", err)
	}

	return doc, nil
}

