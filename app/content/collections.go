package content

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

const (
	BlogCollection     = "blog"
	ProjectsCollection = "projects"
)

func Blog(contentDir string) *Collection[BlogPost] {
	return NewCollection(BlogCollection, filepath.Join(contentDir, BlogCollection), func(post *BlogPost) {
		if post.Tags == nil {
			post.Tags = []string{}
		}
	})
}

func Projects(contentDir string) *Collection[Project] {
	return NewCollection[Project](ProjectsCollection, filepath.Join(contentDir, ProjectsCollection), nil)
}

// Counter is the untyped view of a collection.
type Counter interface {
	CollectionName() string
	Count(ctx context.Context) (int, error)
}

var (
	_ Counter = (*Collection[BlogPost])(nil)
	_ Counter = (*Collection[Project])(nil)
)

// Collections is the site's content registry.
type Collections struct {
	Blog     *Collection[BlogPost]
	Projects *Collection[Project]
}

func NewCollections(contentDir string) *Collections {
	return &Collections{
		Blog:     Blog(contentDir),
		Projects: Projects(contentDir),
	}
}

// Get looks a collection up by name.
func (c *Collections) Get(name string) (Counter, error) {
	switch name {
	case BlogCollection:
		return c.Blog, nil
	case ProjectsCollection:
		return c.Projects, nil
	default:
		return nil, fmt.Errorf("collection '%s' not found", name)
	}
}

func (c *Collections) Names() []string {
	return []string{BlogCollection, ProjectsCollection}
}

func (c *Collections) Posts(ctx context.Context) ([]Entry[BlogPost], error) {
	return c.Blog.Load(ctx)
}

func (c *Collections) AllProjects(ctx context.Context) ([]Entry[Project], error) {
	return c.Projects.Load(ctx)
}

// PublishedPosts drops drafts and orders the rest newest first. Posts sharing
// a publish date keep their load order.
func PublishedPosts(posts []Entry[BlogPost]) []Entry[BlogPost] {
	published := make([]Entry[BlogPost], 0, len(posts))
	for _, post := range posts {
		if !post.Data.Draft {
			published = append(published, post)
		}
	}

	slices.SortStableFunc(published, func(a, b Entry[BlogPost]) int {
		return b.Data.PubDate.Compare(a.Data.PubDate.Time)
	})

	return published
}

// SortProjects orders featured projects first, then by display order, then
// by title.
func SortProjects(projects []Entry[Project]) []Entry[Project] {
	sorted := slices.Clone(projects)

	slices.SortStableFunc(sorted, func(a, b Entry[Project]) int {
		if a.Data.Featured != b.Data.Featured {
			if a.Data.Featured {
				return -1
			}
			return 1
		}
		return cmp.Or(
			cmp.Compare(a.Data.Order, b.Data.Order),
			strings.Compare(a.Data.Title, b.Data.Title),
		)
	})

	return sorted
}
