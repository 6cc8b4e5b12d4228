package content

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"
)

var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Collection is a named set of Markdown/MDX files under Base whose front
// matter decodes into T. Files are read on every Load.
type Collection[T any] struct {
	Name       string
	Base       string
	Extensions []string

	defaults func(*T)
}

func NewCollection[T any](name, base string, defaults func(*T)) *Collection[T] {
	return &Collection[T]{
		Name:       name,
		Base:       base,
		Extensions: []string{".md", ".mdx"},
		defaults:   defaults,
	}
}

// Load reads and validates every entry. The first invalid entry fails the
// whole collection. A missing base directory is an empty collection.
func (c *Collection[T]) Load(ctx context.Context) ([]Entry[T], error) {
	if _, err := os.Stat(c.Base); os.IsNotExist(err) {
		slog.Debug("Collection directory not found", "collection", c.Name, "base", c.Base)
		return []Entry[T]{}, nil
	}

	files, err := c.findFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s collection: %w", c.Name, err)
	}

	entries := make([]Entry[T], 0, len(files))
	seen := make(map[string]string, len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry, err := c.loadEntry(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if other, ok := seen[entry.ID]; ok {
			return nil, fmt.Errorf("duplicate id %q in %s collection: %s and %s", entry.ID, c.Name, other, file)
		}
		seen[entry.ID] = file

		entries = append(entries, entry)
	}

	slog.Debug("Collection loaded", "collection", c.Name, "entries", len(entries))

	return entries, nil
}

// Count reports the number of valid entries.
func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	entries, err := c.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (c *Collection[T]) CollectionName() string {
	return c.Name
}

func (c *Collection[T]) findFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(c.Base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if slices.Contains(c.Extensions, filepath.Ext(d.Name())) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (c *Collection[T]) loadEntry(file string) (Entry[T], error) {
	var entry Entry[T]

	data, err := os.ReadFile(file)
	if err != nil {
		return entry, fmt.Errorf("failed to read file: %w", err)
	}

	var node yaml.Node
	if _, err := frontmatter.MustParse(bytes.NewReader(data), &node, yamlFrontMatter); err != nil {
		return entry, fmt.Errorf("failed to parse front matter: %w", err)
	}

	var meta entryMeta
	if node.Kind != 0 {
		if err := checkScalarTypes(&node, reflect.TypeOf(entry.Data)); err != nil {
			return entry, err
		}
		if err := node.Decode(&entry.Data); err != nil {
			return entry, fmt.Errorf("failed to decode front matter: %w", err)
		}
		if err := node.Decode(&meta); err != nil {
			return entry, fmt.Errorf("failed to decode front matter: %w", err)
		}
	}

	if c.defaults != nil {
		c.defaults(&entry.Data)
	}

	if err := validateData(&entry.Data); err != nil {
		return entry, err
	}

	rel, err := filepath.Rel(c.Base, file)
	if err != nil {
		return entry, fmt.Errorf("failed to resolve entry path: %w", err)
	}

	entry.ID = entryID(filepath.ToSlash(rel), meta.Slug)
	entry.Collection = c.Name
	entry.FilePath = file

	return entry, nil
}

// entryID derives the id from the path relative to the collection base:
// extension dropped, every segment slugged, a trailing "index" removed.
func entryID(relPath, slugOverride string) string {
	if slugOverride != "" {
		return slugOverride
	}

	trimmed := strings.TrimSuffix(relPath, path.Ext(relPath))
	segments := strings.Split(trimmed, "/")
	for i, segment := range segments {
		segments[i] = slug.Make(segment)
	}

	id := strings.Join(segments, "/")
	if id == "index" {
		return id
	}
	return strings.TrimSuffix(id, "/index")
}
