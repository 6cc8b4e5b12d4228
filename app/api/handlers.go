package api

import (
	"cmp"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/faizal97/site/app/content"
	"github.com/faizal97/site/app/feed"
	"github.com/faizal97/site/app/format"
	"github.com/gin-gonic/gin"
)

func NewHandler(collections *content.Collections, generator GeneratorInterface, repos RepoFetcher,
	siteURL, githubUser, version string) *Handler {
	return &Handler{
		collections: collections,
		generator:   generator,
		repos:       repos,
		siteURL:     siteURL,
		githubUser:  githubUser,
		version:     version,
	}
}

func (h *Handler) GetRSS(c *gin.Context) {
	posts, err := h.collections.Posts(c.Request.Context())
	if err != nil {
		slog.Error("Failed to load collection", "collection", content.BlogCollection, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss, err := h.generator.Run(h.siteURL, posts)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("X-Feed-Items", strconv.Itoa(len(content.PublishedPosts(posts))))
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(rss))
}

func (h *Handler) GetPosts(c *gin.Context) {
	posts, err := h.collections.Posts(c.Request.Context())
	if err != nil {
		slog.Error("Failed to load collection", "collection", content.BlogCollection, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	site, err := feed.ParseSiteURL(h.siteURL)
	if err != nil {
		slog.Error("Invalid site URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid site URL"})
		return
	}

	published := content.PublishedPosts(posts)

	views := make([]postView, 0, len(published))
	for _, post := range published {
		view := postView{
			ID:          post.ID,
			Title:       post.Data.Title,
			Description: post.Data.Description,
			Link:        feed.PostLink(site, post.ID),
			Date:        format.FormatDate(post.Data.PubDate.Time, format.StyleLong),
			DateShort:   format.FormatDate(post.Data.PubDate.Time, format.StyleShort),
			HeroImage:   post.Data.HeroImage,
			Tags:        post.Data.Tags,
		}
		if post.Data.UpdatedDate != nil {
			view.Updated = format.FormatDate(post.Data.UpdatedDate.Time, format.StyleLong)
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": views,
		"total": len(views),
	})
}

func (h *Handler) GetProjects(c *gin.Context) {
	projects, err := h.collections.AllProjects(c.Request.Context())
	if err != nil {
		slog.Error("Failed to load collection", "collection", content.ProjectsCollection, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load projects"})
		return
	}

	sorted := content.SortProjects(projects)

	c.JSON(http.StatusOK, gin.H{
		"projects": sorted,
		"total":    len(sorted),
	})
}

func (h *Handler) GetRepos(c *gin.Context) {
	user := cmp.Or(c.Query("user"), h.githubUser)

	repos, err := h.repos.FetchRepos(c.Request.Context(), user)
	if err != nil {
		slog.Error("Failed to fetch GitHub repositories", "user", user, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch repositories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"repos": repos,
		"total": len(repos),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	status := http.StatusOK
	collections := make(map[string]interface{}, len(h.collections.Names()))

	for _, name := range h.collections.Names() {
		collection, err := h.collections.Get(name)
		if err != nil {
			continue
		}
		count, err := collection.Count(c.Request.Context())
		if err != nil {
			slog.Error("Collection failed to load", "collection", name, "error", err)
			collections[name] = map[string]interface{}{"error": err.Error()}
			status = http.StatusServiceUnavailable
			continue
		}
		collections[name] = map[string]interface{}{"entries": count}
	}

	health["collections"] = collections

	c.JSON(status, health)
}
