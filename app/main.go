package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/faizal97/site/app/api"
	"github.com/faizal97/site/app/cfg"
	"github.com/faizal97/site/app/content"
	"github.com/faizal97/site/app/feed"
	"github.com/faizal97/site/app/github"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	collections := content.NewCollections(appCfg.ContentDir)
	generator := feed.NewGenerator()

	if appCfg.ExportPath != "" {
		if err := exportFeed(context.Background(), collections, generator, appCfg); err != nil {
			slog.Error("Feed export failed", "path", appCfg.ExportPath, "error", err)
			os.Exit(1)
		}
		return
	}

	if err := serve(collections, generator, appCfg); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func exportFeed(ctx context.Context, collections *content.Collections, generator *feed.Generator, appCfg *cfg.Cfg) error {
	posts, err := collections.Posts(ctx)
	if err != nil {
		return err
	}

	rss, err := generator.Run(appCfg.SiteURL, posts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(appCfg.ExportPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(appCfg.ExportPath, []byte(rss), 0644); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}

	slog.Info("Feed exported", "path", appCfg.ExportPath, "site", feed.SiteURL(appCfg.SiteURL))
	return nil
}

func serve(collections *content.Collections, generator *feed.Generator, appCfg *cfg.Cfg) error {
	slog.Info("Starting site server", "version", appCfg.Version, "content_dir", appCfg.ContentDir)

	githubClient := github.NewClient(
		&http.Client{Timeout: appCfg.GetGitHubTimeout()},
		appCfg.GitHubAPIURL,
		appCfg.UserAgent,
	)

	handler := api.NewHandler(collections, generator, githubClient,
		appCfg.SiteURL, appCfg.GitHubUser, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening",
			"port", appCfg.Port,
			"rss", fmt.Sprintf("http://localhost:%s/rss.xml", appCfg.Port),
			"health", fmt.Sprintf("http://localhost:%s/health", appCfg.Port))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case serveErr = <-serverErrChan:
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	return serveErr
}
