package cfg

import (
	"cmp"
	"fmt"
	"net/url"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Content
	ContentDir string `long:"content-dir" env:"CONTENT_DIR" default:"./src/content" description:"Directory holding the blog and projects collections"`
	SiteURL    string `long:"site-url" env:"SITE_URL" description:"Public site URL used for feed links (default https://faizal97.github.io)"`

	// HTTP server
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// GitHub
	GitHubUser    string `long:"github-user" env:"GITHUB_USER" default:"faizal97" description:"GitHub user whose repositories are listed"`
	GitHubAPIURL  string `long:"github-api" env:"GITHUB_API_URL" default:"https://api.github.com" description:"GitHub API base URL"`
	GitHubTimeout int    `long:"github-timeout" env:"GITHUB_TIMEOUT" default:"0" description:"GitHub request timeout in seconds (0 waits indefinitely)"`

	// Application metadata
	UserAgent  string `long:"user-agent" env:"USER_AGENT" default:"faizal97-site/1.0" description:"User agent string for HTTP requests"`
	Timezone   string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Jakarta)"`
	Debug      bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	ExportPath string `long:"export" env:"EXPORT_PATH" description:"Write the RSS feed to this file and exit instead of serving"`
}

// Load parses flags and environment. It returns nil, nil when help was
// requested.
func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs is Load over an explicit argument list; nil means os.Args.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.GitHubTimeout < 0 {
		return nil, fmt.Errorf("github timeout must be non-negative")
	}

	if raw.SiteURL != "" {
		if site, err := url.Parse(raw.SiteURL); err != nil || !site.IsAbs() || site.Host == "" {
			return nil, fmt.Errorf("site URL must be an absolute URL, got %q", raw.SiteURL)
		}
	}

	cfg := &Cfg{
		ContentDir:    raw.ContentDir,
		SiteURL:       raw.SiteURL,
		Port:          raw.Port,
		GitHubUser:    raw.GitHubUser,
		GitHubAPIURL:  raw.GitHubAPIURL,
		GitHubTimeout: raw.GitHubTimeout,
		UserAgent:     raw.UserAgent,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		ExportPath:    raw.ExportPath,
		Version:       GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

// GetGitHubTimeout returns the GitHub request timeout; zero means none.
func (c *Cfg) GetGitHubTimeout() time.Duration {
	return time.Duration(c.GitHubTimeout) * time.Second
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
