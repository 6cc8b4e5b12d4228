package cfg

type Cfg struct {
	// Content
	ContentDir string
	SiteURL    string

	// HTTP server
	Port string

	// GitHub
	GitHubUser    string
	GitHubAPIURL  string
	GitHubTimeout int

	// Application metadata
	UserAgent  string
	Timezone   string
	Debug      bool
	ExportPath string
	Version    string
}
