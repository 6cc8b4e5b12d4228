package github

// Repo is the subset of the GitHub repository payload the site renders.
type Repo struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	HTMLURL         string   `json:"html_url"`
	StargazersCount int      `json:"stargazers_count"`
	Language        *string  `json:"language"`
	Fork            bool     `json:"fork"`
	Topics          []string `json:"topics"`
}
