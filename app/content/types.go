package content

// Entry is one validated file of a collection. The file body is not kept.
type Entry[T any] struct {
	ID         string `json:"id"`
	Collection string `json:"collection"`
	FilePath   string `json:"-"`
	Data       T      `json:"data"`
}

type BlogPost struct {
	Title       string   `yaml:"title" json:"title" validate:"required"`
	Description string   `yaml:"description" json:"description" validate:"required"`
	PubDate     Date     `yaml:"pubDate" json:"pubDate" validate:"required"`
	UpdatedDate *Date    `yaml:"updatedDate" json:"updatedDate,omitempty" validate:"omitempty"`
	HeroImage   string   `yaml:"heroImage" json:"heroImage,omitempty"`
	Tags        []string `yaml:"tags" json:"tags"`
	Draft       bool     `yaml:"draft" json:"draft"`
}

type ProjectStatus string

const (
	StatusConfidential ProjectStatus = "confidential"
	StatusOpenSource   ProjectStatus = "open-source"
	StatusPersonal     ProjectStatus = "personal"
)

type Project struct {
	Title        string        `yaml:"title" json:"title" validate:"required"`
	Description  string        `yaml:"description" json:"description" validate:"required"`
	Technologies []string      `yaml:"technologies" json:"technologies" validate:"required"`
	LiveURL      string        `yaml:"liveUrl" json:"liveUrl,omitempty" validate:"omitempty,url"`
	GitHubURL    string        `yaml:"githubUrl" json:"githubUrl,omitempty" validate:"omitempty,url"`
	Status       ProjectStatus `yaml:"status" json:"status" validate:"required,oneof=confidential open-source personal"`
	Role         string        `yaml:"role" json:"role" validate:"required"`
	Scale        string        `yaml:"scale" json:"scale" validate:"required"`
	Featured     bool          `yaml:"featured" json:"featured"`
	Order        float64       `yaml:"order" json:"order"`
}

// entryMeta holds front-matter keys that shape the entry rather than its data.
type entryMeta struct {
	Slug string `yaml:"slug"`
}
