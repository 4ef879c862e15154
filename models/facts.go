package models

// PageFacts holds the structural metadata extracted from one emitted page.
// Facts are derived from the tree on every QA run and never cached.
type PageFacts struct {
	Path        string   `yaml:"path"` // URL path, e.g. "/services/"
	File        string   `yaml:"file"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Lang        string   `yaml:"lang,omitempty"`
	Links       []string `yaml:"links"`
	TextLength  int      `yaml:"text_length"` // visible body text, in characters
	MainText    string   `yaml:"-"`           // readability main content, for language detection
}

// ParseWarning notes a page that could not be parsed. Such pages still count
// toward the total and remain valid link targets, but take part in no check.
type ParseWarning struct {
	Page   string `yaml:"page"`
	File   string `yaml:"file"`
	Reason string `yaml:"reason"`
}
