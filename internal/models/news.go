package models

// NewsArticle represents a single article returned by a news source.
type NewsArticle struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Source   string   `json:"source"`
	Date     string   `json:"date"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// ImportOptions selects which articles a news import pulls. Query takes
// precedence over Category; with neither set the source's most recent
// listing is used.
type ImportOptions struct {
	Query    string
	Category string
	Limit    int
}
