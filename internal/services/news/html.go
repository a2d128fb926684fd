package news

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML extracts plain text from an HTML fragment. Content without
// markup passes through unchanged apart from whitespace trimming.
func StripHTML(content string) string {
	if !strings.ContainsRune(content, '<') {
		return strings.TrimSpace(content)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}

	text := doc.Text()
	// Collapse runs of whitespace left behind by block elements
	return strings.Join(strings.Fields(text), " ")
}
