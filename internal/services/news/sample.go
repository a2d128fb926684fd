package news

import (
	"context"
	"strings"

	"github.com/ternarybob/cognita/internal/models"
)

// SampleSource is the deterministic offline news source used when no live
// credential is configured. The same inputs always return the same articles.
type SampleSource struct {
	articles []models.NewsArticle
}

// NewSampleSource creates the sample-data source with its fixed article set
func NewSampleSource() *SampleSource {
	return &SampleSource{articles: sampleArticles}
}

// sampleArticles is ordered most recent first; RecentNews relies on it.
var sampleArticles = []models.NewsArticle{
	{
		ID:       "sample-008",
		Title:    "Regulators Draft Rules for AI Systems in Financial Services",
		Content:  "Financial regulators published draft guidance covering the use of machine learning models in credit decisions. The proposal requires lenders to document model inputs and provide plain-language explanations of automated decisions to applicants.",
		Source:   "Sample Wire",
		Date:     "2025-06-08",
		Category: "economy",
		Keywords: []string{"regulation", "ai", "finance"},
	},
	{
		ID:       "sample-007",
		Title:    "City Transit Authority Tests Battery-Electric Bus Fleet",
		Content:  "The transit authority began a twelve-month trial of forty battery-electric buses on its busiest routes. Officials said charging infrastructure at two depots was completed ahead of schedule and early range figures exceed projections.",
		Source:   "Sample Metro Desk",
		Date:     "2025-06-05",
		Category: "technology",
		Keywords: []string{"transit", "electric", "infrastructure"},
	},
	{
		ID:       "sample-006",
		Title:    "Hospital Network Expands Remote Monitoring for Chronic Care",
		Content:  "A regional hospital network extended its remote patient monitoring program to cover heart failure and diabetes patients. Clinicians review daily readings from home devices and intervene before complications require admission.",
		Source:   "Sample Health Report",
		Date:     "2025-06-03",
		Category: "health",
		Keywords: []string{"healthcare", "monitoring", "chronic care"},
	},
	{
		ID:       "sample-005",
		Title:    "Open-Source Database Project Releases Vector Search Extension",
		Content:  "Maintainers of a widely used open-source database released a stable version of its vector similarity extension. The release adds an approximate nearest-neighbor index and cosine distance operators aimed at retrieval workloads.",
		Source:   "Sample Wire",
		Date:     "2025-05-28",
		Category: "technology",
		Keywords: []string{"database", "vector search", "open source"},
	},
	{
		ID:       "sample-004",
		Title:    "Consumer Prices Level Off as Energy Costs Ease",
		Content:  "Monthly inflation figures showed consumer prices holding steady for the second consecutive month. Analysts attributed the pause to falling energy costs, while food prices continued a gradual climb.",
		Source:   "Sample Business Daily",
		Date:     "2025-05-22",
		Category: "economy",
		Keywords: []string{"inflation", "energy", "prices"},
	},
	{
		ID:       "sample-003",
		Title:    "Research Team Maps Coastal Wetland Recovery After Restoration",
		Content:  "Ecologists published a five-year study of restored coastal wetlands showing native vegetation returning faster than modeled. The team used satellite imagery and field surveys to track plant cover and bird populations across forty sites.",
		Source:   "Sample Science Journal",
		Date:     "2025-05-15",
		Category: "science",
		Keywords: []string{"ecology", "wetlands", "restoration"},
	},
	{
		ID:       "sample-002",
		Title:    "Chipmaker Announces Power-Efficient Processor for Edge Devices",
		Content:  "A semiconductor firm unveiled a processor family targeting battery-powered edge devices. The company claims a threefold improvement in inference throughput per watt compared with its previous generation, with shipments expected next quarter.",
		Source:   "Sample Wire",
		Date:     "2025-05-10",
		Category: "technology",
		Keywords: []string{"semiconductors", "edge computing", "efficiency"},
	},
	{
		ID:       "sample-001",
		Title:    "National Library Digitizes Century-Old Newspaper Archive",
		Content:  "The national library completed digitization of its newspaper archive spanning the early twentieth century. More than two million pages are now searchable online, with optical character recognition applied to the full collection.",
		Source:   "Sample Culture Desk",
		Date:     "2025-05-02",
		Category: "culture",
		Keywords: []string{"archives", "digitization", "libraries"},
	},
}

func clampLimit(limit, length int) int {
	if limit <= 0 || limit > length {
		return length
	}
	return limit
}

// SearchNews returns articles whose title, content or keywords contain the
// query, case-insensitively, most recent first.
func (s *SampleSource) SearchNews(ctx context.Context, query string, limit int) ([]models.NewsArticle, error) {
	q := strings.ToLower(query)

	var matches []models.NewsArticle
	for _, a := range s.articles {
		if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Content), q) {
			matches = append(matches, a)
			continue
		}
		for _, kw := range a.Keywords {
			if strings.Contains(strings.ToLower(kw), q) {
				matches = append(matches, a)
				break
			}
		}
	}

	return matches[:clampLimit(limit, len(matches))], nil
}

// NewsByCategory returns articles in a category, most recent first
func (s *SampleSource) NewsByCategory(ctx context.Context, category string, limit int) ([]models.NewsArticle, error) {
	var matches []models.NewsArticle
	for _, a := range s.articles {
		if strings.EqualFold(a.Category, category) {
			matches = append(matches, a)
		}
	}
	return matches[:clampLimit(limit, len(matches))], nil
}

// RecentNews returns the most recent articles
func (s *SampleSource) RecentNews(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	return s.articles[:clampLimit(limit, len(s.articles))], nil
}

// NewsByID returns a single article, or models.ErrNotFound
func (s *SampleSource) NewsByID(ctx context.Context, id string) (*models.NewsArticle, error) {
	for _, a := range s.articles {
		if a.ID == id {
			article := a
			return &article, nil
		}
	}
	return nil, models.ErrNotFound
}

// Categories lists the distinct categories in the sample set, in first-seen
// order.
func (s *SampleSource) Categories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var categories []string
	for _, a := range s.articles {
		if !seen[a.Category] {
			seen[a.Category] = true
			categories = append(categories, a.Category)
		}
	}
	return categories, nil
}
