package news

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/common"
	"github.com/ternarybob/cognita/internal/interfaces"
)

var (
	_ interfaces.NewsSource = (*Client)(nil)
	_ interfaces.NewsSource = (*SampleSource)(nil)
)

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// NewSource selects the news source from configuration: the live API client
// when a credential is configured and sample data is not forced, the
// deterministic sample source otherwise.
func NewSource(cfg common.NewsConfig, logger arbor.ILogger) interfaces.NewsSource {
	if cfg.UseSampleData || cfg.APIKey == "" {
		logger.Info().Msg("Using sample news data (no live news credential configured)")
		return NewSampleSource()
	}

	opts := []ClientOption{
		WithBaseURL(cfg.BaseURL),
		WithLogger(logger),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, WithRateLimit(cfg.RateLimit))
	}
	if cfg.Timeout != "" {
		opts = append(opts, WithHTTPClient(newHTTPClient(common.DurationOrDefault(cfg.Timeout, DefaultTimeout))))
	}

	return NewClient(cfg.APIKey, opts...)
}
