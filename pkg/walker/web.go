package walker

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/yamato-dev/kura/internal/models"
	"github.com/yamato-dev/kura/internal/types"
	"github.com/yamato-dev/kura/pkg/extractor"
)

// WebConfig configures the remote page loader.
type WebConfig struct {
	RateLimit float64 // requests per second
	Timeout   time.Duration
}

// WebLoader fetches a fixed list of remote pages, one document per URL.
// Pages are fetched unconditionally on every run.
type WebLoader struct {
	client  *http.Client
	limiter *rate.Limiter
	sink    types.ErrorSink
}

func NewWebLoader(config WebConfig, sink types.ErrorSink) *WebLoader {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 2
	}

	return &WebLoader{
		client:  &http.Client{Timeout: config.Timeout},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		sink:    sink,
	}
}

// LoadAll fetches every URL in order. A failed fetch is reported to the
// error sink and must not abort the remaining URLs.
func (l *WebLoader) LoadAll(ctx context.Context, urls []string) []models.Document {
	var docs []models.Document
	for _, u := range urls {
		doc, err := l.load(ctx, u)
		if err != nil {
			l.sink.ExtractError(u, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

func (l *WebLoader) load(ctx context.Context, urlStr string) (models.Document, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return models.Document{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return models.Document{}, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return models.Document{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Document{}, fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, urlStr)
	}

	parsed, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return models.Document{}, err
	}

	meta := map[string]interface{}{
		models.MetaSource:   urlStr,
		models.MetaFileType: "web",
	}
	if title := strings.TrimSpace(parsed.Find("title").Text()); title != "" {
		meta[models.MetaTitle] = title
	}
	if desc, ok := parsed.Find(`meta[name="description"]`).Attr("content"); ok && desc != "" {
		meta["description"] = desc
	}

	return models.New(extractor.MainContent(parsed), meta), nil
}
