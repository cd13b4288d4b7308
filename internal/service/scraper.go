package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kapu/osu-scraper-go/internal/constants"
	apperrors "github.com/kapu/osu-scraper-go/pkg/errors"
)

// PageFetcher retrieves a URL and parses the response as an HTML document.
type PageFetcher interface {
	FetchDocument(ctx context.Context, url string) (*goquery.Document, error)
}

type ScraperConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// ScraperService is the PageFetcher used against the live site. It never
// retries; a 429 from the site surfaces as a FetchError like any other status.
type ScraperService struct {
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

func NewScraperService(cfg ScraperConfig, logger *zap.Logger) *ScraperService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.ScraperConfig.RequestTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = constants.ScraperConfig.DefaultUserAgent
	}

	return &ScraperService{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

func (s *ScraperService) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewFetchError("failed to build request", url, 0, err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewFetchError("GET "+url, url, 0, err)
	}
	defer resp.Body.Close()

	s.logger.Debug("Page fetched",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusTooManyRequests {
			s.logger.Warn("Rate limited by remote service", zap.String("url", url))
		}
		return nil, apperrors.NewFetchError(fmt.Sprintf("GET %s: HTTP %d", url, resp.StatusCode), url, resp.StatusCode, nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, apperrors.NewParseError("HTML parse failed for "+url, url, err)
	}

	return doc, nil
}
