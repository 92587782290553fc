// Package news scrapes finance news listing pages and turns each linked
// article into one document.
//
// Listing pages are fetched first; every story entry contributes its
// headline and link. Each article page is then fetched and its paragraph
// text, lower-cased and joined with ".", becomes the document body.
// Requests share a token-bucket rate limiter. Failed pages are skipped
// with a warning and are not retried.
package news

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/finsim/internal/core/domain"
	"github.com/custodia-labs/finsim/internal/core/ports/driven"
	"github.com/custodia-labs/finsim/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// DefaultListingURLs are the listing pages scraped when none are given.
var DefaultListingURLs = []string{
	"https://finance.yahoo.com/topic/personal-finance-news/",
	"https://finance.yahoo.com/",
	"https://finance.yahoo.com/calendar/",
	"https://finance.yahoo.com/topic/stock-market-news/",
}

const (
	// DefaultArticlesPerPage caps the stories taken from one listing page.
	DefaultArticlesPerPage = 26

	// DefaultRequestsPerSecond is the sustained request rate.
	DefaultRequestsPerSecond = 2.0

	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
)

// Config configures the scraper.
type Config struct {
	// ListingURLs are the pages to discover articles on.
	// Defaults to DefaultListingURLs.
	ListingURLs []string

	// ArticlesPerPage caps stories per listing page.
	ArticlesPerPage int

	// RequestsPerSecond throttles all requests made by one Load.
	RequestsPerSecond float64

	// UserAgent is sent with every request.
	UserAgent string

	// Client is the HTTP client. Defaults to one with a 30s timeout.
	Client *http.Client
}

// Source scrapes news articles.
type Source struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a news source, filling unset config fields with defaults.
func New(cfg Config) *Source {
	if len(cfg.ListingURLs) == 0 {
		cfg.ListingURLs = DefaultListingURLs
	}
	if cfg.ArticlesPerPage <= 0 {
		cfg.ArticlesPerPage = DefaultArticlesPerPage
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &Source{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// Kind returns domain.CollectionKindNews.
func (s *Source) Kind() domain.CollectionKind {
	return domain.CollectionKindNews
}

// Origin returns the listing URLs.
func (s *Source) Origin() string {
	return strings.Join(s.cfg.ListingURLs, ", ")
}

// Load discovers and fetches articles, one document per article.
func (s *Source) Load(ctx context.Context) ([]domain.Document, error) {
	articles, err := s.Articles(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, len(articles))
	for i, a := range articles {
		docs[i] = domain.Document{
			ID:    i,
			Text:  a.Text(),
			Title: a.Title,
			URI:   a.Link,
		}
	}
	return docs, nil
}

// Articles discovers articles on the listing pages and fetches their
// paragraphs. A link listed on several pages is fetched once. It fails
// only when the context ends or nothing at all could be fetched.
func (s *Source) Articles(ctx context.Context) ([]domain.Article, error) {
	logger.Section("News Scrape")

	var (
		discovered []domain.Article
		seen       = make(map[string]bool)
		lastErr    error
	)
	for _, listingURL := range s.cfg.ListingURLs {
		items, err := s.listing(ctx, listingURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("Skipping listing %s: %v", listingURL, err)
			lastErr = err
			continue
		}
		logger.Debug("Listing %s: %d articles", listingURL, len(items))
		for _, item := range items {
			if seen[item.Link] {
				continue
			}
			seen[item.Link] = true
			discovered = append(discovered, item)
		}
	}

	articles := make([]domain.Article, 0, len(discovered))
	for _, article := range discovered {
		paragraphs, err := s.paragraphs(ctx, article.Link)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("Skipping article %s: %v", article.Link, err)
			lastErr = err
			continue
		}
		article.Paragraphs = paragraphs
		articles = append(articles, article)
	}

	if len(articles) == 0 && lastErr != nil {
		return nil, fmt.Errorf("%w: no articles fetched: %v", domain.ErrFetchFailed, lastErr)
	}
	logger.Info("Fetched %d articles", len(articles))
	return articles, nil
}

func (s *Source) listing(ctx context.Context, listingURL string) ([]domain.Article, error) {
	base, err := url.Parse(listingURL)
	if err != nil {
		return nil, fmt.Errorf("%w: listing url: %v", domain.ErrInvalidInput, err)
	}
	body, err := s.get(ctx, listingURL)
	if err != nil {
		return nil, err
	}
	return ParseListing(bytes.NewReader(body), base, s.cfg.ArticlesPerPage)
}

func (s *Source) paragraphs(ctx context.Context, link string) ([]string, error) {
	body, err := s.get(ctx, link)
	if err != nil {
		return nil, err
	}
	return ParseParagraphs(bytes.NewReader(body))
}

// get fetches url after waiting for the rate limiter.
func (s *Source) get(ctx context.Context, target string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrFetchFailed, target, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrFetchFailed, err)
	}
	return body, nil
}
