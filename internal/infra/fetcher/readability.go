// Package fetcher implements the ContentFetcher port using the Mozilla
// Readability algorithm (go-shiori/go-readability) with a goquery paragraph
// sweep as fallback for pages Readability cannot segment.
package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/resilience/circuitbreaker"
)

// ReadabilityFetcher implements post.ContentFetcher.
//
// Thread safety: ReadabilityFetcher is safe for concurrent use.
type ReadabilityFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         Config
}

// NewReadabilityFetcher creates a fetcher with the given configuration.
func NewReadabilityFetcher(config Config) *ReadabilityFetcher {
	f := &ReadabilityFetcher{
		circuitBreaker: circuitbreaker.New(circuitbreaker.ArticleFetchConfig()),
		config:         config,
	}

	f.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.config.MaxRedirects {
				return fmt.Errorf("%w: more than %d redirects", entity.ErrFetch, f.config.MaxRedirects)
			}
			// Re-validate each redirect target.
			if err := validateURL(req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return err
			}
			return nil
		},
	}

	return f
}

// FetchArticle fetches the page at urlStr and extracts the article body.
//
// The URL is validated first, the HTTP request runs through the circuit
// breaker, and the response body is size-limited before extraction. All
// failures wrap entity.ErrFetch so the handler can map them to a fetch
// error for the user. No retries: the user corrects the URL and re-submits.
func (f *ReadabilityFetcher) FetchArticle(ctx context.Context, urlStr string) (entity.ArticleContent, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return entity.ArticleContent{}, err
	}

	result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, urlStr)
	})
	if err != nil {
		return entity.ArticleContent{}, err
	}

	return result.(entity.ArticleContent), nil
}

func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (entity.ArticleContent, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return entity.ArticleContent{}, fmt.Errorf("%w: failed to create request: %v", entity.ErrFetch, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return entity.ArticleContent{}, fmt.Errorf("%w: request exceeded %v", entity.ErrFetch, f.config.Timeout)
		}
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			err = urlErr.Err
		}
		return entity.ArticleContent{}, fmt.Errorf("%w: %v", entity.ErrFetch, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return entity.ArticleContent{}, fmt.Errorf("%w: HTTP %d fetching %s", entity.ErrFetch, resp.StatusCode, urlStr)
	}

	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return entity.ArticleContent{}, fmt.Errorf("%w: failed to read response body: %v", entity.ErrFetch, err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return entity.ArticleContent{}, fmt.Errorf("%w: response exceeds %d bytes", entity.ErrFetch, f.config.MaxBodySize)
	}

	// The final URL may differ from the request URL after redirects;
	// Readability uses it to resolve relative references.
	finalURL, _ := url.Parse(urlStr)
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	title, body := extract(htmlBytes, finalURL)
	if strings.TrimSpace(body) == "" {
		return entity.ArticleContent{}, fmt.Errorf("%w: no readable article body found at %s", entity.ErrFetch, urlStr)
	}

	return entity.ArticleContent{
		SourceURL: urlStr,
		Title:     title,
		Text:      body,
		FetchedAt: time.Now(),
	}, nil
}

// extract runs Readability and, when it yields no text, falls back to a
// paragraph sweep of the raw document.
func extract(htmlBytes []byte, pageURL *url.URL) (title, body string) {
	article, err := readability.FromReader(bytes.NewReader(htmlBytes), pageURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.Title, strings.TrimSpace(article.TextContent)
	}

	if err != nil {
		slog.Debug("readability extraction failed, trying paragraph sweep",
			slog.String("error", err.Error()))
	}
	return paragraphSweep(htmlBytes)
}

// paragraphSweep collects <p> text from the document. It is cruder than
// Readability but recovers articles on pages with unusual markup.
func paragraphSweep(htmlBytes []byte) (title, body string) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return "", ""
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	var paragraphs []string
	doc.Find("article p, main p, body p").Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		// Skip boilerplate-length fragments.
		if len(t) >= 40 {
			paragraphs = append(paragraphs, t)
		}
	})

	return title, strings.Join(paragraphs, "\n\n")
}
