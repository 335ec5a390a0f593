package engine

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// fetchWithRetry performs an HTTP GET with retry logic.
// isHTML controls Accept headers: HTML for web pages, text/plain for raw files.
func fetchWithRetry(ctx context.Context, fetchURL string, isHTML bool) (*http.Response, error) {
	return RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", RandomUserAgent())
		if isHTML {
			req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
			req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		} else {
			req.Header.Set("Accept", "text/plain,*/*;q=0.9")
		}
		req.Header.Set("Accept-Encoding", "gzip")

		resp, err := cfg.HTTPClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK && !IsRetryableStatus(resp.StatusCode) {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: status %d", fetchURL, resp.StatusCode)
		}
		return resp, nil
	})
}

// readResponseBody reads the response body, handling gzip decompression if needed.
func readResponseBody(resp *http.Response) ([]byte, error) {
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		return io.ReadAll(gz)
	}
	return io.ReadAll(resp.Body)
}

// FetchPageText fetches a web page and converts its HTML to markdown text,
// capped at MaxContentChars. Used for blog posts and public profile pages.
func FetchPageText(ctx context.Context, rawURL string) (string, error) {
	IncrFetchRequests()
	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	resp, err := fetchWithRetry(ctx, rawURL, true)
	if err != nil {
		IncrFetchErrors()
		return "", err
	}
	defer resp.Body.Close()

	body, err := readResponseBody(resp)
	if err != nil {
		IncrFetchErrors()
		return "", err
	}

	md, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		md = CleanHTML(string(body))
	}
	text := strings.TrimSpace(md)
	if len(text) > cfg.MaxContentChars {
		text = text[:cfg.MaxContentChars] + "..."
	}
	return text, nil
}

// FetchRawContent fetches a URL as plain text (no HTML conversion).
// Used for raw.githubusercontent.com and similar plain-text endpoints.
func FetchRawContent(ctx context.Context, rawURL string) (string, error) {
	IncrFetchRequests()
	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	resp, err := fetchWithRetry(ctx, rawURL, false)
	if err != nil {
		IncrFetchErrors()
		return "", err
	}
	defer resp.Body.Close()

	body, err := readResponseBody(resp)
	if err != nil {
		IncrFetchErrors()
		return "", err
	}

	text := strings.TrimSpace(string(body))
	if len(text) > cfg.MaxContentChars {
		text = text[:cfg.MaxContentChars] + "..."
	}
	return text, nil
}
