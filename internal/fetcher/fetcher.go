package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Package fetcher downloads raw PDF bytes from a URL with a size cap and
// timeout. No retries: a failed download is surfaced to the caller as-is.

var (
	ErrTooLarge = errors.New("pdf exceeds the configured size limit")
	ErrNotPDF   = errors.New("url does not point to a pdf document")
)

var pdfMagic = []byte("%PDF-")

// Fetcher retrieves a document's raw bytes from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Config provides settings for the HTTP fetcher.
type Config struct {
	MaxSizeBytes int64
	Timeout      time.Duration
}

// HTTPFetcher downloads PDFs over HTTP with a hard size cap.
// It is safe for concurrent use by multiple goroutines.
type HTTPFetcher struct {
	client       *http.Client
	maxSizeBytes int64
}

// NewHTTPFetcher builds a configured fetcher, applying defaults for zero values.
func NewHTTPFetcher(cfg Config) *HTTPFetcher {
	maxSize := cfg.MaxSizeBytes
	if maxSize <= 0 {
		maxSize = 50 << 20
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		client:       &http.Client{Timeout: timeout},
		maxSizeBytes: maxSize,
	}
}

// Fetch downloads the resource at rawURL and returns its bytes.
// It fails with ErrTooLarge when the content exceeds the size cap and with
// ErrNotPDF when the resource is not a PDF document.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	normalized, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	// Cheap size pre-check. Some servers reject HEAD, so failures here are
	// ignored and the cap is enforced again while reading the body.
	if length, ok := f.headContentLength(ctx, normalized); ok && length > f.maxSizeBytes {
		return nil, fmt.Errorf("%w: content-length %d bytes", ErrTooLarge, length)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalized, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download pdf: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download pdf: unexpected status %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !looksLikePDF(normalized, contentType) {
		return nil, fmt.Errorf("%w: content-type %q", ErrNotPDF, contentType)
	}

	// Read one byte past the cap so an oversized body is detectable without
	// buffering the whole thing.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read pdf body: %w", err)
	}
	if int64(len(data)) > f.maxSizeBytes {
		return nil, fmt.Errorf("%w: body exceeded %d bytes", ErrTooLarge, f.maxSizeBytes)
	}

	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, fmt.Errorf("%w: missing %%PDF header", ErrNotPDF)
	}
	return data, nil
}

func (f *HTTPFetcher) headContentLength(ctx context.Context, rawURL string) (int64, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return 0, false
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	length, err := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	if err != nil || length < 0 {
		return 0, false
	}
	return length, true
}

// normalizeURL validates the scheme and rewrites Google Drive share links to
// their direct-download form.
func normalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid url: scheme must be http or https")
	}

	if u.Host == "drive.google.com" && strings.Contains(u.Path, "/view") {
		if id := driveFileID(u.Path); id != "" {
			return "https://drive.google.com/uc?export=download&id=" + id, nil
		}
	}
	return rawURL, nil
}

func driveFileID(path string) string {
	const marker = "/d/"
	i := strings.Index(path, marker)
	if i < 0 {
		return ""
	}
	rest := path[i+len(marker):]
	if j := strings.Index(rest, "/"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

func looksLikePDF(rawURL, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "pdf") {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".pdf")
}
