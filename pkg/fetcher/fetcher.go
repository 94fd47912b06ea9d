package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultTimeout      = 15 * time.Second
	DefaultDelay        = time.Second
	DefaultMinBodyBytes = 1000

	// DefaultUserAgent is a mainstream browser signature; bare Go
	// user agents get blocked by most CDNs.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Sentinel errors callers branch on to explain a failed fetch.
var (
	ErrBadStatus    = errors.New("unexpected HTTP status")
	ErrBodyTooSmall = errors.New("response body below minimum size")
)

// Fetcher retrieves raw HTML over HTTP with a courtesy delay between
// requests, a bounded timeout, and browser-like headers. A single
// Fetcher may be shared by concurrent workers; the limiter is honored
// across all of them.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	minBody   int
}

// Options configure a Fetcher. Zero values fall back to defaults;
// MinBodyBytes < 0 disables the small-body floor.
type Options struct {
	Timeout      time.Duration
	Delay        time.Duration
	MinBodyBytes int
	UserAgent    string
}

func NewFetcher(opts Options) *Fetcher {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	minBody := opts.MinBodyBytes
	if minBody == 0 {
		minBody = DefaultMinBodyBytes
	}
	if minBody < 0 {
		minBody = 0
	}

	// rate.Every(0) is an infinite limit, so a zero delay waits nowhere.
	return &Fetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		limiter:   rate.NewLimiter(rate.Every(opts.Delay), 1),
		userAgent: opts.UserAgent,
		minBody:   minBody,
	}
}

// Fetch retrieves the raw HTML bytes for a URL. It waits for the
// courtesy limiter first. Responses under the minimum-body floor are
// rejected as blocked or placeholder pages.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("courtesy delay interrupted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d for %s", ErrBadStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if len(body) < f.minBody {
		return nil, fmt.Errorf("%w: %d bytes from %s", ErrBodyTooSmall, len(body), url)
	}
	return body, nil
}

// setHeaders applies browser-like request headers. Accept-Encoding is
// left to the transport so gzip responses are transparently decoded.
func (f *Fetcher) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// Reason maps a fetch error to a short user-facing explanation.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBodyTooSmall):
		return "page appears blocked or is a placeholder"
	case errors.Is(err, ErrBadStatus):
		return "server returned an error status"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	default:
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "request timed out"
		}
		return "page could not be fetched"
	}
}
