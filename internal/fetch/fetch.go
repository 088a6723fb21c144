// Package fetch performs the guarded HTTP GET that feeds the extractor:
// bounded timeout, declared and streamed size caps, and an HTML-only
// content-type check, with every failure classified for the boundary.
package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"unfurl/internal/config"
)

// Page is a successfully fetched HTML document.
type Page struct {
	HTML        string
	StatusCode  int
	ContentType string
}

// Fetcher retrieves pages over HTTP. It is safe for concurrent use; the
// underlying client follows redirects up to net/http's default limit.
type Fetcher struct {
	client *http.Client
	cfg    config.FetcherConfig
}

func New(cfg config.FetcherConfig) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond},
		cfg:    cfg,
	}
}

// Fetch performs a single GET against rawURL and returns the page body or a
// classified *Error. One attempt only; retry policy belongs to the caller.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if f.cfg.RespectRobots {
		if allowed := f.robotsAllowed(ctx, rawURL); !allowed {
			return nil, &Error{Kind: KindRobotsDenied, URL: rawURL}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, URL: rawURL, Cause: err}
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransport(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindHTTPStatus, URL: rawURL, StatusCode: resp.StatusCode}
	}

	// Declared-length guard runs before any body read so an honest server
	// can't exhaust memory.
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if declared, err := strconv.ParseInt(cl, 10, 64); err == nil && declared > f.cfg.MaxContentLength {
			return nil, &Error{Kind: KindTooLarge, URL: rawURL, DeclaredSize: declared}
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") {
		return nil, &Error{Kind: KindNotHTML, URL: rawURL, ContentType: contentType}
	}

	// Streamed cutoff catches servers that omit or lie about Content-Length:
	// read one byte past the cap and treat overflow as too large.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxContentLength+1))
	if err != nil {
		return nil, classifyTransport(rawURL, err)
	}
	if int64(len(body)) > f.cfg.MaxContentLength {
		return nil, &Error{Kind: KindTooLarge, URL: rawURL, DeclaredSize: -1}
	}

	return &Page{
		HTML:        string(body),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
	}, nil
}

// classifyTransport sorts transport-level failures into timeout vs network.
func classifyTransport(rawURL string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, URL: rawURL, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, URL: rawURL, Cause: err}
	}
	return &Error{Kind: KindNetwork, URL: rawURL, Cause: err}
}
