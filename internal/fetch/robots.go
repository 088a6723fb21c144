package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"

	robotstxt "github.com/temoto/robotstxt"
)

// robotsAllowed checks the target host's robots.txt for permission to fetch
// rawURL. Any failure to retrieve or parse robots.txt fails open: a missing
// or broken robots.txt never blocks an unfurl.
func (f *Fetcher) robotsAllowed(ctx context.Context, rawURL string) bool {
	target, err := url.Parse(rawURL)
	if err != nil || target.Host == "" {
		return true
	}

	robotsURL := &url.URL{
		Scheme: target.Scheme,
		Host:   target.Host,
		Path:   "/robots.txt",
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return true
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return true
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return true
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return true
	}

	path := target.Path
	if path == "" {
		path = "/"
	}
	return data.FindGroup(f.cfg.UserAgent).Test(path)
}
