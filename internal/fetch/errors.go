package fetch

import "fmt"

// ErrorKind classifies a fetch failure. Every failure the fetcher returns is
// one of these; the HTTP boundary maps them to user-facing messages.
type ErrorKind string

const (
	KindTimeout      ErrorKind = "timeout"
	KindHTTPStatus   ErrorKind = "http_status"
	KindNetwork      ErrorKind = "network"
	KindTooLarge     ErrorKind = "too_large"
	KindNotHTML      ErrorKind = "not_html"
	KindRobotsDenied ErrorKind = "robots_denied"
	KindUnexpected   ErrorKind = "unexpected"
)

// Error is a classified fetch failure. Only the fields relevant to its kind
// are populated.
type Error struct {
	Kind         ErrorKind
	URL          string
	StatusCode   int    // http_status
	ContentType  string // not_html
	DeclaredSize int64  // too_large; -1 when the server lied about the length
	Cause        error  // network, unexpected
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("fetch %s: timed out", e.URL)
	case KindHTTPStatus:
		return fmt.Sprintf("fetch %s: HTTP status %d", e.URL, e.StatusCode)
	case KindTooLarge:
		if e.DeclaredSize < 0 {
			return fmt.Sprintf("fetch %s: response exceeded size cap", e.URL)
		}
		return fmt.Sprintf("fetch %s: content too large (%d bytes)", e.URL, e.DeclaredSize)
	case KindNotHTML:
		return fmt.Sprintf("fetch %s: not HTML content (%s)", e.URL, e.ContentType)
	case KindRobotsDenied:
		return fmt.Sprintf("fetch %s: disallowed by robots.txt", e.URL)
	case KindNetwork:
		return fmt.Sprintf("fetch %s: network error: %v", e.URL, e.Cause)
	default:
		return fmt.Sprintf("fetch %s: unexpected error: %v", e.URL, e.Cause)
	}
}

func (e *Error) Unwrap() error { return e.Cause }
