package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vanschouwen/streakline/internal/parser"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "streakline/0.1"
)

// HTML scrapes the public contributions page. It needs no credentials
// and is the primary path.
type HTML struct {
	client  *http.Client
	baseURL string
}

// NewHTML builds the scraping source for the given host (empty means
// DefaultHost). The client timeout bounds the whole fetch.
func NewHTML(host string, timeout time.Duration) *HTML {
	if host == "" {
		host = DefaultHost
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTML{
		client:  &http.Client{Timeout: timeout},
		baseURL: "https://" + host,
	}
}

func (h *HTML) Name() string {
	return "html"
}

func (h *HTML) Fetch(ctx context.Context, username string) (Payload, error) {
	endpoint := fmt.Sprintf("%s/users/%s/contributions", h.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Payload{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return Payload{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Payload{}, fmt.Errorf("%s: %w", username, ErrUserNotFound)
	case http.StatusTooManyRequests:
		return Payload{}, fmt.Errorf("%s: %w", username, ErrRateLimited)
	default:
		// anything else means the page is unusable as a document
		return Payload{}, fmt.Errorf("unexpected status %d: %w", resp.StatusCode, parser.ErrUnparseable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Payload{}, &NetworkError{Err: err}
	}

	res, err := parser.Parse(string(body))
	if err != nil {
		return Payload{}, fmt.Errorf("parse contributions page: %w", err)
	}

	return Payload{Days: res.Days, Total: res.Total, TotalExplicit: res.TotalExplicit}, nil
}
