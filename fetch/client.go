package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// FetchError reports a failed retrieval. Transport and filesystem failures
// carry the underlying error; a non-200 response carries the status code
// with a nil Err.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client retrieves raw bytes for the static zip and the realtime feeds.
// Locations without an http(s) scheme are read from the local filesystem,
// so recorded payloads can stand in for live endpoints.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client. The timeout guards each whole request; zero
// means no timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Get fetches a single resource and returns its raw bytes.
// Returns nil if location is empty (allows optional feeds).
func (c *Client) Get(location string) ([]byte, error) {
	if location == "" {
		return nil, nil
	}

	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, &FetchError{URL: location, Err: err}
		}
		return data, nil
	}

	resp, err := c.httpClient.Get(location)
	if err != nil {
		return nil, &FetchError{URL: location, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: location, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: location, Err: err}
	}
	return data, nil
}
