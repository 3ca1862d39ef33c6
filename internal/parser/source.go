package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

type fileSource struct{}

func (fileSource) CanOpen(location string) bool {
	return !IsRemote(location)
}

func (fileSource) Open(_ context.Context, location string, _ Options) (io.ReadCloser, error) {
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	return f, nil
}

type httpSource struct{}

func (httpSource) CanOpen(location string) bool {
	return IsRemote(location)
}

func (httpSource) Open(ctx context.Context, location string, opt Options) (io.ReadCloser, error) {
	client := &http.Client{Timeout: opt.HTTPTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{URL: location, StatusCode: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(b))}
	}
	return resp.Body, nil
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// StatusError reports a non-2xx response while fetching a remote CSV.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("fetch %s: unexpected status %s: %s", e.URL, e.Status, e.Body)
	}
	return fmt.Sprintf("fetch %s: unexpected status %s", e.URL, e.Status)
}
