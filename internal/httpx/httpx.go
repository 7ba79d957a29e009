// Package httpx holds the outbound HTTP helpers used to pull published
// sheets.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/seuros/lpexplorer/internal/logging"
)

// MaxBodyBytes caps how much of a sheet export is read.
const MaxBodyBytes = 32 << 20

// ErrBodyTooLarge is returned when a sheet export exceeds MaxBodyBytes.
var ErrBodyTooLarge = fmt.Errorf("sheet body exceeds %d bytes", MaxBodyBytes)

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// NewClient returns an HTTP client with the given overall timeout. A zero
// timeout means no limit.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// FetchText issues a GET for url and returns the body as text.
func FetchText(ctx context.Context, client *http.Client, url string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch sheet: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logging.L().Debug("sheet response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("read sheet body: %w", err)
	}
	if len(body) > MaxBodyBytes {
		return "", ErrBodyTooLarge
	}
	return string(body), nil
}
