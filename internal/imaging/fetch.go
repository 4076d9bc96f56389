package imaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ironsheep/palette-tools-mcp/internal/version"
)

const (
	// DefaultFetchTimeout bounds a single remote image download.
	DefaultFetchTimeout = 15 * time.Second

	// DefaultMaxFetchBytes caps the size of a remote image.
	DefaultMaxFetchBytes = 32 << 20
)

// FetchOptions configures remote image downloads.
type FetchOptions struct {
	// Timeout for the whole request. Zero means DefaultFetchTimeout.
	Timeout time.Duration

	// MaxBytes caps the response body. Zero means DefaultMaxFetchBytes.
	MaxBytes int64

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// Fetch downloads url and returns the response body.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultFetchTimeout
	}
	limit := opts.MaxBytes
	if limit == 0 {
		limit = DefaultMaxFetchBytes
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "palette-tools-mcp/"+version.Version)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("image exceeds %d bytes", limit)
	}
	return data, nil
}
