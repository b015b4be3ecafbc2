// internal/dataset/remote.go - Load the dataset from an HTTP source
package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// TokenEnv names the environment variable holding the bearer token sent to
// remote dataset sources.
const TokenEnv = "NUTRI_DASH_DATASET_TOKEN"

type Fetcher struct {
	httpClient *http.Client
	token      string
}

// NewFetcher returns a Fetcher with the given timeout. An empty token falls
// back to $NUTRI_DASH_DATASET_TOKEN.
func NewFetcher(timeout time.Duration, token string) *Fetcher {
	if token == "" {
		token = os.Getenv(TokenEnv)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		token: token,
	}
}

// Fetch downloads a CSV dataset from url and parses it.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &LoadError{Source: url, Err: fmt.Errorf("failed to create HTTP request: %w", err)}
	}

	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &LoadError{Source: url, Err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &LoadError{Source: url, Err: fmt.Errorf("%w: status %d", ErrSourceNotFound, resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err != nil {
			return nil, &LoadError{Source: url, Err: fmt.Errorf("request failed with status %d and couldn't read body: %v", resp.StatusCode, err)}
		}
		return nil, &LoadError{Source: url, Err: fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(bodyBytes))}
	}

	return Read(resp.Body, url)
}
