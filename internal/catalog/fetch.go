package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const DefaultFetchTimeout = 10 * time.Second

// HTTPFetcher retrieves one catalog document per call with a bounded
// timeout. A fetch superseded by retry/cache/sample is cancelled through
// its context; the discarded result never reaches a store.
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

func NewFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &HTTPFetcher{client: &http.Client{}, timeout: timeout}
}

// Fetch GETs the source URL and decodes its CSV body. Failures map onto the
// load error taxonomy: ErrTimeout, ErrNetwork, ErrParse, ErrEmptyDataset.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]Level, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrNetwork, resp.StatusCode)
	}
	return DecodeCSV(resp.Body)
}
