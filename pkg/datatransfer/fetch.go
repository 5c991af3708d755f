package datatransfer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const fetchTimeout = 30 * time.Second

// Fetcher downloads uploaded import files.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a new attachment fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: resty.New().
			SetTimeout(fetchTimeout).
			SetRetryCount(2).
			SetResponseBodyLimit(MaxImportSize),
	}
}

// Fetch downloads the file at url. The declared size is checked before downloading and the
// body is never read past MaxImportSize.
func (f *Fetcher) Fetch(ctx context.Context, url string, size int) ([]byte, error) {
	if size > MaxImportSize {
		return nil, fmt.Errorf("%w: %d bytes, the limit is %d", ErrTooLarge, size, MaxImportSize)
	}

	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if errors.Is(err, resty.ErrResponseBodyTooLarge) {
		return nil, fmt.Errorf("%w: the limit is %d bytes", ErrTooLarge, MaxImportSize)
	} else if err != nil {
		return nil, fmt.Errorf("error downloading file: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error downloading file: unexpected status %d", resp.StatusCode())
	}

	body := resp.Body()
	if err := checkSize(body); err != nil {
		return nil, err
	}
	return body, nil
}
