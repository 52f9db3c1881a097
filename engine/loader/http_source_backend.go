package loader

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

// maxSourceSize bounds the bytes read from one HTTP response.
const maxSourceSize = 4 << 20

// ErrSourceTooLarge is reported for HTTP sources longer than the backend's size limit.
var ErrSourceTooLarge = errors.New("loader: source too large")

// httpSourceBackend fetches shader sources over HTTP with retries on transport errors
// and 5xx responses.
type httpSourceBackend struct {
	client *http.Client
	limit  int64
}

var _ sourceBackend = &httpSourceBackend{}

func newHTTPSourceBackend(retryMax int, timeout time.Duration, base *http.Client) *httpSourceBackend {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = retryMax
	retryClient.RetryWaitMin = 50 * time.Millisecond
	retryClient.RetryWaitMax = time.Second
	retryClient.Logger = nil
	if base != nil {
		retryClient.HTTPClient = base
	} else {
		retryClient.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &httpSourceBackend{client: retryClient.StandardClient(), limit: maxSourceSize}
}

func (b *httpSourceBackend) Fetch(ctx context.Context, location string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", errors.Wrapf(err, "loader: request %s", location)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "loader: fetch %s", location)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("loader: fetch %s: %s", location, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, b.limit+1))
	if err != nil {
		return "", errors.Wrapf(err, "loader: read %s", location)
	}
	if int64(len(data)) > b.limit {
		return "", errors.Wrapf(ErrSourceTooLarge, "%s exceeds %d bytes", location, b.limit)
	}
	return string(data), nil
}
