package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/tengjizhang/trs/internal/config"
)

// ErrNetwork covers transport failures and non-2xx responses.
var ErrNetwork = errors.New("network error")

// maxBodyBytes caps how much of a feed document is read.
const maxBodyBytes = 16 << 20

const acceptHeader = "application/rss+xml, application/rdf+xml, application/atom+xml, application/feed+json, application/xml, text/xml, */*;q=0.8"

type Fetcher struct {
	cfg     config.Config
	client  *http.Client
	maxBody int64
}

func NewFetcher(cfg config.Config) *Fetcher {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
	}

	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: transport,
		},
		maxBody: maxBodyBytes,
	}
}

// Fetch downloads the document at link and returns its body. A body larger
// than the size cap is an ErrNetwork rather than a truncated document.
func (f *Fetcher) Fetch(ctx context.Context, link string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %w", ErrNetwork, link, err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", ErrNetwork, link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: get %s: http %d", ErrNetwork, link, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrNetwork, link, err)
	}
	if int64(len(data)) > f.maxBody {
		return nil, fmt.Errorf("%w: read %s: body exceeds %d bytes", ErrNetwork, link, f.maxBody)
	}
	return data, nil
}
