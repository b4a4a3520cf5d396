package caixa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lotopool/backend/config"
	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/pkg/xcontext"
)

type Client interface {
	FetchLatest(ctx context.Context, lotteryType entity.LotteryType) (*Result, error)
	FetchByDrawNumber(ctx context.Context, lotteryType entity.LotteryType, drawNumber int) (*Result, error)
	TestConnectivity(ctx context.Context) bool
}

type httpClient struct {
	baseURL string
	timeout time.Duration
	retry   RetryPolicy
}

func NewClient(cfg config.LoteriaConfigs) *httpClient {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	retry := DefaultRetryPolicy()
	if cfg.MaxRetries > 0 {
		retry.MaxRetries = cfg.MaxRetries
	}
	if cfg.RetryBackoff > 0 {
		retry.BaseBackoff = cfg.RetryBackoff
	}
	if cfg.MaxBackoff > 0 {
		retry.MaxBackoff = cfg.MaxBackoff
	}

	return &httpClient{baseURL: cfg.BaseURL, timeout: timeout, retry: retry}
}

func (c *httpClient) FetchLatest(
	ctx context.Context, lotteryType entity.LotteryType,
) (*Result, error) {
	return c.fetch(ctx, lotteryType, fmt.Sprintf("/api/%s/latest", lotteryType))
}

func (c *httpClient) FetchByDrawNumber(
	ctx context.Context, lotteryType entity.LotteryType, drawNumber int,
) (*Result, error) {
	return c.fetch(ctx, lotteryType, fmt.Sprintf("/api/%s/%d", lotteryType, drawNumber))
}

// TestConnectivity is a best-effort probe for diagnostics; it never returns
// an error.
func (c *httpClient) TestConnectivity(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/api/%s/latest", c.baseURL, entity.MegaSena)
	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := xcontext.HTTPClient(ctx).Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (c *httpClient) fetch(
	ctx context.Context, lotteryType entity.LotteryType, path string,
) (*Result, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			xcontext.Logger(ctx).Debugf("Retrying %s (attempt %d): %v", path, attempt, lastErr)
			c.retry.wait(attempt)
		}

		body, err := c.doAttempt(ctx, path)
		if err != nil {
			lastErr = err
			continue
		}

		// A malformed body will not become well-formed on retry.
		return parseResult(lotteryType, body)
	}

	return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, lastErr)
}

func (c *httpClient) doAttempt(ctx context.Context, path string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := xcontext.HTTPClient(ctx).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return body, nil
}
