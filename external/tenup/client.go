package tenup

import (
	"context"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/tenpadel/catalogue/internal/domain/tournament"
	"github.com/tenpadel/catalogue/internal/platform/logging"
	"github.com/tenpadel/catalogue/internal/platform/resilience"
)

// Client fetches raw record dumps over HTTP from whatever host the scraping
// layer publishes them on. The federation site itself is never touched from
// here; this is strictly the dump endpoint.
type Client struct {
	http           *fasthttp.Client
	timeout        time.Duration
	retries        int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

type ClientConfig struct {
	Timeout        time.Duration
	Retries        int
	CircuitBreaker resilience.CircuitBreakerConfig
}

func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := normalizeBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		timeout:        timeout,
		retries:        cfg.Retries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func normalizeBreakerConfig(cfg resilience.CircuitBreakerConfig) resilience.CircuitBreakerConfig {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = 1
	}
	return cfg
}

// Fetch downloads and decodes one dump URL, retrying transient failures.
func (c *Client) Fetch(ctx context.Context, url string) ([]tournament.RawRecord, error) {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, crerr.Newf("feed url %q must use http or https", url)
	}

	var lastErr error
	attempts := c.retries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if attempt > 0 {
			c.logger.WarnContext(ctx, "retrying feed fetch", "url", url, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		if c.circuitEnabled {
			if err := c.breaker.Allow(); err != nil {
				return nil, crerr.Wrapf(err, "feed endpoint unavailable, state=%s", c.breaker.State())
			}
		}

		records, err := c.fetchOnce(url)
		if err == nil {
			if c.circuitEnabled {
				c.breaker.RecordSuccess()
			}
			return records, nil
		}
		if c.circuitEnabled {
			c.breaker.RecordFailure()
		}
		lastErr = err
	}

	return nil, crerr.Wrapf(lastErr, "fetch feed %q after %d attempts", url, attempts)
}

func (c *Client) fetchOnce(url string) ([]tournament.RawRecord, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, crerr.Wrap(err, "feed request failed")
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return nil, crerr.Newf("feed returned status=%d", status)
	}

	// The response buffer is pooled by fasthttp, so copy before release.
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	body, err := resp.BodyUncompressed()
	if err != nil {
		return nil, crerr.Wrap(err, "decompress feed body")
	}
	_, _ = buf.Write(body)

	return decodeRecords(buf.B)
}

// decodeRecords accepts the dump shapes the scraping layer has produced
// over time: a bare array, or an object wrapping the array under "items"
// or "tournaments".
func decodeRecords(raw []byte) ([]tournament.RawRecord, error) {
	var records []tournament.RawRecord
	if err := sonic.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var envelope struct {
		Items       []tournament.RawRecord `json:"items"`
		Tournaments []tournament.RawRecord `json:"tournaments"`
	}
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Wrap(err, "decode feed payload")
	}
	if envelope.Items != nil {
		return envelope.Items, nil
	}
	if envelope.Tournaments != nil {
		return envelope.Tournaments, nil
	}
	return nil, crerr.New("feed payload has no records")
}
