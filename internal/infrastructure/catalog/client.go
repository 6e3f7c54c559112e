package catalog

import (
	"context"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/lucasmrqs/financial-football/internal/domain/asset"
	"github.com/lucasmrqs/financial-football/internal/platform/cache"
	"github.com/lucasmrqs/financial-football/internal/platform/logging"
	"github.com/lucasmrqs/financial-football/internal/platform/resilience"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 5 * time.Minute
	maxResponseSize = 2 << 20

	assetsCacheKey = "catalog:assets"
)

var errCatalogTransient = crerr.New("catalog transient failure")

type ClientConfig struct {
	URL            string
	Timeout        time.Duration
	MaxRetries     int
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches the card catalog from a remote content service. Responses
// are cached so the per-drop asset lookups on the hot path never leave the
// process, and concurrent cold fetches collapse into one request.
type Client struct {
	http           *fasthttp.Client
	url            string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	cache          *cache.Store
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseSize,
		},
		url:            strings.TrimSpace(cfg.URL),
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		cache:          cache.NewStore(cacheTTL),
	}
}

// assetDoc tolerates both the bare-array and enveloped catalog layouts
// served by the content service.
type assetDoc struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Suitability int    `json:"suitability"`
	Return      int    `json:"return"`
	Safety      int    `json:"safety"`
	Description string `json:"description"`
}

type catalogEnvelope struct {
	Assets []assetDoc `json:"assets"`
}

func (c *Client) LoadAssets(ctx context.Context) ([]asset.Asset, error) {
	if c.url == "" {
		return nil, crerr.New("catalog url is not configured")
	}

	out, err := c.cache.GetOrLoad(ctx, assetsCacheKey, func(ctx context.Context) (any, error) {
		return c.fetchAssets(ctx)
	})
	if err != nil {
		return nil, err
	}

	assets, ok := out.([]asset.Asset)
	if !ok {
		return nil, crerr.Newf("unexpected cached payload type %T", out)
	}
	return assets, nil
}

func (c *Client) fetchAssets(ctx context.Context) ([]asset.Asset, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "catalog circuit breaker rejected request", "state", c.breaker.State())
			return nil, crerr.Wrap(err, "catalog temporarily unavailable")
		}
	}

	out, err, _ := c.flight.Do(assetsCacheKey, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errCatalogTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		if reqErr != nil {
			return nil, reqErr
		}
		return parseAssets(raw)
	})
	if err != nil {
		return nil, err
	}

	assets, ok := out.([]asset.Asset)
	if !ok {
		return nil, crerr.Newf("unexpected response payload type %T", out)
	}
	return assets, nil
}

func (c *Client) executeRequest(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := c.doOnce()
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !crerr.Is(err, errCatalogTransient) {
			return nil, err
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}

func (c *Client) doOnce() ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, crerr.Wrapf(errCatalogTransient, "send request: %v", err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		if isRetryableStatus(status) {
			return nil, crerr.Wrapf(errCatalogTransient, "catalog status=%d", status)
		}
		return nil, crerr.Newf("catalog status=%d", status)
	}

	// Body() is pooled with the response, keep a copy.
	return append([]byte(nil), resp.Body()...), nil
}

func parseAssets(raw []byte) ([]asset.Asset, error) {
	var docs []assetDoc
	if err := sonic.Unmarshal(raw, &docs); err != nil {
		var envelope catalogEnvelope
		if envErr := sonic.Unmarshal(raw, &envelope); envErr != nil {
			return nil, crerr.Wrap(err, "decode catalog payload")
		}
		docs = envelope.Assets
	}

	assets := make([]asset.Asset, 0, len(docs))
	for _, doc := range docs {
		if doc.ID <= 0 || doc.Name == "" {
			continue
		}
		assets = append(assets, asset.Asset{
			ID:          doc.ID,
			Name:        doc.Name,
			Type:        doc.Type,
			Suitability: clampScore(doc.Suitability),
			Return:      clampScore(doc.Return),
			Safety:      clampScore(doc.Safety),
			Description: doc.Description,
		})
	}
	if len(assets) == 0 {
		return nil, crerr.New("catalog payload has no usable assets")
	}
	return assets, nil
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}
