package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wallet-persona/internal/config"
	"github.com/wallet-persona/internal/logging"
	"github.com/wallet-persona/internal/storage"
)

// PriceClient fetches the best-effort native-asset reference price in USD.
// Responses are cached per-process with a short TTL; failure degrades to a
// zero price, which downstream treats as "unpriced".
type PriceClient struct {
	baseURL string
	client  *http.Client
	cache   *storage.CacheService
	ttl     time.Duration
	logger  *logging.Logger
}

// NewPriceClient creates a price client. The cache may be nil, in which
// case every call hits the source.
func NewPriceClient(cfg *config.PricingConfig, cache *storage.CacheService, ttl time.Duration, logger *logging.Logger) *PriceClient {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &PriceClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// priceResponse mirrors the pricing source's payload.
type priceResponse struct {
	Ethereum struct {
		USD float64 `json:"usd"`
	} `json:"ethereum"`
}

// GetReferencePrice returns the current native/USD conversion rate. It
// never fails: pricing errors are logged and degrade to 0.
func (c *PriceClient) GetReferencePrice(ctx context.Context) float64 {
	cacheKey := storage.Key(storage.CacheKeyPrice, "native-usd")

	if c.cache != nil {
		var cached float64
		if hit, err := c.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached
		}
	}

	price, err := c.fetch(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Reference price unavailable, using 0")
		return 0
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, price, c.ttl); err != nil {
			c.logger.WithError(err).Warn("Failed to cache reference price")
		}
	}
	return price
}

// fetch performs one pricing request.
func (c *PriceClient) fetch(ctx context.Context) (float64, error) {
	endpoint := c.baseURL + "/simple/price?ids=ethereum&vs_currencies=usd"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("pricing source returned HTTP %d", resp.StatusCode)
	}

	var payload priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("unparseable pricing response: %w", err)
	}
	return payload.Ethereum.USD, nil
}
