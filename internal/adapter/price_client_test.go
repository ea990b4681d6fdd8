package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/wallet-persona/internal/config"
	"github.com/wallet-persona/internal/storage"
)

func newPriceTestClient(t *testing.T, handler http.HandlerFunc, cache *storage.CacheService) *PriceClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewPriceClient(&config.PricingConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, cache, time.Minute, nil)
}

func TestGetReferencePrice(t *testing.T) {
	client := newPriceTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ethereum": {"usd": 2745.12}}`))
	}, nil)

	price := client.GetReferencePrice(context.Background())
	if price != 2745.12 {
		t.Errorf("Expected 2745.12, got %v", price)
	}
}

func TestGetReferencePrice_DegradesToZero(t *testing.T) {
	client := newPriceTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, nil)

	if price := client.GetReferencePrice(context.Background()); price != 0 {
		t.Errorf("Pricing failure must degrade to 0, got %v", price)
	}
}

func TestGetReferencePrice_Cached(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })
	cache := storage.NewCacheService(storage.NewRedisCacheFromClient(redisClient))

	calls := 0
	client := newPriceTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"ethereum": {"usd": 1999.5}}`))
	}, cache)

	first := client.GetReferencePrice(context.Background())
	second := client.GetReferencePrice(context.Background())

	if first != 1999.5 || second != 1999.5 {
		t.Errorf("Expected consistent cached price, got %v / %v", first, second)
	}
	if calls != 1 {
		t.Errorf("Second read must come from cache, got %d source calls", calls)
	}
}
