package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wallet-persona/internal/circuitbreaker"
	"github.com/wallet-persona/internal/config"
	"github.com/wallet-persona/internal/errors"
	"github.com/wallet-persona/internal/logging"
	"github.com/wallet-persona/internal/models"
	"github.com/wallet-persona/internal/storage"
)

// NarrativeClient calls the external generative-text collaborator with a
// structured wallet summary and returns its free-text analysis. Calls are
// guarded by a circuit breaker; any failure surfaces as an error the
// assembler converts into the deterministic default analysis.
type NarrativeClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	cache   *storage.CacheService
	ttl     time.Duration
	logger  *logging.Logger
}

// NewNarrativeClient creates a narrative client, or nil when the
// collaborator is not configured. A nil client makes the assembler use the
// default analysis without a network round trip.
func NewNarrativeClient(cfg *config.NarrativeConfig, cache *storage.CacheService, ttl time.Duration, logger *logging.Logger) *NarrativeClient {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &NarrativeClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig("narrative")),
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// walletSummary is the structured summary sent to the generator: enough to
// ground the narrative without shipping the full transaction list.
type walletSummary struct {
	Address          string   `json:"address"`
	BalanceNative    float64  `json:"balanceNative"`
	TransactionCount int      `json:"transactionCount"`
	TokenSymbols     []string `json:"tokenSymbols,omitempty"`
	NFTCount         int      `json:"nftCount"`
	CollectionCount  int      `json:"collectionCount"`
	FirstActivity    *int64   `json:"firstActivity,omitempty"`
	LastActivity     *int64   `json:"lastActivity,omitempty"`
}

// narrativeRequest is the generator's request payload.
type narrativeRequest struct {
	Model  string        `json:"model"`
	Wallet walletSummary `json:"wallet"`
}

// Generate implements persona.NarrativeGenerator.
func (c *NarrativeClient) Generate(ctx context.Context, details *models.WalletDetails) (*models.NarrativeAnalysis, error) {
	cacheKey := storage.Key(storage.CacheKeyNarrative, details.Address)

	if c.cache != nil {
		var cached models.NarrativeAnalysis
		if hit, err := c.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	var analysis *models.NarrativeAnalysis
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		result, callErr := c.call(ctx, summarize(details))
		if callErr != nil {
			return callErr
		}
		analysis = result
		return nil
	})
	if err != nil {
		return nil, errors.NewCollaboratorError("narrative", err)
	}

	if c.cache != nil {
		if cacheErr := c.cache.Set(ctx, cacheKey, analysis, c.ttl); cacheErr != nil {
			c.logger.WithError(cacheErr).Warn("Failed to cache narrative analysis")
		}
	}
	return analysis, nil
}

// call performs one generator request.
func (c *NarrativeClient) call(ctx context.Context, summary walletSummary) (*models.NarrativeAnalysis, error) {
	body, err := json.Marshal(narrativeRequest{Model: c.model, Wallet: summary})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("narrative generator returned HTTP %d", resp.StatusCode)
	}

	var analysis models.NarrativeAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("unparseable narrative response: %w", err)
	}
	return &analysis, nil
}

// summarize builds the structured summary for the generator.
func summarize(details *models.WalletDetails) walletSummary {
	summary := walletSummary{
		Address:          details.Address,
		BalanceNative:    details.BalanceNative,
		TransactionCount: details.TransactionCount(),
		NFTCount:         len(details.NFTs),
	}

	for _, token := range details.Tokens {
		summary.TokenSymbols = append(summary.TokenSymbols, token.Symbol)
	}

	if details.Profile != nil {
		summary.CollectionCount = details.Profile.CollectionCount
		if details.Profile.FirstTransactionAt != nil {
			ts := details.Profile.FirstTransactionAt.Unix()
			summary.FirstActivity = &ts
		}
		if details.Profile.LastTransactionAt != nil {
			ts := details.Profile.LastTransactionAt.Unix()
			summary.LastActivity = &ts
		}
	}

	return summary
}
