// Package adapter implements clients for the external collaborators: the
// chain data provider, the pricing source, and the narrative generator.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/wallet-persona/internal/config"
	"github.com/wallet-persona/internal/errors"
	"github.com/wallet-persona/internal/logging"
	"github.com/wallet-persona/internal/models"
	"github.com/wallet-persona/internal/retry"
	"github.com/wallet-persona/internal/types"
)

// ChainDataClient fetches the raw wallet data (balance, transactions, token
// and NFT holdings) from an Etherscan-compatible API. The independent
// fetches fan out concurrently and join before analysis begins; the whole
// fetch failing is the pipeline's one hard failure.
type ChainDataClient struct {
	baseURL         string
	apiKey          string
	client          *http.Client
	limiter         *rate.Limiter
	retryCfg        *retry.Config
	fetchTimeout    time.Duration
	maxTransactions int
	logger          *logging.Logger
}

// NewChainDataClient creates a chain data client from provider configuration.
func NewChainDataClient(cfg *config.ProviderConfig, logger *logging.Logger) *ChainDataClient {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 3
	}
	return &ChainDataClient{
		baseURL:         cfg.BaseURL,
		apiKey:          cfg.APIKey,
		client:          &http.Client{Timeout: cfg.FetchTimeout},
		limiter:         rate.NewLimiter(rate.Limit(rps), 1),
		retryCfg:        retry.DefaultConfig(),
		fetchTimeout:    cfg.FetchTimeout,
		maxTransactions: cfg.MaxTransactions,
		logger:          logger,
	}
}

// ValidateAddress reports whether the string is a well-formed hex address.
func ValidateAddress(address string) bool {
	return common.IsHexAddress(address)
}

// FetchWalletDetails fans out the independent provider calls and joins them
// into a WalletDetails document. Balance and transaction list are required;
// token and NFT holdings degrade to empty lists on failure.
func (c *ChainDataClient) FetchWalletDetails(ctx context.Context, address string) (*models.WalletDetails, error) {
	if !ValidateAddress(address) {
		return nil, errors.NewInvalidAddressError(address)
	}
	address = strings.ToLower(address)

	details := &models.WalletDetails{Address: address}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		balance, err := c.fetchBalance(gctx, address)
		if err != nil {
			return err
		}
		details.BalanceNative = balance
		return nil
	})

	g.Go(func() error {
		txs, err := c.fetchTransactions(gctx, address)
		if err != nil {
			return err
		}
		details.Transactions = txs
		return nil
	})

	g.Go(func() error {
		tokens, err := c.fetchTokenBalances(gctx, address)
		if err != nil {
			c.logger.WithError(err).WithField("address", address).
				Warn("Token balance fetch failed, continuing without holdings")
			return nil
		}
		details.Tokens = tokens
		return nil
	})

	g.Go(func() error {
		nfts, err := c.fetchNFTs(gctx, address)
		if err != nil {
			c.logger.WithError(err).WithField("address", address).
				Warn("NFT fetch failed, continuing without holdings")
			return nil
		}
		details.NFTs = nfts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, errors.NewProviderError("chaindata", err)
	}

	details.Profile = buildProfile(details)
	return details, nil
}

// apiResponse is the provider's response envelope.
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// rawTransaction mirrors the provider's transaction record. All numeric
// fields arrive as decimal strings.
type rawTransaction struct {
	Hash            string `json:"hash"`
	TimeStamp       string `json:"timeStamp"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	GasPrice        string `json:"gasPrice"`
	GasUsed         string `json:"gasUsed"`
	TxReceiptStatus string `json:"txreceipt_status"`
	IsError         string `json:"isError"`
	ContractAddress string `json:"contractAddress"`
}

// rawTokenBalance mirrors the provider's token holding record.
type rawTokenBalance struct {
	TokenAddress  string `json:"TokenAddress"`
	TokenName     string `json:"TokenName"`
	TokenSymbol   string `json:"TokenSymbol"`
	TokenQuantity string `json:"TokenQuantity"`
	TokenDivisor  string `json:"TokenDivisor"`
}

// rawNFT mirrors the provider's NFT holding record.
type rawNFT struct {
	TokenAddress string `json:"TokenAddress"`
	TokenName    string `json:"TokenName"`
	TokenSymbol  string `json:"TokenSymbol"`
	TokenID      string `json:"TokenId"`
	ImageURL     string `json:"ImageUrl"`
}

// fetchBalance returns the native balance in native units.
func (c *ChainDataClient) fetchBalance(ctx context.Context, address string) (float64, error) {
	var result string
	if err := c.call(ctx, url.Values{
		"module":  {"account"},
		"action":  {"balance"},
		"address": {address},
		"tag":     {"latest"},
	}, &result); err != nil {
		return 0, err
	}

	wei, ok := new(big.Int).SetString(result, 10)
	if !ok {
		return 0, fmt.Errorf("unparseable balance %q", result)
	}
	return nativeFromWei(wei), nil
}

// fetchTransactions returns the transaction list sorted ascending by
// timestamp, with direction tags resolved against the wallet address.
func (c *ChainDataClient) fetchTransactions(ctx context.Context, address string) ([]models.Transaction, error) {
	var raw []rawTransaction
	if err := c.call(ctx, url.Values{
		"module":  {"account"},
		"action":  {"txlist"},
		"address": {address},
		"sort":    {"asc"},
		"page":    {"1"},
		"offset":  {strconv.Itoa(c.maxTransactions)},
	}, &raw); err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, len(raw))
	for _, r := range raw {
		ts, err := strconv.ParseInt(r.TimeStamp, 10, 64)
		if err != nil {
			c.logger.WithField("hash", r.Hash).Warn("Skipping transaction with unparseable timestamp")
			continue
		}

		from := types.NewAddressField(r.From)
		tx := models.Transaction{
			Hash:      r.Hash,
			From:      from,
			To:        types.NewAddressField(r.To),
			Value:     r.Value,
			Timestamp: ts,
			Direction: models.ResolveDirection(from, address),
			Status:    receiptStatus(r),
		}
		if r.GasPrice != "" {
			tx.GasPrice = strPtr(r.GasPrice)
		}
		if r.GasUsed != "" {
			tx.GasUsed = strPtr(r.GasUsed)
		}
		if r.ContractAddress != "" {
			tx.ContractAddress = strPtr(strings.ToLower(r.ContractAddress))
		}
		txs = append(txs, tx)
	}

	// Providers claim ascending order; enforce it so range selection can
	// rely on it.
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Timestamp < txs[j].Timestamp })
	return txs, nil
}

// fetchTokenBalances returns the wallet's token holdings. USD values are
// left at zero; pricing covers the native asset only.
func (c *ChainDataClient) fetchTokenBalances(ctx context.Context, address string) ([]types.TokenBalance, error) {
	var raw []rawTokenBalance
	if err := c.call(ctx, url.Values{
		"module":  {"account"},
		"action":  {"addresstokenbalance"},
		"address": {address},
		"page":    {"1"},
		"offset":  {"100"},
	}, &raw); err != nil {
		return nil, err
	}

	tokens := make([]types.TokenBalance, 0, len(raw))
	for _, r := range raw {
		tokens = append(tokens, types.TokenBalance{
			Contract: strings.ToLower(r.TokenAddress),
			Symbol:   r.TokenSymbol,
			Name:     r.TokenName,
			Balance:  humanQuantity(r.TokenQuantity, r.TokenDivisor),
		})
	}
	return tokens, nil
}

// fetchNFTs returns the wallet's NFT holdings.
func (c *ChainDataClient) fetchNFTs(ctx context.Context, address string) ([]types.NFT, error) {
	var raw []rawNFT
	if err := c.call(ctx, url.Values{
		"module":  {"account"},
		"action":  {"addresstokennftinventory"},
		"address": {address},
		"page":    {"1"},
		"offset":  {"100"},
	}, &raw); err != nil {
		return nil, err
	}

	nfts := make([]types.NFT, 0, len(raw))
	for _, r := range raw {
		nft := types.NFT{
			TokenID:  r.TokenID,
			Contract: strings.ToLower(r.TokenAddress),
			Name:     r.TokenName,
			Symbol:   r.TokenSymbol,
		}
		if r.ImageURL != "" {
			nft.ImageURL = strPtr(r.ImageURL)
		}
		nfts = append(nfts, nft)
	}
	return nfts, nil
}

// call performs one paced, deadline-bounded, retried provider request and
// decodes the result payload.
func (c *ChainDataClient) call(ctx context.Context, params url.Values, dest interface{}) error {
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	endpoint := c.baseURL + "?" + params.Encode()

	return retry.Do(ctx, c.retryCfg, func(ctx context.Context, attempt int) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		callCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(callCtx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("provider returned HTTP %d", resp.StatusCode)
		}

		var envelope apiResponse
		if err := json.Unmarshal(body, &envelope); err != nil {
			return fmt.Errorf("unparseable provider response: %w", err)
		}
		// Status "0" with "No transactions found" is an empty result, not
		// an error.
		if envelope.Status != "1" && !strings.Contains(envelope.Message, "No transactions found") {
			return fmt.Errorf("provider error: %s", envelope.Message)
		}

		return json.Unmarshal(envelope.Result, dest)
	})
}

// receiptStatus derives the transaction status from the receipt fields,
// falling back to the isError flag for pre-Byzantium records.
func receiptStatus(r rawTransaction) types.TransactionStatus {
	switch r.TxReceiptStatus {
	case "1":
		return types.StatusSuccess
	case "0":
		return types.StatusFailed
	}
	if r.IsError == "1" {
		return types.StatusFailed
	}
	return types.StatusSuccess
}

// buildProfile derives the aggregate wallet profile from the joined data.
func buildProfile(details *models.WalletDetails) *models.WalletProfile {
	profile := &models.WalletProfile{
		Address:          details.Address,
		TransactionCount: len(details.Transactions),
		NFTCount:         len(details.NFTs),
	}

	collections := make(map[string]struct{})
	for _, nft := range details.NFTs {
		collections[strings.ToLower(nft.Contract)] = struct{}{}
	}
	profile.CollectionCount = len(collections)

	if len(details.Transactions) > 0 {
		first := time.Unix(details.Transactions[0].Timestamp, 0).UTC()
		last := time.Unix(details.Transactions[len(details.Transactions)-1].Timestamp, 0).UTC()
		profile.FirstTransactionAt = &first
		profile.LastTransactionAt = &last
	}

	for i := range details.Transactions {
		tx := &details.Transactions[i]
		wei := tx.ValueWei()
		if wei == nil {
			continue
		}
		native := nativeFromWei(wei)
		switch tx.Direction {
		case types.DirectionIncoming:
			profile.TotalInflowNative += native
		case types.DirectionOutgoing:
			profile.TotalOutflowNative += native
		}
	}

	return profile
}

// humanQuantity renders a raw token quantity with its divisor applied.
func humanQuantity(quantity, divisor string) string {
	q, okQ := new(big.Float).SetString(quantity)
	d, err := strconv.Atoi(divisor)
	if !okQ || err != nil || d < 0 || d > 77 {
		return quantity
	}
	scale := new(big.Float).SetFloat64(math.Pow10(d))
	return q.Quo(q, scale).Text('f', 6)
}

// nativeFromWei converts an exact wei amount to native currency units.
func nativeFromWei(wei *big.Int) float64 {
	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		big.NewFloat(params.Ether),
	).Float64()
	return f
}

func strPtr(s string) *string {
	return &s
}
