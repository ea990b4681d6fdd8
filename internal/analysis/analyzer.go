package analysis

import (
	"time"

	"github.com/wallet-persona/internal/models"
	"github.com/wallet-persona/internal/types"
)

// DirectionalCounts splits a transaction set by direction and outcome.
type DirectionalCounts struct {
	Inbound           int `json:"inbound"`
	Outbound          int `json:"outbound"`
	ContractCreations int `json:"contractCreations"`
	Failed            int `json:"failed"`
}

// AnalysisResult is the combined output of the analytics pass over a
// filtered transaction set. When the filtered set is empty only
// TransactionCountInRange is populated; callers treat that as "no data",
// not an error.
type AnalysisResult struct {
	TransactionCountInRange int                   `json:"transactionCountInRange"`
	Directional             *DirectionalCounts    `json:"directional,omitempty"`
	Gas                     *GasEconomics         `json:"gas,omitempty"`
	Temporal                *TemporalDistribution `json:"temporal,omitempty"`
	Counterparties          *CounterpartyStats    `json:"counterparties,omitempty"`
}

// Analyze runs the full analytics pass: range selection when either date
// bound is supplied, then gas, temporal, counterparty, and directional
// aggregation. The input slice is never mutated; identical inputs yield
// identical results.
func Analyze(txs []models.Transaction, walletAddress string, referencePriceUSD float64, start, end *time.Time) *AnalysisResult {
	selected := txs
	if start != nil || end != nil {
		selected = SelectRange(txs, start, end)
	}

	result := &AnalysisResult{TransactionCountInRange: len(selected)}
	if len(selected) == 0 {
		return result
	}

	gas := AggregateGas(selected, referencePriceUSD)
	temporal := AggregateTemporal(selected)
	counterparties := AggregateCounterparties(selected, walletAddress)
	directional := countDirections(selected, walletAddress)

	result.Gas = &gas
	result.Temporal = &temporal
	result.Counterparties = &counterparties
	result.Directional = &directional

	return result
}

// countDirections computes inbound/outbound/contract-creation/failed counts.
// Failed counts regardless of direction; contract creation requires both an
// absent (or zero) recipient and a created-contract address in the receipt.
func countDirections(txs []models.Transaction, walletAddress string) DirectionalCounts {
	var counts DirectionalCounts

	for i := range txs {
		tx := &txs[i]

		if tx.To.Equals(walletAddress) && !tx.From.Equals(walletAddress) {
			counts.Inbound++
		}
		if tx.From.Equals(walletAddress) && !tx.To.Equals(walletAddress) {
			counts.Outbound++
		}
		if tx.To.IsZero() && tx.ContractAddress != nil && *tx.ContractAddress != "" {
			counts.ContractCreations++
		}
		if tx.Status == types.StatusFailed {
			counts.Failed++
		}
	}

	return counts
}
