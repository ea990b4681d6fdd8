package analysis

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"

	"github.com/wallet-persona/internal/logging"
	"github.com/wallet-persona/internal/models"
	"github.com/wallet-persona/internal/types"
)

// ExpensiveTransaction identifies the single costliest transaction in a set.
type ExpensiveTransaction struct {
	Hash      string  `json:"hash"`
	FeeNative float64 `json:"feeNative"`
	FeeUSD    float64 `json:"feeUsd"`
}

// GasEconomics holds cumulative and per-transaction gas fee statistics over
// the successful transactions of a filtered set.
type GasEconomics struct {
	TotalFeeNative  float64               `json:"totalFeeNative"`
	TotalFeeUSD     float64               `json:"totalFeeUsd"`
	AvgGasPriceGwei float64               `json:"avgGasPriceGwei"`
	MostExpensive   *ExpensiveTransaction `json:"mostExpensive,omitempty"`
}

// AggregateGas computes gas fee statistics over successful transactions.
// Fee arithmetic is exact integer math in wei; conversion to native units
// and USD happens once on the accumulated totals. Transactions whose gas
// fields cannot be parsed are logged and excluded from both the sum and the
// mean's denominator.
func AggregateGas(txs []models.Transaction, referencePriceUSD float64) GasEconomics {
	totalWei := new(big.Int)
	maxWei := new(big.Int)
	var maxHash string
	var gweiSum float64
	var counted int

	for i := range txs {
		tx := &txs[i]
		if tx.Status != types.StatusSuccess {
			continue
		}

		price, used, ok := parseGasFields(tx)
		if !ok {
			continue
		}

		fee := new(big.Int).Mul(price, used)
		totalWei.Add(totalWei, fee)

		if fee.Cmp(maxWei) > 0 {
			maxWei.Set(fee)
			maxHash = tx.Hash
		}

		gweiSum += weiToGwei(price)
		counted++
	}

	result := GasEconomics{
		TotalFeeNative: weiToNative(totalWei),
	}
	result.TotalFeeUSD = result.TotalFeeNative * referencePriceUSD

	if counted > 0 {
		result.AvgGasPriceGwei = gweiSum / float64(counted)
	}
	if maxHash != "" {
		feeNative := weiToNative(maxWei)
		result.MostExpensive = &ExpensiveTransaction{
			Hash:      maxHash,
			FeeNative: feeNative,
			FeeUSD:    feeNative * referencePriceUSD,
		}
	}

	return result
}

// parseGasFields parses the raw gas price and gas used strings as base-10
// integers. Missing or malformed fields disqualify the transaction from gas
// accounting.
func parseGasFields(tx *models.Transaction) (price, used *big.Int, ok bool) {
	if tx.GasPrice == nil || tx.GasUsed == nil {
		return nil, nil, false
	}
	price, okPrice := new(big.Int).SetString(*tx.GasPrice, 10)
	used, okUsed := new(big.Int).SetString(*tx.GasUsed, 10)
	if !okPrice || !okUsed {
		logging.WithFields(map[string]interface{}{
			"hash":     tx.Hash,
			"gasPrice": *tx.GasPrice,
			"gasUsed":  *tx.GasUsed,
		}).Warn("Skipping transaction with unparseable gas fields")
		return nil, nil, false
	}
	return price, used, true
}

// weiToNative converts an exact wei amount to native currency units.
func weiToNative(wei *big.Int) float64 {
	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		big.NewFloat(params.Ether),
	).Float64()
	return f
}

// weiToGwei converts an exact wei amount to Gwei.
func weiToGwei(wei *big.Int) float64 {
	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		big.NewFloat(params.GWei),
	).Float64()
	return f
}
