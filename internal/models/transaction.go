package models

import (
	"math/big"

	"github.com/wallet-persona/internal/types"
)

// Transaction represents a single on-chain transaction as fetched for an
// analysis request. The record is immutable once fetched; its lifetime is
// one request.
type Transaction struct {
	Hash      string                     `json:"hash"`
	From      types.AddressField         `json:"from"`
	To        types.AddressField         `json:"to"`        // absent or zero address for contract creation
	Value     string                     `json:"value"`     // native smallest unit, decimal string
	Timestamp int64                      `json:"timestamp"` // unix seconds
	Direction types.TransactionDirection `json:"direction"`

	// Raw execution fields
	GasPrice        *string                 `json:"gasPrice,omitempty"`
	GasUsed         *string                 `json:"gasUsed,omitempty"`
	Status          types.TransactionStatus `json:"status"`
	ContractAddress *string                 `json:"contractAddress,omitempty"` // set when the receipt created a contract
}

// ValueWei parses the transaction value into an arbitrary-precision integer.
// Returns nil when the value is missing or not a decimal integer.
func (t *Transaction) ValueWei() *big.Int {
	if t.Value == "" {
		return nil
	}
	v, ok := new(big.Int).SetString(t.Value, 10)
	if !ok {
		return nil
	}
	return v
}

// ResolveDirection derives the direction tag by comparing the wallet address
// against the sender field, case-insensitively.
func ResolveDirection(from types.AddressField, walletAddress string) types.TransactionDirection {
	if from.Equals(walletAddress) {
		return types.DirectionOutgoing
	}
	return types.DirectionIncoming
}
