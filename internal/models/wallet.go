package models

import (
	"time"

	"github.com/wallet-persona/internal/types"
)

// WalletProfile holds aggregate profile facts for an address.
type WalletProfile struct {
	Address            string     `json:"address"`
	DomainName         *string    `json:"domainName,omitempty"` // ENS or similar
	FirstTransactionAt *time.Time `json:"firstTransactionAt,omitempty"`
	LastTransactionAt  *time.Time `json:"lastTransactionAt,omitempty"`
	TransactionCount   int        `json:"transactionCount"`
	NFTCount           int        `json:"nftCount"`
	CollectionCount    int        `json:"collectionCount"`
	TotalInflowNative  float64    `json:"totalInflowNative"`
	TotalOutflowNative float64    `json:"totalOutflowNative"`
}

// WalletDetails is the raw input to the analytic core: everything fetched
// about one address, joined from the independent provider calls.
type WalletDetails struct {
	Address       string               `json:"address"`
	BalanceNative float64              `json:"balanceNative"` // native units (ETH)
	Tokens        []types.TokenBalance `json:"tokens"`
	NFTs          []types.NFT          `json:"nfts"`
	Transactions  []Transaction        `json:"transactions"` // ascending by timestamp
	Profile       *WalletProfile       `json:"profile,omitempty"`
	DeFiPositions []types.DeFiPosition `json:"defiPositions,omitempty"`
}

// FirstTransactionTime returns the earliest known transaction time, preferring
// the profile when present, falling back to the transaction list.
func (w *WalletDetails) FirstTransactionTime() *time.Time {
	if w.Profile != nil && w.Profile.FirstTransactionAt != nil {
		return w.Profile.FirstTransactionAt
	}
	if len(w.Transactions) == 0 {
		return nil
	}
	t := time.Unix(w.Transactions[0].Timestamp, 0).UTC()
	return &t
}

// TransactionCount returns the profile transaction count when present, else
// the length of the fetched transaction list.
func (w *WalletDetails) TransactionCount() int {
	if w.Profile != nil && w.Profile.TransactionCount > 0 {
		return w.Profile.TransactionCount
	}
	return len(w.Transactions)
}
