// Package types provides common type definitions for the wallet persona service.
package types

// TransactionStatus represents transaction execution status
type TransactionStatus string

const (
	// StatusSuccess represents a successful transaction (receipt status 1)
	StatusSuccess TransactionStatus = "success"
	// StatusFailed represents a failed transaction (receipt status 0)
	StatusFailed TransactionStatus = "failed"
)

// TransactionDirection represents whether a transaction is incoming or outgoing
// relative to the subject wallet
type TransactionDirection string

const (
	// DirectionIncoming represents an incoming transaction (wallet is recipient)
	DirectionIncoming TransactionDirection = "incoming"
	// DirectionOutgoing represents an outgoing transaction (wallet is sender)
	DirectionOutgoing TransactionDirection = "outgoing"
)

// ActivityLevel represents how active a wallet is, derived from transaction count
type ActivityLevel string

const (
	ActivityInactive ActivityLevel = "Inactive"
	ActivityLow      ActivityLevel = "Low"
	ActivityModerate ActivityLevel = "Moderate"
	ActivityHigh     ActivityLevel = "High"
	ActivityVeryHigh ActivityLevel = "Very High"
)

// ServiceError represents a structured error response
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// TokenBalance represents a wallet's holding of a single token
type TokenBalance struct {
	Contract string  `json:"contract"`           // Token contract address
	Symbol   string  `json:"symbol"`             // Token symbol (e.g., "USDC")
	Name     string  `json:"name"`               // Token name
	Balance  string  `json:"balance"`            // Human-readable balance
	ValueUSD float64 `json:"valueUsd"`           // USD value, 0 if unpriced
	Decimals *int    `json:"decimals,omitempty"` // Token decimals if known
}

// NFT represents a single NFT held by a wallet
type NFT struct {
	TokenID  string  `json:"tokenId"`
	Contract string  `json:"contract"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// DeFiPosition represents a detected DeFi protocol position
type DeFiPosition struct {
	ProtocolID   string  `json:"protocolId"`
	ProtocolName string  `json:"protocolName"`
	PositionType string  `json:"positionType"` // supply, borrow, stake, lp
	TokenSymbol  string  `json:"tokenSymbol"`
	ValueUSD     float64 `json:"valueUsd"`
}

// Counterparty represents an address the wallet has interacted with
type Counterparty struct {
	Address          string `json:"address"`
	InteractionCount int    `json:"interactionCount"`
}
