package models

import (
	"github.com/wallet-persona/internal/types"
)

// NarrativeAnalysis is the output of the external narrative generator: a
// free-text bio, tags, recommendations, and an independent risk estimate.
// All fields are optional; absent fields fall back to deterministic defaults
// during assembly.
type NarrativeAnalysis struct {
	Bio             string          `json:"bio"`
	Tags            []string        `json:"tags,omitempty"`
	Category        string          `json:"category,omitempty"`
	RiskScore       *int            `json:"riskScore,omitempty"` // 0-100, nil when the generator supplied none
	RiskFactors     []string        `json:"riskFactors,omitempty"`
	Recommendations Recommendations `json:"recommendations"`
}

// Recommendations bundles the suggested assets produced by the narrative
// generator (or deterministic fallbacks).
type Recommendations struct {
	Tokens   []string `json:"tokens,omitempty"`
	NFTs     []string `json:"nfts,omitempty"`
	DApps    []string `json:"dapps,omitempty"`
	Insights []string `json:"insights,omitempty"`
}

// RiskFactorsDetails retains the sub-scores that produced the combined risk
// score plus the deduplicated union of both factor lists.
type RiskFactorsDetails struct {
	DeterministicScore int      `json:"deterministicScore"`
	ExternalScore      int      `json:"externalScore"`
	Factors            []string `json:"factors"`
}

// FusedRisk is the combined risk assessment for a wallet.
type FusedRisk struct {
	Score              int                `json:"score"` // 0-100
	RiskFactorsDetails RiskFactorsDetails `json:"riskFactorsDetails"`
}

// CollectionStat is one entry of the top-collections ranking.
type CollectionStat struct {
	Contract string `json:"contract"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

// ActivitySummary summarizes the wallet's transaction activity.
type ActivitySummary struct {
	LastActivityAt     *int64  `json:"lastActivityAt,omitempty"` // unix seconds, nil when no transactions
	TotalInflowNative  float64 `json:"totalInflowNative"`
	TotalOutflowNative float64 `json:"totalOutflowNative"`
	AverageValueNative float64 `json:"averageValueNative"`
	TransactionCount   int     `json:"transactionCount"`
}

// WalletPersona is the final persona document returned to the presentation
// layer. It is always produced, degrading to defaults when collaborators
// are unavailable.
type WalletPersona struct {
	Address         string              `json:"address"`
	Categories      []string            `json:"categories"` // never empty
	ActivityLevel   types.ActivityLevel `json:"activityLevel"`
	Risk            FusedRisk           `json:"risk"`
	PreferredTokens []string            `json:"preferredTokens,omitempty"`
	WalletAge       string              `json:"walletAge"`
	TopCollections  []CollectionStat    `json:"topCollections,omitempty"`
	Bio             string              `json:"bio"`
	Tags            []string            `json:"tags,omitempty"`
	Recommendations Recommendations     `json:"recommendations"`
	ActivitySummary ActivitySummary     `json:"activitySummary"`

	// Rendering-oriented strings the presentation layer treats as opaque.
	Visualizations map[string]string `json:"visualizations,omitempty"`
}
