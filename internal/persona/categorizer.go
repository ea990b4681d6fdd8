// Package persona implements the deterministic scoring and categorization
// engine and the assembly of the final wallet persona document.
package persona

import (
	"strings"

	"github.com/wallet-persona/internal/models"
)

// Category labels produced by the rule table.
const (
	CategoryNFTCollector   = "NFT Collector"
	CategoryDeFiInvestor   = "DeFi Investor"
	CategoryActiveTrader   = "Active Trader"
	CategoryDAOMember      = "DAO Member"
	CategoryWhale          = "Whale"
	CategoryMemeEnthusiast = "Meme Token Enthusiast"
	CategoryCasualUser     = "Casual User"
)

// Rule thresholds.
const (
	nftCollectorMin    = 5   // more than this many NFTs
	activeTraderMin    = 50  // more than this many transactions
	whaleBalanceNative = 100 // more than this native balance
)

// Fixed symbol sets for category rules. Matching is case-insensitive exact
// match, not substring.
var (
	defiSymbols = symbolSet("UNI", "AAVE", "COMP", "MKR", "CRV", "SNX", "SUSHI", "YFI", "LDO", "1INCH", "BAL")

	governanceSymbols = symbolSet("UNI", "AAVE", "MKR", "COMP", "ENS", "ARB", "OP", "GTC")

	memeSymbols = symbolSet("DOGE", "SHIB", "PEPE", "FLOKI", "BONK", "WIF", "ELON", "MEME")
)

func symbolSet(symbols ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		set[strings.ToUpper(s)] = struct{}{}
	}
	return set
}

// holdsAnyOf reports whether the wallet holds a token whose symbol is in the
// given set.
func holdsAnyOf(details *models.WalletDetails, set map[string]struct{}) bool {
	for _, token := range details.Tokens {
		if _, ok := set[strings.ToUpper(token.Symbol)]; ok {
			return true
		}
	}
	return false
}

// Categorize maps aggregate holdings and activity onto category labels.
// Rules are independently additive; a wallet matching none of them gets the
// single "Casual User" label, so the result is never empty.
func Categorize(details *models.WalletDetails) []string {
	var categories []string

	if len(details.NFTs) > nftCollectorMin {
		categories = append(categories, CategoryNFTCollector)
	}
	if holdsAnyOf(details, defiSymbols) || len(details.DeFiPositions) > 0 {
		categories = append(categories, CategoryDeFiInvestor)
	}
	if details.TransactionCount() > activeTraderMin {
		categories = append(categories, CategoryActiveTrader)
	}
	if holdsAnyOf(details, governanceSymbols) {
		categories = append(categories, CategoryDAOMember)
	}
	if details.BalanceNative > whaleBalanceNative {
		categories = append(categories, CategoryWhale)
	}
	if holdsAnyOf(details, memeSymbols) {
		categories = append(categories, CategoryMemeEnthusiast)
	}

	if len(categories) == 0 {
		categories = []string{CategoryCasualUser}
	}

	return categories
}
