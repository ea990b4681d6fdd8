package persona

import (
	"fmt"
	"strings"
	"time"

	"github.com/wallet-persona/internal/models"
)

// RiskScore is the output of the deterministic risk scorer: a bounded score
// and the human-readable factors that produced it.
type RiskScore struct {
	Score   int      `json:"score"` // 0-100
	Factors []string `json:"factors"`
}

// Scoring constants.
const (
	riskBaseline   = 50
	riskEmptyScore = 15

	deepHistoryTxCount = 100
	newWalletMaxDays   = 30
	newWalletBalance   = 10 // native units
)

// spamKeywords flag tokens whose name or symbol suggests an airdrop/phishing
// token. Matched as lowercase substrings.
var spamKeywords = []string{
	"reward", "rewards", "claim", "airdrop", "free", "bonus", "giveaway",
	".com", ".io", ".xyz", ".net", "visit",
}

// Score computes a 0-100 risk score purely from wallet data, with no
// external calls. A wallet with zero transactions and zero balance
// short-circuits to a fixed low score.
func Score(details *models.WalletDetails) RiskScore {
	if details.TransactionCount() == 0 && details.BalanceNative == 0 {
		return RiskScore{
			Score:   riskEmptyScore,
			Factors: []string{"Empty wallet with no transaction history"},
		}
	}

	score := riskBaseline
	var factors []string

	if details.TransactionCount() > deepHistoryTxCount {
		score -= 10
		factors = append(factors, "Established transaction history")
	}

	ageDays := walletAgeDays(details, time.Now().UTC())
	switch {
	case ageDays > 365:
		score -= 15
		factors = append(factors, "Wallet older than one year")
	case ageDays >= 180:
		score -= 10
		factors = append(factors, "Wallet age between 6 and 12 months")
	case ageDays >= 30:
		score -= 5
		factors = append(factors, "Wallet age between 1 and 6 months")
	}

	if ageDays >= 0 && ageDays < newWalletMaxDays && details.BalanceNative > newWalletBalance {
		score += 20
		factors = append(factors, "New wallet holding a significant balance")
	}

	if spam := countSuspiciousTokens(details); spam > 0 {
		score += 3 * spam
		factors = append(factors, fmt.Sprintf("Holds %d suspected spam/airdrop token(s)", spam))
	}

	return RiskScore{Score: clampScore(score), Factors: factors}
}

// countSuspiciousTokens counts tokens whose name or symbol matches the spam
// keyword list or whose symbol carries a currency sigil.
func countSuspiciousTokens(details *models.WalletDetails) int {
	count := 0
	for _, token := range details.Tokens {
		name := strings.ToLower(token.Name)
		symbol := strings.ToLower(token.Symbol)

		if strings.Contains(token.Symbol, "$") {
			count++
			continue
		}
		for _, keyword := range spamKeywords {
			if strings.Contains(name, keyword) || strings.Contains(symbol, keyword) {
				count++
				break
			}
		}
	}
	return count
}

// walletAgeDays returns whole days since the first known transaction, or -1
// when no first-transaction date exists.
func walletAgeDays(details *models.WalletDetails, now time.Time) int {
	first := details.FirstTransactionTime()
	if first == nil {
		return -1
	}
	return int(now.Sub(*first).Hours() / 24)
}

// clampScore bounds a score to [0, 100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
