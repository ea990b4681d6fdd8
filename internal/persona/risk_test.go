package persona

import (
	"testing"
	"time"

	"github.com/wallet-persona/internal/models"
	"github.com/wallet-persona/internal/types"
)

func profileAged(days int, txCount int) *models.WalletProfile {
	first := time.Now().UTC().AddDate(0, 0, -days)
	return &models.WalletProfile{
		FirstTransactionAt: &first,
		TransactionCount:   txCount,
	}
}

func TestScore_EmptyWallet(t *testing.T) {
	got := Score(&models.WalletDetails{Address: "0xabc"})

	if got.Score != riskEmptyScore {
		t.Errorf("Empty wallet must score %d, got %d", riskEmptyScore, got.Score)
	}
	if len(got.Factors) != 1 {
		t.Errorf("Expected single factor, got %v", got.Factors)
	}
}

func TestScore_BaselineOnly(t *testing.T) {
	// A newish wallet with little history and no mitigating factors sits at
	// the baseline.
	details := &models.WalletDetails{
		Address:       "0xabc",
		BalanceNative: 1,
		Profile:       profileAged(10, 5),
	}

	got := Score(details)
	if got.Score != riskBaseline {
		t.Errorf("Expected baseline %d, got %d (factors %v)", riskBaseline, got.Score, got.Factors)
	}
}

func TestScore_EstablishedWallet(t *testing.T) {
	// Old wallet with deep history: 50 - 10 (history) - 15 (age) = 25.
	details := &models.WalletDetails{
		Address:       "0xabc",
		BalanceNative: 5,
		Profile:       profileAged(500, 150),
	}

	got := Score(details)
	if got.Score != 25 {
		t.Errorf("Expected 25, got %d (factors %v)", got.Score, got.Factors)
	}
	if len(got.Factors) != 2 {
		t.Errorf("Expected 2 factors, got %v", got.Factors)
	}
}

func TestScore_AgeBrackets(t *testing.T) {
	tests := []struct {
		name string
		days int
		want int
	}{
		{"under a month", 10, riskBaseline},
		{"one to six months", 90, riskBaseline - 5},
		{"six to twelve months", 200, riskBaseline - 10},
		{"over a year", 400, riskBaseline - 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := &models.WalletDetails{
				Address:       "0xabc",
				BalanceNative: 1,
				Profile:       profileAged(tt.days, 5),
			}
			if got := Score(details); got.Score != tt.want {
				t.Errorf("Expected %d for %d-day wallet, got %d", tt.want, tt.days, got.Score)
			}
		})
	}
}

func TestScore_NewWalletLargeBalance(t *testing.T) {
	// Fresh wallet holding a significant balance: 50 + 20 = 70.
	details := &models.WalletDetails{
		Address:       "0xabc",
		BalanceNative: 50,
		Profile:       profileAged(5, 3),
	}

	got := Score(details)
	if got.Score != riskBaseline+20 {
		t.Errorf("Expected %d, got %d (factors %v)", riskBaseline+20, got.Score, got.Factors)
	}
}

func TestScore_SpamTokens(t *testing.T) {
	details := &models.WalletDetails{
		Address:       "0xabc",
		BalanceNative: 1,
		Profile:       profileAged(10, 5),
		Tokens: []types.TokenBalance{
			{Symbol: "WIN", Name: "Visit FreeETH.com to claim"},
			{Symbol: "$AIR", Name: "Airdrop Token"},
			{Symbol: "USDC", Name: "USD Coin"},
		},
	}

	got := Score(details)
	// Two suspicious tokens at +3 each.
	if got.Score != riskBaseline+6 {
		t.Errorf("Expected %d, got %d (factors %v)", riskBaseline+6, got.Score, got.Factors)
	}
}

func TestScore_Clamped(t *testing.T) {
	// Enough spam tokens push past 100; the score must clamp.
	details := &models.WalletDetails{
		Address:       "0xabc",
		BalanceNative: 50,
		Profile:       profileAged(5, 3),
	}
	for i := 0; i < 30; i++ {
		details.Tokens = append(details.Tokens, types.TokenBalance{
			Symbol: "$SPAM", Name: "claim your reward",
		})
	}

	got := Score(details)
	if got.Score != 100 {
		t.Errorf("Expected clamp at 100, got %d", got.Score)
	}
}

func TestScore_UnknownAge(t *testing.T) {
	// No first-transaction date at all: no age adjustment, no new-wallet
	// penalty regardless of balance.
	details := &models.WalletDetails{
		Address:       "0xabc",
		BalanceNative: 500,
		Profile:       &models.WalletProfile{TransactionCount: 5},
	}

	got := Score(details)
	if got.Score != riskBaseline {
		t.Errorf("Expected baseline for unknown age, got %d (factors %v)", got.Score, got.Factors)
	}
}

func TestScore_Deterministic(t *testing.T) {
	details := &models.WalletDetails{
		Address:       "0xabc",
		BalanceNative: 5,
		Profile:       profileAged(500, 150),
	}

	first := Score(details)
	second := Score(details)
	if first.Score != second.Score {
		t.Errorf("Score must be deterministic: %d vs %d", first.Score, second.Score)
	}
}
