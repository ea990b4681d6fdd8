package persona

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/params"

	"github.com/wallet-persona/internal/logging"
	"github.com/wallet-persona/internal/models"
	"github.com/wallet-persona/internal/types"
)

// topPreferredTokens and topCollections cap the persona's ranked lists.
const (
	topPreferredTokens = 5
	topCollectionCount = 5
)

// NarrativeGenerator is the external advisory collaborator: given a wallet
// summary it returns free-text analysis with an independent risk estimate.
// Implementations may fail; the assembler degrades to deterministic
// defaults.
type NarrativeGenerator interface {
	Generate(ctx context.Context, details *models.WalletDetails) (*models.NarrativeAnalysis, error)
}

// Assembler builds the final persona document from raw wallet data.
type Assembler struct {
	narrative NarrativeGenerator
	logger    *logging.Logger
	now       func() time.Time
}

// NewAssembler creates an assembler. The narrative generator may be nil when
// the collaborator is not configured.
func NewAssembler(narrative NarrativeGenerator, logger *logging.Logger) *Assembler {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Assembler{
		narrative: narrative,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Assemble produces the wallet persona. It never fails: collaborator
// errors degrade to a deterministic default analysis and the document is
// always returned in full.
func (a *Assembler) Assemble(ctx context.Context, details *models.WalletDetails) *models.WalletPersona {
	categories := Categorize(details)
	deterministic := Score(details)

	analysis := a.generateNarrative(ctx, details, categories)

	var external *RiskScore
	if analysis.RiskScore != nil {
		external = &RiskScore{Score: *analysis.RiskScore, Factors: analysis.RiskFactors}
	}
	fused := Fuse(deterministic, external)

	summary := summarizeActivity(details)

	tags := analysis.Tags
	if len(tags) == 0 {
		tags = defaultTags(categories, summary.TransactionCount)
	}

	return &models.WalletPersona{
		Address:         strings.ToLower(details.Address),
		Categories:      categories,
		ActivityLevel:   activityLevel(summary.TransactionCount),
		Risk:            fused,
		PreferredTokens: preferredTokens(details.Tokens),
		WalletAge:       walletAgeLabel(details, a.now()),
		TopCollections:  topCollections(details.NFTs),
		Bio:             analysis.Bio,
		Tags:            tags,
		Recommendations: analysis.Recommendations,
		ActivitySummary: summary,
		Visualizations:  buildVisualizations(details),
	}
}

// generateNarrative calls the collaborator, substituting the deterministic
// default analysis when it is absent or fails.
func (a *Assembler) generateNarrative(ctx context.Context, details *models.WalletDetails, categories []string) *models.NarrativeAnalysis {
	if a.narrative == nil {
		return defaultAnalysis(details, categories)
	}

	analysis, err := a.narrative.Generate(ctx, details)
	if err != nil || analysis == nil {
		if err != nil {
			a.logger.WithError(err).WithField("address", details.Address).
				Warn("Narrative generator unavailable, using default analysis")
		}
		return defaultAnalysis(details, categories)
	}
	return analysis
}

// defaultAnalysis is the fixed substitute used when the narrative generator
// cannot contribute. It carries no risk score, so fusion falls back to the
// midpoint default.
func defaultAnalysis(details *models.WalletDetails, categories []string) *models.NarrativeAnalysis {
	category := CategoryCasualUser
	if len(categories) > 0 {
		category = categories[0]
	}
	return &models.NarrativeAnalysis{
		Bio: fmt.Sprintf(
			"Wallet %s is a %s on the Ethereum network with %d recorded transactions.",
			shortAddress(details.Address), strings.ToLower(category), details.TransactionCount(),
		),
		Category: category,
	}
}

// defaultTags is the minimal deterministic tag set used when the narrative
// generator supplies none.
func defaultTags(categories []string, txCount int) []string {
	tags := make([]string, 0, len(categories)+1)
	tags = append(tags, categories...)
	if txCount > 0 {
		tags = append(tags, "On-chain Active")
	}
	return tags
}

// walletAgeLabel buckets the wallet age into a human-readable string.
func walletAgeLabel(details *models.WalletDetails, now time.Time) string {
	days := walletAgeDays(details, now)
	switch {
	case days < 0:
		return "Unknown"
	case days < 30:
		return fmt.Sprintf("%d days", days)
	case days <= 365:
		return fmt.Sprintf("%d months", days/30)
	case days <= 730:
		return "1+ year"
	default:
		return fmt.Sprintf("%d years", days/365)
	}
}

// summarizeActivity computes the last-activity timestamp, direction-filtered
// inflow/outflow sums, and the average transaction value.
func summarizeActivity(details *models.WalletDetails) models.ActivitySummary {
	summary := models.ActivitySummary{TransactionCount: len(details.Transactions)}

	var lastActivity int64
	var total float64
	for i := range details.Transactions {
		tx := &details.Transactions[i]
		if tx.Timestamp > lastActivity {
			lastActivity = tx.Timestamp
		}

		wei := tx.ValueWei()
		if wei == nil {
			continue
		}
		native := weiToNativeUnits(wei)
		total += native
		switch tx.Direction {
		case types.DirectionIncoming:
			summary.TotalInflowNative += native
		case types.DirectionOutgoing:
			summary.TotalOutflowNative += native
		}
	}

	if lastActivity > 0 {
		summary.LastActivityAt = &lastActivity
	}
	if summary.TransactionCount > 0 {
		summary.AverageValueNative = total / float64(summary.TransactionCount)
	}

	return summary
}

// activityLevel maps a transaction count onto a coarse label.
func activityLevel(txCount int) types.ActivityLevel {
	switch {
	case txCount == 0:
		return types.ActivityInactive
	case txCount < 10:
		return types.ActivityLow
	case txCount < 50:
		return types.ActivityModerate
	case txCount < 200:
		return types.ActivityHigh
	default:
		return types.ActivityVeryHigh
	}
}

// preferredTokens ranks held tokens by USD value, ties by discovery order.
func preferredTokens(tokens []types.TokenBalance) []string {
	ranked := make([]types.TokenBalance, len(tokens))
	copy(ranked, tokens)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ValueUSD > ranked[j].ValueUSD
	})

	if len(ranked) > topPreferredTokens {
		ranked = ranked[:topPreferredTokens]
	}
	symbols := make([]string, 0, len(ranked))
	for _, t := range ranked {
		symbols = append(symbols, t.Symbol)
	}
	return symbols
}

// topCollections groups NFTs by contract and ranks collections by holding
// count, ties by first-seen order.
func topCollections(nfts []types.NFT) []models.CollectionStat {
	var order []string
	byContract := make(map[string]*models.CollectionStat)

	for _, nft := range nfts {
		contract := strings.ToLower(nft.Contract)
		stat, seen := byContract[contract]
		if !seen {
			stat = &models.CollectionStat{Contract: contract, Name: nft.Name}
			byContract[contract] = stat
			order = append(order, contract)
		}
		stat.Count++
	}

	ranked := make([]models.CollectionStat, 0, len(order))
	for _, contract := range order {
		ranked = append(ranked, *byContract[contract])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > topCollectionCount {
		ranked = ranked[:topCollectionCount]
	}
	return ranked
}

// buildVisualizations produces rendering-oriented strings the presentation
// layer treats as opaque.
func buildVisualizations(details *models.WalletDetails) map[string]string {
	if len(details.Transactions) == 0 {
		return nil
	}

	// Hour-of-day activity sparkline: one glyph per 3-hour block.
	var blocks [8]int
	for i := range details.Transactions {
		hour := time.Unix(details.Transactions[i].Timestamp, 0).UTC().Hour()
		blocks[hour/3]++
	}
	max := 0
	for _, b := range blocks {
		if b > max {
			max = b
		}
	}
	glyphs := []rune(" .:-=+*#")
	var sb strings.Builder
	for _, b := range blocks {
		idx := 0
		if max > 0 {
			idx = b * (len(glyphs) - 1) / max
		}
		sb.WriteRune(glyphs[idx])
	}

	return map[string]string{
		"hourlyActivity": sb.String(),
	}
}

// shortAddress renders 0xabcd...1234 for display.
func shortAddress(address string) string {
	address = strings.ToLower(address)
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// weiToNativeUnits converts an exact wei amount to native currency units.
func weiToNativeUnits(wei *big.Int) float64 {
	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		big.NewFloat(params.Ether),
	).Float64()
	return f
}
