package persona

import (
	"math"

	"github.com/wallet-persona/internal/models"
)

// defaultExternalScore substitutes for the external risk estimate when the
// narrative generator supplied none. Using the midpoint keeps fusion
// deterministic under collaborator failure.
const defaultExternalScore = 50

// Fuse combines the deterministic risk score with the externally supplied
// one. The combined score is the rounded mean of two [0,100] values and so
// needs no re-clamping. Factor lists merge into a deduplicated union by
// exact string equality, original order preserved, deterministic factors
// first.
func Fuse(deterministic RiskScore, external *RiskScore) models.FusedRisk {
	externalScore := defaultExternalScore
	var externalFactors []string
	if external != nil {
		externalScore = clampScore(external.Score)
		externalFactors = external.Factors
	}

	combined := int(math.Round(float64(externalScore+deterministic.Score) / 2))

	return models.FusedRisk{
		Score: combined,
		RiskFactorsDetails: models.RiskFactorsDetails{
			DeterministicScore: deterministic.Score,
			ExternalScore:      externalScore,
			Factors:            dedupeStrings(deterministic.Factors, externalFactors),
		},
	}
}

// dedupeStrings unions the given lists, keeping the first occurrence of each
// exact string.
func dedupeStrings(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
