package analysis

import (
	"sort"

	"github.com/wallet-persona/internal/models"
	"github.com/wallet-persona/internal/types"
)

// topCounterparties caps the ranked counterparty list.
const topCounterparties = 5

// CounterpartyStats holds the distinct counterparty count and the top
// counterparties by interaction frequency.
type CounterpartyStats struct {
	UniqueCount int                  `json:"uniqueCount"`
	Top         []types.Counterparty `json:"top,omitempty"`
}

// orderedCounter is an insertion-ordered frequency counter. Keys keep their
// first-seen position, which makes the "ties broken by first-seen order"
// guarantee structural rather than incidental to map iteration.
type orderedCounter struct {
	keys   []string
	counts map[string]int
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) increment(key string) {
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

func (c *orderedCounter) len() int {
	return len(c.keys)
}

// topN returns the n highest-frequency keys. The sort is stable over the
// insertion order, so equal counts rank by first appearance.
func (c *orderedCounter) topN(n int) []types.Counterparty {
	ranked := make([]types.Counterparty, 0, len(c.keys))
	for _, key := range c.keys {
		ranked = append(ranked, types.Counterparty{
			Address:          key,
			InteractionCount: c.counts[key],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].InteractionCount > ranked[j].InteractionCount
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// AggregateCounterparties builds the frequency ranking of addresses the
// wallet has interacted with. The wallet's own address and unparseable
// address fields are excluded.
func AggregateCounterparties(txs []models.Transaction, walletAddress string) CounterpartyStats {
	counter := newOrderedCounter()

	for i := range txs {
		for _, field := range [2]types.AddressField{txs[i].From, txs[i].To} {
			addr, ok := field.Normalized()
			if !ok || addr == "" {
				continue
			}
			if field.Equals(walletAddress) {
				continue
			}
			counter.increment(addr)
		}
	}

	return CounterpartyStats{
		UniqueCount: counter.len(),
		Top:         counter.topN(topCounterparties),
	}
}
