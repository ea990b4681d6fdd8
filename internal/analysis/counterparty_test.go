package analysis

import (
	"fmt"
	"testing"

	"github.com/wallet-persona/internal/models"
	"github.com/wallet-persona/internal/types"
)

const testWallet = "0x1111111111111111111111111111111111111111"

func transfer(from, to string) models.Transaction {
	return models.Transaction{
		From: types.NewAddressField(from),
		To:   types.NewAddressField(to),
	}
}

func TestAggregateCounterparties_ExcludesWallet(t *testing.T) {
	txs := []models.Transaction{
		transfer(testWallet, "0xaaaa"),
		transfer("0xbbbb", testWallet),
	}

	got := AggregateCounterparties(txs, testWallet)

	if got.UniqueCount != 2 {
		t.Errorf("Expected 2 unique counterparties, got %d", got.UniqueCount)
	}
	for _, cp := range got.Top {
		if cp.Address == testWallet {
			t.Error("Wallet's own address must be excluded")
		}
	}
}

func TestAggregateCounterparties_CaseInsensitiveSelfMatch(t *testing.T) {
	upper := "0x1111111111111111111111111111111111111111"
	txs := []models.Transaction{
		transfer("0XAAAA", upper),
	}

	got := AggregateCounterparties(txs, testWallet)
	if got.UniqueCount != 1 {
		t.Fatalf("Expected 1 counterparty, got %d", got.UniqueCount)
	}
	if got.Top[0].Address != "0xaaaa" {
		t.Errorf("Expected lowercased counterparty address, got %q", got.Top[0].Address)
	}
}

func TestAggregateCounterparties_FrequencyRanking(t *testing.T) {
	var txs []models.Transaction
	// 0xcccc appears 3 times, 0xbbbb twice, 0xaaaa once.
	for i := 0; i < 3; i++ {
		txs = append(txs, transfer(testWallet, "0xcccc"))
	}
	for i := 0; i < 2; i++ {
		txs = append(txs, transfer(testWallet, "0xbbbb"))
	}
	txs = append(txs, transfer(testWallet, "0xaaaa"))

	got := AggregateCounterparties(txs, testWallet)

	if got.UniqueCount != 3 {
		t.Fatalf("Expected 3 unique counterparties, got %d", got.UniqueCount)
	}
	wantOrder := []string{"0xcccc", "0xbbbb", "0xaaaa"}
	for i, want := range wantOrder {
		if got.Top[i].Address != want {
			t.Errorf("Rank %d: expected %s, got %s", i, want, got.Top[i].Address)
		}
	}
	if got.Top[0].InteractionCount != 3 {
		t.Errorf("Expected 3 interactions for top counterparty, got %d", got.Top[0].InteractionCount)
	}
}

func TestAggregateCounterparties_TiesByFirstSeen(t *testing.T) {
	txs := []models.Transaction{
		transfer(testWallet, "0xfirst"),
		transfer(testWallet, "0xsecond"),
		transfer(testWallet, "0xthird"),
	}

	got := AggregateCounterparties(txs, testWallet)

	wantOrder := []string{"0xfirst", "0xsecond", "0xthird"}
	for i, want := range wantOrder {
		if got.Top[i].Address != want {
			t.Errorf("Tied counterparties must rank by first appearance: rank %d = %s, want %s",
				i, got.Top[i].Address, want)
		}
	}
}

func TestAggregateCounterparties_TopCappedAtFive(t *testing.T) {
	var txs []models.Transaction
	for i := 0; i < 8; i++ {
		txs = append(txs, transfer(testWallet, fmt.Sprintf("0xcp%02d", i)))
	}

	got := AggregateCounterparties(txs, testWallet)

	if got.UniqueCount != 8 {
		t.Errorf("Expected 8 unique counterparties, got %d", got.UniqueCount)
	}
	if len(got.Top) != 5 {
		t.Errorf("Expected top list capped at 5, got %d", len(got.Top))
	}
}

func TestAggregateCounterparties_InvalidFieldsSkipped(t *testing.T) {
	txs := []models.Transaction{
		{From: types.NewAddressField("0xaaaa")}, // To left invalid
		{To: types.NewAddressField("0xbbbb")},   // From left invalid
	}

	got := AggregateCounterparties(txs, testWallet)
	if got.UniqueCount != 2 {
		t.Errorf("Invalid fields must be skipped, not counted: got %d", got.UniqueCount)
	}
}

func TestAggregateCounterparties_Empty(t *testing.T) {
	got := AggregateCounterparties(nil, testWallet)
	if got.UniqueCount != 0 || len(got.Top) != 0 {
		t.Errorf("Expected empty stats, got %+v", got)
	}
}
