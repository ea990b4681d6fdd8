package analysis

import (
	"reflect"
	"testing"
	"time"

	"github.com/wallet-persona/internal/models"
	"github.com/wallet-persona/internal/types"
)

func analyzerFixture() []models.Transaction {
	base := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	return []models.Transaction{
		{
			Hash:      "in1",
			From:      types.NewAddressField("0xaaaa"),
			To:        types.NewAddressField(testWallet),
			Timestamp: base.Unix(),
			Status:    types.StatusSuccess,
			GasPrice:  strp("20000000000"),
			GasUsed:   strp("21000"),
		},
		{
			Hash:      "out1",
			From:      types.NewAddressField(testWallet),
			To:        types.NewAddressField("0xbbbb"),
			Timestamp: base.Add(time.Hour).Unix(),
			Status:    types.StatusSuccess,
			GasPrice:  strp("20000000000"),
			GasUsed:   strp("21000"),
		},
		{
			Hash:            "create",
			From:            types.NewAddressField(testWallet),
			Timestamp:       base.Add(2 * time.Hour).Unix(),
			Status:          types.StatusSuccess,
			ContractAddress: strp("0xcontract"),
			GasPrice:        strp("50000000000"),
			GasUsed:         strp("800000"),
		},
		{
			Hash:      "failed1",
			From:      types.NewAddressField(testWallet),
			To:        types.NewAddressField("0xcccc"),
			Timestamp: base.Add(3 * time.Hour).Unix(),
			Status:    types.StatusFailed,
			GasPrice:  strp("20000000000"),
			GasUsed:   strp("21000"),
		},
	}
}

func TestAnalyze_FullPass(t *testing.T) {
	txs := analyzerFixture()

	got := Analyze(txs, testWallet, 2000, nil, nil)

	if got.TransactionCountInRange != 4 {
		t.Errorf("Expected 4 transactions in range, got %d", got.TransactionCountInRange)
	}
	if got.Directional == nil || got.Gas == nil || got.Temporal == nil || got.Counterparties == nil {
		t.Fatal("Expected all aggregate sections populated")
	}
	if got.Directional.Inbound != 1 {
		t.Errorf("Expected 1 inbound, got %d", got.Directional.Inbound)
	}
	if got.Directional.Outbound != 3 {
		t.Errorf("Expected 3 outbound, got %d", got.Directional.Outbound)
	}
	if got.Directional.ContractCreations != 1 {
		t.Errorf("Expected 1 contract creation, got %d", got.Directional.ContractCreations)
	}
	if got.Directional.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", got.Directional.Failed)
	}
	if got.Counterparties.UniqueCount != 3 {
		t.Errorf("Expected 3 counterparties, got %d", got.Counterparties.UniqueCount)
	}
}

func TestAnalyze_EmptyRangeCountOnly(t *testing.T) {
	txs := analyzerFixture()
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	got := Analyze(txs, testWallet, 2000, &start, nil)

	if got.TransactionCountInRange != 0 {
		t.Errorf("Expected 0 in range, got %d", got.TransactionCountInRange)
	}
	if got.Directional != nil || got.Gas != nil || got.Temporal != nil || got.Counterparties != nil {
		t.Error("Empty range must populate only the count")
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	txs := analyzerFixture()

	first := Analyze(txs, testWallet, 2000, nil, nil)
	second := Analyze(txs, testWallet, 2000, nil, nil)

	if !reflect.DeepEqual(first, second) {
		t.Error("Identical inputs must yield identical results")
	}
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	txs := analyzerFixture()
	before := make([]models.Transaction, len(txs))
	copy(before, txs)

	Analyze(txs, testWallet, 2000, nil, nil)

	if !reflect.DeepEqual(txs, before) {
		t.Error("Analyze must not mutate the input slice")
	}
}

func TestAnalyze_RangeSelection(t *testing.T) {
	// Spread the fixture one transaction per day so the window bites.
	txs := analyzerFixture()
	for i := range txs {
		txs[i].Timestamp += int64(i) * 86400
	}

	start := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
	got := Analyze(txs, testWallet, 2000, &start, &end)

	if got.TransactionCountInRange != 2 {
		t.Errorf("Expected 2 transactions in the 2-day window, got %d", got.TransactionCountInRange)
	}
}
