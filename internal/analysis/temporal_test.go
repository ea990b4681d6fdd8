package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/wallet-persona/internal/models"
)

func TestAggregateTemporal_Buckets(t *testing.T) {
	// 2024-03-11 is a Monday.
	txs := []models.Transaction{
		txAt("a", time.Date(2024, 3, 11, 9, 15, 0, 0, time.UTC)),  // Mon 09:00
		txAt("b", time.Date(2024, 3, 11, 9, 45, 0, 0, time.UTC)),  // Mon 09:00
		txAt("c", time.Date(2024, 3, 13, 23, 5, 0, 0, time.UTC)),  // Wed 23:00
		txAt("d", time.Date(2024, 3, 17, 0, 30, 0, 0, time.UTC)),  // Sun 00:00
	}

	got := AggregateTemporal(txs)

	if got.CountByWeekday[0] != 2 { // Monday-first bucket 0
		t.Errorf("Expected 2 Monday transactions, got %d", got.CountByWeekday[0])
	}
	if got.CountByWeekday[2] != 1 {
		t.Errorf("Expected 1 Wednesday transaction, got %d", got.CountByWeekday[2])
	}
	if got.CountByWeekday[6] != 1 {
		t.Errorf("Expected 1 Sunday transaction, got %d", got.CountByWeekday[6])
	}
	if got.CountByHour[9] != 2 {
		t.Errorf("Expected 2 transactions in hour 9, got %d", got.CountByHour[9])
	}
	if got.CountByHour[23] != 1 {
		t.Errorf("Expected 1 transaction in hour 23, got %d", got.CountByHour[23])
	}
	if got.CountByHour[0] != 1 {
		t.Errorf("Expected 1 transaction in hour 0, got %d", got.CountByHour[0])
	}
}

func TestAggregateTemporal_UTCBucketing(t *testing.T) {
	// A timestamp constructed in a non-UTC zone must land in the UTC buckets.
	loc := time.FixedZone("UTC+8", 8*60*60)
	local := time.Date(2024, 3, 11, 2, 0, 0, 0, loc) // 2024-03-10 18:00 UTC, a Sunday

	got := AggregateTemporal([]models.Transaction{txAt("a", local)})

	if got.CountByWeekday[6] != 1 {
		t.Errorf("Expected the transaction in the UTC Sunday bucket, got %v", got.CountByWeekday)
	}
	if got.CountByHour[18] != 1 {
		t.Errorf("Expected the transaction in UTC hour 18, got %v", got.CountByHour)
	}
}

func TestAggregateTemporal_SingleTransactionRates(t *testing.T) {
	got := AggregateTemporal([]models.Transaction{
		txAt("only", time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)),
	})

	if got.PerDay != 1 || got.PerWeek != 1 || got.PerMonth != 1 {
		t.Errorf("Single transaction must rate as 1/1/1, got %v/%v/%v",
			got.PerDay, got.PerWeek, got.PerMonth)
	}
}

func TestAggregateTemporal_Rates(t *testing.T) {
	// 14 transactions spread over exactly 14 days.
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var txs []models.Transaction
	for i := 0; i < 15; i++ {
		txs = append(txs, txAt("tx", base.AddDate(0, 0, i)))
	}

	got := AggregateTemporal(txs)

	if math.Abs(got.PerDay-15.0/14.0) > 1e-9 {
		t.Errorf("Expected per-day rate %v, got %v", 15.0/14.0, got.PerDay)
	}
	if math.Abs(got.PerWeek-15.0/2.0) > 1e-9 {
		t.Errorf("Expected per-week rate 7.5, got %v", got.PerWeek)
	}
	expectedMonthly := 15.0 / (14.0 / 30.4375)
	if math.Abs(got.PerMonth-expectedMonthly) > 1e-9 {
		t.Errorf("Expected per-month rate %v, got %v", expectedMonthly, got.PerMonth)
	}
}

func TestAggregateTemporal_SubDaySpanFloored(t *testing.T) {
	// Two transactions 1 hour apart: the span floors to 1 day.
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	got := AggregateTemporal([]models.Transaction{
		txAt("a", base),
		txAt("b", base.Add(time.Hour)),
	})

	if got.PerDay != 2 {
		t.Errorf("Expected per-day rate 2 with floored span, got %v", got.PerDay)
	}
}

func TestAggregateTemporal_Empty(t *testing.T) {
	got := AggregateTemporal(nil)

	for i, c := range got.CountByWeekday {
		if c != 0 {
			t.Errorf("Expected empty weekday bucket %d, got %d", i, c)
		}
	}
	if got.PerDay != 0 || got.PerWeek != 0 || got.PerMonth != 0 {
		t.Errorf("Expected zero rates for empty input")
	}
}

func TestMondayFirstIndex(t *testing.T) {
	tests := []struct {
		day  time.Weekday
		want int
	}{
		{time.Monday, 0},
		{time.Tuesday, 1},
		{time.Saturday, 5},
		{time.Sunday, 6},
	}

	for _, tt := range tests {
		if got := mondayFirstIndex(tt.day); got != tt.want {
			t.Errorf("mondayFirstIndex(%v) = %d, want %d", tt.day, got, tt.want)
		}
	}
}
