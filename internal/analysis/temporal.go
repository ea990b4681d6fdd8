package analysis

import (
	"time"

	"github.com/wallet-persona/internal/models"
)

// WeekdayLabels orders the weekday buckets Monday-first.
var WeekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

const (
	secondsPerDay = 24 * 60 * 60
	daysPerWeek   = 7.0
	daysPerMonth  = 30.4375 // calendar-average month
)

// TemporalDistribution buckets transactions by weekday and hour-of-day and
// carries average transaction rates over the observed span.
type TemporalDistribution struct {
	CountByWeekday [7]int  `json:"countByWeekday"` // Monday-first
	CountByHour    [24]int `json:"countByHour"`
	PerDay         float64 `json:"perDay"`
	PerWeek        float64 `json:"perWeek"`
	PerMonth       float64 `json:"perMonth"`
}

// AggregateTemporal computes the temporal distribution over every
// transaction in the filtered set, successful or not. Bucketing is
// UTC-normalized so the result does not depend on the deployment
// environment's local time zone.
func AggregateTemporal(txs []models.Transaction) TemporalDistribution {
	var dist TemporalDistribution
	if len(txs) == 0 {
		return dist
	}

	for i := range txs {
		t := time.Unix(txs[i].Timestamp, 0).UTC()
		dist.CountByWeekday[mondayFirstIndex(t.Weekday())]++
		dist.CountByHour[t.Hour()]++
	}

	if len(txs) == 1 {
		// Degenerate span: a single transaction counts as one per day, week
		// and month.
		dist.PerDay, dist.PerWeek, dist.PerMonth = 1, 1, 1
		return dist
	}

	spanSeconds := txs[len(txs)-1].Timestamp - txs[0].Timestamp
	spanDays := float64(spanSeconds) / secondsPerDay
	if spanDays < 1 {
		spanDays = 1
	}

	count := float64(len(txs))
	dist.PerDay = count / spanDays
	dist.PerWeek = count / (spanDays / daysPerWeek)
	dist.PerMonth = count / (spanDays / daysPerMonth)

	return dist
}

// mondayFirstIndex maps time.Weekday (Sunday = 0) onto the Monday-first
// bucket order.
func mondayFirstIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
