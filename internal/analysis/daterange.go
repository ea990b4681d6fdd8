// Package analysis implements the transaction analytics pass: date range
// selection, gas economics, temporal distributions, and counterparty
// statistics over a wallet's transaction history.
package analysis

import (
	"time"

	"github.com/wallet-persona/internal/models"
)

// SelectRange returns the contiguous subsequence of transactions falling
// inside the optional [start, end] date bounds. The input is presumed
// already sorted ascending by timestamp; this is a boundary scan, not a
// sort. The start date is floored to 00:00:00 UTC and the end date ceiled
// to 23:59:59 UTC, so bounds are inclusive whole days.
func SelectRange(txs []models.Transaction, start, end *time.Time) []models.Transaction {
	lo := 0
	if start != nil {
		startTS := floorToDay(*start).Unix()
		lo = len(txs)
		for i, tx := range txs {
			if tx.Timestamp >= startTS {
				lo = i
				break
			}
		}
	}

	hi := len(txs)
	if end != nil {
		endTS := ceilToDay(*end).Unix()
		for i := lo; i < len(txs); i++ {
			if txs[i].Timestamp > endTS {
				hi = i
				break
			}
		}
	}

	// A start past the end bound yields an empty range, never a negative one.
	if lo > hi {
		lo = hi
	}

	return txs[lo:hi]
}

// floorToDay truncates a time to the start of its UTC day.
func floorToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ceilToDay extends a time to the last second of its UTC day.
func ceilToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 0, time.UTC)
}
