package helpers

import (
	"context"
	"math"
	"time"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

const periodLayout = "2006-01"

func IsValidPeriod(period string) bool {
	_, err := time.Parse(periodLayout, period)
	return err == nil
}

// PeriodBounds returns the first instant of the period's month and the first
// instant of the following month.
func PeriodBounds(period string) (from, to time.Time, err error) {
	from, err = time.Parse(periodLayout, period)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, from.AddDate(0, 1, 0), nil
}

func PeriodYear(period string) int {
	t, err := time.Parse(periodLayout, period)
	if err != nil {
		return 0
	}
	return t.Year()
}

func CurrentPeriod(now time.Time) string {
	return now.Format(periodLayout)
}

// Round1 rounds to one decimal place.
func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}
