package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriods(t *testing.T) {
	t.Run(`IsValidPeriod check`, func(t *testing.T) {
		require.True(t, IsValidPeriod("2025-01"))
		require.True(t, IsValidPeriod("2025-12"))
		require.False(t, IsValidPeriod("2025-13"))
		require.False(t, IsValidPeriod("2025"))
		require.False(t, IsValidPeriod("01-2025"))
		require.False(t, IsValidPeriod(""))
	})

	t.Run(`PeriodBounds covers exactly one month`, func(t *testing.T) {
		from, to, err := PeriodBounds("2025-02")
		require.Nil(t, err)
		require.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), from)
		require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run(`PeriodBounds rolls over december`, func(t *testing.T) {
		from, to, err := PeriodBounds("2024-12")
		require.Nil(t, err)
		require.Equal(t, 2024, from.Year())
		require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run(`PeriodYear check`, func(t *testing.T) {
		require.Equal(t, 2025, PeriodYear("2025-06"))
		require.Equal(t, 0, PeriodYear("bogus"))
	})

	t.Run(`CurrentPeriod check`, func(t *testing.T) {
		now := time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC)
		require.Equal(t, "2025-07", CurrentPeriod(now))
	})
}

func TestRound1(t *testing.T) {
	t.Run(`rounds to one decimal`, func(t *testing.T) {
		require.Equal(t, 21.4, Round1(21.42857))
		require.Equal(t, 2.5, Round1(2.46))
		require.Equal(t, 0.0, Round1(0))
		require.Equal(t, -1.3, Round1(-1.26))
	})
}
