//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"reservas-backend/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewTimeRange(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		tr, err := reservation.NewTimeRange("10:00", "13:00")
		require.NoError(t, err)
		assert.Equal(t, "10:00", tr.Start())
		assert.Equal(t, "13:00", tr.End())
		assert.Equal(t, 3, tr.DurationHours())
	})

	t.Run("rejects invalid windows", func(t *testing.T) {
		cases := []struct {
			name       string
			start, end string
		}{
			{"end equals start", "10:00", "10:00"},
			{"end before start", "14:00", "12:00"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := reservation.NewTimeRange(tc.start, tc.end)
				assert.ErrorIs(t, err, reservation.ErrInvalidTimeRange)
			})
		}
	})

	t.Run("rejects malformed times", func(t *testing.T) {
		_, err := reservation.NewTimeRange("25:00", "26:00")
		assert.Error(t, err)
	})

	t.Run("half-open overlap", func(t *testing.T) {
		a, _ := reservation.NewTimeRange("10:00", "12:00")
		b, _ := reservation.NewTimeRange("12:00", "14:00")
		c, _ := reservation.NewTimeRange("11:00", "13:00")

		assert.False(t, a.Overlaps(b), "back-to-back slots do not collide")
		assert.True(t, a.Overlaps(c))
		assert.True(t, c.Overlaps(b))
	})
}

func TestNewDates(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		d, err := reservation.NewDates("2025-06-02", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, reservation.ModeSingle, d.Mode())
		assert.Len(t, d.Candidates(), 1)
	})

	t.Run("end date equal to start collapses to single mode", func(t *testing.T) {
		d, err := reservation.NewDates("2025-06-02", strPtr("2025-06-02"), nil)
		require.NoError(t, err)
		assert.Equal(t, reservation.ModeSingle, d.Mode())
	})

	t.Run("range mode", func(t *testing.T) {
		d, err := reservation.NewDates("2025-06-02", strPtr("2025-06-06"), nil)
		require.NoError(t, err)
		assert.Equal(t, reservation.ModeRange, d.Mode())
		assert.Len(t, d.Candidates(), 5)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := reservation.NewDates("2025-06-06", strPtr("2025-06-02"), nil)
		assert.ErrorIs(t, err, reservation.ErrEndBeforeStart)
	})

	t.Run("discrete dates are deduplicated and sorted", func(t *testing.T) {
		d, err := reservation.NewDates("", nil, []string{"2025-06-09", "2025-06-02", "2025-06-09", "2025-06-05"})
		require.NoError(t, err)
		assert.Equal(t, reservation.ModeDiscrete, d.Mode())

		got := d.Candidates()
		require.Len(t, got, 3)
		assert.Equal(t, "2025-06-02", reservation.FormatDate(got[0]))
		assert.Equal(t, "2025-06-05", reservation.FormatDate(got[1]))
		assert.Equal(t, "2025-06-09", reservation.FormatDate(got[2]))
	})

	t.Run("discrete combined with end date", func(t *testing.T) {
		_, err := reservation.NewDates("2025-06-02", strPtr("2025-06-06"), []string{"2025-06-09"})
		assert.ErrorIs(t, err, reservation.ErrMixedDateModes)
	})

	t.Run("no dates at all", func(t *testing.T) {
		_, err := reservation.NewDates("", nil, nil)
		assert.ErrorIs(t, err, reservation.ErrNoDates)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := reservation.NewDates("02-06-2025", nil, nil)
		assert.ErrorIs(t, err, reservation.ErrInvalidDate)
	})
}

func TestBillableDates(t *testing.T) {
	t.Run("range bills weekdays only", func(t *testing.T) {
		// Friday through Monday
		d, err := reservation.NewDates("2025-06-06", strPtr("2025-06-09"), nil)
		require.NoError(t, err)

		billable, err := d.BillableDates()
		require.NoError(t, err)
		require.Len(t, billable, 2)
		assert.Equal(t, time.Friday, billable[0].Weekday())
		assert.Equal(t, time.Monday, billable[1].Weekday())
	})

	t.Run("weekend-only range has no billable days", func(t *testing.T) {
		d, err := reservation.NewDates("2025-06-07", strPtr("2025-06-08"), nil)
		require.NoError(t, err)

		_, err = d.BillableDates()
		assert.ErrorIs(t, err, reservation.ErrNoBillableDays)
	})

	t.Run("discrete dates bill weekends too", func(t *testing.T) {
		d, err := reservation.NewDates("", nil, []string{"2025-06-07", "2025-06-08"})
		require.NoError(t, err)

		billable, err := d.BillableDates()
		require.NoError(t, err)
		assert.Len(t, billable, 2)
	})

	t.Run("single saturday is billable", func(t *testing.T) {
		d, err := reservation.NewDates("2025-06-07", nil, nil)
		require.NoError(t, err)

		billable, err := d.BillableDates()
		require.NoError(t, err)
		assert.Len(t, billable, 1)
	})
}
