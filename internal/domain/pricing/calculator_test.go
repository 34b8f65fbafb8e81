//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"reservas-backend/internal/domain/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nd(v int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
}

var (
	// 2025-06-02 is a Monday, 2025-06-07 a Saturday.
	monday   = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
)

func TestBaseNet(t *testing.T) {
	t.Run("weekday general rate", func(t *testing.T) {
		card := pricing.RateCard{SpaceName: "Sala chica", HourlyRate: nd(10000), MemberHourlyRate: nd(8000)}

		base, err := pricing.BaseNet(card, monday, 3, false)
		require.NoError(t, err)
		assert.Equal(t, "30000", base.String())
	})

	t.Run("weekday member rate", func(t *testing.T) {
		card := pricing.RateCard{SpaceName: "Sala chica", HourlyRate: nd(10000), MemberHourlyRate: nd(8000)}

		base, err := pricing.BaseNet(card, monday, 3, true)
		require.NoError(t, err)
		assert.Equal(t, "24000", base.String())
	})

	t.Run("member falls back to general rate when member rate is missing", func(t *testing.T) {
		card := pricing.RateCard{SpaceName: "Sala chica", HourlyRate: nd(10000)}

		base, err := pricing.BaseNet(card, monday, 2, true)
		require.NoError(t, err)
		assert.Equal(t, "20000", base.String())
	})

	t.Run("no rate configured", func(t *testing.T) {
		card := pricing.RateCard{SpaceName: "Sala chica"}

		_, err := pricing.BaseNet(card, monday, 2, false)
		assert.ErrorIs(t, err, pricing.ErrNoRateResolved)
	})

	t.Run("zero hours", func(t *testing.T) {
		card := pricing.RateCard{SpaceName: "Sala chica", HourlyRate: nd(10000)}

		_, err := pricing.BaseNet(card, monday, 0, false)
		assert.ErrorIs(t, err, pricing.ErrInvalidDuration)
	})

	t.Run("saturday member pays flat net fee regardless of hours", func(t *testing.T) {
		card := pricing.RateCard{SpaceName: "Sala chica", HourlyRate: nd(10000), MemberHourlyRate: nd(8000)}

		for _, hours := range []int{1, 3, 8} {
			base, err := pricing.BaseNet(card, saturday, hours, true)
			require.NoError(t, err)
			assert.Equal(t, "25000", base.String())
		}
	})

	t.Run("saturday general net backs the tax out of the published total", func(t *testing.T) {
		card := pricing.RateCard{SpaceName: "Sala chica", HourlyRate: nd(10000)}

		base, err := pricing.BaseNet(card, saturday, 3, false)
		require.NoError(t, err)
		// 3h at a 12000 tax-inclusive hourly figure
		assert.Equal(t, "30252.1", base.String())
	})

	t.Run("saturday space outside the schedule uses hourly pricing", func(t *testing.T) {
		card := pricing.RateCard{SpaceName: "Terraza", HourlyRate: nd(9000)}

		base, err := pricing.BaseNet(card, saturday, 2, false)
		require.NoError(t, err)
		assert.Equal(t, "18000", base.String())
	})
}

func TestSettle(t *testing.T) {
	t.Run("tax and total derive from the discounted net", func(t *testing.T) {
		b := pricing.Settle(decimal.NewFromInt(30000), decimal.NewFromInt(5000))

		assert.Equal(t, "25000", b.Net.String())
		assert.Equal(t, "5000", b.Discount.String())
		assert.Equal(t, "4750", b.Tax.String())
		assert.Equal(t, "29750", b.Total.String())
	})

	t.Run("discount is clamped at the base", func(t *testing.T) {
		b := pricing.Settle(decimal.NewFromInt(10000), decimal.NewFromInt(99999))

		assert.Equal(t, "0", b.Net.String())
		assert.Equal(t, "10000", b.Discount.String())
		assert.Equal(t, "0", b.Tax.String())
		assert.Equal(t, "0", b.Total.String())
	})

	t.Run("zero discount", func(t *testing.T) {
		b := pricing.Settle(decimal.NewFromInt(20000), decimal.Zero)

		assert.Equal(t, "20000", b.Net.String())
		assert.Equal(t, "3800", b.Tax.String())
		assert.Equal(t, "23800", b.Total.String())
	})
}

func TestCalculate(t *testing.T) {
	t.Run("saturday general total re-yields the published amount exactly", func(t *testing.T) {
		card := pricing.RateCard{SpaceName: "Sala chica", HourlyRate: nd(10000)}

		b, err := pricing.Calculate(card, saturday, 3, false, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "36000.00", b.Total.StringFixed(2))
	})

	t.Run("propagates rate resolution errors", func(t *testing.T) {
		_, err := pricing.Calculate(pricing.RateCard{SpaceName: "x"}, monday, 2, false, decimal.Zero)
		assert.ErrorIs(t, err, pricing.ErrNoRateResolved)
	})
}

func TestSaturdayRateFor(t *testing.T) {
	sat, ok := pricing.SaturdayRateFor("Salón auditorio")
	require.True(t, ok)
	assert.Equal(t, "50000", sat.MemberFlatNet.String())
	assert.Equal(t, "25000", sat.GeneralHourlyTotal.String())

	_, ok = pricing.SaturdayRateFor("Terraza")
	assert.False(t, ok)
}
