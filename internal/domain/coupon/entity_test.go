//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"reservas-backend/internal/domain/coupon"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type couponParams struct {
	discountType  coupon.DiscountType
	discountValue decimal.Decimal
	validFrom     *time.Time
	validTo       *time.Time
	maxUses       *int32
	currentUses   int32
	minNetAmount  decimal.Decimal
	active        bool
	singleUse     bool
}

func buildCoupon(t *testing.T, mutate func(*couponParams)) *coupon.Coupon {
	t.Helper()
	p := couponParams{
		discountType:  coupon.DiscountPercentage,
		discountValue: decimal.NewFromInt(10),
		active:        true,
	}
	if mutate != nil {
		mutate(&p)
	}
	c, err := coupon.New(uuid.New(), "VERANO10", p.discountType, p.discountValue,
		p.validFrom, p.validTo, p.maxUses, p.currentUses, p.minNetAmount, p.active, p.singleUse)
	require.NoError(t, err)
	return c
}

func timePtr(t time.Time) *time.Time { return &t }
func int32Ptr(v int32) *int32        { return &v }

var evalDay = time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	_, err := coupon.New(uuid.New(), "X", coupon.DiscountType("descuento"), decimal.Zero,
		nil, nil, nil, 0, decimal.Zero, true, false)
	assert.ErrorIs(t, err, coupon.ErrUnknownDiscountType)
}

func TestEvaluate(t *testing.T) {
	base := decimal.NewFromInt(30000)

	t.Run("percentage discount", func(t *testing.T) {
		c := buildCoupon(t, nil)

		res := c.Evaluate(base, evalDay)
		require.True(t, res.Valid)
		assert.Equal(t, "3000", res.Discount.String())
	})

	t.Run("fixed discount", func(t *testing.T) {
		c := buildCoupon(t, func(p *couponParams) {
			p.discountType = coupon.DiscountFixed
			p.discountValue = decimal.NewFromInt(5000)
		})

		res := c.Evaluate(base, evalDay)
		require.True(t, res.Valid)
		assert.Equal(t, "5000", res.Discount.String())
	})

	t.Run("fixed discount is clamped at the base", func(t *testing.T) {
		c := buildCoupon(t, func(p *couponParams) {
			p.discountType = coupon.DiscountFixed
			p.discountValue = decimal.NewFromInt(99999)
		})

		res := c.Evaluate(base, evalDay)
		require.True(t, res.Valid)
		assert.True(t, res.Discount.Equal(base))
	})

	t.Run("invalidity reasons", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*couponParams)
			reason string
		}{
			{
				name:   "inactive",
				mutate: func(p *couponParams) { p.active = false },
				reason: "coupon inactive",
			},
			{
				name:   "not yet valid",
				mutate: func(p *couponParams) { p.validFrom = timePtr(evalDay.AddDate(0, 0, 1)) },
				reason: "coupon not yet valid",
			},
			{
				name:   "expired",
				mutate: func(p *couponParams) { p.validTo = timePtr(evalDay.AddDate(0, 0, -1)) },
				reason: "coupon expired",
			},
			{
				name: "usage cap reached",
				mutate: func(p *couponParams) {
					p.maxUses = int32Ptr(5)
					p.currentUses = 5
				},
				reason: "coupon usage cap reached",
			},
			{
				name:   "minimum net amount not met",
				mutate: func(p *couponParams) { p.minNetAmount = decimal.NewFromInt(50000) },
				reason: "minimum net amount not met",
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				res := buildCoupon(t, tc.mutate).Evaluate(base, evalDay)
				assert.False(t, res.Valid)
				assert.Equal(t, tc.reason, res.Reason)
				assert.True(t, res.Discount.IsZero())
			})
		}
	})

	t.Run("boundary days are inclusive", func(t *testing.T) {
		c := buildCoupon(t, func(p *couponParams) {
			p.validFrom = timePtr(time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC))
			p.validTo = timePtr(time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC))
		})

		// Same calendar day as both bounds, time of day ignored.
		res := c.Evaluate(base, evalDay)
		assert.True(t, res.Valid)
	})

	t.Run("remaining uses under the cap", func(t *testing.T) {
		c := buildCoupon(t, func(p *couponParams) {
			p.maxUses = int32Ptr(5)
			p.currentUses = 4
		})

		res := c.Evaluate(base, evalDay)
		assert.True(t, res.Valid)
	})

	t.Run("negative discount value yields zero", func(t *testing.T) {
		c := buildCoupon(t, func(p *couponParams) {
			p.discountType = coupon.DiscountFixed
			p.discountValue = decimal.NewFromInt(-100)
		})

		res := c.Evaluate(base, evalDay)
		require.True(t, res.Valid)
		assert.True(t, res.Discount.IsZero())
	})
}
