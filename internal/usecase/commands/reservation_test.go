//go:build unit

package commands_test

import (
	"context"
	"testing"

	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func baseRequest(spaceID uuid.UUID) reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		SpaceID:       spaceID,
		CustomerName:  "Ana Rojas",
		CustomerEmail: "ana@example.com",
		StartDate:     "2025-06-02", // Monday
		StartTime:     "10:00",
		EndTime:       "12:00",
	}
}

func (f *fixture) seedMember(rut string, active bool) *shared.MemberSnapshot {
	snap := &shared.MemberSnapshot{
		ID:       uuid.New(),
		RUT:      rut,
		FullName: "Socio de Prueba",
		Email:    "socio@example.com",
		Active:   active,
	}
	f.reads.members[rut] = snap
	return snap
}

func (f *fixture) seedFixedCoupon(code string, value int64, singleUse bool) *shared.CouponSnapshot {
	snap := &shared.CouponSnapshot{
		ID:                 uuid.New(),
		Code:               code,
		DiscountType:       "fijo",
		DiscountValue:      decimal.NewFromInt(value),
		Active:             true,
		SingleUsePerMember: singleUse,
	}
	f.reads.coupons[code] = snap
	return snap
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("single day booking for the general public", func(t *testing.T) {
		f := newFixture()

		result, err := f.reservationCommands().Create(ctx, baseRequest(f.spaceID))
		require.NoError(t, err)
		require.Len(t, result.Reservations, 1)

		view := result.Reservations[0]
		assert.Equal(t, "pendiente", view.Status)
		assert.Equal(t, "pendiente", view.PaymentStatus)
		assert.Equal(t, "20000", view.NetAmount.String())
		assert.Equal(t, "3800", view.TaxAmount.String())
		assert.Equal(t, "23800", view.TotalAmount.String())
		assert.False(t, result.CouponValid)
		assert.Equal(t, 1, f.notifier.created)
	})

	t.Run("member rate applies", func(t *testing.T) {
		f := newFixture()
		f.seedMember("12345678k", true)

		req := baseRequest(f.spaceID)
		req.MemberRUT = strPtr("12.345.678-K")

		result, err := f.reservationCommands().Create(ctx, req)
		require.NoError(t, err)
		require.Len(t, result.Reservations, 1)
		assert.Equal(t, "16000", result.Reservations[0].NetAmount.String())
	})

	t.Run("unknown space", func(t *testing.T) {
		f := newFixture()
		req := baseRequest(uuid.New())

		_, err := f.reservationCommands().Create(ctx, req)
		assert.ErrorIs(t, err, commands.ErrSpaceNotFound)
	})

	t.Run("inactive space", func(t *testing.T) {
		f := newFixture()
		f.reads.spaces[f.spaceID].Active = false

		_, err := f.reservationCommands().Create(ctx, baseRequest(f.spaceID))
		assert.ErrorIs(t, err, commands.ErrSpaceUnavailable)
	})

	t.Run("blocked date", func(t *testing.T) {
		f := newFixture()
		f.reads.blockedDays["2025-06-02"] = true

		_, err := f.reservationCommands().Create(ctx, baseRequest(f.spaceID))
		assert.ErrorIs(t, err, commands.ErrDateBlocked)
		assert.Empty(t, f.resRepo.created)
	})

	t.Run("blocked date applies to every space", func(t *testing.T) {
		f := newFixture()
		f.reads.blockedDays["2025-06-02"] = true

		otherID := uuid.New()
		f.reads.spaces[otherID] = &shared.SpaceSnapshot{
			ID:         otherID,
			Name:       "Sala grande",
			Capacity:   40,
			HourlyRate: decimal.NullDecimal{Decimal: decimal.NewFromInt(15000), Valid: true},
			Active:     true,
		}

		_, err := f.reservationCommands().Create(ctx, baseRequest(otherID))
		assert.ErrorIs(t, err, commands.ErrDateBlocked)
		assert.Empty(t, f.resRepo.created)
	})

	t.Run("overlapping slot", func(t *testing.T) {
		f := newFixture()
		f.reads.overlapDays["2025-06-02"] = true

		_, err := f.reservationCommands().Create(ctx, baseRequest(f.spaceID))
		assert.ErrorIs(t, err, commands.ErrReservationConflict)
	})

	t.Run("overlap on any day of a range rejects the whole booking", func(t *testing.T) {
		f := newFixture()
		f.reads.overlapDays["2025-06-04"] = true

		req := baseRequest(f.spaceID)
		req.EndDate = strPtr("2025-06-06")

		_, err := f.reservationCommands().Create(ctx, req)
		assert.ErrorIs(t, err, commands.ErrReservationConflict)
		assert.Empty(t, f.resRepo.created)
	})

	t.Run("unknown member rut", func(t *testing.T) {
		f := newFixture()
		req := baseRequest(f.spaceID)
		req.MemberRUT = strPtr("99.999.999-9")

		_, err := f.reservationCommands().Create(ctx, req)
		assert.ErrorIs(t, err, commands.ErrMemberNotFound)
	})

	t.Run("inactive member", func(t *testing.T) {
		f := newFixture()
		f.seedMember("12345678k", false)

		req := baseRequest(f.spaceID)
		req.MemberRUT = strPtr("12345678k")

		_, err := f.reservationCommands().Create(ctx, req)
		assert.ErrorIs(t, err, commands.ErrMemberInactive)
	})

	t.Run("weekly quota", func(t *testing.T) {
		t.Run("booking up to the limit passes", func(t *testing.T) {
			f := newFixture()
			f.seedMember("12345678k", true)
			f.reads.bookedHours["2025-06-02"] = 4

			req := baseRequest(f.spaceID)
			req.MemberRUT = strPtr("12345678k")

			_, err := f.reservationCommands().Create(ctx, req) // 2h on top of 4h
			assert.NoError(t, err)
		})

		t.Run("exceeding the limit is rejected", func(t *testing.T) {
			f := newFixture()
			f.seedMember("12345678k", true)
			f.reads.bookedHours["2025-06-02"] = 4

			req := baseRequest(f.spaceID)
			req.MemberRUT = strPtr("12345678k")
			req.EndTime = "13:00" // 3h on top of 4h

			_, err := f.reservationCommands().Create(ctx, req)
			assert.ErrorIs(t, err, commands.ErrQuotaExceeded)
		})

		t.Run("quota is tracked per calendar week", func(t *testing.T) {
			f := newFixture()
			f.seedMember("12345678k", true)
			f.reads.bookedHours["2025-06-02"] = 5

			// Friday through the next Monday: 2h land in the loaded week,
			// 2h in the empty one.
			req := baseRequest(f.spaceID)
			req.MemberRUT = strPtr("12345678k")
			req.StartDate = "2025-06-06"
			req.EndDate = strPtr("2025-06-09")

			_, err := f.reservationCommands().Create(ctx, req)
			assert.ErrorIs(t, err, commands.ErrQuotaExceeded)

			f.reads.bookedHours["2025-06-02"] = 4
			_, err = f.reservationCommands().Create(ctx, req)
			assert.NoError(t, err)
		})
	})

	t.Run("coupon failures never fail the booking", func(t *testing.T) {
		f := newFixture()
		req := baseRequest(f.spaceID)
		req.CouponCode = strPtr("NOEXISTE")

		result, err := f.reservationCommands().Create(ctx, req)
		require.NoError(t, err)
		assert.False(t, result.CouponValid)
		assert.Equal(t, "coupon not found", result.CouponReason)
		assert.Equal(t, "20000", result.Reservations[0].NetAmount.String())
		assert.Equal(t, 0, f.coupRepo.incrementCalls)
	})

	t.Run("valid coupon discounts and burns one use", func(t *testing.T) {
		f := newFixture()
		f.seedFixedCoupon("PROMO", 5000, false)

		req := baseRequest(f.spaceID)
		req.CouponCode = strPtr("PROMO")

		result, err := f.reservationCommands().Create(ctx, req)
		require.NoError(t, err)
		assert.True(t, result.CouponValid)

		view := result.Reservations[0]
		assert.Equal(t, "15000", view.NetAmount.String())
		assert.Equal(t, "5000", view.DiscountAmount.String())
		assert.Equal(t, 1, f.coupRepo.incrementCalls)
		assert.Equal(t, 0, f.coupRepo.recordCalls, "redemption rows are only for single-use coupons")
	})

	t.Run("losing the last coupon use aborts the booking", func(t *testing.T) {
		f := newFixture()
		f.seedFixedCoupon("PROMO", 5000, false)
		f.coupRepo.incrementOK = false

		req := baseRequest(f.spaceID)
		req.CouponCode = strPtr("PROMO")

		_, err := f.reservationCommands().Create(ctx, req)
		assert.ErrorIs(t, err, commands.ErrReservationConflict)
	})

	t.Run("single-use coupon records the redemption", func(t *testing.T) {
		f := newFixture()
		f.seedMember("12345678k", true)
		f.seedFixedCoupon("UNICO", 3000, true)

		req := baseRequest(f.spaceID)
		req.MemberRUT = strPtr("12345678k")
		req.CouponCode = strPtr("UNICO")

		_, err := f.reservationCommands().Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 1, f.coupRepo.recordCalls)
	})

	t.Run("concurrent duplicate redemption surfaces as coupon already used", func(t *testing.T) {
		f := newFixture()
		f.seedMember("12345678k", true)
		f.seedFixedCoupon("UNICO", 3000, true)
		f.coupRepo.recordErr = infra.WrapRepoErr("duplicate redemption", nil, infra.KindDuplicateKey)

		req := baseRequest(f.spaceID)
		req.MemberRUT = strPtr("12345678k")
		req.CouponCode = strPtr("UNICO")

		_, err := f.reservationCommands().Create(ctx, req)
		assert.ErrorIs(t, err, commands.ErrCouponAlreadyUsed)
	})

	t.Run("already-used single-use coupon is soft-rejected upfront", func(t *testing.T) {
		f := newFixture()
		f.seedMember("12345678k", true)
		snap := f.seedFixedCoupon("UNICO", 3000, true)
		f.reads.couponUsed[snap.ID] = true

		req := baseRequest(f.spaceID)
		req.MemberRUT = strPtr("12345678k")
		req.CouponCode = strPtr("UNICO")

		result, err := f.reservationCommands().Create(ctx, req)
		require.NoError(t, err)
		assert.False(t, result.CouponValid)
		assert.Equal(t, "coupon already used by member", result.CouponReason)
	})

	t.Run("range booking produces a single row over billable weekdays", func(t *testing.T) {
		f := newFixture()
		req := baseRequest(f.spaceID)
		req.EndDate = strPtr("2025-06-06") // Mon..Fri, 2h each

		result, err := f.reservationCommands().Create(ctx, req)
		require.NoError(t, err)
		require.Len(t, result.Reservations, 1)
		assert.Equal(t, "100000", result.Reservations[0].NetAmount.String())
		require.NotNil(t, result.Reservations[0].EndDate)
	})

	t.Run("discrete booking creates one row per date and splits the discount", func(t *testing.T) {
		f := newFixture()
		f.seedFixedCoupon("PROMO", 1000, false)

		req := baseRequest(f.spaceID)
		req.StartDate = ""
		req.Dates = []string{"2025-06-02", "2025-06-03", "2025-06-04"}
		req.CouponCode = strPtr("PROMO")

		result, err := f.reservationCommands().Create(ctx, req)
		require.NoError(t, err)
		require.Len(t, result.Reservations, 3)

		sum := decimal.Zero
		for _, v := range result.Reservations {
			sum = sum.Add(v.DiscountAmount)
		}
		assert.Equal(t, "1000", sum.String(), "discount parts must sum to the whole")
		assert.Equal(t, "333.33", result.Reservations[0].DiscountAmount.String())
		assert.Equal(t, "333.34", result.Reservations[2].DiscountAmount.String())
	})

	t.Run("domain validation failures", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*reqdto.CreateReservationRequest)
		}{
			{"inverted time range", func(r *reqdto.CreateReservationRequest) { r.StartTime = "14:00"; r.EndTime = "12:00" }},
			{"weekend-only range", func(r *reqdto.CreateReservationRequest) {
				r.StartDate = "2025-06-07"
				r.EndDate = strPtr("2025-06-08")
			}},
			{"factura without invoice data", func(r *reqdto.CreateReservationRequest) { r.DocumentType = "factura" }},
			{"no dates", func(r *reqdto.CreateReservationRequest) { r.StartDate = "" }},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newFixture()
				req := baseRequest(f.spaceID)
				tc.mutate(&req)

				_, err := f.reservationCommands().Create(ctx, req)
				assert.ErrorIs(t, err, commands.ErrDomainValidation)
			})
		}
	})

	t.Run("notification failure does not fail the booking", func(t *testing.T) {
		f := newFixture()
		f.notifier.err = assert.AnError

		_, err := f.reservationCommands().Create(ctx, baseRequest(f.spaceID))
		assert.NoError(t, err)
	})
}
