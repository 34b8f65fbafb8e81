package queries

import (
	"context"

	"reservas-backend/internal/domain/coupon"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/pkg/clock"
	"reservas-backend/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

// CouponValidationView is the pre-checkout answer for a coupon code. An
// unusable coupon is a negative answer, never an error.
type CouponValidationView struct {
	Code     string          `json:"code"`
	Valid    bool            `json:"valid"`
	Discount decimal.Decimal `json:"discount"`
	Reason   string          `json:"reason,omitempty"`
}

type CouponQueries interface {
	Validate(ctx context.Context, code string, baseNet decimal.Decimal, memberRUT *string) (*CouponValidationView, error)
}

type couponQueriesImpl struct {
	reads shared.CommandReads
	clk   clock.Clock
}

func NewCouponQueries(reads shared.CommandReads, clk clock.Clock) CouponQueries {
	return &couponQueriesImpl{reads: reads, clk: clk}
}

func (q *couponQueriesImpl) Validate(ctx context.Context, code string, baseNet decimal.Decimal, memberRUT *string) (*CouponValidationView, error) {
	snap, err := q.reads.CouponByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &CouponValidationView{Code: code, Reason: "coupon not found"}, nil
		}
		return nil, err
	}

	c, err := coupon.New(
		snap.ID, snap.Code,
		coupon.DiscountType(snap.DiscountType), snap.DiscountValue,
		snap.ValidFrom, snap.ValidTo,
		snap.MaxUses, snap.CurrentUses,
		snap.MinNetAmount, snap.Active, snap.SingleUsePerMember,
	)
	if err != nil {
		return nil, err
	}

	result := c.Evaluate(baseNet, q.clk.Now())
	if !result.Valid {
		return &CouponValidationView{Code: snap.Code, Reason: result.Reason}, nil
	}

	if c.SingleUsePerMember() && memberRUT != nil && *memberRUT != "" {
		m, err := q.reads.MemberByRUT(ctx, *memberRUT)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return nil, err
		}
		if m != nil {
			used, err := q.reads.CouponUsedByMember(ctx, snap.ID, m.ID)
			if err != nil {
				return nil, err
			}
			if used {
				return &CouponValidationView{Code: snap.Code, Reason: "coupon already used by member"}, nil
			}
		}
	}

	return &CouponValidationView{Code: snap.Code, Valid: true, Discount: result.Discount}, nil
}
