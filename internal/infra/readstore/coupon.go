package readstore

import (
	"context"
	"strings"

	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/pgconv"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

func (r *CouponReadStore) FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	normalizedCode := strings.ToUpper(strings.TrimSpace(code))

	var (
		snap      shared.CouponSnapshot
		value     pgtype.Numeric
		minAmount pgtype.Numeric
		validFrom pgtype.Date
		validTo   pgtype.Date
		maxUses   pgtype.Int4
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, code, discount_type, discount_value, valid_from, valid_to,
		        max_uses, current_uses, min_net_amount, active, single_use_per_member
		 FROM coupons
		 WHERE upper(code) = $1`,
		normalizedCode).Scan(
		&snap.ID, &snap.Code, &snap.DiscountType, &value, &validFrom, &validTo,
		&maxUses, &snap.CurrentUses, &minAmount, &snap.Active, &snap.SingleUsePerMember)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}

	if snap.DiscountValue, err = pgconv.DecimalFromNumeric(value); err != nil {
		return nil, infra.WrapRepoErr("failed to convert coupon discount value", err)
	}
	if snap.MinNetAmount, err = pgconv.DecimalFromNumeric(minAmount); err != nil {
		return nil, infra.WrapRepoErr("failed to convert coupon minimum amount", err)
	}
	snap.ValidFrom = pgconv.DatePtrFromPgtype(validFrom)
	snap.ValidTo = pgconv.DatePtrFromPgtype(validTo)
	snap.MaxUses = pgconv.Int32PtrFromPgtype(maxUses)
	return &snap, nil
}

// UsedByMember reports whether the member already redeemed this coupon on a
// reservation that is still active.
func (r *CouponReadStore) UsedByMember(ctx context.Context, couponID, memberID uuid.UUID) (bool, error) {
	var used bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1
			FROM coupon_redemptions cr
			JOIN reservations res ON res.id = cr.reservation_id
			WHERE cr.coupon_id = $1
			  AND cr.member_id = $2
			  AND res.status NOT IN ('cancelada_por_cliente', 'cancelada_por_admin', 'rechazada')
		)`,
		couponID, memberID).Scan(&used)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check coupon redemption", err)
	}
	return used, nil
}
