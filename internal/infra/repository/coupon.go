package repository

import (
	"context"
	"errors"

	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) *CouponRepository {
	return &CouponRepository{db: dbtx}
}

// IncrementUsage is guarded against the usage cap so two concurrent bookings
// cannot both consume the last remaining use.
func (r *CouponRepository) IncrementUsage(ctx context.Context, couponID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE coupons
		 SET current_uses = current_uses + 1, updated_at = now()
		 WHERE id = $1 AND (max_uses IS NULL OR current_uses < max_uses)`,
		couponID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to increment coupon usage", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CouponRepository) RecordMemberUse(ctx context.Context, couponID, memberID, reservationID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO coupon_redemptions (id, coupon_id, member_id, reservation_id, redeemed_at)
		 VALUES ($1, $2, $3, $4, now())`,
		uuid.New(), couponID, memberID, reservationID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return infra.WrapRepoErr("coupon already redeemed by member", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to record coupon redemption", err)
	}
	return nil
}
