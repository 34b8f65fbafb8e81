package commands

import (
	"context"
	"log/slog"
	"time"

	"reservas-backend/internal/domain/coupon"
	"reservas-backend/internal/domain/member"
	"reservas-backend/internal/domain/pricing"
	"reservas-backend/internal/domain/reservation"
	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/pkg/clock"
	"reservas-backend/internal/pkg/errs"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrSpaceNotFound           = errs.New("space not found")
	ErrSpaceUnavailable        = errs.New("space is not active")
	ErrDateBlocked             = errs.New("date is blocked")
	ErrReservationConflict     = errs.New("reservation conflict")
	ErrMemberNotFound          = errs.New("member not found")
	ErrMemberInactive          = errs.New("member is not active")
	ErrQuotaExceeded           = errs.New("member weekly hour quota exceeded")
	ErrCouponAlreadyUsed       = errs.New("coupon already used by member")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// CreateReservationResult reports every row created by one booking request.
// Discrete-date bookings produce one row per selected date.
type CreateReservationResult struct {
	Reservations []*queries.ReservationView
	CouponValid  bool
	CouponReason string
}

type ReservationCommands interface {
	Create(ctx context.Context, req reqdto.CreateReservationRequest) (*CreateReservationResult, error)
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	notifier           Notifier
	clock              clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	notifier Notifier,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		notifier:           notifier,
		clock:              clk,
	}
}

func (r *reservationCommandsImpl) Create(ctx context.Context, req reqdto.CreateReservationRequest) (*CreateReservationResult, error) {
	dates, err := reservation.NewDates(req.StartDate, req.EndDate, req.Dates)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	timeRange, err := reservation.NewTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	customer, err := reservation.NewCustomer(req.CustomerName, req.CustomerEmail, req.CustomerPhone)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	billing, err := req.ToBilling()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	billable, err := dates.BillableDates()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var (
		createdIDs   []uuid.UUID
		couponValid  bool
		couponReason string
	)

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		createdIDs = createdIDs[:0]

		// The row lock serializes concurrent bookings on the same space so
		// the availability check cannot race.
		space, err := tx.Reads().SpaceByIDForUpdate(ctx, req.SpaceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrSpaceNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !space.Active {
			return ErrSpaceUnavailable
		}

		for _, day := range dates.Candidates() {
			blocked, err := tx.Reads().IsDateBlocked(ctx, day)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if blocked {
				return ErrDateBlocked
			}

			overlaps, err := tx.Reads().HasOverlap(ctx, space.ID, day, timeRange.Start(), timeRange.End())
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if overlaps {
				return ErrReservationConflict
			}
		}

		memberSnap, err := r.resolveMember(ctx, tx, req.GetMemberRUT())
		if err != nil {
			return err
		}
		isMember := memberSnap != nil

		if isMember {
			if err := r.checkWeeklyQuota(ctx, tx, memberSnap.ID, billable, timeRange.DurationHours()); err != nil {
				return err
			}
		}

		card := pricing.RateCard{
			SpaceName:        space.Name,
			HourlyRate:       space.HourlyRate,
			MemberHourlyRate: space.MemberHourlyRate,
		}

		baseTotal := decimal.Zero
		perDayBase := make([]decimal.Decimal, len(billable))
		for i, day := range billable {
			base, err := pricing.BaseNet(card, day, timeRange.DurationHours(), isMember)
			if err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
			perDayBase[i] = base
			baseTotal = baseTotal.Add(base)
		}

		discount, couponSnap, reason, err := r.evaluateCoupon(ctx, tx, req.GetCouponCode(), baseTotal, memberSnap)
		if err != nil {
			return err
		}
		couponValid = couponSnap != nil
		couponReason = reason

		var couponID *uuid.UUID
		if couponSnap != nil {
			couponID = &couponSnap.ID
		}
		var memberID *uuid.UUID
		if memberSnap != nil {
			memberID = &memberSnap.ID
		}

		rows := r.buildRows(dates, billable, perDayBase, baseTotal, discount,
			space.ID, customer, timeRange, memberID, couponID, billing, req.Notes)

		for _, row := range rows {
			id, err := tx.Reservations().Create(ctx, row)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			createdIDs = append(createdIDs, id)
		}

		if couponSnap != nil && discount.IsPositive() {
			if err := r.consumeCoupon(ctx, tx, couponSnap, memberID, createdIDs[0]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &CreateReservationResult{
		CouponValid:  couponValid,
		CouponReason: couponReason,
	}
	for _, id := range createdIDs {
		view, err := r.reservationQueries.GetByID(ctx, id)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		result.Reservations = append(result.Reservations, view)
	}

	if len(result.Reservations) > 0 {
		if err := r.notifier.ReservationCreated(ctx, result.Reservations[0]); err != nil {
			slog.Warn("failed to send reservation created notification",
				"reservation_id", result.Reservations[0].ID, "error", err.Error())
		}
	}
	return result, nil
}

func (r *reservationCommandsImpl) resolveMember(ctx context.Context, tx shared.Tx, rut *string) (*shared.MemberSnapshot, error) {
	if rut == nil {
		return nil, nil
	}
	snap, err := tx.Reads().MemberByRUT(ctx, *rut)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrMemberNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !snap.Active {
		return nil, ErrMemberInactive
	}
	return snap, nil
}

// checkWeeklyQuota buckets the billable dates per calendar week and rejects
// the booking when any week would exceed the member allowance.
func (r *reservationCommandsImpl) checkWeeklyQuota(ctx context.Context, tx shared.Tx, memberID uuid.UUID, billable []time.Time, hours int) error {
	type week struct{ start, end time.Time }
	requested := make(map[time.Time]int)
	weeks := make(map[time.Time]week)

	for _, day := range billable {
		start, end := member.WeekBounds(day)
		requested[start] += hours
		weeks[start] = week{start: start, end: end}
	}

	for key, w := range weeks {
		booked, err := tx.Reads().MemberBookedHours(ctx, memberID, w.start, w.end)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if booked+requested[key] > member.MaxWeeklyHours {
			return ErrQuotaExceeded
		}
	}
	return nil
}

// evaluateCoupon resolves the coupon softly: any reason the coupon cannot
// apply results in a zero discount and a reason string, never an error.
func (r *reservationCommandsImpl) evaluateCoupon(
	ctx context.Context,
	tx shared.Tx,
	code *string,
	baseTotal decimal.Decimal,
	memberSnap *shared.MemberSnapshot,
) (decimal.Decimal, *shared.CouponSnapshot, string, error) {
	if code == nil {
		return decimal.Zero, nil, "", nil
	}

	snap, err := tx.Reads().CouponByCode(ctx, *code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return decimal.Zero, nil, "coupon not found", nil
		}
		return decimal.Zero, nil, "", errs.Mark(err, ErrDatabaseOperationFailed)
	}

	c, err := coupon.New(
		snap.ID, snap.Code,
		coupon.DiscountType(snap.DiscountType), snap.DiscountValue,
		snap.ValidFrom, snap.ValidTo,
		snap.MaxUses, snap.CurrentUses,
		snap.MinNetAmount, snap.Active, snap.SingleUsePerMember,
	)
	if err != nil {
		return decimal.Zero, nil, "", errs.Mark(err, ErrDomainValidation)
	}

	result := c.Evaluate(baseTotal, r.clock.Now())
	if !result.Valid {
		return decimal.Zero, nil, result.Reason, nil
	}

	if c.SingleUsePerMember() && memberSnap != nil {
		used, err := tx.Reads().CouponUsedByMember(ctx, snap.ID, memberSnap.ID)
		if err != nil {
			return decimal.Zero, nil, "", errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if used {
			return decimal.Zero, nil, "coupon already used by member", nil
		}
	}

	return result.Discount, snap, "", nil
}

// buildRows materializes the reservation rows for the resolved booking
// shape. Single and range bookings yield one row; discrete bookings yield
// one row per date with the discount split evenly, remainder on the last
// row so the parts always sum to the whole.
func (r *reservationCommandsImpl) buildRows(
	dates reservation.Dates,
	billable []time.Time,
	perDayBase []decimal.Decimal,
	baseTotal, discount decimal.Decimal,
	spaceID uuid.UUID,
	customer reservation.Customer,
	timeRange reservation.TimeRange,
	memberID, couponID *uuid.UUID,
	billing *reservation.Billing,
	notes *string,
) []*reservation.Reservation {
	if dates.Mode() != reservation.ModeDiscrete {
		breakdown := pricing.Settle(baseTotal, discount)
		return []*reservation.Reservation{
			reservation.NewReservation(spaceID, customer, dates.Start(), dates.End(),
				timeRange, breakdown, memberID, couponID, billing, notes),
		}
	}

	n := int64(len(billable))
	share := discount.Div(decimal.NewFromInt(n)).Round(2)
	rows := make([]*reservation.Reservation, 0, len(billable))
	for i, day := range billable {
		d := share
		if i == len(billable)-1 {
			d = discount.Sub(share.Mul(decimal.NewFromInt(n - 1)))
		}
		breakdown := pricing.Settle(perDayBase[i], d)
		rows = append(rows, reservation.NewReservation(spaceID, customer, day, day,
			timeRange, breakdown, memberID, couponID, billing, notes))
	}
	return rows
}

// consumeCoupon burns one use inside the booking transaction. The guarded
// update closes the race on the last remaining use; losing it aborts the
// whole booking so no discounted row survives without a counted use.
func (r *reservationCommandsImpl) consumeCoupon(ctx context.Context, tx shared.Tx, snap *shared.CouponSnapshot, memberID *uuid.UUID, reservationID uuid.UUID) error {
	ok, err := tx.Coupons().IncrementUsage(ctx, snap.ID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !ok {
		return ErrReservationConflict
	}

	if snap.SingleUsePerMember && memberID != nil {
		if err := tx.Coupons().RecordMemberUse(ctx, snap.ID, *memberID, reservationID); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrCouponAlreadyUsed)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return nil
}
