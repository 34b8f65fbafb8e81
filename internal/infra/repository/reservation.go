package repository

import (
	"context"
	"time"

	"reservas-backend/internal/domain/reservation"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

const insertReservationSQL = `
INSERT INTO reservations (
	id, space_id,
	customer_name, customer_email, customer_phone,
	start_date, end_date, start_time, end_time,
	status, payment_status,
	net_amount, discount_amount, tax_amount, total_amount,
	member_id, coupon_id,
	document_type, tax_id, legal_name, billing_address, business_activity,
	notes, payment_reference,
	created_at, updated_at
) VALUES (
	$1, $2,
	$3, $4, $5,
	$6, $7, $8::time, $9::time,
	$10, $11,
	$12, $13, $14, $15,
	$16, $17,
	$18, $19, $20, $21, $22,
	$23, $24,
	now(), now()
)
RETURNING id`

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	var endDate *time.Time
	if !res.EndDate().Equal(res.StartDate()) {
		ed := res.EndDate()
		endDate = &ed
	}

	var docType, taxID, legalName, address, activity *string
	if b := res.Billing(); b != nil {
		docType = &b.DocumentType
		if b.RequiresInvoiceData() {
			taxID, legalName, address, activity = &b.TaxID, &b.LegalName, &b.Address, &b.Activity
		}
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx, insertReservationSQL,
		res.ID(), res.SpaceID(),
		res.Customer().Name, res.Customer().Email, res.Customer().Phone,
		res.StartDate(), pgconv.DatePtrToPgtype(endDate), res.TimeRange().Start(), res.TimeRange().End(),
		string(res.Status()), string(res.PaymentStatus()),
		pgconv.NumericFromDecimal(res.NetAmount()), pgconv.NumericFromDecimal(res.DiscountAmount()),
		pgconv.NumericFromDecimal(res.TaxAmount()), pgconv.NumericFromDecimal(res.TotalAmount()),
		pgconv.UUIDPtrToPgtype(res.MemberID()), pgconv.UUIDPtrToPgtype(res.CouponID()),
		pgconv.StringPtrToPgtype(docType), pgconv.StringPtrToPgtype(taxID),
		pgconv.StringPtrToPgtype(legalName), pgconv.StringPtrToPgtype(address),
		pgconv.StringPtrToPgtype(activity),
		pgconv.StringPtrToPgtype(res.Notes()), pgconv.StringPtrToPgtype(res.PaymentRef()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status, paymentStatus reservation.PaymentStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE reservations SET status = $2, payment_status = $3, updated_at = now() WHERE id = $1`,
		id, string(status), string(paymentStatus))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) SetPaymentReference(ctx context.Context, id uuid.UUID, reference string, paymentStatus reservation.PaymentStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE reservations SET payment_reference = $2, payment_status = $3, updated_at = now() WHERE id = $1`,
		id, reference, string(paymentStatus))
	if err != nil {
		return infra.WrapRepoErr("failed to set payment reference", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
