package reservation

import (
	"errors"
	"strings"
	"time"

	"reservas-backend/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingCustomer    = errors.New("customer name and email are required")
	ErrAlreadyTerminal    = errors.New("reservation is in a terminal state")
	ErrInvalidTransition  = errors.New("invalid reservation state transition")
	ErrNotPendingPayment  = errors.New("reservation is not awaiting payment")
	ErrAlreadyPaid        = errors.New("reservation has already been paid")
	ErrInvalidStatusValue = errors.New("invalid reservation status")
)

type Customer struct {
	Name  string
	Email string
	Phone string
}

func NewCustomer(name, email, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return Customer{}, ErrMissingCustomer
	}
	return Customer{Name: name, Email: email, Phone: strings.TrimSpace(phone)}, nil
}

// Billing carries invoice fields; only persisted when the customer asked for
// a factura.
type Billing struct {
	DocumentType string
	TaxID        string
	LegalName    string
	Address      string
	Activity     string
}

// RequiresInvoiceData reports whether the invoice-only fields apply.
func (b Billing) RequiresInvoiceData() bool {
	return b.DocumentType == "factura"
}

// Reservation is one persisted booking row. Monetary fields are frozen at
// creation time and never recomputed from current rates.
type Reservation struct {
	id            uuid.UUID
	spaceID       uuid.UUID
	customer      Customer
	startDate     time.Time
	endDate       time.Time
	timeRange     TimeRange
	status        Status
	paymentStatus PaymentStatus
	price         pricing.Breakdown
	memberID      *uuid.UUID
	couponID      *uuid.UUID
	billing       *Billing
	notes         *string
	paymentRef    *string
	createdAt     time.Time
	updatedAt     time.Time
}

// NewReservation builds a row in the initial requested state. startDate and
// endDate are equal except for range bookings.
func NewReservation(
	spaceID uuid.UUID,
	customer Customer,
	startDate, endDate time.Time,
	timeRange TimeRange,
	price pricing.Breakdown,
	memberID, couponID *uuid.UUID,
	billing *Billing,
	notes *string,
) *Reservation {
	return &Reservation{
		id:            uuid.New(),
		spaceID:       spaceID,
		customer:      customer,
		startDate:     startDate,
		endDate:       endDate,
		timeRange:     timeRange,
		status:        StatusPending,
		paymentStatus: PaymentStatusPending,
		price:         price,
		memberID:      memberID,
		couponID:      couponID,
		billing:       billing,
		notes:         notes,
	}
}

func Reconstruct(
	id, spaceID uuid.UUID,
	customer Customer,
	startDate, endDate time.Time,
	timeRange TimeRange,
	status Status,
	paymentStatus PaymentStatus,
	price pricing.Breakdown,
	memberID, couponID *uuid.UUID,
	billing *Billing,
	notes, paymentRef *string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		spaceID:       spaceID,
		customer:      customer,
		startDate:     startDate,
		endDate:       endDate,
		timeRange:     timeRange,
		status:        status,
		paymentStatus: paymentStatus,
		price:         price,
		memberID:      memberID,
		couponID:      couponID,
		billing:       billing,
		notes:         notes,
		paymentRef:    paymentRef,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Confirm moves the reservation to confirmed and forces the payment state to
// paid. Confirming an already-confirmed reservation is a no-op so duplicate
// payment notifications stay idempotent; the bool reports whether anything
// changed.
func (r *Reservation) Confirm() (bool, error) {
	changed, err := TransitionConfirm(r.status)
	if err != nil || !changed {
		return changed, err
	}
	r.status = StatusConfirmed
	r.paymentStatus = PaymentStatusPaid
	return true, nil
}

// Cancel applies one of the cancellation states. Cancelling twice with the
// same state is tolerated; moving out of a different terminal state is not.
func (r *Reservation) Cancel(to Status) error {
	changed, err := TransitionCancel(r.status, to)
	if err != nil || !changed {
		return err
	}
	r.status = to
	return nil
}

// StartPayment records that a checkout was opened for this reservation.
func (r *Reservation) StartPayment(ref string) error {
	if r.paymentStatus == PaymentStatusPaid {
		return ErrAlreadyPaid
	}
	if r.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	r.paymentStatus = PaymentStatusStarted
	r.paymentRef = &ref
	return nil
}

func (r *Reservation) IsActive() bool {
	return !r.status.IsTerminal()
}

func (r *Reservation) ID() uuid.UUID                 { return r.id }
func (r *Reservation) SpaceID() uuid.UUID            { return r.spaceID }
func (r *Reservation) Customer() Customer            { return r.customer }
func (r *Reservation) StartDate() time.Time          { return r.startDate }
func (r *Reservation) EndDate() time.Time            { return r.endDate }
func (r *Reservation) TimeRange() TimeRange          { return r.timeRange }
func (r *Reservation) Status() Status                { return r.status }
func (r *Reservation) PaymentStatus() PaymentStatus  { return r.paymentStatus }
func (r *Reservation) Price() pricing.Breakdown      { return r.price }
func (r *Reservation) MemberID() *uuid.UUID          { return r.memberID }
func (r *Reservation) CouponID() *uuid.UUID          { return r.couponID }
func (r *Reservation) Billing() *Billing             { return r.billing }
func (r *Reservation) Notes() *string                { return r.notes }
func (r *Reservation) PaymentRef() *string           { return r.paymentRef }
func (r *Reservation) CreatedAt() time.Time          { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time          { return r.updatedAt }
func (r *Reservation) NetAmount() decimal.Decimal    { return r.price.Net }
func (r *Reservation) TaxAmount() decimal.Decimal    { return r.price.Tax }
func (r *Reservation) TotalAmount() decimal.Decimal  { return r.price.Total }
func (r *Reservation) DiscountAmount() decimal.Decimal { return r.price.Discount }
