package commands

import (
	"context"

	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notifier delivers human-facing notifications about reservation lifecycle
// events. Delivery failures must never fail the underlying operation.
type Notifier interface {
	ReservationCreated(ctx context.Context, res *queries.ReservationView) error
	ReservationConfirmed(ctx context.Context, res *queries.ReservationView) error
	ReservationCancelled(ctx context.Context, res *queries.ReservationView) error
}

// CheckoutSession is an opened payment flow for one reservation.
type CheckoutSession struct {
	Reference   string
	RedirectURL string
}

// PaymentGateway abstracts the external payment provider.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, reservationID uuid.UUID, amount decimal.Decimal, payerEmail string) (*CheckoutSession, error)
}
