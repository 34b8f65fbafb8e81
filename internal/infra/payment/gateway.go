// Package payment implements the checkout port. The provider integration is
// simulated: references are generated locally and the redirect URL points at
// the configured checkout surface.
package payment

import (
	"context"
	"fmt"

	"reservas-backend/internal/pkg/config"
	"reservas-backend/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SimulatedGateway struct {
	cfg config.PaymentConfig
}

func NewSimulatedGateway(cfg config.PaymentConfig) commands.PaymentGateway {
	return &SimulatedGateway{cfg: cfg}
}

func (g *SimulatedGateway) CreateCheckout(_ context.Context, reservationID uuid.UUID, amount decimal.Decimal, payerEmail string) (*commands.CheckoutSession, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("checkout amount must be positive, got %s", amount)
	}
	if payerEmail == "" {
		return nil, fmt.Errorf("payer email is required")
	}

	reference := uuid.New().String()
	return &commands.CheckoutSession{
		Reference:   reference,
		RedirectURL: fmt.Sprintf("%s/%s?reservation=%s", g.cfg.CheckoutBaseURL, reference, reservationID),
	}, nil
}
