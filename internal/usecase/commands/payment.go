package commands

import (
	"context"
	"log/slog"
	"strings"

	"reservas-backend/internal/domain/reservation"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/pkg/errs"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPaymentGatewayFailed = errs.New("payment gateway request failed")
	ErrReservationNotOpen   = errs.New("reservation cannot accept payment")
)

type StartCheckoutResult struct {
	ReservationID uuid.UUID
	Reference     string
	RedirectURL   string
}

type WebhookResult struct {
	Reservation *queries.ReservationView
	Replayed    bool
}

type PaymentCommands interface {
	// StartCheckout opens a payment session for a pending reservation and
	// records the provider reference.
	StartCheckout(ctx context.Context, reservationID uuid.UUID) (*StartCheckoutResult, error)
	// HandleWebhook applies a provider notification. Replays of an already
	// settled payment succeed without touching the row.
	HandleWebhook(ctx context.Context, reservationID uuid.UUID, reference, status string) (*WebhookResult, error)
}

type paymentCommandsImpl struct {
	uow                shared.UnitOfWork
	gateway            PaymentGateway
	reservationQueries queries.ReservationQueries
	notifier           Notifier
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	reservationQueries queries.ReservationQueries,
	notifier Notifier,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:                uow,
		gateway:            gateway,
		reservationQueries: reservationQueries,
		notifier:           notifier,
	}
}

func (p *paymentCommandsImpl) StartCheckout(ctx context.Context, reservationID uuid.UUID) (*StartCheckoutResult, error) {
	snap, err := p.uow.CommandReads().ReservationByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if reservation.Status(snap.Status).IsTerminal() {
		return nil, ErrReservationNotOpen
	}
	if reservation.PaymentStatus(snap.PaymentStatus) == reservation.PaymentStatusPaid {
		return nil, ErrReservationNotOpen
	}

	session, err := p.gateway.CreateCheckout(ctx, reservationID, snap.TotalAmount, snap.CustomerEmail)
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGatewayFailed)
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().SetPaymentReference(ctx, reservationID, session.Reference, reservation.PaymentStatusStarted)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &StartCheckoutResult{
		ReservationID: reservationID,
		Reference:     session.Reference,
		RedirectURL:   session.RedirectURL,
	}, nil
}

func (p *paymentCommandsImpl) HandleWebhook(ctx context.Context, reservationID uuid.UUID, reference, status string) (*WebhookResult, error) {
	if !isApprovedPaymentStatus(status) {
		slog.Info("ignoring non-approved payment notification",
			"reservation_id", reservationID, "reference", reference, "status", status)
		view, err := p.reservationQueries.GetByID(ctx, reservationID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return &WebhookResult{Reservation: view, Replayed: false}, nil
	}

	var changed bool
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrReservationNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		changed, err = reservation.TransitionConfirm(reservation.Status(snap.Status))
		if err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if !changed {
			return nil
		}

		if err := tx.Reservations().SetPaymentReference(ctx, reservationID, reference, reservation.PaymentStatusPaid); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return tx.Reservations().UpdateStatus(ctx, reservationID, reservation.StatusConfirmed, reservation.PaymentStatusPaid)
	})
	if err != nil {
		return nil, err
	}

	view, err := p.reservationQueries.GetByID(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if changed {
		if err := p.notifier.ReservationConfirmed(ctx, view); err != nil {
			slog.Warn("failed to send payment confirmation notification",
				"reservation_id", reservationID, "error", err.Error())
		}
	}
	return &WebhookResult{Reservation: view, Replayed: !changed}, nil
}

func isApprovedPaymentStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "paid", "success", "pagado":
		return true
	default:
		return false
	}
}
