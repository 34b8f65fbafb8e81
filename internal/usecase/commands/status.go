package commands

import (
	"context"
	"log/slog"

	"reservas-backend/internal/domain/reservation"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/pkg/errs"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrInvalidStatus       = errs.New("invalid reservation status")
	ErrInvalidTransition   = errs.New("invalid status transition")
)

type ConfirmResult struct {
	Reservation *queries.ReservationView
	WasAlready  bool
}

type StatusCommands interface {
	// Confirm marks the reservation confirmed and its payment settled.
	// Confirming twice is a no-op.
	Confirm(ctx context.Context, id uuid.UUID) (*ConfirmResult, error)
	// Cancel moves the reservation into the given terminal status.
	Cancel(ctx context.Context, id uuid.UUID, to reservation.Status) (*queries.ReservationView, error)
	// SoftDelete is the admin removal: the row is kept, the slot is freed.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type statusCommandsImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	notifier           Notifier
}

func NewStatusCommands(uow shared.UnitOfWork, reservationQueries queries.ReservationQueries, notifier Notifier) StatusCommands {
	return &statusCommandsImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		notifier:           notifier,
	}
}

func (s *statusCommandsImpl) Confirm(ctx context.Context, id uuid.UUID) (*ConfirmResult, error) {
	var changed bool
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := s.findSnapshot(ctx, tx, id)
		if err != nil {
			return err
		}

		changed, err = reservation.TransitionConfirm(reservation.Status(snap.Status))
		if err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if !changed {
			return nil
		}
		return s.updateStatus(ctx, tx, id, reservation.StatusConfirmed, reservation.PaymentStatusPaid)
	})
	if err != nil {
		return nil, err
	}

	view, err := s.reservationQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if changed {
		if err := s.notifier.ReservationConfirmed(ctx, view); err != nil {
			slog.Warn("failed to send reservation confirmed notification",
				"reservation_id", id, "error", err.Error())
		}
	}
	return &ConfirmResult{Reservation: view, WasAlready: !changed}, nil
}

func (s *statusCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, to reservation.Status) (*queries.ReservationView, error) {
	if !to.IsValid() {
		return nil, ErrInvalidStatus
	}

	var changed bool
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := s.findSnapshot(ctx, tx, id)
		if err != nil {
			return err
		}

		changed, err = reservation.TransitionCancel(reservation.Status(snap.Status), to)
		if err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if !changed {
			return nil
		}
		return s.updateStatus(ctx, tx, id, to, reservation.PaymentStatus(snap.PaymentStatus))
	})
	if err != nil {
		return nil, err
	}

	view, err := s.reservationQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if changed {
		if err := s.notifier.ReservationCancelled(ctx, view); err != nil {
			slog.Warn("failed to send reservation cancelled notification",
				"reservation_id", id, "error", err.Error())
		}
	}
	return view, nil
}

func (s *statusCommandsImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_, err := s.Cancel(ctx, id, reservation.StatusCancelledByAdmin)
	return err
}

func (s *statusCommandsImpl) findSnapshot(ctx context.Context, tx shared.Tx, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	snap, err := tx.Reads().ReservationByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return snap, nil
}

func (s *statusCommandsImpl) updateStatus(ctx context.Context, tx shared.Tx, id uuid.UUID, status reservation.Status, paymentStatus reservation.PaymentStatus) error {
	if err := tx.Reservations().UpdateStatus(ctx, id, status, paymentStatus); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
