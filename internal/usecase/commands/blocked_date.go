package commands

import (
	"context"

	"reservas-backend/internal/domain/reservation"
	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/pkg/errs"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDateAlreadyBlocked = errs.New("date already blocked")
	ErrBlockedDateMissing = errs.New("blocked date not found")
)

type BlockedDateCommands interface {
	Block(ctx context.Context, req reqdto.BlockDateRequest) (uuid.UUID, error)
	Unblock(ctx context.Context, id uuid.UUID) error
}

type blockedDateCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewBlockedDateCommands(uow shared.UnitOfWork) BlockedDateCommands {
	return &blockedDateCommandsImpl{uow: uow}
}

func (b *blockedDateCommandsImpl) Block(ctx context.Context, req reqdto.BlockDateRequest) (uuid.UUID, error) {
	date, err := reservation.ParseDate(req.Date)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var id uuid.UUID
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		id, err = tx.BlockedDates().Block(ctx, date, req.Reason)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDateAlreadyBlocked)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (b *blockedDateCommandsImpl) Unblock(ctx context.Context, id uuid.UUID) error {
	return b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.BlockedDates().Unblock(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBlockedDateMissing)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
