package commands

import (
	"context"

	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/pkg/errs"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrMemberAlreadyExists = errs.New("member rut already registered")

type MemberCommands interface {
	Create(ctx context.Context, req reqdto.CreateMemberRequest) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateMemberRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type memberCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewMemberCommands(uow shared.UnitOfWork) MemberCommands {
	return &memberCommandsImpl{uow: uow}
}

func (m *memberCommandsImpl) Create(ctx context.Context, req reqdto.CreateMemberRequest) (uuid.UUID, error) {
	var id uuid.UUID
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		id, err = tx.Members().Create(ctx, req.RUT, req.FullName, req.Email, req.IsActive())
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrMemberAlreadyExists)
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

func (m *memberCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateMemberRequest) error {
	return m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Members().Update(ctx, id, req.FullName, req.Email, req.Active); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrMemberNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (m *memberCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Members().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrMemberNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
