package repository

import (
	"context"
	"errors"

	"reservas-backend/internal/domain/member"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type MemberRepository struct {
	db db.DBTX
}

func NewMemberRepository(dbtx db.DBTX) *MemberRepository {
	return &MemberRepository{db: dbtx}
}

func (r *MemberRepository) Create(ctx context.Context, rut, fullName, email string, active bool) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO members (id, rut, full_name, email, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now())
		 RETURNING id`,
		uuid.New(), member.NormalizeRUT(rut), fullName, email, active).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, infra.WrapRepoErr("member rut already registered", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create member", err)
	}
	return id, nil
}

func (r *MemberRepository) Update(ctx context.Context, id uuid.UUID, fullName, email string, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE members SET full_name = $2, email = $3, active = $4, updated_at = now() WHERE id = $1`,
		id, fullName, email, active)
	if err != nil {
		return infra.WrapRepoErr("failed to update member", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("member not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete member", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("member not found", nil, infra.KindNotFound)
	}
	return nil
}
