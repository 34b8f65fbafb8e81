package repository

import (
	"context"
	"errors"
	"time"

	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type BlockedDateRepository struct {
	db db.DBTX
}

func NewBlockedDateRepository(dbtx db.DBTX) *BlockedDateRepository {
	return &BlockedDateRepository{db: dbtx}
}

func (r *BlockedDateRepository) Block(ctx context.Context, date time.Time, reason string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO blocked_dates (id, blocked_date, reason, created_at)
		 VALUES ($1, $2, $3, now())
		 RETURNING id`,
		uuid.New(), date, reason).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, infra.WrapRepoErr("date already blocked", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to block date", err)
	}
	return id, nil
}

func (r *BlockedDateRepository) Unblock(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blocked_dates WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to unblock date", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("blocked date not found", nil, infra.KindNotFound)
	}
	return nil
}
