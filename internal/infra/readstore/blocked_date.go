package readstore

import (
	"context"
	"time"

	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/pgconv"
	"reservas-backend/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type BlockedDateReadStore struct {
	db db.DBTX
}

func NewBlockedDateReadStore(dbtx db.DBTX) *BlockedDateReadStore {
	return &BlockedDateReadStore{db: dbtx}
}

func (r *BlockedDateReadStore) IsBlocked(ctx context.Context, date time.Time) (bool, error) {
	var blocked bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM blocked_dates WHERE blocked_date = $1)`,
		date).Scan(&blocked)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check blocked date", err)
	}
	return blocked, nil
}

func (r *BlockedDateReadStore) FindInRange(ctx context.Context, from, to time.Time) ([]*queries.BlockedDateView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, blocked_date, reason, created_at
		 FROM blocked_dates
		 WHERE blocked_date BETWEEN $1 AND $2
		 ORDER BY blocked_date`,
		from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocked dates", err)
	}
	defer rows.Close()

	var out []*queries.BlockedDateView
	for rows.Next() {
		var (
			v         queries.BlockedDateView
			reason    pgtype.Text
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.Date, &reason, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocked date row", err)
		}
		if p := pgconv.StringPtrFromPgtype(reason); p != nil {
			v.Reason = *p
		}
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocked date rows", err)
	}
	return out, nil
}
