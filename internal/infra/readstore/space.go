package readstore

import (
	"context"

	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/pgconv"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type SpaceReadStore struct {
	db db.DBTX
}

func NewSpaceReadStore(dbtx db.DBTX) *SpaceReadStore {
	return &SpaceReadStore{db: dbtx}
}

const spaceColumns = `id, name, capacity, hourly_rate, member_hourly_rate, active`

func (r *SpaceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.SpaceSnapshot, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT `+spaceColumns+` FROM spaces WHERE id = $1`, id))
}

// FindByIDForUpdate locks the space row for the remainder of the enclosing
// transaction, serializing concurrent bookings on the same space.
func (r *SpaceReadStore) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.SpaceSnapshot, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT `+spaceColumns+` FROM spaces WHERE id = $1 FOR UPDATE`, id))
}

func (r *SpaceReadStore) scanOne(row interface{ Scan(dest ...any) error }) (*shared.SpaceSnapshot, error) {
	var (
		snap      shared.SpaceSnapshot
		hourly    pgtype.Numeric
		memHourly pgtype.Numeric
	)
	err := row.Scan(&snap.ID, &snap.Name, &snap.Capacity, &hourly, &memHourly, &snap.Active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("space not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find space", err)
	}

	if snap.HourlyRate, err = nullDecimalFromNumeric(hourly); err != nil {
		return nil, infra.WrapRepoErr("failed to convert space hourly rate", err)
	}
	if snap.MemberHourlyRate, err = nullDecimalFromNumeric(memHourly); err != nil {
		return nil, infra.WrapRepoErr("failed to convert space member rate", err)
	}
	return &snap, nil
}

func (r *SpaceReadStore) FindActive(ctx context.Context) ([]*queries.SpaceView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, capacity, hourly_rate, active
		 FROM spaces
		 WHERE active
		 ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list spaces", err)
	}
	defer rows.Close()

	var out []*queries.SpaceView
	for rows.Next() {
		var (
			v      queries.SpaceView
			desc   pgtype.Text
			hourly pgtype.Numeric
		)
		if err := rows.Scan(&v.ID, &v.Name, &desc, &v.Capacity, &hourly, &v.Active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan space row", err)
		}
		v.Description = pgconv.StringPtrFromPgtype(desc)
		if v.HourlyRate, err = nullDecimalFromNumeric(hourly); err != nil {
			return nil, infra.WrapRepoErr("failed to convert space hourly rate", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate space rows", err)
	}
	return out, nil
}

func nullDecimalFromNumeric(pn pgtype.Numeric) (decimal.NullDecimal, error) {
	if !pn.Valid {
		return decimal.NullDecimal{}, nil
	}
	d, err := pgconv.DecimalFromNumeric(pn)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}
