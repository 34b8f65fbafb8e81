package readstore

import (
	"context"
	"time"

	"reservas-backend/internal/domain/member"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/pgconv"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type MemberReadStore struct {
	db db.DBTX
}

func NewMemberReadStore(dbtx db.DBTX) *MemberReadStore {
	return &MemberReadStore{db: dbtx}
}

func (r *MemberReadStore) FindByRUT(ctx context.Context, rut string) (*shared.MemberSnapshot, error) {
	var snap shared.MemberSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, rut, full_name, email, active FROM members WHERE rut = $1`,
		member.NormalizeRUT(rut)).Scan(
		&snap.ID, &snap.RUT, &snap.FullName, &snap.Email, &snap.Active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("member not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find member by rut", err)
	}
	return &snap, nil
}

func (r *MemberReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.MemberSnapshot, error) {
	var snap shared.MemberSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, rut, full_name, email, active FROM members WHERE id = $1`,
		id).Scan(&snap.ID, &snap.RUT, &snap.FullName, &snap.Email, &snap.Active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("member not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find member by id", err)
	}
	return &snap, nil
}

// BookedHours sums the billable hours of the member's active reservations
// whose dates fall inside [from, to). Multi-day rows count each covered day
// separately, which keeps the weekly quota honest for range bookings that
// straddle a week boundary.
func (r *MemberReadStore) BookedHours(ctx context.Context, memberID uuid.UUID, from, to time.Time) (int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT start_date, end_date,
		        to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI')
		 FROM reservations
		 WHERE member_id = $1
		   AND status NOT IN ('cancelada_por_cliente', 'cancelada_por_admin', 'rechazada')
		   AND start_date < $3
		   AND COALESCE(end_date, start_date) >= $2`,
		memberID, from, to)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to query member reservations", err)
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var (
			startDate time.Time
			endDate   pgtype.Date
			startTime string
			endTime   string
		)
		if err := rows.Scan(&startDate, &endDate, &startTime, &endTime); err != nil {
			return 0, infra.WrapRepoErr("failed to scan member reservation row", err)
		}

		last := startDate
		isRange := false
		if ed := pgconv.DatePtrFromPgtype(endDate); ed != nil {
			last = *ed
			isRange = !last.Equal(startDate)
		}
		hours := hoursBetween(startTime, endTime)
		for day := startDate; !day.After(last); day = day.AddDate(0, 0, 1) {
			if day.Before(from) || !day.Before(to) {
				continue
			}
			// range rows bill weekdays only
			if isRange && (day.Weekday() == time.Saturday || day.Weekday() == time.Sunday) {
				continue
			}
			total += hours
		}
	}
	if err := rows.Err(); err != nil {
		return 0, infra.WrapRepoErr("failed to iterate member reservation rows", err)
	}
	return total, nil
}

func hoursBetween(start, end string) int {
	parse := func(s string) int {
		t, err := time.Parse("15:04", s)
		if err != nil {
			return 0
		}
		return t.Hour()
	}
	h := parse(end) - parse(start)
	if h < 0 {
		return 0
	}
	return h
}

func (r *MemberReadStore) FindAll(ctx context.Context) ([]*queries.MemberView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, rut, full_name, email, active, created_at
		 FROM members
		 ORDER BY full_name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list members", err)
	}
	defer rows.Close()

	var out []*queries.MemberView
	for rows.Next() {
		var (
			v         queries.MemberView
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.RUT, &v.FullName, &v.Email, &v.Active, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan member row", err)
		}
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate member rows", err)
	}
	return out, nil
}
