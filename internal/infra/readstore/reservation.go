package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/pgconv"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	var (
		snap    shared.ReservationSnapshot
		endDate pgtype.Date
		total   pgtype.Numeric
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, space_id, status, payment_status,
		        start_date, end_date,
		        to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		        customer_email, total_amount
		 FROM reservations
		 WHERE id = $1`,
		id).Scan(
		&snap.ID, &snap.SpaceID, &snap.Status, &snap.PaymentStatus,
		&snap.StartDate, &endDate,
		&snap.StartTime, &snap.EndTime,
		&snap.CustomerEmail, &total)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	snap.EndDate = pgconv.DatePtrFromPgtype(endDate)
	if snap.TotalAmount, err = pgconv.DecimalFromNumeric(total); err != nil {
		return nil, infra.WrapRepoErr("failed to convert reservation total", err)
	}
	return &snap, nil
}

// HasOverlap runs the collision test against active reservations touching
// the given date: newStart < existingEnd AND newEnd > existingStart. Range
// rows match through COALESCE(end_date, start_date).
func (r *ReservationReadStore) HasOverlap(ctx context.Context, spaceID uuid.UUID, date time.Time, startTime, endTime string) (bool, error) {
	var overlaps bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1
			FROM reservations
			WHERE space_id = $1
			  AND status NOT IN ('cancelada_por_cliente', 'cancelada_por_admin', 'rechazada')
			  AND $2::date BETWEEN start_date AND COALESCE(end_date, start_date)
			  AND $3::time < end_time
			  AND $4::time > start_time
		)`,
		spaceID, date, startTime, endTime).Scan(&overlaps)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check reservation overlap", err)
	}
	return overlaps, nil
}

const reservationViewColumns = `
	r.id, r.space_id, s.name,
	r.customer_name, r.customer_email, r.customer_phone,
	r.start_date, r.end_date,
	to_char(r.start_time, 'HH24:MI'), to_char(r.end_time, 'HH24:MI'),
	r.status, r.payment_status,
	r.net_amount, r.discount_amount, r.tax_amount, r.total_amount,
	r.member_id, r.coupon_id, r.document_type, r.notes,
	r.created_at, r.updated_at`

func (r *ReservationReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+reservationViewColumns+`
		 FROM reservations r
		 JOIN spaces s ON s.id = r.space_id
		 WHERE r.id = $1`, id)

	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation view", err)
	}
	return view, nil
}

func scanReservationView(row interface{ Scan(dest ...any) error }) (*queries.ReservationView, error) {
	var (
		v         queries.ReservationView
		phone     pgtype.Text
		endDate   pgtype.Date
		net       pgtype.Numeric
		discount  pgtype.Numeric
		tax       pgtype.Numeric
		total     pgtype.Numeric
		memberID  pgtype.UUID
		couponID  pgtype.UUID
		docType   pgtype.Text
		notes     pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.SpaceID, &v.SpaceName,
		&v.CustomerName, &v.CustomerEmail, &phone,
		&v.StartDate, &endDate,
		&v.StartTime, &v.EndTime,
		&v.Status, &v.PaymentStatus,
		&net, &discount, &tax, &total,
		&memberID, &couponID, &docType, &notes,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if p := pgconv.StringPtrFromPgtype(phone); p != nil {
		v.CustomerPhone = *p
	}
	v.EndDate = pgconv.DatePtrFromPgtype(endDate)
	if v.NetAmount, err = pgconv.DecimalFromNumeric(net); err != nil {
		return nil, err
	}
	if v.DiscountAmount, err = pgconv.DecimalFromNumeric(discount); err != nil {
		return nil, err
	}
	if v.TaxAmount, err = pgconv.DecimalFromNumeric(tax); err != nil {
		return nil, err
	}
	if v.TotalAmount, err = pgconv.DecimalFromNumeric(total); err != nil {
		return nil, err
	}
	v.MemberID = pgconv.UUIDPtrFromPgtype(memberID)
	v.CouponID = pgconv.UUIDPtrFromPgtype(couponID)
	v.DocumentType = pgconv.StringPtrFromPgtype(docType)
	v.Notes = pgconv.StringPtrFromPgtype(notes)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

// adminListWhere renders the shared WHERE clause for the admin listing
// and its count so the two queries can never disagree.
func adminListWhere(filter queries.ReservationFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	addArg := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.SpaceID != nil {
		addArg("r.space_id = $%d", *filter.SpaceID)
	}
	if filter.Status != nil {
		addArg("r.status = $%d", *filter.Status)
	}
	if filter.PaymentStatus != nil {
		addArg("r.payment_status = $%d", *filter.PaymentStatus)
	}
	if filter.DateFrom != nil {
		addArg("COALESCE(r.end_date, r.start_date) >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg("r.start_date <= $%d", *filter.DateTo)
	}
	if filter.Search != nil {
		args = append(args, "%"+*filter.Search+"%")
		conds = append(conds, fmt.Sprintf(
			"(r.customer_name ILIKE $%d OR r.customer_email ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *ReservationReadStore) FindAdminList(ctx context.Context, filter queries.ReservationFilter) ([]*queries.ReservationListItem, error) {
	where, args := adminListWhere(filter)

	args = append(args, filter.Limit, filter.Offset)
	sql := fmt.Sprintf(`
		SELECT r.id, s.name, r.customer_name,
		       r.start_date, r.end_date,
		       to_char(r.start_time, 'HH24:MI'), to_char(r.end_time, 'HH24:MI'),
		       r.status, r.payment_status, r.total_amount, r.created_at
		FROM reservations r
		JOIN spaces s ON s.id = r.space_id
		%s
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var out []*queries.ReservationListItem
	for rows.Next() {
		var (
			item      queries.ReservationListItem
			endDate   pgtype.Date
			total     pgtype.Numeric
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.SpaceName, &item.CustomerName,
			&item.StartDate, &endDate,
			&item.StartTime, &item.EndTime,
			&item.Status, &item.PaymentStatus, &total, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		item.EndDate = pgconv.DatePtrFromPgtype(endDate)
		if item.TotalAmount, err = pgconv.DecimalFromNumeric(total); err != nil {
			return nil, infra.WrapRepoErr("failed to convert reservation total", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}
	return out, nil
}

func (r *ReservationReadStore) CountAdminList(ctx context.Context, filter queries.ReservationFilter) (int64, error) {
	where, args := adminListWhere(filter)

	var total int64
	err := r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM reservations r %s", where), args...).Scan(&total)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count reservations", err)
	}
	return total, nil
}

// FindOccupiedSlots expands every active reservation touching [from, to]
// into per-day busy windows for the public calendar.
func (r *ReservationReadStore) FindOccupiedSlots(ctx context.Context, spaceID *uuid.UUID, from, to time.Time) ([]*queries.OccupiedSlotView, error) {
	var (
		conds = []string{
			"status NOT IN ('cancelada_por_cliente', 'cancelada_por_admin', 'rechazada')",
			"start_date <= $2",
			"COALESCE(end_date, start_date) >= $1",
		}
		args = []any{from, to}
	)
	if spaceID != nil {
		args = append(args, *spaceID)
		conds = append(conds, fmt.Sprintf("space_id = $%d", len(args)))
	}

	sql := fmt.Sprintf(`
		SELECT space_id, start_date, end_date,
		       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI')
		FROM reservations
		WHERE %s
		ORDER BY start_date, start_time`, strings.Join(conds, " AND "))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query occupied slots", err)
	}
	defer rows.Close()

	var out []*queries.OccupiedSlotView
	for rows.Next() {
		var (
			sid       uuid.UUID
			startDate time.Time
			endDate   pgtype.Date
			startTime string
			endTime   string
		)
		if err := rows.Scan(&sid, &startDate, &endDate, &startTime, &endTime); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupied slot row", err)
		}

		last := startDate
		if ed := pgconv.DatePtrFromPgtype(endDate); ed != nil {
			last = *ed
		}
		for day := startDate; !day.After(last); day = day.AddDate(0, 0, 1) {
			if day.Before(from) || day.After(to) {
				continue
			}
			out = append(out, &queries.OccupiedSlotView{
				SpaceID:   sid,
				Date:      day,
				StartTime: startTime,
				EndTime:   endTime,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate occupied slot rows", err)
	}
	return out, nil
}
