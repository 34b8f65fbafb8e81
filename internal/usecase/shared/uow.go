package shared

import (
	"context"
	"time"

	"reservas-backend/internal/domain/reservation"
	"reservas-backend/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Coupons() CouponRepository
	Members() MemberRepository
	BlockedDates() BlockedDateRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	SpaceByID(ctx context.Context, id uuid.UUID) (*SpaceSnapshot, error)
	// SpaceByIDForUpdate takes a row lock on the space; only meaningful
	// inside Within.
	SpaceByIDForUpdate(ctx context.Context, id uuid.UUID) (*SpaceSnapshot, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	CouponUsedByMember(ctx context.Context, couponID, memberID uuid.UUID) (bool, error)
	MemberByRUT(ctx context.Context, rut string) (*MemberSnapshot, error)
	MemberBookedHours(ctx context.Context, memberID uuid.UUID, from, to time.Time) (int, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	HasOverlap(ctx context.Context, spaceID uuid.UUID, date time.Time, startTime, endTime string) (bool, error)
	IsDateBlocked(ctx context.Context, date time.Time) (bool, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status, paymentStatus reservation.PaymentStatus) error
	SetPaymentReference(ctx context.Context, id uuid.UUID, reference string, paymentStatus reservation.PaymentStatus) error
}

type CouponRepository interface {
	// IncrementUsage bumps current_uses when the cap has not been reached.
	// Returns false when the guarded update matched no row.
	IncrementUsage(ctx context.Context, couponID uuid.UUID) (bool, error)
	RecordMemberUse(ctx context.Context, couponID, memberID, reservationID uuid.UUID) error
}

type MemberRepository interface {
	Create(ctx context.Context, rut, fullName, email string, active bool) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, fullName, email string, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BlockedDateRepository interface {
	Block(ctx context.Context, date time.Time, reason string) (uuid.UUID, error)
	Unblock(ctx context.Context, id uuid.UUID) error
}
