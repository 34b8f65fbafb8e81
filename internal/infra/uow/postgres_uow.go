package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/infra/readstore"
	"reservas-backend/internal/infra/repository"
	"reservas-backend/internal/pkg/errs"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	reservationRepo shared.ReservationRepository
	couponRepo      shared.CouponRepository
	memberRepo      shared.MemberRepository
	blockedDateRepo shared.BlockedDateRepository
	commandReads    shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Coupons() shared.CouponRepository {
	if t.couponRepo == nil {
		t.couponRepo = repository.NewCouponRepository(t.dbtx)
	}
	return t.couponRepo
}

func (t *pgTx) Members() shared.MemberRepository {
	if t.memberRepo == nil {
		t.memberRepo = repository.NewMemberRepository(t.dbtx)
	}
	return t.memberRepo
}

func (t *pgTx) BlockedDates() shared.BlockedDateRepository {
	if t.blockedDateRepo == nil {
		t.blockedDateRepo = repository.NewBlockedDateRepository(t.dbtx)
	}
	return t.blockedDateRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	spaceStore       *readstore.SpaceReadStore
	couponStore      *readstore.CouponReadStore
	memberStore      *readstore.MemberReadStore
	reservationStore *readstore.ReservationReadStore
	blockedDateStore *readstore.BlockedDateReadStore
}

func (r *commandReads) spaces() *readstore.SpaceReadStore {
	if r.spaceStore == nil {
		r.spaceStore = readstore.NewSpaceReadStore(r.dbtx)
	}
	return r.spaceStore
}

func (r *commandReads) coupons() *readstore.CouponReadStore {
	if r.couponStore == nil {
		r.couponStore = readstore.NewCouponReadStore(r.dbtx)
	}
	return r.couponStore
}

func (r *commandReads) members() *readstore.MemberReadStore {
	if r.memberStore == nil {
		r.memberStore = readstore.NewMemberReadStore(r.dbtx)
	}
	return r.memberStore
}

func (r *commandReads) reservations() *readstore.ReservationReadStore {
	if r.reservationStore == nil {
		r.reservationStore = readstore.NewReservationReadStore(r.dbtx)
	}
	return r.reservationStore
}

func (r *commandReads) blockedDates() *readstore.BlockedDateReadStore {
	if r.blockedDateStore == nil {
		r.blockedDateStore = readstore.NewBlockedDateReadStore(r.dbtx)
	}
	return r.blockedDateStore
}

func (r *commandReads) SpaceByID(ctx context.Context, id uuid.UUID) (*shared.SpaceSnapshot, error) {
	return r.spaces().FindByID(ctx, id)
}

func (r *commandReads) SpaceByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.SpaceSnapshot, error) {
	return r.spaces().FindByIDForUpdate(ctx, id)
}

func (r *commandReads) CouponByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	return r.coupons().FindByCode(ctx, code)
}

func (r *commandReads) CouponUsedByMember(ctx context.Context, couponID, memberID uuid.UUID) (bool, error) {
	return r.coupons().UsedByMember(ctx, couponID, memberID)
}

func (r *commandReads) MemberByRUT(ctx context.Context, rut string) (*shared.MemberSnapshot, error) {
	return r.members().FindByRUT(ctx, rut)
}

func (r *commandReads) MemberBookedHours(ctx context.Context, memberID uuid.UUID, from, to time.Time) (int, error) {
	return r.members().BookedHours(ctx, memberID, from, to)
}

func (r *commandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	return r.reservations().FindByID(ctx, id)
}

func (r *commandReads) HasOverlap(ctx context.Context, spaceID uuid.UUID, date time.Time, startTime, endTime string) (bool, error) {
	return r.reservations().HasOverlap(ctx, spaceID, date, startTime, endTime)
}

func (r *commandReads) IsDateBlocked(ctx context.Context, date time.Time) (bool, error) {
	return r.blockedDates().IsBlocked(ctx, date)
}
