//go:build unit

package commands_test

import (
	"context"
	"time"

	"reservas-backend/internal/domain/member"
	"reservas-backend/internal/domain/reservation"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/clock"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

// fakeReads answers every command-side read from in-memory maps.
type fakeReads struct {
	spaces       map[uuid.UUID]*shared.SpaceSnapshot
	members      map[string]*shared.MemberSnapshot
	coupons      map[string]*shared.CouponSnapshot
	couponUsed   map[uuid.UUID]bool
	bookedHours  map[string]int
	blockedDays  map[string]bool
	overlapDays  map[string]bool
	reservations map[uuid.UUID]*shared.ReservationSnapshot
}

func newFakeReads() *fakeReads {
	return &fakeReads{
		spaces:       map[uuid.UUID]*shared.SpaceSnapshot{},
		members:      map[string]*shared.MemberSnapshot{},
		coupons:      map[string]*shared.CouponSnapshot{},
		couponUsed:   map[uuid.UUID]bool{},
		bookedHours:  map[string]int{},
		blockedDays:  map[string]bool{},
		overlapDays:  map[string]bool{},
		reservations: map[uuid.UUID]*shared.ReservationSnapshot{},
	}
}

func (f *fakeReads) SpaceByID(_ context.Context, id uuid.UUID) (*shared.SpaceSnapshot, error) {
	if s, ok := f.spaces[id]; ok {
		return s, nil
	}
	return nil, notFound("space not found")
}

func (f *fakeReads) SpaceByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.SpaceSnapshot, error) {
	return f.SpaceByID(ctx, id)
}

func (f *fakeReads) CouponByCode(_ context.Context, code string) (*shared.CouponSnapshot, error) {
	if c, ok := f.coupons[code]; ok {
		return c, nil
	}
	return nil, notFound("coupon not found")
}

func (f *fakeReads) CouponUsedByMember(_ context.Context, couponID, _ uuid.UUID) (bool, error) {
	return f.couponUsed[couponID], nil
}

func (f *fakeReads) MemberByRUT(_ context.Context, rut string) (*shared.MemberSnapshot, error) {
	if m, ok := f.members[member.NormalizeRUT(rut)]; ok {
		return m, nil
	}
	return nil, notFound("member not found")
}

func (f *fakeReads) MemberBookedHours(_ context.Context, _ uuid.UUID, from, _ time.Time) (int, error) {
	return f.bookedHours[from.Format(dayLayout)], nil
}

func (f *fakeReads) ReservationByID(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	if r, ok := f.reservations[id]; ok {
		return r, nil
	}
	return nil, notFound("reservation not found")
}

func (f *fakeReads) HasOverlap(_ context.Context, _ uuid.UUID, date time.Time, _, _ string) (bool, error) {
	return f.overlapDays[date.Format(dayLayout)], nil
}

func (f *fakeReads) IsDateBlocked(_ context.Context, date time.Time) (bool, error) {
	return f.blockedDays[date.Format(dayLayout)], nil
}

type statusUpdate struct {
	id            uuid.UUID
	status        reservation.Status
	paymentStatus reservation.PaymentStatus
}

type paymentRefUpdate struct {
	id            uuid.UUID
	reference     string
	paymentStatus reservation.PaymentStatus
}

type fakeReservationRepo struct {
	created       []*reservation.Reservation
	statusUpdates []statusUpdate
	refUpdates    []paymentRefUpdate
	createErr     error
}

func (f *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, res)
	return res.ID(), nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status reservation.Status, paymentStatus reservation.PaymentStatus) error {
	f.statusUpdates = append(f.statusUpdates, statusUpdate{id: id, status: status, paymentStatus: paymentStatus})
	return nil
}

func (f *fakeReservationRepo) SetPaymentReference(_ context.Context, id uuid.UUID, reference string, paymentStatus reservation.PaymentStatus) error {
	f.refUpdates = append(f.refUpdates, paymentRefUpdate{id: id, reference: reference, paymentStatus: paymentStatus})
	return nil
}

type fakeCouponRepo struct {
	incrementOK    bool
	incrementCalls int
	recordErr      error
	recordCalls    int
}

func (f *fakeCouponRepo) IncrementUsage(_ context.Context, _ uuid.UUID) (bool, error) {
	f.incrementCalls++
	return f.incrementOK, nil
}

func (f *fakeCouponRepo) RecordMemberUse(_ context.Context, _, _, _ uuid.UUID) error {
	f.recordCalls++
	return f.recordErr
}

type fakeMemberRepo struct{}

func (fakeMemberRepo) Create(_ context.Context, _, _, _ string, _ bool) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (fakeMemberRepo) Update(_ context.Context, _ uuid.UUID, _, _ string, _ bool) error {
	return nil
}

func (fakeMemberRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

type fakeBlockedDateRepo struct{}

func (fakeBlockedDateRepo) Block(_ context.Context, _ time.Time, _ string) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (fakeBlockedDateRepo) Unblock(_ context.Context, _ uuid.UUID) error {
	return nil
}

type fakeTx struct {
	reads    *fakeReads
	resRepo  *fakeReservationRepo
	coupRepo *fakeCouponRepo
}

func (t *fakeTx) Reservations() shared.ReservationRepository { return t.resRepo }
func (t *fakeTx) Coupons() shared.CouponRepository           { return t.coupRepo }
func (t *fakeTx) Members() shared.MemberRepository           { return fakeMemberRepo{} }
func (t *fakeTx) BlockedDates() shared.BlockedDateRepository { return fakeBlockedDateRepo{} }
func (t *fakeTx) Reads() shared.CommandReads                 { return t.reads }
func (t *fakeTx) DB() db.DBTX                                { return nil }

type fakeUow struct {
	tx *fakeTx
}

func (u *fakeUow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUow) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUow) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUow) CommandReads() shared.CommandReads { return u.tx.reads }

// fakeReservationQueries projects views straight from the rows the fake
// repository captured, plus any pre-seeded views.
type fakeReservationQueries struct {
	repo  *fakeReservationRepo
	views map[uuid.UUID]*queries.ReservationView
}

func (f *fakeReservationQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	if v, ok := f.views[id]; ok {
		return v, nil
	}
	for _, row := range f.repo.created {
		if row.ID() == id {
			return viewFromRow(row), nil
		}
	}
	return nil, notFound("reservation not found")
}

func (f *fakeReservationQueries) ListAdmin(_ context.Context, _ queries.ReservationFilter) (*queries.ReservationPage, error) {
	return &queries.ReservationPage{}, nil
}

func (f *fakeReservationQueries) OccupiedSlots(_ context.Context, _ *uuid.UUID, _, _ time.Time) ([]*queries.OccupiedSlotView, error) {
	return nil, nil
}

func viewFromRow(row *reservation.Reservation) *queries.ReservationView {
	var endDate *time.Time
	if !row.EndDate().Equal(row.StartDate()) {
		e := row.EndDate()
		endDate = &e
	}
	return &queries.ReservationView{
		ID:             row.ID(),
		SpaceID:        row.SpaceID(),
		CustomerName:   row.Customer().Name,
		CustomerEmail:  row.Customer().Email,
		StartDate:      row.StartDate(),
		EndDate:        endDate,
		StartTime:      row.TimeRange().Start(),
		EndTime:        row.TimeRange().End(),
		Status:         row.Status().String(),
		PaymentStatus:  row.PaymentStatus().String(),
		NetAmount:      row.NetAmount(),
		DiscountAmount: row.DiscountAmount(),
		TaxAmount:      row.TaxAmount(),
		TotalAmount:    row.TotalAmount(),
	}
}

type fakeNotifier struct {
	created   int
	confirmed int
	cancelled int
	err       error
}

func (f *fakeNotifier) ReservationCreated(_ context.Context, _ *queries.ReservationView) error {
	f.created++
	return f.err
}

func (f *fakeNotifier) ReservationConfirmed(_ context.Context, _ *queries.ReservationView) error {
	f.confirmed++
	return f.err
}

func (f *fakeNotifier) ReservationCancelled(_ context.Context, _ *queries.ReservationView) error {
	f.cancelled++
	return f.err
}

type fakeGateway struct {
	session *commands.CheckoutSession
	err     error
}

func (f *fakeGateway) CreateCheckout(_ context.Context, _ uuid.UUID, _ decimal.Decimal, _ string) (*commands.CheckoutSession, error) {
	return f.session, f.err
}

type fixture struct {
	reads    *fakeReads
	resRepo  *fakeReservationRepo
	coupRepo *fakeCouponRepo
	uow      *fakeUow
	rq       *fakeReservationQueries
	notifier *fakeNotifier
	clk      *clock.MockClock
	spaceID  uuid.UUID
}

func newFixture() *fixture {
	reads := newFakeReads()
	resRepo := &fakeReservationRepo{}
	coupRepo := &fakeCouponRepo{incrementOK: true}
	tx := &fakeTx{reads: reads, resRepo: resRepo, coupRepo: coupRepo}

	spaceID := uuid.New()
	reads.spaces[spaceID] = &shared.SpaceSnapshot{
		ID:               spaceID,
		Name:             "Sala chica",
		Capacity:         10,
		HourlyRate:       decimal.NullDecimal{Decimal: decimal.NewFromInt(10000), Valid: true},
		MemberHourlyRate: decimal.NullDecimal{Decimal: decimal.NewFromInt(8000), Valid: true},
		Active:           true,
	}

	return &fixture{
		reads:    reads,
		resRepo:  resRepo,
		coupRepo: coupRepo,
		uow:      &fakeUow{tx: tx},
		rq:       &fakeReservationQueries{repo: resRepo, views: map[uuid.UUID]*queries.ReservationView{}},
		notifier: &fakeNotifier{},
		clk:      clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		spaceID:  spaceID,
	}
}

func (f *fixture) reservationCommands() commands.ReservationCommands {
	return commands.NewReservationCommands(f.uow, f.rq, f.notifier, f.clk)
}

func (f *fixture) statusCommands() commands.StatusCommands {
	return commands.NewStatusCommands(f.uow, f.rq, f.notifier)
}

func (f *fixture) paymentCommands(gw commands.PaymentGateway) commands.PaymentCommands {
	return commands.NewPaymentCommands(f.uow, gw, f.rq, f.notifier)
}
