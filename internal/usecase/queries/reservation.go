package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID             uuid.UUID       `json:"id"`
	SpaceID        uuid.UUID       `json:"space_id"`
	SpaceName      string          `json:"space_name"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email"`
	CustomerPhone  string          `json:"customer_phone,omitempty"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
	StartTime      string          `json:"start_time"`
	EndTime        string          `json:"end_time"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"payment_status"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	MemberID       *uuid.UUID      `json:"member_id,omitempty"`
	CouponID       *uuid.UUID      `json:"coupon_id,omitempty"`
	DocumentType   *string         `json:"document_type,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ReservationListItem struct {
	ID            uuid.UUID       `json:"id"`
	SpaceName     string          `json:"space_name"`
	CustomerName  string          `json:"customer_name"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReservationFilter narrows the admin listing; nil fields are ignored.
// Search matches customer name or email, case-insensitive.
type ReservationFilter struct {
	SpaceID       *uuid.UUID
	Status        *string
	PaymentStatus *string
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        *string
	Limit         int32
	Offset        int32
}

// ReservationPage is one page of the admin listing plus the unpaginated total.
type ReservationPage struct {
	Items  []*ReservationListItem `json:"items"`
	Total  int64                  `json:"total"`
	Limit  int32                  `json:"limit"`
	Offset int32                  `json:"offset"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListAdmin(ctx context.Context, filter ReservationFilter) (*ReservationPage, error)
	OccupiedSlots(ctx context.Context, spaceID *uuid.UUID, from, to time.Time) ([]*OccupiedSlotView, error)
}

type ReservationViewRepo interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindAdminList(ctx context.Context, filter ReservationFilter) ([]*ReservationListItem, error)
	CountAdminList(ctx context.Context, filter ReservationFilter) (int64, error)
	FindOccupiedSlots(ctx context.Context, spaceID *uuid.UUID, from, to time.Time) ([]*OccupiedSlotView, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	return q.repo.FindViewByID(ctx, id)
}

func (q *reservationQueriesImpl) ListAdmin(ctx context.Context, filter ReservationFilter) (*ReservationPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	items, err := q.repo.FindAdminList(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := q.repo.CountAdminList(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ReservationPage{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (q *reservationQueriesImpl) OccupiedSlots(ctx context.Context, spaceID *uuid.UUID, from, to time.Time) ([]*OccupiedSlotView, error) {
	return q.repo.FindOccupiedSlots(ctx, spaceID, from, to)
}
