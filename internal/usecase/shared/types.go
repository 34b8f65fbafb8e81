package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SpaceSnapshot struct {
	ID               uuid.UUID
	Name             string
	Capacity         int32
	HourlyRate       decimal.NullDecimal
	MemberHourlyRate decimal.NullDecimal
	Active           bool
}

type CouponSnapshot struct {
	ID                 uuid.UUID
	Code               string
	DiscountType       string
	DiscountValue      decimal.Decimal
	ValidFrom          *time.Time
	ValidTo            *time.Time
	MaxUses            *int32
	CurrentUses        int32
	MinNetAmount       decimal.Decimal
	Active             bool
	SingleUsePerMember bool
}

type MemberSnapshot struct {
	ID       uuid.UUID
	RUT      string
	FullName string
	Email    string
	Active   bool
}

type ReservationSnapshot struct {
	ID            uuid.UUID
	SpaceID       uuid.UUID
	Status        string
	PaymentStatus string
	StartDate     time.Time
	EndDate       *time.Time
	StartTime     string
	EndTime       string
	CustomerEmail string
	TotalAmount   decimal.Decimal
}
