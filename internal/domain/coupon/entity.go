package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrUnknownDiscountType = errors.New("unknown coupon discount type")

type DiscountType string

const (
	DiscountPercentage DiscountType = "porcentaje"
	DiscountFixed      DiscountType = "fijo"
)

// Coupon mirrors one row of the coupons table. Usage accounting lives in the
// database (conditional increment inside the booking transaction); the
// entity only evaluates applicability against a snapshot.
type Coupon struct {
	id                 uuid.UUID
	code               string
	discountType       DiscountType
	discountValue      decimal.Decimal
	validFrom          *time.Time
	validTo            *time.Time
	maxUses            *int32
	currentUses        int32
	minNetAmount       decimal.Decimal
	active             bool
	singleUsePerMember bool
}

func New(
	id uuid.UUID,
	code string,
	discountType DiscountType,
	discountValue decimal.Decimal,
	validFrom, validTo *time.Time,
	maxUses *int32,
	currentUses int32,
	minNetAmount decimal.Decimal,
	active bool,
	singleUsePerMember bool,
) (*Coupon, error) {
	switch discountType {
	case DiscountPercentage, DiscountFixed:
	default:
		return nil, ErrUnknownDiscountType
	}
	return &Coupon{
		id:                 id,
		code:               code,
		discountType:       discountType,
		discountValue:      discountValue,
		validFrom:          validFrom,
		validTo:            validTo,
		maxUses:            maxUses,
		currentUses:        currentUses,
		minNetAmount:       minNetAmount,
		active:             active,
		singleUsePerMember: singleUsePerMember,
	}, nil
}

func (c *Coupon) ID() uuid.UUID            { return c.id }
func (c *Coupon) Code() string             { return c.code }
func (c *Coupon) SingleUsePerMember() bool { return c.singleUsePerMember }

// Result is the outcome of evaluating a coupon against a base net amount.
// An invalid coupon never fails the booking; Reason is logged server-side.
type Result struct {
	Valid    bool
	Discount decimal.Decimal
	Reason   string
}

// Evaluate runs every server-side validity check against the pre-discount
// net amount. Date comparisons use calendar days (time-of-day ignored).
func (c *Coupon) Evaluate(baseNet decimal.Decimal, today time.Time) Result {
	today = truncateToDay(today)

	if !c.active {
		return Result{Reason: "coupon inactive"}
	}
	if c.validFrom != nil && today.Before(truncateToDay(*c.validFrom)) {
		return Result{Reason: "coupon not yet valid"}
	}
	if c.validTo != nil && today.After(truncateToDay(*c.validTo)) {
		return Result{Reason: "coupon expired"}
	}
	if c.maxUses != nil && c.currentUses >= *c.maxUses {
		return Result{Reason: "coupon usage cap reached"}
	}
	if baseNet.LessThan(c.minNetAmount) {
		return Result{Reason: "minimum net amount not met"}
	}

	return Result{Valid: true, Discount: c.discountFor(baseNet)}
}

// discountFor computes the raw discount, clamped so it never exceeds the
// base, rounded to 2 decimal places.
func (c *Coupon) discountFor(baseNet decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.discountType {
	case DiscountPercentage:
		discount = baseNet.Mul(c.discountValue).Div(decimal.NewFromInt(100))
	case DiscountFixed:
		discount = c.discountValue
	}
	if discount.GreaterThan(baseNet) {
		discount = baseNet
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount.Round(2)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
