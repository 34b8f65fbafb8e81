package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDuration = errors.New("duration must be at least one hour")
	ErrNoRateResolved  = errors.New("no valid rate resolved for space")
)

// TaxRate is the IVA applied on every net amount.
var TaxRate = decimal.NewFromFloat(0.19)

var onePlusTax = decimal.NewFromInt(1).Add(TaxRate)

// RateCard is the pricing reference data of one space. Rates are net
// (pre-tax) hourly amounts; either may be absent in the source data.
type RateCard struct {
	SpaceName        string
	HourlyRate       decimal.NullDecimal
	MemberHourlyRate decimal.NullDecimal
}

// Breakdown is the frozen price of one booking slot. Net is the amount after
// the discount was subtracted; Total = Net + Tax.
type Breakdown struct {
	Net      decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Calculate resolves the applicable net rate for the given date, clamps the
// discount so the net never goes negative, and derives tax and total. All
// outputs are rounded to 2 decimal places.
func Calculate(card RateCard, date time.Time, hours int, member bool, discount decimal.Decimal) (Breakdown, error) {
	base, err := BaseNet(card, date, hours, member)
	if err != nil {
		return Breakdown{}, err
	}
	return Settle(base, discount), nil
}

// Settle derives the final breakdown from a pre-discount net base. The
// discount is clamped so the net never goes negative; tax and total follow
// from the discounted net.
func Settle(base, discount decimal.Decimal) Breakdown {
	if discount.GreaterThan(base) {
		discount = base
	}
	discount = discount.Round(2)

	net := base.Sub(discount).Round(2)
	tax := net.Mul(TaxRate).Round(2)
	total := net.Add(tax)

	return Breakdown{
		Net:      net,
		Discount: discount,
		Tax:      tax,
		Total:    total,
	}
}

// BaseNet is the pre-discount net price of one slot. Used standalone as the
// comparison base for coupon minimum-spend checks.
func BaseNet(card RateCard, date time.Time, hours int, member bool) (decimal.Decimal, error) {
	if hours <= 0 {
		return decimal.Zero, ErrInvalidDuration
	}

	if date.Weekday() == time.Saturday {
		if sat, ok := saturdayRates[card.SpaceName]; ok {
			return saturdayNet(sat, hours, member), nil
		}
		// Space missing from the Saturday table: standard hourly pricing.
	}

	rate, err := hourlyRate(card, member)
	if err != nil {
		return decimal.Zero, err
	}
	return rate.Mul(decimal.NewFromInt(int64(hours))).Round(2), nil
}

func saturdayNet(sat SaturdayRate, hours int, member bool) decimal.Decimal {
	if member {
		// Flat net fee for members, independent of duration.
		return sat.MemberFlatNet.Round(2)
	}
	// The general Saturday figure is a tax-inclusive hourly total; back the
	// tax out so the stored net re-yields exactly that total.
	gross := sat.GeneralHourlyTotal.Mul(decimal.NewFromInt(int64(hours)))
	return gross.Div(onePlusTax).Round(2)
}

// hourlyRate picks the member rate when applicable, falling back to the
// general rate if the member rate is missing. A missing rate must surface as
// an error, never as a silent zero price.
func hourlyRate(card RateCard, member bool) (decimal.Decimal, error) {
	if member && card.MemberHourlyRate.Valid {
		return card.MemberHourlyRate.Decimal, nil
	}
	if card.HourlyRate.Valid {
		return card.HourlyRate.Decimal, nil
	}
	return decimal.Zero, ErrNoRateResolved
}
