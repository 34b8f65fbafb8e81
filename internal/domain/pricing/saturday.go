package pricing

import "github.com/shopspring/decimal"

// SaturdayRate holds the special weekend schedule of one space.
// MemberFlatNet is a single net fee covering the whole Saturday booking.
// GeneralHourlyTotal is the tax-inclusive amount charged per hour to the
// general public.
type SaturdayRate struct {
	MemberFlatNet      decimal.Decimal
	GeneralHourlyTotal decimal.Decimal
}

// Saturday schedule agreed with the organization, keyed by space name.
// Spaces not listed here fall back to standard hourly pricing.
var saturdayRates = map[string]SaturdayRate{
	"Sala chica": {
		MemberFlatNet:      decimal.NewFromInt(25000),
		GeneralHourlyTotal: decimal.NewFromInt(12000),
	},
	"Sala mediana": {
		MemberFlatNet:      decimal.NewFromInt(35000),
		GeneralHourlyTotal: decimal.NewFromInt(17000),
	},
	"Salón auditorio": {
		MemberFlatNet:      decimal.NewFromInt(50000),
		GeneralHourlyTotal: decimal.NewFromInt(25000),
	},
}

// SaturdayRateFor exposes the table for reporting; the calculator consults it
// directly.
func SaturdayRateFor(spaceName string) (SaturdayRate, bool) {
	sat, ok := saturdayRates[spaceName]
	return sat, ok
}
