package rental

import (
	"github.com/shopspring/decimal"
	"github.com/talkincode/estatehub/internal/domain"
)

// BillingPeriods counts the calendar months touched by the inclusive range.
// 2024-01-15..2024-03-10 spans January, February and March: 3 periods.
func BillingPeriods(r domain.DateRange) int {
	sy, sm, _ := r.Start.Date()
	ey, em, _ := r.End.Date()
	return (ey-sy)*12 + int(em-sm) + 1
}

// Quote computes the total cost of renting at a monthly price over r
func Quote(price decimal.Decimal, r domain.DateRange) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(BillingPeriods(r)))).Round(2)
}

// ValidateRange checks a requested range against the property's
// availability window. The first failing rule wins.
func ValidateRange(p *domain.Property, r domain.DateRange) error {
	window := p.Window()
	switch {
	case !r.Ordered():
		return domain.Validation(domain.CodeDateRangeInvalid, "Start date must not be after end date")
	case !window.Contains(r.Start):
		return domain.Validation(domain.CodeDateRangeInvalid, "Start date is outside the availability window")
	case !window.Contains(r.End):
		return domain.Validation(domain.CodeDateRangeInvalid, "End date is outside the availability window")
	}
	return nil
}
