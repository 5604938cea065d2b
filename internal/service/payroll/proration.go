package payroll

import "github.com/shopspring/decimal"

// ProrationResult carries the paid-day count and the dimensionless
// ratio used to scale attendance-sensitive amounts. Ratio is always in
// [0, 1].
type ProrationResult struct {
	WorkingDays int
	PaidDays    decimal.Decimal
	Ratio       decimal.Decimal
}

// Prorate computes paid days and the proration ratio for a period. A
// period with no working days is degenerate: it yields zero paid days
// and ratio zero rather than an error, so callers can treat it as a
// skip.
func Prorate(workingDays int, lossOfPayDays decimal.Decimal) ProrationResult {
	if workingDays <= 0 {
		return ProrationResult{WorkingDays: workingDays, PaidDays: decimal.Zero, Ratio: decimal.Zero}
	}

	wd := decimal.NewFromInt(int64(workingDays))
	paid := wd.Sub(lossOfPayDays)
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	if paid.GreaterThan(wd) {
		paid = wd
	}

	return ProrationResult{
		WorkingDays: workingDays,
		PaidDays:    paid,
		Ratio:       paid.Div(wd),
	}
}
