package payroll

import (
	"github.com/astrahr/payroll-backend-go/internal/domain/component"
	"github.com/astrahr/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AllocationValue derives the absolute value of an allocation before
// proration. An explicit amount wins; otherwise the percentage is
// resolved against the unprorated base.
func AllocationValue(a salary.ComponentAllocation, base decimal.Decimal) decimal.Decimal {
	if !a.Amount.IsZero() {
		return a.Amount
	}
	if !a.Percentage.IsZero() {
		return base.Mul(a.Percentage).Div(hundred)
	}
	return decimal.Zero
}

// ResolveAmount computes the final line-item amount for one allocated
// component, rounded to 2 decimal places half-up.
//
// Percentage-of-base components are treated as attendance-sensitive:
// their resolved absolute value is scaled by the proration ratio, same
// as attendance-prorated ones. A percentage allowance that must not
// shrink with absence is catalogued as calc type fixed instead.
func ResolveAmount(calcType component.CalcType, value decimal.Decimal, p ProrationResult) decimal.Decimal {
	switch calcType {
	case component.CalcFixed:
		return value.Round(2)
	case component.CalcPercentageOfBase, component.CalcAttendanceProrated:
		return value.Mul(p.Ratio).Round(2)
	case component.CalcPerDay:
		return value.Mul(p.PaidDays).Round(2)
	default:
		return decimal.Zero
	}
}

// ProratedBase scales the base salary by the proration ratio. The base
// is always attendance-prorated regardless of component semantics.
func ProratedBase(base decimal.Decimal, p ProrationResult) decimal.Decimal {
	return base.Mul(p.Ratio).Round(2)
}
