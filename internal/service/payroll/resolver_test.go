package payroll

import (
	"testing"

	"github.com/astrahr/payroll-backend-go/internal/domain/component"
	"github.com/astrahr/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAllocationValue(t *testing.T) {
	base := decimal.NewFromInt(50000)

	tests := []struct {
		name       string
		amount     string
		percentage string
		want       string
	}{
		{"explicit amount", "5000", "0", "5000"},
		{"amount wins over percentage", "5000", "20", "5000"},
		{"percentage of base", "0", "20", "10000"},
		{"fractional percentage", "0", "12.5", "6250"},
		{"neither set", "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := salary.ComponentAllocation{
				Amount:     decimal.RequireFromString(tt.amount),
				Percentage: decimal.RequireFromString(tt.percentage),
			}

			got := AllocationValue(a, base)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestResolveAmount(t *testing.T) {
	// 28 working days, 7 unpaid: ratio 0.75, 21 paid days.
	p := Prorate(28, decimal.NewFromInt(7))

	tests := []struct {
		name     string
		calcType component.CalcType
		value    string
		want     string
	}{
		{"fixed ignores attendance", component.CalcFixed, "5000", "5000"},
		{"attendance prorated scales by ratio", component.CalcAttendanceProrated, "10000", "7500"},
		{"percentage of base scales by ratio", component.CalcPercentageOfBase, "10000", "7500"},
		{"per day multiplies paid days", component.CalcPerDay, "150", "3150"},
		{"rounding half up", component.CalcAttendanceProrated, "100.01", "75.01"},
		{"unknown calc type yields zero", component.CalcType("bogus"), "5000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAmount(tt.calcType, decimal.RequireFromString(tt.value), p)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestProratedBase(t *testing.T) {
	p := Prorate(28, decimal.NewFromInt(7))

	got := ProratedBase(decimal.NewFromInt(50000), p)
	assert.True(t, got.Equal(decimal.NewFromInt(37500)), "got %s", got)

	full := Prorate(28, decimal.Zero)
	got = ProratedBase(decimal.NewFromInt(50000), full)
	assert.True(t, got.Equal(decimal.NewFromInt(50000)), "got %s", got)
}

func TestProratedBase_TwoDecimalResult(t *testing.T) {
	// 10000 * 1/3 rounds to 3333.33.
	p := Prorate(30, decimal.NewFromInt(20))

	got := ProratedBase(decimal.NewFromInt(10000), p)
	assert.True(t, got.Equal(decimal.RequireFromString("3333.33")), "got %s", got)
}
