package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProrate(t *testing.T) {
	tests := []struct {
		name          string
		workingDays   int
		lossOfPayDays string
		wantPaid      string
		wantRatio     string
	}{
		{
			name:          "full attendance",
			workingDays:   30,
			lossOfPayDays: "0",
			wantPaid:      "30",
			wantRatio:     "1",
		},
		{
			name:          "one week absent",
			workingDays:   28,
			lossOfPayDays: "7",
			wantPaid:      "21",
			wantRatio:     "0.75",
		},
		{
			name:          "half day loss",
			workingDays:   30,
			lossOfPayDays: "0.5",
			wantPaid:      "29.5",
			wantRatio:     "0.9833333333333333",
		},
		{
			name:          "fully absent",
			workingDays:   30,
			lossOfPayDays: "30",
			wantPaid:      "0",
			wantRatio:     "0",
		},
		{
			name:          "loss exceeds working days clamps to zero",
			workingDays:   20,
			lossOfPayDays: "25",
			wantPaid:      "0",
			wantRatio:     "0",
		},
		{
			name:          "negative loss clamps to full attendance",
			workingDays:   30,
			lossOfPayDays: "-2",
			wantPaid:      "30",
			wantRatio:     "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lop := decimal.RequireFromString(tt.lossOfPayDays)
			got := Prorate(tt.workingDays, lop)

			assert.Equal(t, tt.workingDays, got.WorkingDays)
			assert.True(t, got.PaidDays.Equal(decimal.RequireFromString(tt.wantPaid)),
				"paid days = %s, want %s", got.PaidDays, tt.wantPaid)
			wantRatio := decimal.RequireFromString(tt.wantRatio)
			assert.True(t, got.Ratio.Sub(wantRatio).Abs().LessThan(decimal.New(1, -12)),
				"ratio = %s, want %s", got.Ratio, tt.wantRatio)
		})
	}
}

func TestProrate_DegeneratePeriod(t *testing.T) {
	for _, wd := range []int{0, -5} {
		got := Prorate(wd, decimal.NewFromInt(3))

		assert.True(t, got.PaidDays.IsZero())
		assert.True(t, got.Ratio.IsZero())
	}
}

func TestProrate_RatioBounds(t *testing.T) {
	one := decimal.NewFromInt(1)

	for lop := 0; lop <= 40; lop += 5 {
		got := Prorate(30, decimal.NewFromInt(int64(lop)))

		assert.False(t, got.Ratio.IsNegative(), "lop=%d", lop)
		assert.False(t, got.Ratio.GreaterThan(one), "lop=%d", lop)
	}
}
