package payroll

import (
	"testing"

	payrolldomain "github.com/astrahr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func pfSettings(rate, ceiling string, restrict bool) payrolldomain.PayrollSettings {
	return payrolldomain.PayrollSettings{
		PFEnabled:           true,
		PFEmployeeRate:      decimal.RequireFromString(rate),
		PFWageCeiling:       decimal.RequireFromString(ceiling),
		PFRestrictToCeiling: restrict,
	}
}

func TestProvidentFund(t *testing.T) {
	tests := []struct {
		name     string
		settings payrolldomain.PayrollSettings
		base     string
		want     string
	}{
		{
			name:     "below ceiling",
			settings: pfSettings("12", "15000", true),
			base:     "10000",
			want:     "1200",
		},
		{
			name:     "restricted to ceiling",
			settings: pfSettings("12", "15000", true),
			base:     "50000",
			want:     "1800",
		},
		{
			name:     "unrestricted ignores ceiling",
			settings: pfSettings("12", "15000", false),
			base:     "50000",
			want:     "6000",
		},
		{
			name:     "zero ceiling never caps",
			settings: pfSettings("12", "0", true),
			base:     "50000",
			want:     "6000",
		},
		{
			name:     "disabled",
			settings: payrolldomain.PayrollSettings{PFEnabled: false, PFEmployeeRate: decimal.NewFromInt(12)},
			base:     "50000",
			want:     "0",
		},
		{
			name:     "zero base yields zero",
			settings: pfSettings("12", "15000", true),
			base:     "0",
			want:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProvidentFund(tt.settings, decimal.RequireFromString(tt.base))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func esiSettings(rate, ceiling string) payrolldomain.PayrollSettings {
	return payrolldomain.PayrollSettings{
		ESIEnabled:      true,
		ESIEmployeeRate: decimal.RequireFromString(rate),
		ESIWageCeiling:  decimal.RequireFromString(ceiling),
	}
}

func TestHealthInsurance(t *testing.T) {
	tests := []struct {
		name     string
		settings payrolldomain.PayrollSettings
		gross    string
		want     string
	}{
		{
			name:     "below ceiling applies",
			settings: esiSettings("0.75", "21000"),
			gross:    "20000",
			want:     "150",
		},
		{
			name:     "at ceiling still applies",
			settings: esiSettings("0.75", "21000"),
			gross:    "21000",
			want:     "157.5",
		},
		{
			name:     "above ceiling exits scheme",
			settings: esiSettings("0.75", "21000"),
			gross:    "21000.01",
			want:     "0",
		},
		{
			name:     "disabled",
			settings: payrolldomain.PayrollSettings{ESIEnabled: false, ESIEmployeeRate: decimal.NewFromInt(1)},
			gross:    "20000",
			want:     "0",
		},
		{
			name:     "rounds half up",
			settings: esiSettings("0.75", "21000"),
			gross:    "20001",
			want:     "150.01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HealthInsurance(tt.settings, decimal.RequireFromString(tt.gross))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestOvertimePay(t *testing.T) {
	s := payrolldomain.PayrollSettings{
		OvertimeEnabled:    true,
		OvertimeHourlyRate: decimal.RequireFromString("212.5"),
	}

	got := OvertimePay(s, decimal.NewFromInt(8))
	assert.True(t, got.Equal(decimal.NewFromInt(1700)), "got %s", got)

	got = OvertimePay(s, decimal.Zero)
	assert.True(t, got.IsZero())

	s.OvertimeEnabled = false
	got = OvertimePay(s, decimal.NewFromInt(8))
	assert.True(t, got.IsZero())
}
