package payroll

import (
	payrolldomain "github.com/astrahr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ProvidentFund computes the employee-side PF contribution on the
// prorated base salary. The wage ceiling caps the contribution base
// when the restriction flag is set. Zero means not applicable; the
// caller must not store zero rows.
func ProvidentFund(s payrolldomain.PayrollSettings, proratedBase decimal.Decimal) decimal.Decimal {
	if !s.PFEnabled {
		return decimal.Zero
	}

	base := proratedBase
	if s.PFRestrictToCeiling && s.PFWageCeiling.IsPositive() && base.GreaterThan(s.PFWageCeiling) {
		base = s.PFWageCeiling
	}

	amount := base.Mul(s.PFEmployeeRate).Div(hundred).Round(2)
	if !amount.IsPositive() {
		return decimal.Zero
	}
	return amount
}

// HealthInsurance computes the employee-side ESI contribution on gross
// earnings. It applies only while gross earnings stay at or below the
// wage ceiling; above it the employee exits the scheme entirely.
func HealthInsurance(s payrolldomain.PayrollSettings, grossEarnings decimal.Decimal) decimal.Decimal {
	if !s.ESIEnabled {
		return decimal.Zero
	}
	if s.ESIWageCeiling.IsPositive() && grossEarnings.GreaterThan(s.ESIWageCeiling) {
		return decimal.Zero
	}

	amount := grossEarnings.Mul(s.ESIEmployeeRate).Div(hundred).Round(2)
	if !amount.IsPositive() {
		return decimal.Zero
	}
	return amount
}

// OvertimePay computes overtime earnings from hours and the configured
// hourly rate.
func OvertimePay(s payrolldomain.PayrollSettings, overtimeHours decimal.Decimal) decimal.Decimal {
	if !s.OvertimeEnabled || !overtimeHours.IsPositive() {
		return decimal.Zero
	}
	return overtimeHours.Mul(s.OvertimeHourlyRate).Round(2)
}
