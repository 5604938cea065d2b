package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// PayrollRepository defines data access for periods, payslips and line
// items. All methods are org-scoped where an orgID parameter exists.
type PayrollRepository interface {
	// Settings
	GetSettings(ctx context.Context, orgID string) (PayrollSettings, error)
	UpsertSettings(ctx context.Context, settings PayrollSettings) (PayrollSettings, error)

	// Periods
	CreatePeriod(ctx context.Context, period PayrollPeriod) (PayrollPeriod, error)
	GetPeriodByID(ctx context.Context, id string, orgID string) (PayrollPeriod, error)
	GetPeriodByMonthYear(ctx context.Context, orgID string, month, year int) (PayrollPeriod, error)
	UpdatePeriodStatus(ctx context.Context, id string, orgID string, status PeriodStatus) error
	// RecomputePeriodTotals re-aggregates the period's totals from its
	// payslips in a single statement, avoiding incremental drift.
	RecomputePeriodTotals(ctx context.Context, periodID string) (PayrollPeriod, error)

	// Payslips
	GetOrCreatePayslip(ctx context.Context, orgID, employeeID, periodID string) (Payslip, error)
	GetPayslipByID(ctx context.Context, id string, orgID string) (Payslip, error)
	ListPayslipsByPeriod(ctx context.Context, periodID string, orgID string) ([]Payslip, error)
	UpdatePayslip(ctx context.Context, p Payslip) error
	UpdatePayslipStatus(ctx context.Context, id string, orgID string, status PayslipStatus) error

	// Line items
	DeleteGeneratedLineItems(ctx context.Context, payslipID string) error
	DeleteLineItemsByStatutoryType(ctx context.Context, payslipID string, statutoryType string) error
	ListLineItems(ctx context.Context, payslipID string) ([]PayslipLineItem, error)
	// UpsertLineItemAmount adds delta to the (payslip, component) line
	// item, creating it when absent. At most one row per pair exists.
	UpsertLineItemAmount(ctx context.Context, payslipID, componentID string, delta decimal.Decimal, isManual bool) (PayslipLineItem, error)
}

// AttendanceSource is the collaborating attendance system. The payroll
// core consumes its summaries and never writes attendance.
type AttendanceSource interface {
	GetSummary(ctx context.Context, orgID, employeeID string, month, year int) (AttendanceSummary, error)
}
