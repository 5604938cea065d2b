package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusDraft      PeriodStatus = "draft"
	PeriodStatusProcessing PeriodStatus = "processing"
	PeriodStatusCompleted  PeriodStatus = "completed"
	PeriodStatusPaid       PeriodStatus = "paid"
	PeriodStatusCancelled  PeriodStatus = "cancelled"
)

// PayrollPeriod identifies one (org, month, year) payroll cycle. Its
// aggregate totals are always recomputed from the payslips in the
// period, never incremented in place.
type PayrollPeriod struct {
	ID              string
	OrgID           string
	Month           int
	Year            int
	Status          PeriodStatus
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal
	PayslipCount    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PayslipStatus enum, independent of the period status.
type PayslipStatus string

const (
	PayslipStatusGenerated PayslipStatus = "generated"
	PayslipStatusApproved  PayslipStatus = "approved"
	PayslipStatusPaid      PayslipStatus = "paid"
	PayslipStatusCancelled PayslipStatus = "cancelled"
)

// Payslip is one employee's result for one period, unique per
// (employee, period). NetSalary = GrossEarnings - TotalDeductions holds
// after every calculation.
type Payslip struct {
	ID         string
	OrgID      string
	EmployeeID string
	PeriodID   string

	WorkingDays   int
	PresentDays   decimal.Decimal
	LeaveDays     decimal.Decimal
	LossOfPayDays decimal.Decimal
	OvertimeHours decimal.Decimal

	GrossEarnings       decimal.Decimal
	TotalDeductions     decimal.Decimal
	NetSalary           decimal.Decimal
	LossOfPayDeduction  decimal.Decimal
	StatutoryDeductions decimal.Decimal
	AdvanceRecovery     decimal.Decimal
	OvertimeAmount      decimal.Decimal

	Status    PayslipStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// PayslipLineItem is one resolved component amount on a payslip, unique
// per (payslip, component). Manual items survive recalculation.
type PayslipLineItem struct {
	ID          string
	PayslipID   string
	ComponentID string
	Amount      decimal.Decimal
	IsManual    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	ComponentCode          *string
	ComponentName          *string
	ComponentKind          *string
	ComponentStatutory     *bool
	ComponentStatutoryType *string
}

// PayrollSettings holds per-organization statutory contribution rules
// plus the overtime pay rule. A missing row means every engine is
// disabled.
type PayrollSettings struct {
	ID    string
	OrgID string

	PFEnabled           bool
	PFEmployeeRate      decimal.Decimal
	PFWageCeiling       decimal.Decimal
	PFRestrictToCeiling bool

	ESIEnabled      bool
	ESIEmployeeRate decimal.Decimal
	ESIWageCeiling  decimal.Decimal

	AutoIncomeTax bool

	OvertimeEnabled    bool
	OvertimeHourlyRate decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AttendanceSummary is the per-employee attendance aggregate for a
// period, sourced from the attendance and leave tables.
type AttendanceSummary struct {
	EmployeeID    string
	WorkingDays   int
	PresentDays   decimal.Decimal
	LeaveDays     decimal.Decimal
	AbsentDays    decimal.Decimal
	OvertimeHours decimal.Decimal
}

// LossOfPayDays derives unpaid absence: absent days not covered by
// approved leave, floored at zero.
func (a AttendanceSummary) LossOfPayDays() decimal.Decimal {
	lop := a.AbsentDays.Sub(a.LeaveDays)
	if lop.IsNegative() {
		return decimal.Zero
	}
	return lop
}
