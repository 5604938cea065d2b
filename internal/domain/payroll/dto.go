package payroll

import (
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SETTINGS DTOs ==========

type PayrollSettingsResponse struct {
	ID    string `json:"id"`
	OrgID string `json:"org_id"`

	PFEnabled           bool            `json:"pf_enabled"`
	PFEmployeeRate      decimal.Decimal `json:"pf_employee_rate"`
	PFWageCeiling       decimal.Decimal `json:"pf_wage_ceiling"`
	PFRestrictToCeiling bool            `json:"pf_restrict_to_ceiling"`

	ESIEnabled      bool            `json:"esi_enabled"`
	ESIEmployeeRate decimal.Decimal `json:"esi_employee_rate"`
	ESIWageCeiling  decimal.Decimal `json:"esi_wage_ceiling"`

	AutoIncomeTax bool `json:"auto_income_tax"`

	OvertimeEnabled    bool            `json:"overtime_enabled"`
	OvertimeHourlyRate decimal.Decimal `json:"overtime_hourly_rate"`
}

type UpdatePayrollSettingsRequest struct {
	PFEnabled           *bool            `json:"pf_enabled,omitempty"`
	PFEmployeeRate      *decimal.Decimal `json:"pf_employee_rate,omitempty"`
	PFWageCeiling       *decimal.Decimal `json:"pf_wage_ceiling,omitempty"`
	PFRestrictToCeiling *bool            `json:"pf_restrict_to_ceiling,omitempty"`
	ESIEnabled          *bool            `json:"esi_enabled,omitempty"`
	ESIEmployeeRate     *decimal.Decimal `json:"esi_employee_rate,omitempty"`
	ESIWageCeiling      *decimal.Decimal `json:"esi_wage_ceiling,omitempty"`
	AutoIncomeTax       *bool            `json:"auto_income_tax,omitempty"`
	OvertimeEnabled     *bool            `json:"overtime_enabled,omitempty"`
	OvertimeHourlyRate  *decimal.Decimal `json:"overtime_hourly_rate,omitempty"`
}

func (r *UpdatePayrollSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PFEmployeeRate != nil && (r.PFEmployeeRate.IsNegative() || r.PFEmployeeRate.GreaterThan(decimal.NewFromInt(100))) {
		errs = append(errs, validator.ValidationError{Field: "pf_employee_rate", Message: "must be between 0 and 100"})
	}
	if r.ESIEmployeeRate != nil && (r.ESIEmployeeRate.IsNegative() || r.ESIEmployeeRate.GreaterThan(decimal.NewFromInt(100))) {
		errs = append(errs, validator.ValidationError{Field: "esi_employee_rate", Message: "must be between 0 and 100"})
	}
	if r.PFWageCeiling != nil && r.PFWageCeiling.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "pf_wage_ceiling", Message: "must be non-negative"})
	}
	if r.ESIWageCeiling != nil && r.ESIWageCeiling.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "esi_wage_ceiling", Message: "must be non-negative"})
	}
	if r.OvertimeHourlyRate != nil && r.OvertimeHourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hourly_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== PERIOD DTOs ==========

type CreatePeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID              string          `json:"id"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	Status          string          `json:"status"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
	PayslipCount    int             `json:"payslip_count"`
}

// ========== GENERATION DTOs ==========

// BatchError records one employee's failure inside a batch run.
type BatchError struct {
	EmployeeID string `json:"employee_id"`
	Message    string `json:"message"`
}

// GenerateResult is the outcome of a period-wide payroll run. Skips are
// employees with no current salary assignment; they are not errors.
type GenerateResult struct {
	Processed int            `json:"processed"`
	Skipped   int            `json:"skipped"`
	Errors    []BatchError   `json:"errors"`
	Period    PeriodResponse `json:"period"`
}

// ========== PAYSLIP DTOs ==========

type LineItemResponse struct {
	ID            string          `json:"id"`
	ComponentID   string          `json:"component_id"`
	ComponentCode string          `json:"component_code,omitempty"`
	ComponentName string          `json:"component_name,omitempty"`
	ComponentKind string          `json:"component_kind,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	IsManual      bool            `json:"is_manual"`
}

type PayslipResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	PeriodID   string `json:"period_id"`

	EmployeeName string `json:"employee_name,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`

	WorkingDays   int             `json:"working_days"`
	PresentDays   decimal.Decimal `json:"present_days"`
	LeaveDays     decimal.Decimal `json:"leave_days"`
	LossOfPayDays decimal.Decimal `json:"loss_of_pay_days"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`

	GrossEarnings       decimal.Decimal `json:"gross_earnings"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	NetSalary           decimal.Decimal `json:"net_salary"`
	LossOfPayDeduction  decimal.Decimal `json:"loss_of_pay_deduction"`
	StatutoryDeductions decimal.Decimal `json:"statutory_deductions"`
	AdvanceRecovery     decimal.Decimal `json:"advance_recovery"`
	OvertimeAmount      decimal.Decimal `json:"overtime_amount"`

	Status    string             `json:"status"`
	LineItems []LineItemResponse `json:"line_items,omitempty"`
}

type AddManualLineItemRequest struct {
	ComponentID string          `json:"component_id"`
	Amount      decimal.Decimal `json:"amount"`
}

func (r *AddManualLineItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ComponentID) {
		errs = append(errs, validator.ValidationError{Field: "component_id", Message: "is required"})
	}
	if r.Amount.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
