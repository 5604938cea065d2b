package payroll

import "context"

// PayrollService is the outward surface of the payroll computation
// engine.
type PayrollService interface {
	GetSettings(ctx context.Context, orgID string) (PayrollSettingsResponse, error)
	UpdateSettings(ctx context.Context, orgID string, req UpdatePayrollSettingsRequest) (PayrollSettingsResponse, error)

	CreatePeriod(ctx context.Context, orgID string, req CreatePeriodRequest) (PeriodResponse, error)
	GetPeriod(ctx context.Context, orgID string, id string) (PeriodResponse, error)

	// GeneratePeriod runs payroll for every active employee of the
	// organization for (month, year), creating the period when it does
	// not exist yet. Per-employee failures never abort the batch.
	GeneratePeriod(ctx context.Context, orgID string, month, year int) (GenerateResult, error)

	// CalculatePayslip computes (or idempotently recomputes) one
	// employee's payslip for the period. An employee without a current
	// salary assignment surfaces salary.ErrNoCurrentAssignment so batch
	// callers can record a skip.
	CalculatePayslip(ctx context.Context, orgID, employeeID, periodID string) (PayslipResponse, error)
	RecalculatePayslip(ctx context.Context, orgID string, payslipID string) (PayslipResponse, error)

	GetPayslip(ctx context.Context, orgID string, id string) (PayslipResponse, error)
	ListPayslipsByPeriod(ctx context.Context, orgID string, periodID string) ([]PayslipResponse, error)

	ApprovePayslip(ctx context.Context, orgID string, payslipID string) error
	MarkPayslipPaid(ctx context.Context, orgID string, payslipID string) error

	AddManualLineItem(ctx context.Context, orgID string, payslipID string, req AddManualLineItemRequest) (PayslipResponse, error)
}
