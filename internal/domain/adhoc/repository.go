package adhoc

import "context"

// PaymentRepository defines data access for ad-hoc payments.
type PaymentRepository interface {
	Create(ctx context.Context, p AdhocPayment) (AdhocPayment, error)
	GetByID(ctx context.Context, id string, orgID string) (AdhocPayment, error)
	ListByEmployee(ctx context.Context, employeeID string, orgID string) ([]AdhocPayment, error)
	Cancel(ctx context.Context, id string, orgID string) error

	// FindPendingForEmployeePeriod returns pending payments pinned to
	// the period or unpinned, excluding payments already linked to a
	// different payslip. Payments linked to payslipID itself are
	// included so recalculation can merge them again.
	FindPendingForEmployeePeriod(ctx context.Context, employeeID, periodID, payslipID string) ([]AdhocPayment, error)
	LinkToPayslip(ctx context.Context, paymentID, payslipID string) error
	// DetachFromPayslip unlinks every still-pending payment from the
	// payslip; recalculation relinks the ones it merges again.
	DetachFromPayslip(ctx context.Context, payslipID string) error
	// MarkProcessedByPayslip flips every pending payment linked to the
	// payslip to processed; called when the payslip is approved.
	MarkProcessedByPayslip(ctx context.Context, payslipID string) error
}
