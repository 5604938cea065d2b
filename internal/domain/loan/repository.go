package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

// LoanRepository defines data access for loans and their installments.
type LoanRepository interface {
	Create(ctx context.Context, l Loan) (Loan, error)
	GetByID(ctx context.Context, id string, orgID string) (Loan, error)
	ListByEmployee(ctx context.Context, employeeID string, orgID string) ([]Loan, error)
	UpdateStatus(ctx context.Context, id string, orgID string, status LoanStatus) error
	SetDisbursed(ctx context.Context, id string, orgID string) (Loan, error)
	ReduceBalance(ctx context.Context, id string, amount decimal.Decimal) (Loan, error)

	// Schedule
	HasEMIs(ctx context.Context, loanID string) (bool, error)
	CreateEMIs(ctx context.Context, emis []EMI) error
	ListEMIs(ctx context.Context, loanID string) ([]EMI, error)

	// Payslip linkage. FindUnpaidForEmployeePeriod returns unpaid EMIs
	// for the employee's loans due in (month, year) that are not linked
	// to any payslip.
	FindUnpaidForEmployeePeriod(ctx context.Context, employeeID string, month, year int) ([]EMI, error)
	LinkToPayslip(ctx context.Context, emiIDs []string, payslipID string) error
	DetachFromPayslip(ctx context.Context, payslipID string) error
	// ListByPayslip returns the EMIs currently linked to the payslip.
	ListByPayslip(ctx context.Context, payslipID string) ([]EMI, error)
	MarkPaid(ctx context.Context, emiIDs []string) error
}
