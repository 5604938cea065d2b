package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanType enum
type LoanType string

const (
	TypeStandard LoanType = "standard"
	TypeAdvance  LoanType = "advance"
)

// LoanStatus enum
type LoanStatus string

const (
	StatusPending   LoanStatus = "pending"
	StatusApproved  LoanStatus = "approved"
	StatusDisbursed LoanStatus = "disbursed"
	StatusClosed    LoanStatus = "closed"
	StatusRejected  LoanStatus = "rejected"
)

// Loan is a loan or salary advance. TotalPayable is fixed at creation
// using simple interest and never recomputed.
type Loan struct {
	ID           string
	OrgID        string
	EmployeeID   string
	LoanType     LoanType
	Principal    decimal.Decimal
	InterestRate decimal.Decimal // annual percent
	TenureMonths int
	TotalPayable decimal.Decimal
	Balance      decimal.Decimal
	Status       LoanStatus
	DisbursedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalPayableFor computes principal plus simple interest over the
// tenure, rounded to 2 decimal places.
func TotalPayableFor(principal, annualRate decimal.Decimal, tenureMonths int) decimal.Decimal {
	interest := principal.
		Mul(annualRate).
		Mul(decimal.NewFromInt(int64(tenureMonths))).
		Div(decimal.NewFromInt(1200))
	return principal.Add(interest).Round(2)
}

// EMIStatus enum
type EMIStatus string

const (
	EMIStatusUnpaid  EMIStatus = "unpaid"
	EMIStatusPaid    EMIStatus = "paid"
	EMIStatusSkipped EMIStatus = "skipped"
)

// EMI is one scheduled installment of a loan, unique per
// (loan, month, year). PayslipID is set while the installment is
// attached to a payslip; only unpaid EMIs may be attached.
type EMI struct {
	ID        string
	LoanID    string
	Month     int
	Year      int
	Amount    decimal.Decimal
	Status    EMIStatus
	PayslipID *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	LoanType *LoanType
}
