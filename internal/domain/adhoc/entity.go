package adhoc

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus enum
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusProcessed PaymentStatus = "processed"
	StatusCancelled PaymentStatus = "cancelled"
)

// AdhocPayment is a one-time amount for an employee. PayslipID is set
// eagerly when the payment is merged into a payslip; the status flips
// to processed only when that payslip is approved.
type AdhocPayment struct {
	ID          string
	OrgID       string
	EmployeeID  string
	ComponentID *string
	Amount      decimal.Decimal
	Reason      string
	PeriodID    *string
	Status      PaymentStatus
	PayslipID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
