package loan

import (
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLoanRequest struct {
	EmployeeID   string          `json:"employee_id"`
	LoanType     string          `json:"loan_type"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TenureMonths int             `json:"tenure_months"`
}

func (r *CreateLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	switch LoanType(r.LoanType) {
	case TypeStandard, TypeAdvance:
	default:
		errs = append(errs, validator.ValidationError{Field: "loan_type", Message: "must be 'standard' or 'advance'"})
	}
	if !r.Principal.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "principal", Message: "must be positive"})
	}
	if r.InterestRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "interest_rate", Message: "must be non-negative"})
	}
	if r.TenureMonths <= 0 {
		errs = append(errs, validator.ValidationError{Field: "tenure_months", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoanResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	LoanType     string          `json:"loan_type"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TenureMonths int             `json:"tenure_months"`
	TotalPayable decimal.Decimal `json:"total_payable"`
	Balance      decimal.Decimal `json:"balance"`
	Status       string          `json:"status"`
	DisbursedAt  *string         `json:"disbursed_at,omitempty"`
}

type EMIResponse struct {
	ID        string          `json:"id"`
	LoanID    string          `json:"loan_id"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	PayslipID *string         `json:"payslip_id,omitempty"`
}
