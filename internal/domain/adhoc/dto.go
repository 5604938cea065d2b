package adhoc

import (
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	EmployeeID  string          `json:"employee_id"`
	ComponentID *string         `json:"component_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
	PeriodID    *string         `json:"period_id,omitempty"`
}

func (r *CreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	ComponentID *string         `json:"component_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
	PeriodID    *string         `json:"period_id,omitempty"`
	Status      string          `json:"status"`
	PayslipID   *string         `json:"payslip_id,omitempty"`
}
