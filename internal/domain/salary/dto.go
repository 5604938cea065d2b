package salary

import (
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AllocationInput struct {
	ComponentID string           `json:"component_id"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
}

type CreateAssignmentRequest struct {
	EmployeeID    string            `json:"employee_id"`
	BaseAmount    decimal.Decimal   `json:"base_amount"`
	EffectiveFrom *string           `json:"effective_from,omitempty"`
	Allocations   []AllocationInput `json:"allocations"`
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.BaseAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_amount", Message: "must be non-negative"})
	}
	if r.EffectiveFrom != nil && !validator.IsValidDate(*r.EffectiveFrom) {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be YYYY-MM-DD"})
	}
	for _, a := range r.Allocations {
		if validator.IsEmpty(a.ComponentID) {
			errs = append(errs, validator.ValidationError{Field: "allocations", Message: "component_id is required on every allocation"})
			break
		}
		if a.Amount == nil && a.Percentage == nil {
			errs = append(errs, validator.ValidationError{Field: "allocations", Message: "each allocation needs an amount or a percentage"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AllocationResponse struct {
	ComponentID string          `json:"component_id"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

type AssignmentResponse struct {
	ID            string               `json:"id"`
	EmployeeID    string               `json:"employee_id"`
	BaseAmount    decimal.Decimal      `json:"base_amount"`
	IsCurrent     bool                 `json:"is_current"`
	EffectiveFrom string               `json:"effective_from"`
	SupersededAt  *string              `json:"superseded_at,omitempty"`
	Allocations   []AllocationResponse `json:"allocations"`
}
