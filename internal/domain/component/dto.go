package component

import (
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateComponentRequest struct {
	Code              string           `json:"code"`
	Name              string           `json:"name"`
	Kind              string           `json:"kind"`
	CalcType          string           `json:"calc_type"`
	IsStatutory       *bool            `json:"is_statutory,omitempty"`
	StatutoryType     *string          `json:"statutory_type,omitempty"`
	DefaultAmount     *decimal.Decimal `json:"default_amount,omitempty"`
	DefaultPercentage *decimal.Decimal `json:"default_percentage,omitempty"`
}

func (r *CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	switch ComponentKind(r.Kind) {
	case KindEarning, KindDeduction:
	default:
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 'earning' or 'deduction'"})
	}
	switch CalcType(r.CalcType) {
	case CalcFixed, CalcPercentageOfBase, CalcAttendanceProrated, CalcPerDay:
	default:
		errs = append(errs, validator.ValidationError{Field: "calc_type", Message: "must be one of fixed, percentage_of_base, attendance_prorated, per_day"})
	}
	if r.StatutoryType != nil {
		switch StatutoryType(*r.StatutoryType) {
		case StatutoryNone, StatutoryProvidentFund, StatutoryHealthInsurance, StatutoryIncomeTax, StatutoryOther:
		default:
			errs = append(errs, validator.ValidationError{Field: "statutory_type", Message: "is not a valid statutory type"})
		}
	}
	if r.DefaultAmount != nil && r.DefaultAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_amount", Message: "must be non-negative"})
	}
	if r.DefaultPercentage != nil && r.DefaultPercentage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_percentage", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateComponentRequest struct {
	ID                string
	Name              *string          `json:"name,omitempty"`
	DefaultAmount     *decimal.Decimal `json:"default_amount,omitempty"`
	DefaultPercentage *decimal.Decimal `json:"default_percentage,omitempty"`
	IsActive          *bool            `json:"is_active,omitempty"`
}

type ComponentResponse struct {
	ID                string          `json:"id"`
	OrgID             string          `json:"org_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Kind              string          `json:"kind"`
	CalcType          string          `json:"calc_type"`
	IsStatutory       bool            `json:"is_statutory"`
	StatutoryType     string          `json:"statutory_type"`
	DefaultAmount     decimal.Decimal `json:"default_amount"`
	DefaultPercentage decimal.Decimal `json:"default_percentage"`
	IsActive          bool            `json:"is_active"`
}
