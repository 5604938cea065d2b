package response

import (
	"errors"
	"net/http"

	"github.com/astrahr/payroll-backend-go/internal/domain/adhoc"
	"github.com/astrahr/payroll-backend-go/internal/domain/component"
	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	"github.com/astrahr/payroll-backend-go/internal/domain/loan"
	"github.com/astrahr/payroll-backend-go/internal/domain/payroll"
	"github.com/astrahr/payroll-backend-go/internal/domain/salary"
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Component domain errors
	case errors.Is(err, component.ErrComponentNotFound):
		NotFound(w, "Salary component not found")
	case errors.Is(err, component.ErrComponentCodeExists):
		Conflict(w, "Salary component code already exists")
	case errors.Is(err, component.ErrComponentReferenced):
		Conflict(w, "Salary component is in use and cannot be removed")
	case errors.Is(err, component.ErrInvalidKind), errors.Is(err, component.ErrInvalidCalcType):
		BadRequest(w, err.Error(), nil)

	// Salary assignment errors
	case errors.Is(err, salary.ErrAssignmentNotFound):
		NotFound(w, "Salary assignment not found")
	case errors.Is(err, salary.ErrNoCurrentAssignment):
		NotFound(w, "Employee has no current salary assignment")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSettingsNotFound):
		NotFound(w, "Payroll settings not found")
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrPeriodAlreadyExists):
		Conflict(w, "Payroll period already exists for this month")
	case errors.Is(err, payroll.ErrPeriodNotOpen):
		Conflict(w, "Payroll period is not open for processing")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipFinalized):
		Conflict(w, "Payslip is finalized and cannot be recalculated")
	case errors.Is(err, payroll.ErrPayslipNotApprovable):
		Conflict(w, "Payslip cannot be approved in its current state")
	case errors.Is(err, payroll.ErrPayslipNotPayable):
		Conflict(w, "Payslip must be approved before it can be paid")
	case errors.Is(err, payroll.ErrConcurrentConflict):
		Conflict(w, "Payslip is being modified concurrently, retry")
	case errors.Is(err, payroll.ErrAttendanceUnavailable):
		Conflict(w, "Attendance summary unavailable for the period")

	// Loan domain errors
	case errors.Is(err, loan.ErrLoanNotFound):
		NotFound(w, "Loan not found")
	case errors.Is(err, loan.ErrInvalidLoanState):
		Conflict(w, "Loan is not in a state that allows this operation")
	case errors.Is(err, loan.ErrScheduleNotEligible):
		Conflict(w, "Schedule generation requires an approved or disbursed loan")
	case errors.Is(err, loan.ErrEMINotFound):
		NotFound(w, "Installment not found")

	// Ad-hoc payment errors
	case errors.Is(err, adhoc.ErrPaymentNotFound):
		NotFound(w, "Ad-hoc payment not found")
	case errors.Is(err, adhoc.ErrPaymentNotPending):
		Conflict(w, "Ad-hoc payment is not pending")
	case errors.Is(err, adhoc.ErrPaymentAlreadyLinked):
		Conflict(w, "Ad-hoc payment is already linked to a payslip")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
