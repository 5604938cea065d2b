package payroll

import "errors"

var (
	ErrSettingsNotFound      = errors.New("payroll settings not found")
	ErrPeriodNotFound        = errors.New("payroll period not found")
	ErrPeriodAlreadyExists   = errors.New("payroll period already exists for this month")
	ErrPeriodNotOpen         = errors.New("payroll period is not open for processing")
	ErrPayslipNotFound       = errors.New("payslip not found")
	ErrPayslipFinalized      = errors.New("payslip is approved or paid and cannot be recalculated")
	ErrPayslipNotApprovable  = errors.New("payslip is not in a state that can be approved")
	ErrPayslipNotPayable     = errors.New("payslip must be approved before it can be paid")
	ErrConcurrentConflict    = errors.New("concurrent payslip mutation detected, retry the employee")
	ErrAttendanceUnavailable = errors.New("attendance summary unavailable for period")
)
