package loan

import "errors"

var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrInvalidLoanState    = errors.New("loan is not in a state that allows this operation")
	ErrScheduleNotEligible = errors.New("schedule generation requires an approved or disbursed loan")
	ErrEMINotFound         = errors.New("installment not found")
)
