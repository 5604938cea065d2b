package adhoc

import "errors"

var (
	ErrPaymentNotFound      = errors.New("ad-hoc payment not found")
	ErrPaymentNotPending    = errors.New("ad-hoc payment is not pending")
	ErrPaymentAlreadyLinked = errors.New("ad-hoc payment is already linked to a payslip")
)
