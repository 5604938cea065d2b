package adhoc

import "context"

// PaymentService manages one-time payments.
type PaymentService interface {
	Create(ctx context.Context, orgID string, req CreatePaymentRequest) (PaymentResponse, error)
	Get(ctx context.Context, orgID string, id string) (PaymentResponse, error)
	ListByEmployee(ctx context.Context, orgID string, employeeID string) ([]PaymentResponse, error)
	Cancel(ctx context.Context, orgID string, id string) error
}
