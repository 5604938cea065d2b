package loan

import "context"

// LoanService manages loans/advances and their recovery schedules.
type LoanService interface {
	Create(ctx context.Context, orgID string, req CreateLoanRequest) (LoanResponse, error)
	Get(ctx context.Context, orgID string, id string) (LoanResponse, error)
	ListByEmployee(ctx context.Context, orgID string, employeeID string) ([]LoanResponse, error)
	Approve(ctx context.Context, orgID string, id string) (LoanResponse, error)
	Reject(ctx context.Context, orgID string, id string) (LoanResponse, error)
	Disburse(ctx context.Context, orgID string, id string) (LoanResponse, error)
	GenerateSchedule(ctx context.Context, orgID string, id string) ([]EMIResponse, error)
	GetSchedule(ctx context.Context, orgID string, id string) ([]EMIResponse, error)
}
