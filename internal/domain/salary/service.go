package salary

import "context"

// AssignmentService manages salary assignments.
type AssignmentService interface {
	Assign(ctx context.Context, orgID string, req CreateAssignmentRequest) (AssignmentResponse, error)
	GetCurrent(ctx context.Context, orgID string, employeeID string) (AssignmentResponse, error)
	History(ctx context.Context, orgID string, employeeID string) ([]AssignmentResponse, error)
}
