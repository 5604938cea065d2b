package salary

import "context"

// AssignmentRepository defines data access for salary assignments.
type AssignmentRepository interface {
	// CreateCurrent inserts a new current assignment and demotes the
	// previous current one for the employee, atomically.
	CreateCurrent(ctx context.Context, a SalaryAssignment) (SalaryAssignment, error)

	// GetCurrentByEmployee returns ErrNoCurrentAssignment when the
	// employee has no assignment marked current.
	GetCurrentByEmployee(ctx context.Context, employeeID string, orgID string) (SalaryAssignment, error)

	ListByEmployee(ctx context.Context, employeeID string, orgID string) ([]SalaryAssignment, error)
}
