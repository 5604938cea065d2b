package employee

import "context"

// EmployeeRepository is the read-only surface payroll needs from employee
// master data. All methods are org-scoped.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, orgID string) (Employee, error)
	ListActiveByOrg(ctx context.Context, orgID string) ([]Employee, error)
}
