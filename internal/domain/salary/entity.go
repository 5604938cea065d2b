package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryAssignment binds an employee to a base amount plus component
// allocations. Exactly one assignment per employee is current; a new
// current assignment supersedes (never deletes) the previous one.
type SalaryAssignment struct {
	ID            string
	OrgID         string
	EmployeeID    string
	BaseAmount    decimal.Decimal
	IsCurrent     bool
	EffectiveFrom time.Time
	SupersededAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Allocations []ComponentAllocation
}

// ComponentAllocation is one (component, amount-or-percentage) entry of
// an assignment. Amount wins when both are set; percentage is resolved
// against the base amount during calculation.
type ComponentAllocation struct {
	ID           string
	AssignmentID string
	ComponentID  string
	Amount       decimal.Decimal
	Percentage   decimal.Decimal
}
