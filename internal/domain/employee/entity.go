package employee

import "time"

// Employee is master data owned by the HR system; payroll only reads it.
type Employee struct {
	ID        string
	OrgID     string
	Code      string
	FullName  string
	IsActive  bool
	HireDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
