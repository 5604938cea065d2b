package postgresql

import (
	"context"
	"fmt"

	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string, orgID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, code, full_name, is_active, hire_date, created_at, updated_at
		FROM employees
		WHERE id = $1 AND org_id = $2
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&e.ID, &e.OrgID, &e.Code, &e.FullName, &e.IsActive, &e.HireDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) ListActiveByOrg(ctx context.Context, orgID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, code, full_name, is_active, hire_date, created_at, updated_at
		FROM employees
		WHERE org_id = $1 AND is_active = true
		ORDER BY code
	`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.OrgID, &e.Code, &e.FullName, &e.IsActive, &e.HireDate, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
