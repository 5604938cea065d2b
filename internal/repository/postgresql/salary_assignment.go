package postgresql

import (
	"context"
	"fmt"

	"github.com/astrahr/payroll-backend-go/internal/domain/salary"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type assignmentRepository struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) salary.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) CreateCurrent(ctx context.Context, a salary.SalaryAssignment) (salary.SalaryAssignment, error) {
	q := GetQuerier(ctx, r.db)

	demote := `
		UPDATE salary_assignments
		SET is_current = false, superseded_at = NOW(), updated_at = NOW()
		WHERE employee_id = $1 AND org_id = $2 AND is_current = true
	`
	if _, err := q.Exec(ctx, demote, a.EmployeeID, a.OrgID); err != nil {
		return salary.SalaryAssignment{}, fmt.Errorf("failed to supersede current assignment: %w", err)
	}

	insert := `
		INSERT INTO salary_assignments (org_id, employee_id, base_amount, is_current, effective_from)
		VALUES ($1, $2, $3, true, $4)
		RETURNING id, org_id, employee_id, base_amount, is_current, effective_from,
			superseded_at, created_at, updated_at
	`

	var created salary.SalaryAssignment
	err := q.QueryRow(ctx, insert, a.OrgID, a.EmployeeID, a.BaseAmount, a.EffectiveFrom).Scan(
		&created.ID, &created.OrgID, &created.EmployeeID, &created.BaseAmount, &created.IsCurrent,
		&created.EffectiveFrom, &created.SupersededAt, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return salary.SalaryAssignment{}, fmt.Errorf("failed to create salary assignment: %w", err)
	}

	for _, alloc := range a.Allocations {
		allocQuery := `
			INSERT INTO assignment_allocations (assignment_id, component_id, amount, percentage)
			VALUES ($1, $2, $3, $4)
			RETURNING id, assignment_id, component_id, amount, percentage
		`
		var ca salary.ComponentAllocation
		err := q.QueryRow(ctx, allocQuery, created.ID, alloc.ComponentID, alloc.Amount, alloc.Percentage).Scan(
			&ca.ID, &ca.AssignmentID, &ca.ComponentID,
			&ca.Amount, &ca.Percentage,
		)
		if err != nil {
			return salary.SalaryAssignment{}, fmt.Errorf("failed to create assignment allocation: %w", err)
		}
		created.Allocations = append(created.Allocations, ca)
	}

	return created, nil
}

func (r *assignmentRepository) GetCurrentByEmployee(ctx context.Context, employeeID string, orgID string) (salary.SalaryAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, employee_id, base_amount, is_current, effective_from,
			superseded_at, created_at, updated_at
		FROM salary_assignments
		WHERE employee_id = $1 AND org_id = $2 AND is_current = true
	`

	var a salary.SalaryAssignment
	err := q.QueryRow(ctx, query, employeeID, orgID).Scan(
		&a.ID, &a.OrgID, &a.EmployeeID, &a.BaseAmount, &a.IsCurrent,
		&a.EffectiveFrom, &a.SupersededAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.SalaryAssignment{}, salary.ErrNoCurrentAssignment
		}
		return salary.SalaryAssignment{}, fmt.Errorf("failed to get current assignment: %w", err)
	}

	allocations, err := r.listAllocations(ctx, q, a.ID)
	if err != nil {
		return salary.SalaryAssignment{}, err
	}
	a.Allocations = allocations

	return a, nil
}

func (r *assignmentRepository) ListByEmployee(ctx context.Context, employeeID string, orgID string) ([]salary.SalaryAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, employee_id, base_amount, is_current, effective_from,
			superseded_at, created_at, updated_at
		FROM salary_assignments
		WHERE employee_id = $1 AND org_id = $2
		ORDER BY effective_from DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary assignments: %w", err)
	}
	defer rows.Close()

	var assignments []salary.SalaryAssignment
	for rows.Next() {
		var a salary.SalaryAssignment
		if err := rows.Scan(
			&a.ID, &a.OrgID, &a.EmployeeID, &a.BaseAmount, &a.IsCurrent,
			&a.EffectiveFrom, &a.SupersededAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary assignments: %w", err)
	}

	for i := range assignments {
		allocations, err := r.listAllocations(ctx, q, assignments[i].ID)
		if err != nil {
			return nil, err
		}
		assignments[i].Allocations = allocations
	}

	return assignments, nil
}

func (r *assignmentRepository) listAllocations(ctx context.Context, q database.Querier, assignmentID string) ([]salary.ComponentAllocation, error) {
	query := `
		SELECT id, assignment_id, component_id, amount, percentage
		FROM assignment_allocations
		WHERE assignment_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment allocations: %w", err)
	}
	defer rows.Close()

	var allocations []salary.ComponentAllocation
	for rows.Next() {
		var alloc salary.ComponentAllocation
		if err := rows.Scan(&alloc.ID, &alloc.AssignmentID, &alloc.ComponentID, &alloc.Amount, &alloc.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan assignment allocation: %w", err)
		}
		allocations = append(allocations, alloc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignment allocations: %w", err)
	}

	return allocations, nil
}
