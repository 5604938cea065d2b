package postgresql

import (
	"context"
	"fmt"

	"github.com/astrahr/payroll-backend-go/internal/domain/adhoc"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type adhocRepository struct {
	db *database.DB
}

func NewAdhocRepository(db *database.DB) adhoc.PaymentRepository {
	return &adhocRepository{db: db}
}

const paymentColumns = `id, org_id, employee_id, component_id, amount, reason, period_id,
	status, payslip_id, created_at, updated_at`

func scanPayment(row pgx.Row) (adhoc.AdhocPayment, error) {
	var p adhoc.AdhocPayment
	err := row.Scan(
		&p.ID, &p.OrgID, &p.EmployeeID, &p.ComponentID, &p.Amount, &p.Reason, &p.PeriodID,
		&p.Status, &p.PayslipID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *adhocRepository) Create(ctx context.Context, p adhoc.AdhocPayment) (adhoc.AdhocPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO adhoc_payments (org_id, employee_id, component_id, amount, reason, period_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + paymentColumns

	created, err := scanPayment(q.QueryRow(ctx, query,
		p.OrgID, p.EmployeeID, p.ComponentID, p.Amount, p.Reason, p.PeriodID, p.Status,
	))
	if err != nil {
		return adhoc.AdhocPayment{}, fmt.Errorf("failed to create ad-hoc payment: %w", err)
	}

	return created, nil
}

func (r *adhocRepository) GetByID(ctx context.Context, id string, orgID string) (adhoc.AdhocPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + paymentColumns + `
		FROM adhoc_payments
		WHERE id = $1 AND org_id = $2
	`

	p, err := scanPayment(q.QueryRow(ctx, query, id, orgID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return adhoc.AdhocPayment{}, adhoc.ErrPaymentNotFound
		}
		return adhoc.AdhocPayment{}, fmt.Errorf("failed to get ad-hoc payment: %w", err)
	}

	return p, nil
}

func (r *adhocRepository) ListByEmployee(ctx context.Context, employeeID string, orgID string) ([]adhoc.AdhocPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + paymentColumns + `
		FROM adhoc_payments
		WHERE employee_id = $1 AND org_id = $2
		ORDER BY created_at DESC
	`

	return r.queryPayments(ctx, q, query, employeeID, orgID)
}

func (r *adhocRepository) Cancel(ctx context.Context, id string, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE adhoc_payments SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND org_id = $2 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to cancel ad-hoc payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return adhoc.ErrPaymentNotFound
	}

	return nil
}

func (r *adhocRepository) FindPendingForEmployeePeriod(ctx context.Context, employeeID, periodID, payslipID string) ([]adhoc.AdhocPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + paymentColumns + `
		FROM adhoc_payments
		WHERE employee_id = $1 AND status = 'pending'
			AND (period_id = $2 OR period_id IS NULL)
			AND (payslip_id IS NULL OR payslip_id = $3)
		ORDER BY created_at
	`

	return r.queryPayments(ctx, q, query, employeeID, periodID, payslipID)
}

func (r *adhocRepository) queryPayments(ctx context.Context, q database.Querier, query string, args ...any) ([]adhoc.AdhocPayment, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ad-hoc payments: %w", err)
	}
	defer rows.Close()

	var payments []adhoc.AdhocPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ad-hoc payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ad-hoc payments: %w", err)
	}

	return payments, nil
}

func (r *adhocRepository) LinkToPayslip(ctx context.Context, paymentID, payslipID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE adhoc_payments SET payslip_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	if _, err := q.Exec(ctx, query, paymentID, payslipID); err != nil {
		return fmt.Errorf("failed to link ad-hoc payment to payslip: %w", err)
	}

	return nil
}

func (r *adhocRepository) DetachFromPayslip(ctx context.Context, payslipID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE adhoc_payments SET payslip_id = NULL, updated_at = NOW()
		WHERE payslip_id = $1 AND status = 'pending'
	`

	if _, err := q.Exec(ctx, query, payslipID); err != nil {
		return fmt.Errorf("failed to detach ad-hoc payments from payslip: %w", err)
	}

	return nil
}

func (r *adhocRepository) MarkProcessedByPayslip(ctx context.Context, payslipID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE adhoc_payments SET status = 'processed', updated_at = NOW()
		WHERE payslip_id = $1 AND status = 'pending'
	`

	if _, err := q.Exec(ctx, query, payslipID); err != nil {
		return fmt.Errorf("failed to mark ad-hoc payments processed: %w", err)
	}

	return nil
}
