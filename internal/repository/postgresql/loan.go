package postgresql

import (
	"context"
	"fmt"

	"github.com/astrahr/payroll-backend-go/internal/domain/loan"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type loanRepository struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) loan.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, org_id, employee_id, loan_type, principal, interest_rate, tenure_months,
	total_payable, balance, status, disbursed_at, created_at, updated_at`

func scanLoan(row pgx.Row) (loan.Loan, error) {
	var l loan.Loan
	err := row.Scan(
		&l.ID, &l.OrgID, &l.EmployeeID, &l.LoanType, &l.Principal, &l.InterestRate, &l.TenureMonths,
		&l.TotalPayable, &l.Balance, &l.Status, &l.DisbursedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func (r *loanRepository) Create(ctx context.Context, l loan.Loan) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO loans (
			org_id, employee_id, loan_type, principal, interest_rate, tenure_months,
			total_payable, balance, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + loanColumns

	created, err := scanLoan(q.QueryRow(ctx, query,
		l.OrgID, l.EmployeeID, l.LoanType, l.Principal, l.InterestRate, l.TenureMonths,
		l.TotalPayable, l.Balance, l.Status,
	))
	if err != nil {
		return loan.Loan{}, fmt.Errorf("failed to create loan: %w", err)
	}

	return created, nil
}

func (r *loanRepository) GetByID(ctx context.Context, id string, orgID string) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE id = $1 AND org_id = $2
	`

	l, err := scanLoan(q.QueryRow(ctx, query, id, orgID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.Loan{}, loan.ErrLoanNotFound
		}
		return loan.Loan{}, fmt.Errorf("failed to get loan: %w", err)
	}

	return l, nil
}

func (r *loanRepository) ListByEmployee(ctx context.Context, employeeID string, orgID string) ([]loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE employee_id = $1 AND org_id = $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []loan.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loans: %w", err)
	}

	return loans, nil
}

func (r *loanRepository) UpdateStatus(ctx context.Context, id string, orgID string, status loan.LoanStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loans SET status = $3, updated_at = NOW()
		WHERE id = $1 AND org_id = $2
	`

	tag, err := q.Exec(ctx, query, id, orgID, status)
	if err != nil {
		return fmt.Errorf("failed to update loan status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return loan.ErrLoanNotFound
	}

	return nil
}

func (r *loanRepository) SetDisbursed(ctx context.Context, id string, orgID string) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loans SET status = 'disbursed', disbursed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND org_id = $2
		RETURNING ` + loanColumns

	l, err := scanLoan(q.QueryRow(ctx, query, id, orgID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.Loan{}, loan.ErrLoanNotFound
		}
		return loan.Loan{}, fmt.Errorf("failed to disburse loan: %w", err)
	}

	return l, nil
}

func (r *loanRepository) ReduceBalance(ctx context.Context, id string, amount decimal.Decimal) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loans SET balance = GREATEST(balance - $2, 0), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + loanColumns

	l, err := scanLoan(q.QueryRow(ctx, query, id, amount))
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.Loan{}, loan.ErrLoanNotFound
		}
		return loan.Loan{}, fmt.Errorf("failed to reduce loan balance: %w", err)
	}

	return l, nil
}

// ========== EMI SCHEDULE ==========

func (r *loanRepository) HasEMIs(ctx context.Context, loanID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM loan_emis WHERE loan_id = $1)`, loanID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check loan schedule: %w", err)
	}

	return exists, nil
}

func (r *loanRepository) CreateEMIs(ctx context.Context, emis []loan.EMI) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO loan_emis (loan_id, month, year, amount, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, emi := range emis {
		if _, err := q.Exec(ctx, query, emi.LoanID, emi.Month, emi.Year, emi.Amount, emi.Status); err != nil {
			return fmt.Errorf("failed to create loan installment: %w", err)
		}
	}

	return nil
}

const emiColumns = `e.id, e.loan_id, e.month, e.year, e.amount, e.status, e.payslip_id,
	e.created_at, e.updated_at, l.loan_type`

func scanEMI(row pgx.Row) (loan.EMI, error) {
	var emi loan.EMI
	err := row.Scan(
		&emi.ID, &emi.LoanID, &emi.Month, &emi.Year, &emi.Amount, &emi.Status, &emi.PayslipID,
		&emi.CreatedAt, &emi.UpdatedAt, &emi.LoanType,
	)
	return emi, err
}

func (r *loanRepository) ListEMIs(ctx context.Context, loanID string) ([]loan.EMI, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + emiColumns + `
		FROM loan_emis e
		JOIN loans l ON l.id = e.loan_id
		WHERE e.loan_id = $1
		ORDER BY e.year, e.month
	`

	return r.queryEMIs(ctx, q, query, loanID)
}

func (r *loanRepository) FindUnpaidForEmployeePeriod(ctx context.Context, employeeID string, month, year int) ([]loan.EMI, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + emiColumns + `
		FROM loan_emis e
		JOIN loans l ON l.id = e.loan_id
		WHERE l.employee_id = $1 AND e.month = $2 AND e.year = $3
			AND e.status = 'unpaid' AND e.payslip_id IS NULL
			AND l.status IN ('approved', 'disbursed')
		ORDER BY e.created_at
	`

	return r.queryEMIs(ctx, q, query, employeeID, month, year)
}

func (r *loanRepository) queryEMIs(ctx context.Context, q database.Querier, query string, args ...any) ([]loan.EMI, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan installments: %w", err)
	}
	defer rows.Close()

	var emis []loan.EMI
	for rows.Next() {
		emi, err := scanEMI(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan installment: %w", err)
		}
		emis = append(emis, emi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loan installments: %w", err)
	}

	return emis, nil
}

func (r *loanRepository) LinkToPayslip(ctx context.Context, emiIDs []string, payslipID string) error {
	if len(emiIDs) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loan_emis SET payslip_id = $2, updated_at = NOW()
		WHERE id = ANY($1) AND status = 'unpaid'
	`

	if _, err := q.Exec(ctx, query, emiIDs, payslipID); err != nil {
		return fmt.Errorf("failed to link installments to payslip: %w", err)
	}

	return nil
}

func (r *loanRepository) DetachFromPayslip(ctx context.Context, payslipID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loan_emis SET payslip_id = NULL, updated_at = NOW()
		WHERE payslip_id = $1 AND status = 'unpaid'
	`

	if _, err := q.Exec(ctx, query, payslipID); err != nil {
		return fmt.Errorf("failed to detach installments from payslip: %w", err)
	}

	return nil
}

func (r *loanRepository) ListByPayslip(ctx context.Context, payslipID string) ([]loan.EMI, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + emiColumns + `
		FROM loan_emis e
		JOIN loans l ON l.id = e.loan_id
		WHERE e.payslip_id = $1
		ORDER BY e.year, e.month
	`

	return r.queryEMIs(ctx, q, query, payslipID)
}

func (r *loanRepository) MarkPaid(ctx context.Context, emiIDs []string) error {
	if len(emiIDs) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loan_emis SET status = 'paid', updated_at = NOW()
		WHERE id = ANY($1)
	`

	if _, err := q.Exec(ctx, query, emiIDs); err != nil {
		return fmt.Errorf("failed to mark installments paid: %w", err)
	}

	return nil
}
