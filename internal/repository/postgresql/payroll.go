package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/astrahr/payroll-backend-go/internal/domain/payroll"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SETTINGS ==========

func (r *payrollRepository) GetSettings(ctx context.Context, orgID string) (payroll.PayrollSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, pf_enabled, pf_employee_rate, pf_wage_ceiling, pf_restrict_to_ceiling,
			esi_enabled, esi_employee_rate, esi_wage_ceiling,
			auto_income_tax, overtime_enabled, overtime_hourly_rate,
			created_at, updated_at
		FROM payroll_settings
		WHERE org_id = $1
	`

	var s payroll.PayrollSettings
	err := q.QueryRow(ctx, query, orgID).Scan(
		&s.ID, &s.OrgID, &s.PFEnabled, &s.PFEmployeeRate, &s.PFWageCeiling, &s.PFRestrictToCeiling,
		&s.ESIEnabled, &s.ESIEmployeeRate, &s.ESIWageCeiling,
		&s.AutoIncomeTax, &s.OvertimeEnabled, &s.OvertimeHourlyRate,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollSettings{}, payroll.ErrSettingsNotFound
		}
		return payroll.PayrollSettings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return s, nil
}

func (r *payrollRepository) UpsertSettings(ctx context.Context, settings payroll.PayrollSettings) (payroll.PayrollSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_settings (
			org_id, pf_enabled, pf_employee_rate, pf_wage_ceiling, pf_restrict_to_ceiling,
			esi_enabled, esi_employee_rate, esi_wage_ceiling,
			auto_income_tax, overtime_enabled, overtime_hourly_rate
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (org_id) DO UPDATE SET
			pf_enabled = EXCLUDED.pf_enabled,
			pf_employee_rate = EXCLUDED.pf_employee_rate,
			pf_wage_ceiling = EXCLUDED.pf_wage_ceiling,
			pf_restrict_to_ceiling = EXCLUDED.pf_restrict_to_ceiling,
			esi_enabled = EXCLUDED.esi_enabled,
			esi_employee_rate = EXCLUDED.esi_employee_rate,
			esi_wage_ceiling = EXCLUDED.esi_wage_ceiling,
			auto_income_tax = EXCLUDED.auto_income_tax,
			overtime_enabled = EXCLUDED.overtime_enabled,
			overtime_hourly_rate = EXCLUDED.overtime_hourly_rate,
			updated_at = NOW()
		RETURNING id, org_id, pf_enabled, pf_employee_rate, pf_wage_ceiling, pf_restrict_to_ceiling,
			esi_enabled, esi_employee_rate, esi_wage_ceiling,
			auto_income_tax, overtime_enabled, overtime_hourly_rate,
			created_at, updated_at
	`

	var s payroll.PayrollSettings
	err := q.QueryRow(ctx, query,
		settings.OrgID, settings.PFEnabled, settings.PFEmployeeRate, settings.PFWageCeiling, settings.PFRestrictToCeiling,
		settings.ESIEnabled, settings.ESIEmployeeRate, settings.ESIWageCeiling,
		settings.AutoIncomeTax, settings.OvertimeEnabled, settings.OvertimeHourlyRate,
	).Scan(
		&s.ID, &s.OrgID, &s.PFEnabled, &s.PFEmployeeRate, &s.PFWageCeiling, &s.PFRestrictToCeiling,
		&s.ESIEnabled, &s.ESIEmployeeRate, &s.ESIWageCeiling,
		&s.AutoIncomeTax, &s.OvertimeEnabled, &s.OvertimeHourlyRate,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollSettings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}

	return s, nil
}

// ========== PERIODS ==========

const periodColumns = `id, org_id, month, year, status, total_gross, total_deductions, total_net,
	payslip_count, created_at, updated_at`

func scanPeriod(row pgx.Row) (payroll.PayrollPeriod, error) {
	var p payroll.PayrollPeriod
	err := row.Scan(
		&p.ID, &p.OrgID, &p.Month, &p.Year, &p.Status, &p.TotalGross, &p.TotalDeductions, &p.TotalNet,
		&p.PayslipCount, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrollRepository) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (org_id, month, year, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + periodColumns

	p, err := scanPeriod(q.QueryRow(ctx, query, period.OrgID, period.Month, period.Year, period.Status))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_period_month_year") {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodAlreadyExists
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPeriodByID(ctx context.Context, id string, orgID string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE id = $1 AND org_id = $2
	`

	p, err := scanPeriod(q.QueryRow(ctx, query, id, orgID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPeriodByMonthYear(ctx context.Context, orgID string, month, year int) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE org_id = $1 AND month = $2 AND year = $3
	`

	p, err := scanPeriod(q.QueryRow(ctx, query, orgID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period by month: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) UpdatePeriodStatus(ctx context.Context, id string, orgID string, status payroll.PeriodStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods SET status = $3, updated_at = NOW()
		WHERE id = $1 AND org_id = $2
	`

	tag, err := q.Exec(ctx, query, id, orgID, status)
	if err != nil {
		return fmt.Errorf("failed to update period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}

	return nil
}

func (r *payrollRepository) RecomputePeriodTotals(ctx context.Context, periodID string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods pp SET
			total_gross = agg.gross,
			total_deductions = agg.deductions,
			total_net = agg.net,
			payslip_count = agg.cnt,
			updated_at = NOW()
		FROM (
			SELECT COALESCE(SUM(gross_earnings), 0) AS gross,
				COALESCE(SUM(total_deductions), 0) AS deductions,
				COALESCE(SUM(net_salary), 0) AS net,
				COUNT(*) AS cnt
			FROM payslips
			WHERE period_id = $1 AND status != 'cancelled'
		) agg
		WHERE pp.id = $1
		RETURNING ` + prefixColumns("pp", periodColumns)

	p, err := scanPeriod(q.QueryRow(ctx, query, periodID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to recompute period totals: %w", err)
	}

	return p, nil
}

// prefixColumns qualifies every column in a comma-separated list with
// the given table alias, for RETURNING clauses on aliased updates.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}

// ========== PAYSLIPS ==========

const payslipColumns = `p.id, p.org_id, p.employee_id, p.period_id,
	p.working_days, p.present_days, p.leave_days, p.loss_of_pay_days, p.overtime_hours,
	p.gross_earnings, p.total_deductions, p.net_salary, p.loss_of_pay_deduction,
	p.statutory_deductions, p.advance_recovery, p.overtime_amount,
	p.status, p.created_at, p.updated_at, e.full_name, e.code`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.OrgID, &p.EmployeeID, &p.PeriodID,
		&p.WorkingDays, &p.PresentDays, &p.LeaveDays, &p.LossOfPayDays, &p.OvertimeHours,
		&p.GrossEarnings, &p.TotalDeductions, &p.NetSalary, &p.LossOfPayDeduction,
		&p.StatutoryDeductions, &p.AdvanceRecovery, &p.OvertimeAmount,
		&p.Status, &p.CreatedAt, &p.UpdatedAt, &p.EmployeeName, &p.EmployeeCode,
	)
	return p, err
}

func (r *payrollRepository) GetOrCreatePayslip(ctx context.Context, orgID, employeeID, periodID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO payslips (org_id, employee_id, period_id, status)
		VALUES ($1, $2, $3, 'generated')
		ON CONFLICT (employee_id, period_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, orgID, employeeID, periodID); err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1 AND p.period_id = $2 AND p.org_id = $3
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, employeeID, periodID, orgID))
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPayslipByID(ctx context.Context, id string, orgID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1 AND p.org_id = $2
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, id, orgID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ListPayslipsByPeriod(ctx context.Context, periodID string, orgID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.period_id = $1 AND p.org_id = $2
		ORDER BY e.code
	`

	rows, err := q.Query(ctx, query, periodID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payslips: %w", err)
	}

	return payslips, nil
}

func (r *payrollRepository) UpdatePayslip(ctx context.Context, p payroll.Payslip) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips SET
			working_days = $2, present_days = $3, leave_days = $4, loss_of_pay_days = $5,
			overtime_hours = $6, gross_earnings = $7, total_deductions = $8, net_salary = $9,
			loss_of_pay_deduction = $10, statutory_deductions = $11, advance_recovery = $12,
			overtime_amount = $13, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		p.ID, p.WorkingDays, p.PresentDays, p.LeaveDays, p.LossOfPayDays,
		p.OvertimeHours, p.GrossEarnings, p.TotalDeductions, p.NetSalary,
		p.LossOfPayDeduction, p.StatutoryDeductions, p.AdvanceRecovery,
		p.OvertimeAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to update payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}

	return nil
}

func (r *payrollRepository) UpdatePayslipStatus(ctx context.Context, id string, orgID string, status payroll.PayslipStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips SET status = $3, updated_at = NOW()
		WHERE id = $1 AND org_id = $2
	`

	tag, err := q.Exec(ctx, query, id, orgID, status)
	if err != nil {
		return fmt.Errorf("failed to update payslip status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}

	return nil
}

// ========== LINE ITEMS ==========

func (r *payrollRepository) DeleteGeneratedLineItems(ctx context.Context, payslipID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payslip_line_items WHERE payslip_id = $1 AND is_manual = false`

	if _, err := q.Exec(ctx, query, payslipID); err != nil {
		return fmt.Errorf("failed to delete generated line items: %w", err)
	}

	return nil
}

func (r *payrollRepository) DeleteLineItemsByStatutoryType(ctx context.Context, payslipID string, statutoryType string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM payslip_line_items li
		USING salary_components c
		WHERE li.component_id = c.id AND li.payslip_id = $1 AND c.statutory_type = $2
	`

	if _, err := q.Exec(ctx, query, payslipID, statutoryType); err != nil {
		return fmt.Errorf("failed to delete statutory line items: %w", err)
	}

	return nil
}

const lineItemColumns = `li.id, li.payslip_id, li.component_id, li.amount, li.is_manual,
	li.created_at, li.updated_at, c.code, c.name, c.kind, c.is_statutory, c.statutory_type`

func scanLineItem(row pgx.Row) (payroll.PayslipLineItem, error) {
	var li payroll.PayslipLineItem
	err := row.Scan(
		&li.ID, &li.PayslipID, &li.ComponentID, &li.Amount, &li.IsManual,
		&li.CreatedAt, &li.UpdatedAt, &li.ComponentCode, &li.ComponentName,
		&li.ComponentKind, &li.ComponentStatutory, &li.ComponentStatutoryType,
	)
	return li, err
}

func (r *payrollRepository) ListLineItems(ctx context.Context, payslipID string) ([]payroll.PayslipLineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + lineItemColumns + `
		FROM payslip_line_items li
		JOIN salary_components c ON c.id = li.component_id
		WHERE li.payslip_id = $1
		ORDER BY c.kind, c.code
	`

	rows, err := q.Query(ctx, query, payslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer rows.Close()

	var items []payroll.PayslipLineItem
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}

	return items, nil
}

func (r *payrollRepository) UpsertLineItemAmount(ctx context.Context, payslipID, componentID string, delta decimal.Decimal, isManual bool) (payroll.PayslipLineItem, error) {
	q := GetQuerier(ctx, r.db)

	// A generated delta never folds into a manual row: the manual
	// amount is an operator override and must survive recalculation
	// unchanged.
	query := `
		WITH upserted AS (
			INSERT INTO payslip_line_items (payslip_id, component_id, amount, is_manual)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (payslip_id, component_id) DO UPDATE SET
				amount = CASE
					WHEN payslip_line_items.is_manual AND NOT EXCLUDED.is_manual
						THEN payslip_line_items.amount
					ELSE payslip_line_items.amount + EXCLUDED.amount
				END,
				is_manual = payslip_line_items.is_manual OR EXCLUDED.is_manual,
				updated_at = NOW()
			RETURNING id, payslip_id, component_id, amount, is_manual, created_at, updated_at
		)
		SELECT li.id, li.payslip_id, li.component_id, li.amount, li.is_manual,
			li.created_at, li.updated_at, c.code, c.name, c.kind, c.is_statutory, c.statutory_type
		FROM upserted li
		JOIN salary_components c ON c.id = li.component_id
	`

	li, err := scanLineItem(q.QueryRow(ctx, query, payslipID, componentID, delta, isManual))
	if err != nil {
		return payroll.PayslipLineItem{}, fmt.Errorf("failed to upsert line item: %w", err)
	}

	return li, nil
}
