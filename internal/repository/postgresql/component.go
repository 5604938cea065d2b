package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/astrahr/payroll-backend-go/internal/domain/component"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type componentRepository struct {
	db *database.DB
}

func NewComponentRepository(db *database.DB) component.ComponentRepository {
	return &componentRepository{db: db}
}

const componentColumns = `id, org_id, code, name, kind, calc_type, is_statutory, statutory_type,
	default_amount, default_percentage, is_active, created_at, updated_at`

func scanComponent(row pgx.Row) (component.SalaryComponent, error) {
	var c component.SalaryComponent
	err := row.Scan(
		&c.ID, &c.OrgID, &c.Code, &c.Name, &c.Kind, &c.CalcType, &c.IsStatutory, &c.StatutoryType,
		&c.DefaultAmount, &c.DefaultPercentage, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *componentRepository) Create(ctx context.Context, c component.SalaryComponent) (component.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_components (
			org_id, code, name, kind, calc_type, is_statutory, statutory_type,
			default_amount, default_percentage, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + componentColumns

	created, err := scanComponent(q.QueryRow(ctx, query,
		c.OrgID, c.Code, c.Name, c.Kind, c.CalcType, c.IsStatutory, c.StatutoryType,
		c.DefaultAmount, c.DefaultPercentage, c.IsActive,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_component_code") {
			return component.SalaryComponent{}, component.ErrComponentCodeExists
		}
		return component.SalaryComponent{}, fmt.Errorf("failed to create salary component: %w", err)
	}

	return created, nil
}

func (r *componentRepository) GetByID(ctx context.Context, id string, orgID string) (component.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentColumns + `
		FROM salary_components
		WHERE id = $1 AND org_id = $2
	`

	c, err := scanComponent(q.QueryRow(ctx, query, id, orgID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return component.SalaryComponent{}, component.ErrComponentNotFound
		}
		return component.SalaryComponent{}, fmt.Errorf("failed to get salary component: %w", err)
	}

	return c, nil
}

func (r *componentRepository) GetByCode(ctx context.Context, code string, orgID string) (component.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentColumns + `
		FROM salary_components
		WHERE code = $1 AND org_id = $2
	`

	c, err := scanComponent(q.QueryRow(ctx, query, code, orgID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return component.SalaryComponent{}, component.ErrComponentNotFound
		}
		return component.SalaryComponent{}, fmt.Errorf("failed to get salary component by code: %w", err)
	}

	return c, nil
}

func (r *componentRepository) ListByOrg(ctx context.Context, orgID string, activeOnly bool) ([]component.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentColumns + `
		FROM salary_components
		WHERE org_id = $1
	`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY code`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary components: %w", err)
	}
	defer rows.Close()

	var components []component.SalaryComponent
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary component: %w", err)
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary components: %w", err)
	}

	return components, nil
}

func (r *componentRepository) Update(ctx context.Context, orgID string, req component.UpdateComponentRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_components SET
			name = COALESCE($3, name),
			default_amount = COALESCE($4, default_amount),
			default_percentage = COALESCE($5, default_percentage),
			is_active = COALESCE($6, is_active),
			updated_at = NOW()
		WHERE id = $1 AND org_id = $2
	`

	tag, err := q.Exec(ctx, query, req.ID, orgID, req.Name, req.DefaultAmount, req.DefaultPercentage, req.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update salary component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return component.ErrComponentNotFound
	}

	return nil
}

func (r *componentRepository) Deactivate(ctx context.Context, id string, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_components SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND org_id = $2
	`

	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to deactivate salary component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return component.ErrComponentNotFound
	}

	return nil
}

func (r *componentRepository) GetOrCreateByCode(ctx context.Context, orgID string, code string, name string, kind component.ComponentKind, st component.StatutoryType) (component.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	// ON CONFLICT DO UPDATE with a no-op assignment makes RETURNING
	// yield the existing row on a code collision.
	query := `
		INSERT INTO salary_components (
			org_id, code, name, kind, calc_type, is_statutory, statutory_type, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		ON CONFLICT (org_id, code) DO UPDATE SET code = EXCLUDED.code
		RETURNING ` + componentColumns

	isStatutory := st != component.StatutoryNone
	c, err := scanComponent(q.QueryRow(ctx, query,
		orgID, code, name, kind, component.CalcFixed, isStatutory, st,
	))
	if err != nil {
		return component.SalaryComponent{}, fmt.Errorf("failed to get or create salary component: %w", err)
	}

	return c, nil
}

func (r *componentRepository) FindByStatutoryType(ctx context.Context, orgID string, st component.StatutoryType) (component.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentColumns + `
		FROM salary_components
		WHERE org_id = $1 AND statutory_type = $2 AND is_active = true
		ORDER BY code
		LIMIT 1
	`

	c, err := scanComponent(q.QueryRow(ctx, query, orgID, st))
	if err != nil {
		if err == pgx.ErrNoRows {
			return component.SalaryComponent{}, component.ErrComponentNotFound
		}
		return component.SalaryComponent{}, fmt.Errorf("failed to find statutory component: %w", err)
	}

	return c, nil
}

func (r *componentRepository) FindEarningByCodes(ctx context.Context, orgID string, codes []string) (component.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	// array_position preserves the caller's preference order.
	query := `
		SELECT ` + componentColumns + `
		FROM salary_components
		WHERE org_id = $1 AND kind = 'earning' AND is_active = true AND code = ANY($2)
		ORDER BY array_position($2, code)
		LIMIT 1
	`

	c, err := scanComponent(q.QueryRow(ctx, query, orgID, codes))
	if err != nil {
		if err == pgx.ErrNoRows {
			return component.SalaryComponent{}, component.ErrComponentNotFound
		}
		return component.SalaryComponent{}, fmt.Errorf("failed to find earning component by codes: %w", err)
	}

	return c, nil
}

func (r *componentRepository) FindAnyActiveEarning(ctx context.Context, orgID string) (component.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentColumns + `
		FROM salary_components
		WHERE org_id = $1 AND kind = 'earning' AND is_active = true
		ORDER BY code
		LIMIT 1
	`

	c, err := scanComponent(q.QueryRow(ctx, query, orgID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return component.SalaryComponent{}, component.ErrComponentNotFound
		}
		return component.SalaryComponent{}, fmt.Errorf("failed to find active earning component: %w", err)
	}

	return c, nil
}
