package component

import "context"

// ComponentRepository defines data access for the component catalog.
// All methods are org-scoped to prevent cross-organization access.
type ComponentRepository interface {
	Create(ctx context.Context, c SalaryComponent) (SalaryComponent, error)
	GetByID(ctx context.Context, id string, orgID string) (SalaryComponent, error)
	GetByCode(ctx context.Context, code string, orgID string) (SalaryComponent, error)
	ListByOrg(ctx context.Context, orgID string, activeOnly bool) ([]SalaryComponent, error)
	Update(ctx context.Context, orgID string, req UpdateComponentRequest) error
	Deactivate(ctx context.Context, id string, orgID string) error

	// GetOrCreateByCode is used by payslip assembly for loan recovery
	// and statutory components; it must be safe to call repeatedly.
	GetOrCreateByCode(ctx context.Context, orgID string, code string, name string, kind ComponentKind, st StatutoryType) (SalaryComponent, error)

	// FindByStatutoryType returns the active component tagged with the
	// given statutory type, if any.
	FindByStatutoryType(ctx context.Context, orgID string, st StatutoryType) (SalaryComponent, error)

	// FindEarningByCodes returns the first active earning component whose
	// code matches any of the given codes, in order.
	FindEarningByCodes(ctx context.Context, orgID string, codes []string) (SalaryComponent, error)

	// FindAnyActiveEarning returns an arbitrary but stable active earning
	// component (lowest code wins).
	FindAnyActiveEarning(ctx context.Context, orgID string) (SalaryComponent, error)
}
