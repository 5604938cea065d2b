package component

import "context"

// ComponentService manages the salary component catalog.
type ComponentService interface {
	Create(ctx context.Context, orgID string, req CreateComponentRequest) (ComponentResponse, error)
	Get(ctx context.Context, orgID string, id string) (ComponentResponse, error)
	List(ctx context.Context, orgID string, activeOnly bool) ([]ComponentResponse, error)
	Update(ctx context.Context, orgID string, req UpdateComponentRequest) error
	Deactivate(ctx context.Context, orgID string, id string) error
}
