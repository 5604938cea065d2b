package component

import (
	"context"

	componentdomain "github.com/astrahr/payroll-backend-go/internal/domain/component"
	"github.com/shopspring/decimal"
)

type ComponentServiceImpl struct {
	componentRepo componentdomain.ComponentRepository
}

func NewComponentService(componentRepo componentdomain.ComponentRepository) componentdomain.ComponentService {
	return &ComponentServiceImpl{componentRepo: componentRepo}
}

func (s *ComponentServiceImpl) Create(ctx context.Context, orgID string, req componentdomain.CreateComponentRequest) (componentdomain.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return componentdomain.ComponentResponse{}, err
	}

	isStatutory := false
	if req.IsStatutory != nil {
		isStatutory = *req.IsStatutory
	}
	statutoryType := componentdomain.StatutoryNone
	if req.StatutoryType != nil {
		statutoryType = componentdomain.StatutoryType(*req.StatutoryType)
	}
	defaultAmount := decimal.Zero
	if req.DefaultAmount != nil {
		defaultAmount = *req.DefaultAmount
	}
	defaultPercentage := decimal.Zero
	if req.DefaultPercentage != nil {
		defaultPercentage = *req.DefaultPercentage
	}

	created, err := s.componentRepo.Create(ctx, componentdomain.SalaryComponent{
		OrgID:             orgID,
		Code:              req.Code,
		Name:              req.Name,
		Kind:              componentdomain.ComponentKind(req.Kind),
		CalcType:          componentdomain.CalcType(req.CalcType),
		IsStatutory:       isStatutory,
		StatutoryType:     statutoryType,
		DefaultAmount:     defaultAmount,
		DefaultPercentage: defaultPercentage,
		IsActive:          true,
	})
	if err != nil {
		return componentdomain.ComponentResponse{}, err
	}
	return mapToComponentResponse(created), nil
}

func (s *ComponentServiceImpl) Get(ctx context.Context, orgID string, id string) (componentdomain.ComponentResponse, error) {
	c, err := s.componentRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return componentdomain.ComponentResponse{}, err
	}
	return mapToComponentResponse(c), nil
}

func (s *ComponentServiceImpl) List(ctx context.Context, orgID string, activeOnly bool) ([]componentdomain.ComponentResponse, error) {
	components, err := s.componentRepo.ListByOrg(ctx, orgID, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]componentdomain.ComponentResponse, 0, len(components))
	for _, c := range components {
		result = append(result, mapToComponentResponse(c))
	}
	return result, nil
}

func (s *ComponentServiceImpl) Update(ctx context.Context, orgID string, req componentdomain.UpdateComponentRequest) error {
	return s.componentRepo.Update(ctx, orgID, req)
}

func (s *ComponentServiceImpl) Deactivate(ctx context.Context, orgID string, id string) error {
	return s.componentRepo.Deactivate(ctx, id, orgID)
}

func mapToComponentResponse(c componentdomain.SalaryComponent) componentdomain.ComponentResponse {
	return componentdomain.ComponentResponse{
		ID:                c.ID,
		OrgID:             c.OrgID,
		Code:              c.Code,
		Name:              c.Name,
		Kind:              string(c.Kind),
		CalcType:          string(c.CalcType),
		IsStatutory:       c.IsStatutory,
		StatutoryType:     string(c.StatutoryType),
		DefaultAmount:     c.DefaultAmount,
		DefaultPercentage: c.DefaultPercentage,
		IsActive:          c.IsActive,
	}
}
