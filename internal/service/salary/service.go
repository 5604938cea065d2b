package salary

import (
	"context"
	"time"

	"github.com/astrahr/payroll-backend-go/internal/domain/component"
	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	salarydomain "github.com/astrahr/payroll-backend-go/internal/domain/salary"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
)

type AssignmentServiceImpl struct {
	tx             database.TxRunner
	assignmentRepo salarydomain.AssignmentRepository
	componentRepo  component.ComponentRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAssignmentService(
	tx database.TxRunner,
	assignmentRepo salarydomain.AssignmentRepository,
	componentRepo component.ComponentRepository,
	employeeRepo employee.EmployeeRepository,
) salarydomain.AssignmentService {
	return &AssignmentServiceImpl{
		tx:             tx,
		assignmentRepo: assignmentRepo,
		componentRepo:  componentRepo,
		employeeRepo:   employeeRepo,
	}
}

// Assign creates a new current salary assignment; the repository
// demotes the previous current one in the same transaction.
func (s *AssignmentServiceImpl) Assign(ctx context.Context, orgID string, req salarydomain.CreateAssignmentRequest) (salarydomain.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return salarydomain.AssignmentResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, orgID); err != nil {
		return salarydomain.AssignmentResponse{}, err
	}

	effectiveFrom := time.Now()
	if req.EffectiveFrom != nil {
		parsed, err := time.Parse("2006-01-02", *req.EffectiveFrom)
		if err == nil {
			effectiveFrom = parsed
		}
	}

	allocations := make([]salarydomain.ComponentAllocation, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		if _, err := s.componentRepo.GetByID(ctx, a.ComponentID, orgID); err != nil {
			return salarydomain.AssignmentResponse{}, err
		}

		alloc := salarydomain.ComponentAllocation{ComponentID: a.ComponentID}
		if a.Amount != nil {
			alloc.Amount = *a.Amount
		}
		if a.Percentage != nil {
			alloc.Percentage = *a.Percentage
		}
		allocations = append(allocations, alloc)
	}

	// Demote, insert and allocation writes must land together: a
	// partial sequence would leave payroll computing from a half-built
	// structure.
	var created salarydomain.SalaryAssignment
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.assignmentRepo.CreateCurrent(ctx, salarydomain.SalaryAssignment{
			OrgID:         orgID,
			EmployeeID:    req.EmployeeID,
			BaseAmount:    req.BaseAmount,
			IsCurrent:     true,
			EffectiveFrom: effectiveFrom,
			Allocations:   allocations,
		})
		return err
	})
	if err != nil {
		return salarydomain.AssignmentResponse{}, err
	}
	return mapToAssignmentResponse(created), nil
}

func (s *AssignmentServiceImpl) GetCurrent(ctx context.Context, orgID string, employeeID string) (salarydomain.AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.GetCurrentByEmployee(ctx, employeeID, orgID)
	if err != nil {
		return salarydomain.AssignmentResponse{}, err
	}
	return mapToAssignmentResponse(assignment), nil
}

func (s *AssignmentServiceImpl) History(ctx context.Context, orgID string, employeeID string) ([]salarydomain.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.ListByEmployee(ctx, employeeID, orgID)
	if err != nil {
		return nil, err
	}

	result := make([]salarydomain.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		result = append(result, mapToAssignmentResponse(a))
	}
	return result, nil
}

func mapToAssignmentResponse(a salarydomain.SalaryAssignment) salarydomain.AssignmentResponse {
	var supersededAt *string
	if a.SupersededAt != nil {
		str := a.SupersededAt.Format(time.RFC3339)
		supersededAt = &str
	}

	allocations := make([]salarydomain.AllocationResponse, 0, len(a.Allocations))
	for _, alloc := range a.Allocations {
		allocations = append(allocations, salarydomain.AllocationResponse{
			ComponentID: alloc.ComponentID,
			Amount:      alloc.Amount,
			Percentage:  alloc.Percentage,
		})
	}

	return salarydomain.AssignmentResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		BaseAmount:    a.BaseAmount,
		IsCurrent:     a.IsCurrent,
		EffectiveFrom: a.EffectiveFrom.Format("2006-01-02"),
		SupersededAt:  supersededAt,
		Allocations:   allocations,
	}
}
