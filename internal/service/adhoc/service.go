package adhoc

import (
	"context"

	adhocdomain "github.com/astrahr/payroll-backend-go/internal/domain/adhoc"
	"github.com/astrahr/payroll-backend-go/internal/domain/component"
	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
)

type PaymentServiceImpl struct {
	paymentRepo   adhocdomain.PaymentRepository
	componentRepo component.ComponentRepository
	employeeRepo  employee.EmployeeRepository
}

func NewPaymentService(
	paymentRepo adhocdomain.PaymentRepository,
	componentRepo component.ComponentRepository,
	employeeRepo employee.EmployeeRepository,
) adhocdomain.PaymentService {
	return &PaymentServiceImpl{
		paymentRepo:   paymentRepo,
		componentRepo: componentRepo,
		employeeRepo:  employeeRepo,
	}
}

func (s *PaymentServiceImpl) Create(ctx context.Context, orgID string, req adhocdomain.CreatePaymentRequest) (adhocdomain.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return adhocdomain.PaymentResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, orgID); err != nil {
		return adhocdomain.PaymentResponse{}, err
	}
	if req.ComponentID != nil {
		if _, err := s.componentRepo.GetByID(ctx, *req.ComponentID, orgID); err != nil {
			return adhocdomain.PaymentResponse{}, err
		}
	}

	created, err := s.paymentRepo.Create(ctx, adhocdomain.AdhocPayment{
		OrgID:       orgID,
		EmployeeID:  req.EmployeeID,
		ComponentID: req.ComponentID,
		Amount:      req.Amount,
		Reason:      req.Reason,
		PeriodID:    req.PeriodID,
		Status:      adhocdomain.StatusPending,
	})
	if err != nil {
		return adhocdomain.PaymentResponse{}, err
	}
	return mapToPaymentResponse(created), nil
}

func (s *PaymentServiceImpl) Get(ctx context.Context, orgID string, id string) (adhocdomain.PaymentResponse, error) {
	p, err := s.paymentRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return adhocdomain.PaymentResponse{}, err
	}
	return mapToPaymentResponse(p), nil
}

func (s *PaymentServiceImpl) ListByEmployee(ctx context.Context, orgID string, employeeID string) ([]adhocdomain.PaymentResponse, error) {
	payments, err := s.paymentRepo.ListByEmployee(ctx, employeeID, orgID)
	if err != nil {
		return nil, err
	}

	result := make([]adhocdomain.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		result = append(result, mapToPaymentResponse(p))
	}
	return result, nil
}

// Cancel withdraws a pending payment. A payment already merged into a
// payslip can no longer be cancelled; recalculate the payslip first.
func (s *PaymentServiceImpl) Cancel(ctx context.Context, orgID string, id string) error {
	p, err := s.paymentRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return err
	}
	if p.Status != adhocdomain.StatusPending {
		return adhocdomain.ErrPaymentNotPending
	}
	if p.PayslipID != nil {
		return adhocdomain.ErrPaymentAlreadyLinked
	}

	return s.paymentRepo.Cancel(ctx, id, orgID)
}

func mapToPaymentResponse(p adhocdomain.AdhocPayment) adhocdomain.PaymentResponse {
	return adhocdomain.PaymentResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		ComponentID: p.ComponentID,
		Amount:      p.Amount,
		Reason:      p.Reason,
		PeriodID:    p.PeriodID,
		Status:      string(p.Status),
		PayslipID:   p.PayslipID,
	}
}
