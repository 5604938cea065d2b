package loan

import (
	"context"
	"time"

	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	loandomain "github.com/astrahr/payroll-backend-go/internal/domain/loan"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type LoanServiceImpl struct {
	tx           database.TxRunner
	loanRepo     loandomain.LoanRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewLoanService(tx database.TxRunner, loanRepo loandomain.LoanRepository, employeeRepo employee.EmployeeRepository) loandomain.LoanService {
	return &LoanServiceImpl{
		tx:           tx,
		loanRepo:     loanRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

func (s *LoanServiceImpl) Create(ctx context.Context, orgID string, req loandomain.CreateLoanRequest) (loandomain.LoanResponse, error) {
	if err := req.Validate(); err != nil {
		return loandomain.LoanResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, orgID); err != nil {
		return loandomain.LoanResponse{}, err
	}

	totalPayable := loandomain.TotalPayableFor(req.Principal, req.InterestRate, req.TenureMonths)
	created, err := s.loanRepo.Create(ctx, loandomain.Loan{
		OrgID:        orgID,
		EmployeeID:   req.EmployeeID,
		LoanType:     loandomain.LoanType(req.LoanType),
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		TenureMonths: req.TenureMonths,
		TotalPayable: totalPayable,
		Balance:      totalPayable,
		Status:       loandomain.StatusPending,
	})
	if err != nil {
		return loandomain.LoanResponse{}, err
	}
	return mapToLoanResponse(created), nil
}

func (s *LoanServiceImpl) Get(ctx context.Context, orgID string, id string) (loandomain.LoanResponse, error) {
	l, err := s.loanRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return loandomain.LoanResponse{}, err
	}
	return mapToLoanResponse(l), nil
}

func (s *LoanServiceImpl) ListByEmployee(ctx context.Context, orgID string, employeeID string) ([]loandomain.LoanResponse, error) {
	loans, err := s.loanRepo.ListByEmployee(ctx, employeeID, orgID)
	if err != nil {
		return nil, err
	}

	result := make([]loandomain.LoanResponse, 0, len(loans))
	for _, l := range loans {
		result = append(result, mapToLoanResponse(l))
	}
	return result, nil
}

func (s *LoanServiceImpl) Approve(ctx context.Context, orgID string, id string) (loandomain.LoanResponse, error) {
	return s.transition(ctx, orgID, id, loandomain.StatusPending, loandomain.StatusApproved)
}

func (s *LoanServiceImpl) Reject(ctx context.Context, orgID string, id string) (loandomain.LoanResponse, error) {
	return s.transition(ctx, orgID, id, loandomain.StatusPending, loandomain.StatusRejected)
}

func (s *LoanServiceImpl) transition(ctx context.Context, orgID, id string, from, to loandomain.LoanStatus) (loandomain.LoanResponse, error) {
	l, err := s.loanRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return loandomain.LoanResponse{}, err
	}
	if l.Status != from {
		return loandomain.LoanResponse{}, loandomain.ErrInvalidLoanState
	}

	if err := s.loanRepo.UpdateStatus(ctx, id, orgID, to); err != nil {
		return loandomain.LoanResponse{}, err
	}
	l.Status = to
	return mapToLoanResponse(l), nil
}

func (s *LoanServiceImpl) Disburse(ctx context.Context, orgID string, id string) (loandomain.LoanResponse, error) {
	l, err := s.loanRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return loandomain.LoanResponse{}, err
	}
	if l.Status != loandomain.StatusApproved {
		return loandomain.LoanResponse{}, loandomain.ErrInvalidLoanState
	}

	updated, err := s.loanRepo.SetDisbursed(ctx, id, orgID)
	if err != nil {
		return loandomain.LoanResponse{}, err
	}
	return mapToLoanResponse(updated), nil
}

// GenerateSchedule creates the full installment schedule for a loan.
// Standard loans start recovery the month after disbursement; salary
// advances start the same month. Generation on a loan that already has
// installments returns the existing schedule unchanged.
func (s *LoanServiceImpl) GenerateSchedule(ctx context.Context, orgID string, id string) ([]loandomain.EMIResponse, error) {
	var emis []loandomain.EMI
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		l, err := s.loanRepo.GetByID(ctx, id, orgID)
		if err != nil {
			return err
		}
		if l.Status != loandomain.StatusApproved && l.Status != loandomain.StatusDisbursed {
			return loandomain.ErrScheduleNotEligible
		}

		exists, err := s.loanRepo.HasEMIs(ctx, l.ID)
		if err != nil {
			return err
		}
		if !exists {
			if err := s.loanRepo.CreateEMIs(ctx, BuildSchedule(l, s.now())); err != nil {
				return err
			}
		}
		emis, err = s.loanRepo.ListEMIs(ctx, l.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return mapToEMIResponses(emis), nil
}

// BuildSchedule derives the contiguous EMI sequence for a loan. The
// anchor is the disbursement date when present, otherwise now.
func BuildSchedule(l loandomain.Loan, now time.Time) []loandomain.EMI {
	anchor := now
	if l.DisbursedAt != nil {
		anchor = *l.DisbursedAt
	}

	month := int(anchor.Month())
	year := anchor.Year()
	if l.LoanType == loandomain.TypeStandard {
		month, year = nextMonth(month, year)
	}

	emiAmount := l.TotalPayable.Div(decimal.NewFromInt(int64(l.TenureMonths))).Round(2)

	emis := make([]loandomain.EMI, 0, l.TenureMonths)
	for i := 0; i < l.TenureMonths; i++ {
		emis = append(emis, loandomain.EMI{
			LoanID: l.ID,
			Month:  month,
			Year:   year,
			Amount: emiAmount,
			Status: loandomain.EMIStatusUnpaid,
		})
		month, year = nextMonth(month, year)
	}
	return emis
}

func nextMonth(month, year int) (int, int) {
	if month == 12 {
		return 1, year + 1
	}
	return month + 1, year
}

func (s *LoanServiceImpl) GetSchedule(ctx context.Context, orgID string, id string) ([]loandomain.EMIResponse, error) {
	if _, err := s.loanRepo.GetByID(ctx, id, orgID); err != nil {
		return nil, err
	}

	emis, err := s.loanRepo.ListEMIs(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToEMIResponses(emis), nil
}

func mapToLoanResponse(l loandomain.Loan) loandomain.LoanResponse {
	var disbursedAt *string
	if l.DisbursedAt != nil {
		str := l.DisbursedAt.Format(time.RFC3339)
		disbursedAt = &str
	}

	return loandomain.LoanResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		LoanType:     string(l.LoanType),
		Principal:    l.Principal,
		InterestRate: l.InterestRate,
		TenureMonths: l.TenureMonths,
		TotalPayable: l.TotalPayable,
		Balance:      l.Balance,
		Status:       string(l.Status),
		DisbursedAt:  disbursedAt,
	}
}

func mapToEMIResponses(emis []loandomain.EMI) []loandomain.EMIResponse {
	result := make([]loandomain.EMIResponse, 0, len(emis))
	for _, emi := range emis {
		result = append(result, loandomain.EMIResponse{
			ID:        emi.ID,
			LoanID:    emi.LoanID,
			Month:     emi.Month,
			Year:      emi.Year,
			Amount:    emi.Amount,
			Status:    string(emi.Status),
			PayslipID: emi.PayslipID,
		})
	}
	return result
}
