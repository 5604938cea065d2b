package loan

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	loandomain "github.com/astrahr/payroll-backend-go/internal/domain/loan"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxRunner struct{}

func (fakeTxRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxRunner) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string, orgID string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.OrgID != orgID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) ListActiveByOrg(_ context.Context, orgID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.OrgID == orgID && e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeLoanRepo struct {
	loans map[string]*loandomain.Loan
	emis  map[string][]loandomain.EMI
	seq   int
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{
		loans: make(map[string]*loandomain.Loan),
		emis:  make(map[string][]loandomain.EMI),
	}
}

func (r *fakeLoanRepo) Create(_ context.Context, l loandomain.Loan) (loandomain.Loan, error) {
	r.seq++
	l.ID = fmt.Sprintf("loan-%d", r.seq)
	r.loans[l.ID] = &l
	return l, nil
}

func (r *fakeLoanRepo) GetByID(_ context.Context, id string, orgID string) (loandomain.Loan, error) {
	l, ok := r.loans[id]
	if !ok || l.OrgID != orgID {
		return loandomain.Loan{}, loandomain.ErrLoanNotFound
	}
	return *l, nil
}

func (r *fakeLoanRepo) ListByEmployee(_ context.Context, employeeID string, orgID string) ([]loandomain.Loan, error) {
	var out []loandomain.Loan
	for _, l := range r.loans {
		if l.EmployeeID == employeeID && l.OrgID == orgID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) UpdateStatus(_ context.Context, id string, orgID string, status loandomain.LoanStatus) error {
	l, ok := r.loans[id]
	if !ok || l.OrgID != orgID {
		return loandomain.ErrLoanNotFound
	}
	l.Status = status
	return nil
}

func (r *fakeLoanRepo) SetDisbursed(_ context.Context, id string, orgID string) (loandomain.Loan, error) {
	l, ok := r.loans[id]
	if !ok || l.OrgID != orgID {
		return loandomain.Loan{}, loandomain.ErrLoanNotFound
	}
	now := time.Now()
	l.Status = loandomain.StatusDisbursed
	l.DisbursedAt = &now
	return *l, nil
}

func (r *fakeLoanRepo) ReduceBalance(_ context.Context, id string, amount decimal.Decimal) (loandomain.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return loandomain.Loan{}, loandomain.ErrLoanNotFound
	}
	l.Balance = l.Balance.Sub(amount)
	if l.Balance.IsNegative() {
		l.Balance = decimal.Zero
	}
	return *l, nil
}

func (r *fakeLoanRepo) HasEMIs(_ context.Context, loanID string) (bool, error) {
	return len(r.emis[loanID]) > 0, nil
}

func (r *fakeLoanRepo) CreateEMIs(_ context.Context, emis []loandomain.EMI) error {
	for _, emi := range emis {
		r.seq++
		emi.ID = fmt.Sprintf("emi-%d", r.seq)
		r.emis[emi.LoanID] = append(r.emis[emi.LoanID], emi)
	}
	return nil
}

func (r *fakeLoanRepo) ListEMIs(_ context.Context, loanID string) ([]loandomain.EMI, error) {
	return append([]loandomain.EMI(nil), r.emis[loanID]...), nil
}

func (r *fakeLoanRepo) FindUnpaidForEmployeePeriod(_ context.Context, employeeID string, month, year int) ([]loandomain.EMI, error) {
	var out []loandomain.EMI
	for loanID, emis := range r.emis {
		l := r.loans[loanID]
		if l.EmployeeID != employeeID {
			continue
		}
		if l.Status != loandomain.StatusApproved && l.Status != loandomain.StatusDisbursed {
			continue
		}
		for _, emi := range emis {
			if emi.Month == month && emi.Year == year && emi.Status == loandomain.EMIStatusUnpaid && emi.PayslipID == nil {
				out = append(out, emi)
			}
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) LinkToPayslip(_ context.Context, emiIDs []string, payslipID string) error {
	for loanID := range r.emis {
		for i := range r.emis[loanID] {
			for _, id := range emiIDs {
				if r.emis[loanID][i].ID == id && r.emis[loanID][i].Status == loandomain.EMIStatusUnpaid {
					pid := payslipID
					r.emis[loanID][i].PayslipID = &pid
				}
			}
		}
	}
	return nil
}

func (r *fakeLoanRepo) DetachFromPayslip(_ context.Context, payslipID string) error {
	for loanID := range r.emis {
		for i := range r.emis[loanID] {
			emi := &r.emis[loanID][i]
			if emi.PayslipID != nil && *emi.PayslipID == payslipID && emi.Status == loandomain.EMIStatusUnpaid {
				emi.PayslipID = nil
			}
		}
	}
	return nil
}

func (r *fakeLoanRepo) ListByPayslip(_ context.Context, payslipID string) ([]loandomain.EMI, error) {
	var out []loandomain.EMI
	for _, emis := range r.emis {
		for _, emi := range emis {
			if emi.PayslipID != nil && *emi.PayslipID == payslipID {
				out = append(out, emi)
			}
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) MarkPaid(_ context.Context, emiIDs []string) error {
	for loanID := range r.emis {
		for i := range r.emis[loanID] {
			for _, id := range emiIDs {
				if r.emis[loanID][i].ID == id {
					r.emis[loanID][i].Status = loandomain.EMIStatusPaid
				}
			}
		}
	}
	return nil
}

func newTestLoanService(repo *fakeLoanRepo, now time.Time) *LoanServiceImpl {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", OrgID: "org-1", Code: "E001", FullName: "Asha Rao", IsActive: true},
	}}
	svc := NewLoanService(fakeTxRunner{}, repo, employees).(*LoanServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func TestTotalPayableFor(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		tenure    int
		want      string
	}{
		{"zero interest", "12000", "0", 12, "12000"},
		{"simple interest one year", "12000", "10", 12, "13200"},
		{"simple interest half year", "10000", "12", 6, "10600"},
		{"rounds to two decimals", "10000", "7.3", 7, "10425.83"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loandomain.TotalPayableFor(
				decimal.RequireFromString(tt.principal),
				decimal.RequireFromString(tt.rate),
				tt.tenure,
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestBuildSchedule_StandardStartsNextMonth(t *testing.T) {
	l := loandomain.Loan{
		ID:           "loan-1",
		LoanType:     loandomain.TypeStandard,
		TenureMonths: 12,
		TotalPayable: decimal.NewFromInt(12000),
	}

	now := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	emis := BuildSchedule(l, now)

	require.Len(t, emis, 12)
	assert.Equal(t, 2, emis[0].Month)
	assert.Equal(t, 2026, emis[0].Year)
	assert.Equal(t, 1, emis[11].Month)
	assert.Equal(t, 2027, emis[11].Year)
	for _, emi := range emis {
		assert.True(t, emi.Amount.Equal(decimal.NewFromInt(1000)), "amount %s", emi.Amount)
		assert.Equal(t, loandomain.EMIStatusUnpaid, emi.Status)
	}
}

func TestBuildSchedule_AdvanceStartsSameMonth(t *testing.T) {
	l := loandomain.Loan{
		ID:           "loan-2",
		LoanType:     loandomain.TypeAdvance,
		TenureMonths: 3,
		TotalPayable: decimal.NewFromInt(6000),
	}

	now := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	emis := BuildSchedule(l, now)

	require.Len(t, emis, 3)
	assert.Equal(t, []int{3, 4, 5}, []int{emis[0].Month, emis[1].Month, emis[2].Month})
	for _, emi := range emis {
		assert.Equal(t, 2026, emi.Year)
		assert.True(t, emi.Amount.Equal(decimal.NewFromInt(2000)))
	}
}

func TestBuildSchedule_DecemberRollover(t *testing.T) {
	l := loandomain.Loan{
		LoanType:     loandomain.TypeStandard,
		TenureMonths: 2,
		TotalPayable: decimal.NewFromInt(2000),
	}

	now := time.Date(2026, time.December, 10, 0, 0, 0, 0, time.UTC)
	emis := BuildSchedule(l, now)

	require.Len(t, emis, 2)
	assert.Equal(t, 1, emis[0].Month)
	assert.Equal(t, 2027, emis[0].Year)
	assert.Equal(t, 2, emis[1].Month)
	assert.Equal(t, 2027, emis[1].Year)
}

func TestBuildSchedule_AnchorsOnDisbursement(t *testing.T) {
	disbursed := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
	l := loandomain.Loan{
		LoanType:     loandomain.TypeStandard,
		TenureMonths: 1,
		TotalPayable: decimal.NewFromInt(500),
		DisbursedAt:  &disbursed,
	}

	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	emis := BuildSchedule(l, now)

	require.Len(t, emis, 1)
	assert.Equal(t, 7, emis[0].Month)
	assert.Equal(t, 2026, emis[0].Year)
}

func TestLoanService_CreateComputesTotalPayable(t *testing.T) {
	repo := newFakeLoanRepo()
	svc := newTestLoanService(repo, time.Now())

	resp, err := svc.Create(context.Background(), "org-1", loandomain.CreateLoanRequest{
		EmployeeID:   "emp-1",
		LoanType:     "standard",
		Principal:    decimal.NewFromInt(12000),
		InterestRate: decimal.NewFromInt(10),
		TenureMonths: 12,
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalPayable.Equal(decimal.NewFromInt(13200)))
	assert.True(t, resp.Balance.Equal(decimal.NewFromInt(13200)))
	assert.Equal(t, "pending", resp.Status)
}

func TestLoanService_CreateUnknownEmployee(t *testing.T) {
	repo := newFakeLoanRepo()
	svc := newTestLoanService(repo, time.Now())

	_, err := svc.Create(context.Background(), "org-1", loandomain.CreateLoanRequest{
		EmployeeID:   "nobody",
		LoanType:     "standard",
		Principal:    decimal.NewFromInt(1000),
		InterestRate: decimal.Zero,
		TenureMonths: 4,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestLoanService_ApproveRequiresPending(t *testing.T) {
	repo := newFakeLoanRepo()
	svc := newTestLoanService(repo, time.Now())
	ctx := context.Background()

	resp, err := svc.Create(ctx, "org-1", loandomain.CreateLoanRequest{
		EmployeeID:   "emp-1",
		LoanType:     "advance",
		Principal:    decimal.NewFromInt(6000),
		InterestRate: decimal.Zero,
		TenureMonths: 3,
	})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, "org-1", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	_, err = svc.Approve(ctx, "org-1", resp.ID)
	assert.ErrorIs(t, err, loandomain.ErrInvalidLoanState)

	_, err = svc.Reject(ctx, "org-1", resp.ID)
	assert.ErrorIs(t, err, loandomain.ErrInvalidLoanState)
}

func TestLoanService_DisburseRequiresApproved(t *testing.T) {
	repo := newFakeLoanRepo()
	svc := newTestLoanService(repo, time.Now())
	ctx := context.Background()

	resp, err := svc.Create(ctx, "org-1", loandomain.CreateLoanRequest{
		EmployeeID:   "emp-1",
		LoanType:     "standard",
		Principal:    decimal.NewFromInt(9000),
		InterestRate: decimal.Zero,
		TenureMonths: 9,
	})
	require.NoError(t, err)

	_, err = svc.Disburse(ctx, "org-1", resp.ID)
	assert.ErrorIs(t, err, loandomain.ErrInvalidLoanState)

	_, err = svc.Approve(ctx, "org-1", resp.ID)
	require.NoError(t, err)

	disbursed, err := svc.Disburse(ctx, "org-1", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "disbursed", disbursed.Status)
	assert.NotNil(t, disbursed.DisbursedAt)
}

func TestLoanService_GenerateScheduleIdempotent(t *testing.T) {
	repo := newFakeLoanRepo()
	now := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)
	svc := newTestLoanService(repo, now)
	ctx := context.Background()

	resp, err := svc.Create(ctx, "org-1", loandomain.CreateLoanRequest{
		EmployeeID:   "emp-1",
		LoanType:     "standard",
		Principal:    decimal.NewFromInt(12000),
		InterestRate: decimal.Zero,
		TenureMonths: 12,
	})
	require.NoError(t, err)

	// Not eligible while pending.
	_, err = svc.GenerateSchedule(ctx, "org-1", resp.ID)
	assert.ErrorIs(t, err, loandomain.ErrScheduleNotEligible)

	_, err = svc.Approve(ctx, "org-1", resp.ID)
	require.NoError(t, err)

	emis, err := svc.GenerateSchedule(ctx, "org-1", resp.ID)
	require.NoError(t, err)
	require.Len(t, emis, 12)
	assert.Equal(t, 5, emis[0].Month)

	// Repeat generation returns the existing schedule unchanged.
	again, err := svc.GenerateSchedule(ctx, "org-1", resp.ID)
	require.NoError(t, err)
	require.Len(t, again, 12)
	assert.Equal(t, emis[0].ID, again[0].ID)
	assert.True(t, again[0].Amount.Equal(emis[0].Amount))

	got, err := svc.GetSchedule(ctx, "org-1", resp.ID)
	require.NoError(t, err)
	assert.Len(t, got, 12)
}
