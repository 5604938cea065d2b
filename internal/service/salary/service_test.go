package salary

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/astrahr/payroll-backend-go/internal/domain/component"
	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	salarydomain "github.com/astrahr/payroll-backend-go/internal/domain/salary"
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== IN-MEMORY FAKES ==========

type txMarker struct{}

// markingTxRunner tags the context so repositories can tell whether
// they were called inside a transaction.
type markingTxRunner struct {
	runs int
}

func (r *markingTxRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	r.runs++
	return fn(context.WithValue(ctx, txMarker{}, true))
}

func (r *markingTxRunner) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	r.runs++
	return fn(context.WithValue(ctx, txMarker{}, true))
}

type fakeAssignmentRepo struct {
	current    map[string]salarydomain.SalaryAssignment
	superseded map[string][]salarydomain.SalaryAssignment
	seq        int

	createErr   error
	createInTx  bool
	createCalls int
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		current:    map[string]salarydomain.SalaryAssignment{},
		superseded: map[string][]salarydomain.SalaryAssignment{},
	}
}

func (r *fakeAssignmentRepo) CreateCurrent(ctx context.Context, a salarydomain.SalaryAssignment) (salarydomain.SalaryAssignment, error) {
	r.createCalls++
	r.createInTx = ctx.Value(txMarker{}) != nil
	if r.createErr != nil {
		return salarydomain.SalaryAssignment{}, r.createErr
	}

	if prev, ok := r.current[a.EmployeeID]; ok {
		now := time.Now()
		prev.IsCurrent = false
		prev.SupersededAt = &now
		r.superseded[a.EmployeeID] = append(r.superseded[a.EmployeeID], prev)
	}

	r.seq++
	a.ID = fmt.Sprintf("assign-%d", r.seq)
	for i := range a.Allocations {
		a.Allocations[i].AssignmentID = a.ID
	}
	r.current[a.EmployeeID] = a
	return a, nil
}

func (r *fakeAssignmentRepo) GetCurrentByEmployee(_ context.Context, employeeID string, orgID string) (salarydomain.SalaryAssignment, error) {
	a, ok := r.current[employeeID]
	if !ok || a.OrgID != orgID {
		return salarydomain.SalaryAssignment{}, salarydomain.ErrNoCurrentAssignment
	}
	return a, nil
}

func (r *fakeAssignmentRepo) ListByEmployee(_ context.Context, employeeID string, orgID string) ([]salarydomain.SalaryAssignment, error) {
	var out []salarydomain.SalaryAssignment
	if a, ok := r.current[employeeID]; ok && a.OrgID == orgID {
		out = append(out, a)
	}
	for _, a := range r.superseded[employeeID] {
		if a.OrgID == orgID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeComponentRepo struct {
	byID map[string]component.SalaryComponent
	seq  int
}

func (r *fakeComponentRepo) add(c component.SalaryComponent) component.SalaryComponent {
	r.seq++
	c.ID = fmt.Sprintf("comp-%d", r.seq)
	r.byID[c.ID] = c
	return c
}

func (r *fakeComponentRepo) Create(_ context.Context, c component.SalaryComponent) (component.SalaryComponent, error) {
	return r.add(c), nil
}

func (r *fakeComponentRepo) GetByID(_ context.Context, id string, orgID string) (component.SalaryComponent, error) {
	c, ok := r.byID[id]
	if !ok || c.OrgID != orgID {
		return component.SalaryComponent{}, component.ErrComponentNotFound
	}
	return c, nil
}

func (r *fakeComponentRepo) GetByCode(_ context.Context, code string, orgID string) (component.SalaryComponent, error) {
	for _, c := range r.byID {
		if c.OrgID == orgID && c.Code == code {
			return c, nil
		}
	}
	return component.SalaryComponent{}, component.ErrComponentNotFound
}

func (r *fakeComponentRepo) ListByOrg(_ context.Context, orgID string, _ bool) ([]component.SalaryComponent, error) {
	var out []component.SalaryComponent
	for _, c := range r.byID {
		if c.OrgID == orgID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeComponentRepo) Update(_ context.Context, _ string, _ component.UpdateComponentRequest) error {
	return nil
}

func (r *fakeComponentRepo) Deactivate(_ context.Context, _ string, _ string) error {
	return nil
}

func (r *fakeComponentRepo) GetOrCreateByCode(ctx context.Context, orgID string, code string, name string, kind component.ComponentKind, st component.StatutoryType) (component.SalaryComponent, error) {
	if c, err := r.GetByCode(ctx, code, orgID); err == nil {
		return c, nil
	}
	return r.add(component.SalaryComponent{OrgID: orgID, Code: code, Name: name, Kind: kind, StatutoryType: st, IsActive: true}), nil
}

func (r *fakeComponentRepo) FindByStatutoryType(_ context.Context, _ string, _ component.StatutoryType) (component.SalaryComponent, error) {
	return component.SalaryComponent{}, component.ErrComponentNotFound
}

func (r *fakeComponentRepo) FindEarningByCodes(_ context.Context, _ string, _ []string) (component.SalaryComponent, error) {
	return component.SalaryComponent{}, component.ErrComponentNotFound
}

func (r *fakeComponentRepo) FindAnyActiveEarning(_ context.Context, _ string) (component.SalaryComponent, error) {
	return component.SalaryComponent{}, component.ErrComponentNotFound
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

// ========== FIXTURE ==========

const testOrg = "org-1"

type fixture struct {
	tx          *markingTxRunner
	assignments *fakeAssignmentRepo
	components  *fakeComponentRepo
	employees   *fakeEmployeeRepo

	svc salarydomain.AssignmentService
}

func newFixture() *fixture {
	f := &fixture{
		tx:          &markingTxRunner{},
		assignments: newFakeAssignmentRepo(),
		components:  &fakeComponentRepo{byID: map[string]component.SalaryComponent{}},
		employees:   &fakeEmployeeRepo{employees: map[string]employee.Employee{}},
	}
	f.svc = NewAssignmentService(f.tx, f.assignments, f.components, f.employees)
	return f
}

func (f *fixture) addEmployee(id string) {
	f.employees.employees[id] = employee.Employee{
		ID: id, OrgID: testOrg, Code: "E-" + id, FullName: "Employee " + id, IsActive: true,
	}
}

// ========== TESTS ==========

func TestAssignmentService_AssignRunsInTransaction(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addEmployee("emp-1")
	hra := f.components.add(component.SalaryComponent{
		OrgID: testOrg, Code: "HRA", Name: "House Rent Allowance",
		Kind: component.KindEarning, CalcType: component.CalcPercentageOfBase, IsActive: true,
	})
	transport := f.components.add(component.SalaryComponent{
		OrgID: testOrg, Code: "TRANSPORT", Name: "Transport Allowance",
		Kind: component.KindEarning, CalcType: component.CalcFixed, IsActive: true,
	})

	pct := decimal.NewFromInt(40)
	amt := decimal.NewFromInt(3000)
	resp, err := f.svc.Assign(ctx, testOrg, salarydomain.CreateAssignmentRequest{
		EmployeeID: "emp-1",
		BaseAmount: decimal.NewFromInt(50000),
		Allocations: []salarydomain.AllocationInput{
			{ComponentID: hra.ID, Percentage: &pct},
			{ComponentID: transport.ID, Amount: &amt},
		},
	})
	require.NoError(t, err)

	// The demote-and-insert sequence must run as one transaction.
	assert.True(t, f.assignments.createInTx)
	assert.Equal(t, 1, f.tx.runs)

	assert.True(t, resp.IsCurrent)
	assert.True(t, resp.BaseAmount.Equal(decimal.NewFromInt(50000)))
	require.Len(t, resp.Allocations, 2)
	assert.True(t, resp.Allocations[0].Percentage.Equal(pct))
	assert.True(t, resp.Allocations[1].Amount.Equal(amt))
}

func TestAssignmentService_AssignSupersedesPrevious(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addEmployee("emp-1")

	_, err := f.svc.Assign(ctx, testOrg, salarydomain.CreateAssignmentRequest{
		EmployeeID: "emp-1",
		BaseAmount: decimal.NewFromInt(40000),
	})
	require.NoError(t, err)
	_, err = f.svc.Assign(ctx, testOrg, salarydomain.CreateAssignmentRequest{
		EmployeeID: "emp-1",
		BaseAmount: decimal.NewFromInt(45000),
	})
	require.NoError(t, err)

	current, err := f.svc.GetCurrent(ctx, testOrg, "emp-1")
	require.NoError(t, err)
	assert.True(t, current.BaseAmount.Equal(decimal.NewFromInt(45000)))

	history, err := f.svc.History(ctx, testOrg, "emp-1")
	require.NoError(t, err)
	require.Len(t, history, 2)

	var supersededCount int
	for _, a := range history {
		if a.SupersededAt != nil {
			supersededCount++
			assert.False(t, a.IsCurrent)
		}
	}
	assert.Equal(t, 1, supersededCount)
}

func TestAssignmentService_AssignCreateFailureLeavesNoCurrent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addEmployee("emp-1")
	repoErr := errors.New("insert failed")
	f.assignments.createErr = repoErr

	_, err := f.svc.Assign(ctx, testOrg, salarydomain.CreateAssignmentRequest{
		EmployeeID: "emp-1",
		BaseAmount: decimal.NewFromInt(40000),
	})
	assert.ErrorIs(t, err, repoErr)

	_, err = f.svc.GetCurrent(ctx, testOrg, "emp-1")
	assert.ErrorIs(t, err, salarydomain.ErrNoCurrentAssignment)
}

func TestAssignmentService_AssignUnknownComponent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addEmployee("emp-1")

	amt := decimal.NewFromInt(3000)
	_, err := f.svc.Assign(ctx, testOrg, salarydomain.CreateAssignmentRequest{
		EmployeeID: "emp-1",
		BaseAmount: decimal.NewFromInt(40000),
		Allocations: []salarydomain.AllocationInput{
			{ComponentID: "missing", Amount: &amt},
		},
	})
	assert.ErrorIs(t, err, component.ErrComponentNotFound)
	assert.Equal(t, 0, f.assignments.createCalls)
}

func TestAssignmentService_AssignValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addEmployee("emp-1")

	_, err := f.svc.Assign(ctx, testOrg, salarydomain.CreateAssignmentRequest{
		EmployeeID: "emp-1",
		BaseAmount: decimal.NewFromInt(-1),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "base_amount")

	_, err = f.svc.GetCurrent(ctx, testOrg, "emp-1")
	assert.ErrorIs(t, err, salarydomain.ErrNoCurrentAssignment)
}
