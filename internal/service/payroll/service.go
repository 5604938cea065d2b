package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/astrahr/payroll-backend-go/internal/domain/adhoc"
	"github.com/astrahr/payroll-backend-go/internal/domain/component"
	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	loandomain "github.com/astrahr/payroll-backend-go/internal/domain/loan"
	payrolldomain "github.com/astrahr/payroll-backend-go/internal/domain/payroll"
	"github.com/astrahr/payroll-backend-go/internal/domain/salary"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

// adhocFallbackCodes is the ordered name-convention chain tried when an
// ad-hoc payment carries no explicit component.
var adhocFallbackCodes = []string{"BONUS", "INCENTIVE"}

type PayrollServiceImpl struct {
	tx            database.TxRunner
	payrollRepo   payrolldomain.PayrollRepository
	attendance    payrolldomain.AttendanceSource
	salaryRepo    salary.AssignmentRepository
	componentRepo component.ComponentRepository
	loanRepo      loandomain.LoanRepository
	adhocRepo     adhoc.PaymentRepository
	employeeRepo  employee.EmployeeRepository
	logger        *slog.Logger
}

func NewPayrollService(
	tx database.TxRunner,
	payrollRepo payrolldomain.PayrollRepository,
	attendance payrolldomain.AttendanceSource,
	salaryRepo salary.AssignmentRepository,
	componentRepo component.ComponentRepository,
	loanRepo loandomain.LoanRepository,
	adhocRepo adhoc.PaymentRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) payrolldomain.PayrollService {
	return &PayrollServiceImpl{
		tx:            tx,
		payrollRepo:   payrollRepo,
		attendance:    attendance,
		salaryRepo:    salaryRepo,
		componentRepo: componentRepo,
		loanRepo:      loanRepo,
		adhocRepo:     adhocRepo,
		employeeRepo:  employeeRepo,
		logger:        logger,
	}
}

// ========== SETTINGS ==========

func defaultSettings(orgID string) payrolldomain.PayrollSettings {
	return payrolldomain.PayrollSettings{
		OrgID:           orgID,
		PFEnabled:       false,
		PFEmployeeRate:  decimal.Zero,
		PFWageCeiling:   decimal.Zero,
		ESIEnabled:      false,
		ESIEmployeeRate: decimal.Zero,
		ESIWageCeiling:  decimal.Zero,
		AutoIncomeTax:   true,
		OvertimeEnabled: false,
	}
}

func (s *PayrollServiceImpl) settingsOrDefaults(ctx context.Context, orgID string) (payrolldomain.PayrollSettings, error) {
	settings, err := s.payrollRepo.GetSettings(ctx, orgID)
	if err != nil {
		if errors.Is(err, payrolldomain.ErrSettingsNotFound) {
			return defaultSettings(orgID), nil
		}
		return payrolldomain.PayrollSettings{}, err
	}
	return settings, nil
}

func (s *PayrollServiceImpl) GetSettings(ctx context.Context, orgID string) (payrolldomain.PayrollSettingsResponse, error) {
	settings, err := s.settingsOrDefaults(ctx, orgID)
	if err != nil {
		return payrolldomain.PayrollSettingsResponse{}, err
	}
	return mapToSettingsResponse(settings), nil
}

func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, orgID string, req payrolldomain.UpdatePayrollSettingsRequest) (payrolldomain.PayrollSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payrolldomain.PayrollSettingsResponse{}, err
	}

	current, err := s.settingsOrDefaults(ctx, orgID)
	if err != nil {
		return payrolldomain.PayrollSettingsResponse{}, err
	}

	if req.PFEnabled != nil {
		current.PFEnabled = *req.PFEnabled
	}
	if req.PFEmployeeRate != nil {
		current.PFEmployeeRate = *req.PFEmployeeRate
	}
	if req.PFWageCeiling != nil {
		current.PFWageCeiling = *req.PFWageCeiling
	}
	if req.PFRestrictToCeiling != nil {
		current.PFRestrictToCeiling = *req.PFRestrictToCeiling
	}
	if req.ESIEnabled != nil {
		current.ESIEnabled = *req.ESIEnabled
	}
	if req.ESIEmployeeRate != nil {
		current.ESIEmployeeRate = *req.ESIEmployeeRate
	}
	if req.ESIWageCeiling != nil {
		current.ESIWageCeiling = *req.ESIWageCeiling
	}
	if req.AutoIncomeTax != nil {
		current.AutoIncomeTax = *req.AutoIncomeTax
	}
	if req.OvertimeEnabled != nil {
		current.OvertimeEnabled = *req.OvertimeEnabled
	}
	if req.OvertimeHourlyRate != nil {
		current.OvertimeHourlyRate = *req.OvertimeHourlyRate
	}

	updated, err := s.payrollRepo.UpsertSettings(ctx, current)
	if err != nil {
		return payrolldomain.PayrollSettingsResponse{}, err
	}
	return mapToSettingsResponse(updated), nil
}

// ========== PERIODS ==========

func (s *PayrollServiceImpl) CreatePeriod(ctx context.Context, orgID string, req payrolldomain.CreatePeriodRequest) (payrolldomain.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payrolldomain.PeriodResponse{}, err
	}

	period, err := s.payrollRepo.CreatePeriod(ctx, payrolldomain.PayrollPeriod{
		OrgID:  orgID,
		Month:  req.Month,
		Year:   req.Year,
		Status: payrolldomain.PeriodStatusDraft,
	})
	if err != nil {
		return payrolldomain.PeriodResponse{}, err
	}
	return mapToPeriodResponse(period), nil
}

func (s *PayrollServiceImpl) GetPeriod(ctx context.Context, orgID string, id string) (payrolldomain.PeriodResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, id, orgID)
	if err != nil {
		return payrolldomain.PeriodResponse{}, err
	}
	return mapToPeriodResponse(period), nil
}

// ========== BATCH GENERATION ==========

func (s *PayrollServiceImpl) GeneratePeriod(ctx context.Context, orgID string, month, year int) (payrolldomain.GenerateResult, error) {
	period, err := s.payrollRepo.GetPeriodByMonthYear(ctx, orgID, month, year)
	if errors.Is(err, payrolldomain.ErrPeriodNotFound) {
		period, err = s.payrollRepo.CreatePeriod(ctx, payrolldomain.PayrollPeriod{
			OrgID:  orgID,
			Month:  month,
			Year:   year,
			Status: payrolldomain.PeriodStatusDraft,
		})
	}
	if err != nil {
		return payrolldomain.GenerateResult{}, err
	}

	switch period.Status {
	case payrolldomain.PeriodStatusDraft, payrolldomain.PeriodStatusProcessing, payrolldomain.PeriodStatusCompleted:
	default:
		return payrolldomain.GenerateResult{}, payrolldomain.ErrPeriodNotOpen
	}

	if err := s.payrollRepo.UpdatePeriodStatus(ctx, period.ID, orgID, payrolldomain.PeriodStatusProcessing); err != nil {
		return payrolldomain.GenerateResult{}, err
	}

	employees, err := s.employeeRepo.ListActiveByOrg(ctx, orgID)
	if err != nil {
		return payrolldomain.GenerateResult{}, fmt.Errorf("failed to list employees: %w", err)
	}

	result := payrolldomain.GenerateResult{Errors: []payrolldomain.BatchError{}}
	for _, emp := range employees {
		_, err := s.CalculatePayslip(ctx, orgID, emp.ID, period.ID)
		// A serialization conflict is retried once before being
		// reported; everything else fails only this employee.
		if errors.Is(err, payrolldomain.ErrConcurrentConflict) {
			_, err = s.CalculatePayslip(ctx, orgID, emp.ID, period.ID)
		}

		switch {
		case err == nil:
			result.Processed++
		case errors.Is(err, salary.ErrNoCurrentAssignment):
			result.Skipped++
		default:
			s.logger.Error("payslip calculation failed",
				slog.String("employee_id", emp.ID),
				slog.String("period_id", period.ID),
				slog.String("error", err.Error()),
			)
			result.Errors = append(result.Errors, payrolldomain.BatchError{
				EmployeeID: emp.ID,
				Message:    err.Error(),
			})
		}
	}

	if err := s.payrollRepo.UpdatePeriodStatus(ctx, period.ID, orgID, payrolldomain.PeriodStatusCompleted); err != nil {
		return payrolldomain.GenerateResult{}, err
	}

	period, err = s.payrollRepo.RecomputePeriodTotals(ctx, period.ID)
	if err != nil {
		return payrolldomain.GenerateResult{}, err
	}
	result.Period = mapToPeriodResponse(period)

	return result, nil
}

// ========== PAYSLIP CALCULATION ==========

func (s *PayrollServiceImpl) CalculatePayslip(ctx context.Context, orgID, employeeID, periodID string) (payrolldomain.PayslipResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID, orgID)
	if err != nil {
		return payrolldomain.PayslipResponse{}, err
	}
	switch period.Status {
	case payrolldomain.PeriodStatusDraft, payrolldomain.PeriodStatusProcessing, payrolldomain.PeriodStatusCompleted:
	default:
		return payrolldomain.PayslipResponse{}, payrolldomain.ErrPeriodNotOpen
	}

	assignment, err := s.salaryRepo.GetCurrentByEmployee(ctx, employeeID, orgID)
	if err != nil {
		// No current assignment is a skip for the caller, never a
		// failure; the payslip, if any, keeps its zero values.
		return payrolldomain.PayslipResponse{}, err
	}

	att, err := s.attendance.GetSummary(ctx, orgID, employeeID, period.Month, period.Year)
	if err != nil {
		return payrolldomain.PayslipResponse{}, fmt.Errorf("failed to load attendance summary: %w", err)
	}

	settings, err := s.settingsOrDefaults(ctx, orgID)
	if err != nil {
		return payrolldomain.PayslipResponse{}, err
	}

	var calculated payrolldomain.Payslip
	err = s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		payslip, err := s.payrollRepo.GetOrCreatePayslip(ctx, orgID, employeeID, periodID)
		if err != nil {
			return err
		}
		if payslip.Status != payrolldomain.PayslipStatusGenerated {
			return payrolldomain.ErrPayslipFinalized
		}

		calculated, err = s.assemble(ctx, assignment, settings, att, payslip, period)
		return err
	})
	if errors.Is(err, database.ErrTxConflict) {
		return payrolldomain.PayslipResponse{}, fmt.Errorf("%w: %v", payrolldomain.ErrConcurrentConflict, err)
	}
	if err != nil {
		return payrolldomain.PayslipResponse{}, err
	}

	if _, err := s.payrollRepo.RecomputePeriodTotals(ctx, periodID); err != nil {
		return payrolldomain.PayslipResponse{}, err
	}

	return s.payslipResponseWithItems(ctx, calculated)
}

// assemble runs the full calculation pipeline for one payslip inside
// the caller's transaction: reset, resolve, statutory, loan recovery,
// ad-hoc merge, totals.
func (s *PayrollServiceImpl) assemble(
	ctx context.Context,
	assignment salary.SalaryAssignment,
	settings payrolldomain.PayrollSettings,
	att payrolldomain.AttendanceSummary,
	payslip payrolldomain.Payslip,
	period payrolldomain.PayrollPeriod,
) (payrolldomain.Payslip, error) {
	// (1) proration
	lop := att.LossOfPayDays()
	pro := Prorate(att.WorkingDays, lop)
	full := Prorate(att.WorkingDays, decimal.Zero)

	// (2) idempotent reset: drop generated line items, detach EMIs
	if err := s.payrollRepo.DeleteGeneratedLineItems(ctx, payslip.ID); err != nil {
		return payrolldomain.Payslip{}, err
	}
	if err := s.loanRepo.DetachFromPayslip(ctx, payslip.ID); err != nil {
		return payrolldomain.Payslip{}, err
	}
	if err := s.adhocRepo.DetachFromPayslip(ctx, payslip.ID); err != nil {
		return payrolldomain.Payslip{}, err
	}

	// Only manual rows survive the reset. A manual row is an operator
	// override for its component: the engine contributes nothing to an
	// overridden component.
	surviving, err := s.payrollRepo.ListLineItems(ctx, payslip.ID)
	if err != nil {
		return payrolldomain.Payslip{}, err
	}
	overridden := make(map[string]bool, len(surviving))
	for _, item := range surviving {
		overridden[item.ComponentID] = true
	}

	// (3) base salary and assignment components
	proratedBase := ProratedBase(assignment.BaseAmount, pro)
	fullEarnings := ProratedBase(assignment.BaseAmount, full)
	assignedResolved := map[string]decimal.Decimal{}

	for _, alloc := range assignment.Allocations {
		comp, err := s.componentRepo.GetByID(ctx, alloc.ComponentID, assignment.OrgID)
		if err != nil {
			return payrolldomain.Payslip{}, fmt.Errorf("allocation component %s: %w", alloc.ComponentID, err)
		}
		if overridden[comp.ID] {
			continue
		}

		value := AllocationValue(alloc, assignment.BaseAmount)
		amount := ResolveAmount(comp.CalcType, value, pro)
		if comp.Kind == component.KindEarning {
			fullEarnings = fullEarnings.Add(ResolveAmount(comp.CalcType, value, full))
			assignedResolved[comp.ID] = assignedResolved[comp.ID].Add(amount)
		}
		if amount.IsZero() {
			continue
		}
		if _, err := s.payrollRepo.UpsertLineItemAmount(ctx, payslip.ID, comp.ID, amount, false); err != nil {
			return payrolldomain.Payslip{}, err
		}
	}

	overtime := OvertimePay(settings, att.OvertimeHours)

	// (4) statutory engine
	if !settings.AutoIncomeTax {
		if err := s.payrollRepo.DeleteLineItemsByStatutoryType(ctx, payslip.ID, string(component.StatutoryIncomeTax)); err != nil {
			return payrolldomain.Payslip{}, err
		}
	}
	if err := s.applyStatutory(ctx, assignment.OrgID, payslip.ID, settings, proratedBase, overtime); err != nil {
		return payrolldomain.Payslip{}, err
	}

	// (5) loan/advance recovery
	advanceRecovery, err := s.attachInstallments(ctx, assignment.OrgID, assignment.EmployeeID, payslip.ID, period)
	if err != nil {
		return payrolldomain.Payslip{}, err
	}

	// (6) ad-hoc payments
	if err := s.mergeAdhocPayments(ctx, assignment.OrgID, assignment.EmployeeID, payslip.ID, period.ID, overridden); err != nil {
		return payrolldomain.Payslip{}, err
	}

	// (7) totals, from the line items actually stored
	items, err := s.payrollRepo.ListLineItems(ctx, payslip.ID)
	if err != nil {
		return payrolldomain.Payslip{}, err
	}

	gross := proratedBase.Add(overtime)
	deductions := decimal.Zero
	statutory := decimal.Zero
	for _, item := range items {
		kind := component.KindEarning
		if item.ComponentKind != nil {
			kind = component.ComponentKind(*item.ComponentKind)
		}
		if kind == component.KindEarning {
			gross = gross.Add(item.Amount)
			continue
		}
		deductions = deductions.Add(item.Amount)
		if item.ComponentStatutory != nil && *item.ComponentStatutory {
			statutory = statutory.Add(item.Amount)
		}
	}

	// Loss of pay compares full-attendance earnings with what the base
	// and assignment components actually resolved to in step (3);
	// overtime, loans, ad-hoc amounts and manual overrides sit outside
	// that comparison.
	actualAssigned := proratedBase
	for _, amount := range assignedResolved {
		actualAssigned = actualAssigned.Add(amount)
	}
	lossOfPayDeduction := fullEarnings.Sub(actualAssigned)
	if lossOfPayDeduction.IsNegative() {
		lossOfPayDeduction = decimal.Zero
	}

	payslip.WorkingDays = att.WorkingDays
	payslip.PresentDays = att.PresentDays
	payslip.LeaveDays = att.LeaveDays
	payslip.LossOfPayDays = lop
	payslip.OvertimeHours = att.OvertimeHours
	payslip.GrossEarnings = gross
	payslip.TotalDeductions = deductions
	payslip.NetSalary = gross.Sub(deductions)
	payslip.LossOfPayDeduction = lossOfPayDeduction
	payslip.StatutoryDeductions = statutory
	payslip.AdvanceRecovery = advanceRecovery
	payslip.OvertimeAmount = overtime

	if err := s.payrollRepo.UpdatePayslip(ctx, payslip); err != nil {
		return payrolldomain.Payslip{}, err
	}
	return payslip, nil
}

// applyStatutory adds PF and ESI deduction line items according to the
// organization settings. Existing line items for a statutory component
// (manual entries survive the reset) suppress the automatic one.
func (s *PayrollServiceImpl) applyStatutory(
	ctx context.Context,
	orgID, payslipID string,
	settings payrolldomain.PayrollSettings,
	proratedBase, overtime decimal.Decimal,
) error {
	items, err := s.payrollRepo.ListLineItems(ctx, payslipID)
	if err != nil {
		return err
	}

	hasStatutoryItem := func(st component.StatutoryType) bool {
		for _, item := range items {
			if item.ComponentStatutoryType != nil && *item.ComponentStatutoryType == string(st) {
				return true
			}
		}
		return false
	}

	grossEarnings := proratedBase.Add(overtime)
	for _, item := range items {
		if item.ComponentKind != nil && component.ComponentKind(*item.ComponentKind) == component.KindEarning {
			grossEarnings = grossEarnings.Add(item.Amount)
		}
	}

	if pf := ProvidentFund(settings, proratedBase); pf.IsPositive() && !hasStatutoryItem(component.StatutoryProvidentFund) {
		comp, err := s.componentRepo.GetOrCreateByCode(ctx, orgID, "PF", "Provident Fund",
			component.KindDeduction, component.StatutoryProvidentFund)
		if err != nil {
			return err
		}
		if _, err := s.payrollRepo.UpsertLineItemAmount(ctx, payslipID, comp.ID, pf, false); err != nil {
			return err
		}
	}

	if esi := HealthInsurance(settings, grossEarnings); esi.IsPositive() && !hasStatutoryItem(component.StatutoryHealthInsurance) {
		comp, err := s.componentRepo.GetOrCreateByCode(ctx, orgID, "ESI", "Health Insurance",
			component.KindDeduction, component.StatutoryHealthInsurance)
		if err != nil {
			return err
		}
		if _, err := s.payrollRepo.UpsertLineItemAmount(ctx, payslipID, comp.ID, esi, false); err != nil {
			return err
		}
	}

	return nil
}

// attachInstallments links every unpaid installment due in the period
// to the payslip, one aggregated line item per recovery component.
// Returns the advance-type sum for the AdvanceRecovery rollup.
func (s *PayrollServiceImpl) attachInstallments(
	ctx context.Context,
	orgID, employeeID, payslipID string,
	period payrolldomain.PayrollPeriod,
) (decimal.Decimal, error) {
	emis, err := s.loanRepo.FindUnpaidForEmployeePeriod(ctx, employeeID, period.Month, period.Year)
	if err != nil {
		return decimal.Zero, err
	}
	if len(emis) == 0 {
		return decimal.Zero, nil
	}

	sums := map[string]decimal.Decimal{}
	ids := make([]string, 0, len(emis))
	advanceRecovery := decimal.Zero
	for _, emi := range emis {
		code := component.CodeLoanEMI
		if emi.LoanType != nil && *emi.LoanType == loandomain.TypeAdvance {
			code = component.CodeSalaryAdvance
			advanceRecovery = advanceRecovery.Add(emi.Amount)
		}
		sums[code] = sums[code].Add(emi.Amount)
		ids = append(ids, emi.ID)
	}

	for code, sum := range sums {
		name := "Loan Repayment"
		if code == component.CodeSalaryAdvance {
			name = "Salary Advance Recovery"
		}
		comp, err := s.componentRepo.GetOrCreateByCode(ctx, orgID, code, name,
			component.KindDeduction, component.StatutoryNone)
		if err != nil {
			return decimal.Zero, err
		}
		if _, err := s.payrollRepo.UpsertLineItemAmount(ctx, payslipID, comp.ID, sum, false); err != nil {
			return decimal.Zero, err
		}
	}

	if err := s.loanRepo.LinkToPayslip(ctx, ids, payslipID); err != nil {
		return decimal.Zero, err
	}
	return advanceRecovery, nil
}

// mergeAdhocPayments folds pending one-time payments into the payslip.
// Linkage is eager; the status flips to processed only when the payslip
// is approved. A payment resolving to a manually overridden component
// stays pending, otherwise its amount would vanish into the override.
func (s *PayrollServiceImpl) mergeAdhocPayments(ctx context.Context, orgID, employeeID, payslipID, periodID string, overridden map[string]bool) error {
	payments, err := s.adhocRepo.FindPendingForEmployeePeriod(ctx, employeeID, periodID, payslipID)
	if err != nil {
		return err
	}

	for _, payment := range payments {
		match, err := s.resolveAdhocComponent(ctx, orgID, payment)
		if err != nil {
			return err
		}
		if match.Kind == component.MatchNotFound {
			s.logger.Warn("no component available for ad-hoc payment, leaving it pending",
				slog.String("payment_id", payment.ID),
				slog.String("employee_id", employeeID),
			)
			continue
		}
		if overridden[match.Component.ID] {
			s.logger.Warn("ad-hoc payment resolves to a manually overridden component, leaving it pending",
				slog.String("payment_id", payment.ID),
				slog.String("component_id", match.Component.ID),
			)
			continue
		}

		if _, err := s.payrollRepo.UpsertLineItemAmount(ctx, payslipID, match.Component.ID, payment.Amount, false); err != nil {
			return err
		}
		if err := s.adhocRepo.LinkToPayslip(ctx, payment.ID, payslipID); err != nil {
			return err
		}
	}

	return nil
}

// resolveAdhocComponent walks the ordered fallback chain: explicit
// component, then code convention, then any active earning component.
func (s *PayrollServiceImpl) resolveAdhocComponent(ctx context.Context, orgID string, payment adhoc.AdhocPayment) (component.Match, error) {
	if payment.ComponentID != nil {
		comp, err := s.componentRepo.GetByID(ctx, *payment.ComponentID, orgID)
		if err != nil {
			return component.Match{}, fmt.Errorf("ad-hoc payment %s component: %w", payment.ID, err)
		}
		return component.Match{Kind: component.MatchExplicit, Component: comp}, nil
	}

	comp, err := s.componentRepo.FindEarningByCodes(ctx, orgID, adhocFallbackCodes)
	if err == nil {
		return component.Match{Kind: component.MatchConvention, Component: comp}, nil
	}
	if !errors.Is(err, component.ErrComponentNotFound) {
		return component.Match{}, err
	}

	comp, err = s.componentRepo.FindAnyActiveEarning(ctx, orgID)
	if err == nil {
		return component.Match{Kind: component.MatchDefaultEarning, Component: comp}, nil
	}
	if !errors.Is(err, component.ErrComponentNotFound) {
		return component.Match{}, err
	}

	return component.Match{Kind: component.MatchNotFound}, nil
}

// ========== PAYSLIP LIFECYCLE ==========

func (s *PayrollServiceImpl) RecalculatePayslip(ctx context.Context, orgID string, payslipID string) (payrolldomain.PayslipResponse, error) {
	payslip, err := s.payrollRepo.GetPayslipByID(ctx, payslipID, orgID)
	if err != nil {
		return payrolldomain.PayslipResponse{}, err
	}
	return s.CalculatePayslip(ctx, orgID, payslip.EmployeeID, payslip.PeriodID)
}

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, orgID string, id string) (payrolldomain.PayslipResponse, error) {
	payslip, err := s.payrollRepo.GetPayslipByID(ctx, id, orgID)
	if err != nil {
		return payrolldomain.PayslipResponse{}, err
	}
	return s.payslipResponseWithItems(ctx, payslip)
}

func (s *PayrollServiceImpl) ListPayslipsByPeriod(ctx context.Context, orgID string, periodID string) ([]payrolldomain.PayslipResponse, error) {
	payslips, err := s.payrollRepo.ListPayslipsByPeriod(ctx, periodID, orgID)
	if err != nil {
		return nil, err
	}

	result := make([]payrolldomain.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		result = append(result, mapToPayslipResponse(p, nil))
	}
	return result, nil
}

func (s *PayrollServiceImpl) ApprovePayslip(ctx context.Context, orgID string, payslipID string) error {
	return s.tx.Run(ctx, func(ctx context.Context) error {
		payslip, err := s.payrollRepo.GetPayslipByID(ctx, payslipID, orgID)
		if err != nil {
			return err
		}
		if payslip.Status != payrolldomain.PayslipStatusGenerated {
			return payrolldomain.ErrPayslipNotApprovable
		}

		if err := s.payrollRepo.UpdatePayslipStatus(ctx, payslipID, orgID, payrolldomain.PayslipStatusApproved); err != nil {
			return err
		}
		// Deferred half of the ad-hoc two-phase commit.
		return s.adhocRepo.MarkProcessedByPayslip(ctx, payslipID)
	})
}

func (s *PayrollServiceImpl) MarkPayslipPaid(ctx context.Context, orgID string, payslipID string) error {
	return s.tx.Run(ctx, func(ctx context.Context) error {
		payslip, err := s.payrollRepo.GetPayslipByID(ctx, payslipID, orgID)
		if err != nil {
			return err
		}
		if payslip.Status != payrolldomain.PayslipStatusApproved {
			return payrolldomain.ErrPayslipNotPayable
		}

		emis, err := s.loanRepo.ListByPayslip(ctx, payslipID)
		if err != nil {
			return err
		}
		if len(emis) > 0 {
			ids := make([]string, 0, len(emis))
			perLoan := map[string]decimal.Decimal{}
			for _, emi := range emis {
				ids = append(ids, emi.ID)
				perLoan[emi.LoanID] = perLoan[emi.LoanID].Add(emi.Amount)
			}
			if err := s.loanRepo.MarkPaid(ctx, ids); err != nil {
				return err
			}
			for loanID, amount := range perLoan {
				updated, err := s.loanRepo.ReduceBalance(ctx, loanID, amount)
				if err != nil {
					return err
				}
				if !updated.Balance.IsPositive() {
					if err := s.loanRepo.UpdateStatus(ctx, loanID, orgID, loandomain.StatusClosed); err != nil {
						return err
					}
				}
			}
		}

		return s.payrollRepo.UpdatePayslipStatus(ctx, payslipID, orgID, payrolldomain.PayslipStatusPaid)
	})
}

func (s *PayrollServiceImpl) AddManualLineItem(ctx context.Context, orgID string, payslipID string, req payrolldomain.AddManualLineItemRequest) (payrolldomain.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payrolldomain.PayslipResponse{}, err
	}

	var payslip payrolldomain.Payslip
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		var err error
		payslip, err = s.payrollRepo.GetPayslipByID(ctx, payslipID, orgID)
		if err != nil {
			return err
		}
		if payslip.Status != payrolldomain.PayslipStatusGenerated {
			return payrolldomain.ErrPayslipFinalized
		}

		comp, err := s.componentRepo.GetByID(ctx, req.ComponentID, orgID)
		if err != nil {
			return err
		}

		if _, err := s.payrollRepo.UpsertLineItemAmount(ctx, payslipID, comp.ID, req.Amount, true); err != nil {
			return err
		}

		if comp.Kind == component.KindEarning {
			payslip.GrossEarnings = payslip.GrossEarnings.Add(req.Amount)
		} else {
			payslip.TotalDeductions = payslip.TotalDeductions.Add(req.Amount)
			if comp.IsStatutory {
				payslip.StatutoryDeductions = payslip.StatutoryDeductions.Add(req.Amount)
			}
		}
		payslip.NetSalary = payslip.GrossEarnings.Sub(payslip.TotalDeductions)

		return s.payrollRepo.UpdatePayslip(ctx, payslip)
	})
	if err != nil {
		return payrolldomain.PayslipResponse{}, err
	}

	if _, err := s.payrollRepo.RecomputePeriodTotals(ctx, payslip.PeriodID); err != nil {
		return payrolldomain.PayslipResponse{}, err
	}

	return s.payslipResponseWithItems(ctx, payslip)
}

// ========== HELPERS ==========

func (s *PayrollServiceImpl) payslipResponseWithItems(ctx context.Context, payslip payrolldomain.Payslip) (payrolldomain.PayslipResponse, error) {
	items, err := s.payrollRepo.ListLineItems(ctx, payslip.ID)
	if err != nil {
		return payrolldomain.PayslipResponse{}, err
	}
	return mapToPayslipResponse(payslip, items), nil
}

func mapToSettingsResponse(settings payrolldomain.PayrollSettings) payrolldomain.PayrollSettingsResponse {
	return payrolldomain.PayrollSettingsResponse{
		ID:                  settings.ID,
		OrgID:               settings.OrgID,
		PFEnabled:           settings.PFEnabled,
		PFEmployeeRate:      settings.PFEmployeeRate,
		PFWageCeiling:       settings.PFWageCeiling,
		PFRestrictToCeiling: settings.PFRestrictToCeiling,
		ESIEnabled:          settings.ESIEnabled,
		ESIEmployeeRate:     settings.ESIEmployeeRate,
		ESIWageCeiling:      settings.ESIWageCeiling,
		AutoIncomeTax:       settings.AutoIncomeTax,
		OvertimeEnabled:     settings.OvertimeEnabled,
		OvertimeHourlyRate:  settings.OvertimeHourlyRate,
	}
}

func mapToPeriodResponse(period payrolldomain.PayrollPeriod) payrolldomain.PeriodResponse {
	return payrolldomain.PeriodResponse{
		ID:              period.ID,
		Month:           period.Month,
		Year:            period.Year,
		Status:          string(period.Status),
		TotalGross:      period.TotalGross,
		TotalDeductions: period.TotalDeductions,
		TotalNet:        period.TotalNet,
		PayslipCount:    period.PayslipCount,
	}
}

func mapToPayslipResponse(p payrolldomain.Payslip, items []payrolldomain.PayslipLineItem) payrolldomain.PayslipResponse {
	resp := payrolldomain.PayslipResponse{
		ID:                  p.ID,
		EmployeeID:          p.EmployeeID,
		PeriodID:            p.PeriodID,
		WorkingDays:         p.WorkingDays,
		PresentDays:         p.PresentDays,
		LeaveDays:           p.LeaveDays,
		LossOfPayDays:       p.LossOfPayDays,
		OvertimeHours:       p.OvertimeHours,
		GrossEarnings:       p.GrossEarnings,
		TotalDeductions:     p.TotalDeductions,
		NetSalary:           p.NetSalary,
		LossOfPayDeduction:  p.LossOfPayDeduction,
		StatutoryDeductions: p.StatutoryDeductions,
		AdvanceRecovery:     p.AdvanceRecovery,
		OvertimeAmount:      p.OvertimeAmount,
		Status:              string(p.Status),
	}
	if p.EmployeeName != nil {
		resp.EmployeeName = *p.EmployeeName
	}
	if p.EmployeeCode != nil {
		resp.EmployeeCode = *p.EmployeeCode
	}

	for _, item := range items {
		li := payrolldomain.LineItemResponse{
			ID:          item.ID,
			ComponentID: item.ComponentID,
			Amount:      item.Amount,
			IsManual:    item.IsManual,
		}
		if item.ComponentCode != nil {
			li.ComponentCode = *item.ComponentCode
		}
		if item.ComponentName != nil {
			li.ComponentName = *item.ComponentName
		}
		if item.ComponentKind != nil {
			li.ComponentKind = *item.ComponentKind
		}
		resp.LineItems = append(resp.LineItems, li)
	}

	return resp
}
