package component

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentKind enum
type ComponentKind string

const (
	KindEarning   ComponentKind = "earning"
	KindDeduction ComponentKind = "deduction"
)

// CalcType enum - how the final amount of an allocated component is derived
type CalcType string

const (
	CalcFixed              CalcType = "fixed"
	CalcPercentageOfBase   CalcType = "percentage_of_base"
	CalcAttendanceProrated CalcType = "attendance_prorated"
	CalcPerDay             CalcType = "per_day"
)

// StatutoryType enum
type StatutoryType string

const (
	StatutoryNone            StatutoryType = "none"
	StatutoryProvidentFund   StatutoryType = "provident_fund"
	StatutoryHealthInsurance StatutoryType = "health_insurance"
	StatutoryIncomeTax       StatutoryType = "income_tax"
	StatutoryOther           StatutoryType = "other"
)

// Well-known component codes created on demand during payslip assembly.
const (
	CodeLoanEMI       = "LOAN_EMI"
	CodeSalaryAdvance = "SALARY_ADVANCE"
)

// SalaryComponent - reusable component definition per organization
type SalaryComponent struct {
	ID                string
	OrgID             string
	Code              string
	Name              string
	Kind              ComponentKind
	CalcType          CalcType
	IsStatutory       bool
	StatutoryType     StatutoryType
	DefaultAmount     decimal.Decimal
	DefaultPercentage decimal.Decimal
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MatchKind tags how a component was chosen for an ad-hoc payment.
type MatchKind string

const (
	MatchExplicit       MatchKind = "explicit"
	MatchConvention     MatchKind = "convention"
	MatchDefaultEarning MatchKind = "default_earning"
	MatchNotFound       MatchKind = "not_found"
)

// Match is the tagged result of the ordered component lookup chain.
type Match struct {
	Kind      MatchKind
	Component SalaryComponent
}
