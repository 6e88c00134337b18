package domain

import (
	"fmt"
	"math"
	"time"
)

// AffiliateStatus represents the status of a cooperative member
type AffiliateStatus string

const (
	AffiliateActive   AffiliateStatus = "ACTIVE"
	AffiliateInactive AffiliateStatus = "INACTIVE"
)

// ApplicationStatus represents the status of a credit application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// IsTerminal reports whether no further transitions are allowed
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// RiskLevel represents the risk classification from the risk central
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ParseRiskLevel maps a risk level string from the risk central to a
// RiskLevel. Spanish aliases are accepted. Unknown values map to HIGH:
// treating an unrecognized classification as low risk would be unsafe.
func ParseRiskLevel(level string) RiskLevel {
	switch level {
	case "LOW", "BAJO", "low", "bajo":
		return RiskLow
	case "MEDIUM", "MEDIO", "medium", "medio":
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Decision is the analyst decision recorded on a risk evaluation.
// UNDECIDED means the evaluation is still awaiting a human decision.
type Decision string

const (
	DecisionUndecided Decision = "UNDECIDED"
	DecisionApproved  Decision = "APPROVED"
	DecisionRejected  Decision = "REJECTED"
)

// Role represents user role in the system
type Role string

const (
	RoleAffiliate Role = "AFFILIATE"
	RoleAnalyst   Role = "ANALYST"
	RoleAdmin     Role = "ADMIN"
)

// User represents an authenticated user in the domain layer
type User struct {
	ID             uint
	Username       string
	Email          string
	Password       string // Hashed
	DocumentNumber string // Links an AFFILIATE user to its affiliate record
	Role           Role
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RefreshToken represents a stored refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked reports whether the token has been revoked
func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

// IsExpired reports whether the token has expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// Affiliate represents a cooperative member eligible to request credit
type Affiliate struct {
	ID              uint
	DocumentNumber  string
	Name            string
	Salary          float64
	AffiliationDate time.Time
	Status          AffiliateStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanApplyForCredit reports whether the affiliate may submit applications
func (a *Affiliate) CanApplyForCredit() bool {
	return a.Status == AffiliateActive
}

// MonthsOfAffiliation returns the whole months since the affiliation date,
// or 0 if the affiliation date is unset
func (a *Affiliate) MonthsOfAffiliation() int {
	if a.AffiliationDate.IsZero() {
		return 0
	}
	return MonthsBetween(a.AffiliationDate, time.Now())
}

// HasMinimumAffiliationTime reports whether the affiliate has been a
// member for at least minimumMonths
func (a *Affiliate) HasMinimumAffiliationTime(minimumMonths int) bool {
	return a.MonthsOfAffiliation() >= minimumMonths
}

// MaximumCreditAmount returns the credit cap for this affiliate.
// Business rule: maximum credit is 12 times the monthly salary.
func (a *Affiliate) MaximumCreditAmount() float64 {
	if a.Salary <= 0 {
		return 0
	}
	return a.Salary * float64(SalaryMultiplierForMaxCredit)
}

// CreditApplication represents one request for credit tied to an affiliate
type CreditApplication struct {
	ID              uint
	AffiliateID     uint
	Affiliate       *Affiliate
	RequestedAmount float64
	TermMonths      int
	ProposedRate    float64 // Annual rate as a percentage
	ApplicationDate time.Time
	Status          ApplicationStatus
	RiskEvaluation  *RiskEvaluation
}

// MonthlyPayment calculates the estimated monthly payment using the
// flat-rate approximation P * (1 + r*t) / n, where r is the annual rate
// fraction, t the term in years and n the term in months. The result is
// rounded to 2 decimal places, half-up. Returns 0 when the term or any
// required input is missing.
func (c *CreditApplication) MonthlyPayment() float64 {
	if c.RequestedAmount <= 0 || c.ProposedRate <= 0 || c.TermMonths == 0 {
		return 0
	}
	annualRate := c.ProposedRate / 100
	termYears := float64(c.TermMonths) / 12
	total := c.RequestedAmount * (1 + annualRate*termYears)
	return roundTo(total/float64(c.TermMonths), 2)
}

// DebtToIncomeRatio returns the monthly payment as a percentage of the
// given monthly salary, with the quotient rounded to 4 decimal places
// half-up. A missing or zero salary yields the sentinel 100 so the
// downstream threshold check always fails instead of dividing by zero.
func (c *CreditApplication) DebtToIncomeRatio(monthlySalary float64) float64 {
	if monthlySalary <= 0 {
		return 100
	}
	return roundTo(c.MonthlyPayment()/monthlySalary, 4) * 100
}

// Approve moves the application to its APPROVED terminal state
func (c *CreditApplication) Approve() {
	c.Status = ApplicationApproved
}

// Reject moves the application to its REJECTED terminal state
func (c *CreditApplication) Reject() {
	c.Status = ApplicationRejected
}

// IsPending reports whether the application is still awaiting a decision
func (c *CreditApplication) IsPending() bool {
	return c.Status == ApplicationPending
}

// HasBeenEvaluated reports whether a risk evaluation is attached
func (c *CreditApplication) HasBeenEvaluated() bool {
	return c.RiskEvaluation != nil
}

// RiskEvaluation represents the outcome of assessing one credit application
type RiskEvaluation struct {
	ID                uint
	ApplicationID     uint
	Score             int
	RiskLevel         RiskLevel
	DebtToIncomeRatio float64
	Reason            string
	Details           string
	EvaluationDate    time.Time
	Decision          Decision
}

// IsRiskAcceptable reports whether the external risk level allows approval.
// HIGH risk is not acceptable.
func (r *RiskEvaluation) IsRiskAcceptable() bool {
	return r.RiskLevel != RiskHigh
}

// IsDebtToIncomeAcceptable reports whether the computed ratio is within
// the allowed limit
func (r *RiskEvaluation) IsDebtToIncomeAcceptable() bool {
	return r.DebtToIncomeRatio <= MaxDebtToIncomeRatio
}

// Summary builds a one-line description of the evaluation
func (r *RiskEvaluation) Summary() string {
	s := fmt.Sprintf("Risk Score: %d, Level: %s, DTI: %.2f%%, Decision: %s",
		r.Score, r.RiskLevel, r.DebtToIncomeRatio, r.Decision)
	if r.Reason != "" {
		s += ", Reason: " + r.Reason
	}
	return s
}

// MonthsBetween returns the number of whole months from one date to
// another. The partial month at the end is not counted.
func MonthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// roundTo rounds half away from zero at the given number of decimals
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
