package domain

import (
	"fmt"
	"strings"
)

// Business rule constants
const (
	MinimumAffiliationMonths     = 6
	MaxDebtToIncomeRatio         = 40.0 // percent
	SalaryMultiplierForMaxCredit = 12
)

// AllCriteriaMetMessage is reported when no rule produces a reason
const AllCriteriaMetMessage = "All evaluation criteria met successfully"

// RuleReport is the outcome of running the evaluation rule set against
// one application/affiliate pair. Reasons lists every violated rule in
// evaluation order; the report does not itself decide APPROVED/REJECTED.
type RuleReport struct {
	Reasons           []string
	DebtToIncomeRatio float64
	Score             int
	RiskLevel         RiskLevel
}

// Passed reports whether every rule was satisfied
func (r *RuleReport) Passed() bool {
	return len(r.Reasons) == 0
}

// Reason joins the violation reasons with "; ", or returns the positive
// confirmation message when all rules passed
func (r *RuleReport) Reason() string {
	if r.Passed() {
		return AllCriteriaMetMessage
	}
	return strings.Join(r.Reasons, "; ")
}

// EvaluateRules runs the fixed rule sequence against a pending
// application and its affiliate, given the score and level already
// obtained from the risk central. All rules are evaluated; none
// short-circuits.
func EvaluateRules(application *CreditApplication, affiliate *Affiliate, score int, level RiskLevel) *RuleReport {
	report := &RuleReport{Score: score, RiskLevel: level}

	// Rule 1: minimum affiliation time
	if !affiliate.HasMinimumAffiliationTime(MinimumAffiliationMonths) {
		report.Reasons = append(report.Reasons,
			fmt.Sprintf("Insufficient affiliation time: %d months (required: %d months)",
				affiliate.MonthsOfAffiliation(), MinimumAffiliationMonths))
	}

	// Rule 2: maximum credit amount based on salary
	maxAmount := affiliate.MaximumCreditAmount()
	if application.RequestedAmount > maxAmount {
		report.Reasons = append(report.Reasons,
			fmt.Sprintf("Requested amount exceeds maximum allowed: %.2f", maxAmount))
	}

	// Rule 3: debt-to-income ratio
	report.DebtToIncomeRatio = application.DebtToIncomeRatio(affiliate.Salary)
	if report.DebtToIncomeRatio > MaxDebtToIncomeRatio {
		report.Reasons = append(report.Reasons,
			fmt.Sprintf("Debt-to-income ratio too high: %.2f%% (max: %.0f%%)",
				report.DebtToIncomeRatio, MaxDebtToIncomeRatio))
	}

	// Rule 4: external risk level
	if level == RiskHigh {
		report.Reasons = append(report.Reasons,
			fmt.Sprintf("High risk level from credit bureau: score %d", score))
	}

	return report
}
