package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthsBetween(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"exact months", date(2024, time.January, 15), date(2024, time.July, 15), 6},
		{"partial month not counted", date(2024, time.January, 15), date(2024, time.July, 14), 5},
		{"one day short of a month", date(2024, time.March, 10), date(2024, time.April, 9), 0},
		{"across year boundary", date(2023, time.November, 1), date(2024, time.February, 1), 3},
		{"same day", date(2024, time.May, 20), date(2024, time.May, 20), 0},
		{"to before from", date(2024, time.June, 1), date(2024, time.January, 1), 0},
		{"several years", date(2020, time.August, 29), date(2026, time.August, 29), 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsBetween(tt.from, tt.to))
		})
	}
}

func TestMonthlyPayment(t *testing.T) {
	app := &CreditApplication{
		RequestedAmount: 10000000,
		TermMonths:      24,
		ProposedRate:    12.5,
	}
	// 10,000,000 * (1 + 0.125 * 2) / 24
	assert.Equal(t, 520833.33, app.MonthlyPayment())
}

func TestMonthlyPaymentMissingInputs(t *testing.T) {
	assert.Zero(t, (&CreditApplication{TermMonths: 24, ProposedRate: 12.5}).MonthlyPayment())
	assert.Zero(t, (&CreditApplication{RequestedAmount: 1000000, ProposedRate: 12.5}).MonthlyPayment())
	assert.Zero(t, (&CreditApplication{RequestedAmount: 1000000, TermMonths: 24}).MonthlyPayment())
}

func TestDebtToIncomeRatio(t *testing.T) {
	app := &CreditApplication{
		RequestedAmount: 10000000,
		TermMonths:      24,
		ProposedRate:    12.5,
	}
	assert.InDelta(t, 10.42, app.DebtToIncomeRatio(5000000), 0.0001)
}

func TestDebtToIncomeRatioZeroSalary(t *testing.T) {
	app := &CreditApplication{
		RequestedAmount: 10000000,
		TermMonths:      24,
		ProposedRate:    12.5,
	}
	assert.Equal(t, 100.0, app.DebtToIncomeRatio(0))
	assert.Equal(t, 100.0, app.DebtToIncomeRatio(-1))
}

func TestMaximumCreditAmount(t *testing.T) {
	assert.Equal(t, 60000000.0, (&Affiliate{Salary: 5000000}).MaximumCreditAmount())
	assert.Zero(t, (&Affiliate{}).MaximumCreditAmount())
	assert.Zero(t, (&Affiliate{Salary: -100}).MaximumCreditAmount())
}

func TestCanApplyForCredit(t *testing.T) {
	assert.True(t, (&Affiliate{Status: AffiliateActive}).CanApplyForCredit())
	assert.False(t, (&Affiliate{Status: AffiliateInactive}).CanApplyForCredit())
}

func TestHasMinimumAffiliationTime(t *testing.T) {
	veteran := &Affiliate{AffiliationDate: time.Now().AddDate(-2, 0, 0)}
	assert.True(t, veteran.HasMinimumAffiliationTime(MinimumAffiliationMonths))

	rookie := &Affiliate{AffiliationDate: time.Now().AddDate(0, 0, -30)}
	assert.False(t, rookie.HasMinimumAffiliationTime(MinimumAffiliationMonths))

	unset := &Affiliate{}
	assert.Zero(t, unset.MonthsOfAffiliation())
	assert.False(t, unset.HasMinimumAffiliationTime(MinimumAffiliationMonths))
}

func TestParseRiskLevel(t *testing.T) {
	assert.Equal(t, RiskLow, ParseRiskLevel("LOW"))
	assert.Equal(t, RiskLow, ParseRiskLevel("BAJO"))
	assert.Equal(t, RiskMedium, ParseRiskLevel("MEDIUM"))
	assert.Equal(t, RiskMedium, ParseRiskLevel("MEDIO"))
	assert.Equal(t, RiskHigh, ParseRiskLevel("HIGH"))
	assert.Equal(t, RiskHigh, ParseRiskLevel("ALTO"))
	// Unknown classifications are never treated as low risk
	assert.Equal(t, RiskHigh, ParseRiskLevel("???"))
	assert.Equal(t, RiskHigh, ParseRiskLevel(""))
}

func TestApplicationStatusIsTerminal(t *testing.T) {
	assert.False(t, ApplicationPending.IsTerminal())
	assert.True(t, ApplicationApproved.IsTerminal())
	assert.True(t, ApplicationRejected.IsTerminal())
}

func TestApplicationTransitions(t *testing.T) {
	app := &CreditApplication{Status: ApplicationPending}
	assert.True(t, app.IsPending())
	assert.False(t, app.HasBeenEvaluated())

	app.Approve()
	assert.Equal(t, ApplicationApproved, app.Status)
	assert.False(t, app.IsPending())

	app = &CreditApplication{Status: ApplicationPending}
	app.Reject()
	assert.Equal(t, ApplicationRejected, app.Status)
}

func TestRefreshTokenState(t *testing.T) {
	live := &RefreshToken{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, live.IsExpired())
	assert.False(t, live.IsRevoked())

	expired := &RefreshToken{ExpiresAt: time.Now().Add(-time.Hour)}
	assert.True(t, expired.IsExpired())

	now := time.Now()
	revoked := &RefreshToken{ExpiresAt: time.Now().Add(time.Hour), RevokedAt: &now}
	assert.True(t, revoked.IsRevoked())
}

func TestRiskEvaluationChecks(t *testing.T) {
	assert.True(t, (&RiskEvaluation{RiskLevel: RiskLow}).IsRiskAcceptable())
	assert.True(t, (&RiskEvaluation{RiskLevel: RiskMedium}).IsRiskAcceptable())
	assert.False(t, (&RiskEvaluation{RiskLevel: RiskHigh}).IsRiskAcceptable())

	assert.True(t, (&RiskEvaluation{DebtToIncomeRatio: 40.0}).IsDebtToIncomeAcceptable())
	assert.False(t, (&RiskEvaluation{DebtToIncomeRatio: 40.01}).IsDebtToIncomeAcceptable())
}
