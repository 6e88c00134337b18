package services

import (
	"context"
	"time"

	"coopcredit/internal/core/domain"
)

// RiskCentral is the outbound port for the external risk scoring
// collaborator. Implementations must be treated as potentially failing:
// a timeout or malformed response surfaces as
// domain.ErrRiskCentralUnavailable, never as a silently guessed level.
type RiskCentral interface {
	Evaluate(ctx context.Context, documentNumber string, amount float64, termMonths int) (*RiskResponse, error)
}

// RiskResponse is the score/level/details triple returned by the risk
// central for one document number
type RiskResponse struct {
	DocumentNumber string
	Score          int
	Level          domain.RiskLevel
	Details        string
}

// MetricsSink receives fire-and-forget observability signals from the
// services. Implementations must never block or fail the calling
// operation.
type MetricsSink interface {
	ApplicationCreated()
	ApplicationApproved()
	ApplicationRejected()
	AffiliateRegistered()
	LoginAttempt(success bool)
	RiskEvaluationDuration(d time.Duration)
}

// NopMetrics is a MetricsSink that discards everything. Used in tests
// and as a default when no sink is wired.
type NopMetrics struct{}

func (NopMetrics) ApplicationCreated()                  {}
func (NopMetrics) ApplicationApproved()                 {}
func (NopMetrics) ApplicationRejected()                 {}
func (NopMetrics) AffiliateRegistered()                 {}
func (NopMetrics) LoginAttempt(bool)                    {}
func (NopMetrics) RiskEvaluationDuration(time.Duration) {}
