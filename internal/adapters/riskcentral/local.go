package riskcentral

import (
	"context"

	"coopcredit/internal/core/domain"
	"coopcredit/internal/core/services"
	"coopcredit/internal/pkg/riskscore"
)

// Local evaluates risk in-process using the deterministic scoring
// engine. Used in development and tests where no external risk central
// is deployed.
type Local struct{}

// NewLocal creates a new in-process risk evaluator
func NewLocal() *Local {
	return &Local{}
}

// Evaluate scores the document number deterministically
func (l *Local) Evaluate(ctx context.Context, documentNumber string, amount float64, termMonths int) (*services.RiskResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := riskscore.Evaluate(documentNumber)
	return &services.RiskResponse{
		DocumentNumber: documentNumber,
		Score:          result.Score,
		Level:          domain.ParseRiskLevel(result.Level),
		Details:        result.Details,
	}, nil
}
