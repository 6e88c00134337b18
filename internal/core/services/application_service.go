package services

import (
	"context"
	"log"
	"time"

	"coopcredit/internal/adapters/persistence/repositories"
	"coopcredit/internal/core/domain"
)

// EvaluationMode selects which workflow variant is active in a
// deployment: immediate auto-decision, or advisory assessment followed
// by a separate analyst decision.
type EvaluationMode string

const (
	// ModeAuto finalizes the application inside Evaluate: any violated
	// rule or HIGH risk level forces REJECTED, otherwise APPROVED.
	ModeAuto EvaluationMode = "auto"
	// ModeAdvisory stores rule violations as warnings during AssessRisk
	// and leaves the decision to a human analyst via Decide.
	ModeAdvisory EvaluationMode = "advisory"
)

// ApplicationService orchestrates the credit application workflow:
// submit, risk assessment and decision. It owns no state between calls;
// every operation is a read-validate-write transaction over the
// repositories.
type ApplicationService struct {
	applicationRepo repositories.ApplicationRepository
	affiliateRepo   repositories.AffiliateRepository
	riskCentral     RiskCentral
	metrics         MetricsSink
	mode            EvaluationMode
}

// NewApplicationService creates a new credit application service
func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	affiliateRepo repositories.AffiliateRepository,
	riskCentral RiskCentral,
	metrics MetricsSink,
	mode EvaluationMode,
) *ApplicationService {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &ApplicationService{
		applicationRepo: applicationRepo,
		affiliateRepo:   affiliateRepo,
		riskCentral:     riskCentral,
		metrics:         metrics,
		mode:            mode,
	}
}

// Mode returns the active workflow variant
func (s *ApplicationService) Mode() EvaluationMode {
	return s.mode
}

// CreateApplicationInput represents submit input
type CreateApplicationInput struct {
	AffiliateDocumentNumber string  `json:"affiliate_document_number" validate:"required"`
	RequestedAmount         float64 `json:"requested_amount" validate:"required,gt=0"`
	TermMonths              int     `json:"term_months" validate:"required,min=6,max=120"`
	ProposedRate            float64 `json:"proposed_rate" validate:"required,gt=0"`
}

// Create submits a new credit application for an active affiliate. The
// application starts PENDING.
func (s *ApplicationService) Create(ctx context.Context, input *CreateApplicationInput) (*domain.CreditApplication, error) {
	affiliate, err := s.affiliateRepo.GetByDocumentNumber(ctx, input.AffiliateDocumentNumber)
	if err != nil {
		return nil, err
	}
	if !affiliate.CanApplyForCredit() {
		return nil, domain.ErrInactiveAffiliate
	}

	application := &domain.CreditApplication{
		AffiliateID:     affiliate.ID,
		Affiliate:       affiliate,
		RequestedAmount: input.RequestedAmount,
		TermMonths:      input.TermMonths,
		ProposedRate:    input.ProposedRate,
		ApplicationDate: time.Now(),
		Status:          domain.ApplicationPending,
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	s.metrics.ApplicationCreated()
	log.Printf("Credit application %d created for affiliate %s", application.ID, affiliate.DocumentNumber)
	return application, nil
}

// Evaluate runs the rule set and the risk central call and finalizes the
// application in the same operation (auto mode): any violated rule
// forces REJECTED, otherwise APPROVED.
func (s *ApplicationService) Evaluate(ctx context.Context, applicationID uint) (*domain.CreditApplication, error) {
	application, report, err := s.assess(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	evaluation := &domain.RiskEvaluation{
		ApplicationID:     application.ID,
		Score:             report.Score,
		RiskLevel:         report.RiskLevel,
		DebtToIncomeRatio: report.DebtToIncomeRatio,
		Reason:            report.Reason(),
		Details:           report.Details,
		EvaluationDate:    time.Now(),
	}

	status := domain.ApplicationApproved
	decision := domain.DecisionApproved
	if !report.Passed() {
		status = domain.ApplicationRejected
		decision = domain.DecisionRejected
	}
	evaluation.Decision = decision

	if err := s.applicationRepo.SaveEvaluation(ctx, application.ID, evaluation); err != nil {
		return nil, err
	}
	if err := s.applicationRepo.Finalize(ctx, application.ID, status, decision, evaluation.Reason); err != nil {
		return nil, err
	}

	if status == domain.ApplicationApproved {
		s.metrics.ApplicationApproved()
		log.Printf("Credit application %d APPROVED", application.ID)
	} else {
		s.metrics.ApplicationRejected()
		log.Printf("Credit application %d REJECTED. Reasons: %s", application.ID, evaluation.Reason)
	}

	application.Status = status
	application.RiskEvaluation = evaluation
	return application, nil
}

// AssessRisk runs the rule set and the risk central call in advisory
// mode: violations are stored as warnings, the decision flag stays
// UNDECIDED and the application remains PENDING awaiting an analyst.
// Re-invocation while still PENDING replaces the prior evaluation.
func (s *ApplicationService) AssessRisk(ctx context.Context, applicationID uint) (*domain.CreditApplication, error) {
	application, report, err := s.assess(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	evaluation := &domain.RiskEvaluation{
		ApplicationID:     application.ID,
		Score:             report.Score,
		RiskLevel:         report.RiskLevel,
		DebtToIncomeRatio: report.DebtToIncomeRatio,
		Reason:            report.Reason(),
		Details:           report.Details,
		EvaluationDate:    time.Now(),
		Decision:          domain.DecisionUndecided,
	}

	if err := s.applicationRepo.SaveEvaluation(ctx, application.ID, evaluation); err != nil {
		return nil, err
	}

	log.Printf("Risk assessed for application %d: score=%d level=%s", application.ID, report.Score, report.RiskLevel)
	application.RiskEvaluation = evaluation
	return application, nil
}

// DecisionInput represents the analyst decision input
type DecisionInput struct {
	Approved bool   `json:"approved"`
	Comments string `json:"comments,omitempty"`
}

// Decide records the analyst decision on a previously assessed
// application and moves it to APPROVED or REJECTED. The transition is
// one-shot: deciding a non-PENDING application fails.
func (s *ApplicationService) Decide(ctx context.Context, applicationID uint, input *DecisionInput) (*domain.CreditApplication, error) {
	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !application.IsPending() {
		return nil, domain.ErrApplicationNotPending
	}
	if !application.HasBeenEvaluated() {
		return nil, domain.ErrEvaluationRequired
	}

	evaluation := application.RiskEvaluation
	reason := evaluation.Reason
	if input.Comments != "" {
		reason += " | Analyst comments: " + input.Comments
	}

	status := domain.ApplicationApproved
	decision := domain.DecisionApproved
	if !input.Approved {
		status = domain.ApplicationRejected
		decision = domain.DecisionRejected
	}

	if err := s.applicationRepo.Finalize(ctx, application.ID, status, decision, reason); err != nil {
		return nil, err
	}

	if input.Approved {
		s.metrics.ApplicationApproved()
		log.Printf("Credit application %d APPROVED by analyst", application.ID)
	} else {
		s.metrics.ApplicationRejected()
		log.Printf("Credit application %d REJECTED by analyst", application.ID)
	}

	application.Status = status
	evaluation.Decision = decision
	evaluation.Reason = reason
	return application, nil
}

// GetByID gets an application with affiliate and evaluation populated
func (s *ApplicationService) GetByID(ctx context.Context, id uint) (*domain.CreditApplication, error) {
	return s.applicationRepo.GetByID(ctx, id)
}

// List lists applications with pagination
func (s *ApplicationService) List(ctx context.Context, offset, limit int) ([]*domain.CreditApplication, int64, error) {
	return s.applicationRepo.List(ctx, offset, limit)
}

// ListByStatus lists applications with the given status
func (s *ApplicationService) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]*domain.CreditApplication, error) {
	return s.applicationRepo.ListByStatus(ctx, status)
}

// ListPending lists applications awaiting evaluation or decision
func (s *ApplicationService) ListPending(ctx context.Context) ([]*domain.CreditApplication, error) {
	return s.applicationRepo.ListByStatus(ctx, domain.ApplicationPending)
}

// ListByAffiliateDocument lists all applications of one affiliate
func (s *ApplicationService) ListByAffiliateDocument(ctx context.Context, documentNumber string) ([]*domain.CreditApplication, error) {
	return s.applicationRepo.ListByAffiliateDocument(ctx, documentNumber)
}

// assessReport carries the rule report together with the risk central
// details text
type assessReport struct {
	*domain.RuleReport
	Details string
}

// assess loads a pending application, calls the risk central and runs
// the rule set. Shared by Evaluate and AssessRisk; neither mutates state
// here, so a collaborator failure leaves the application untouched.
func (s *ApplicationService) assess(ctx context.Context, applicationID uint) (*domain.CreditApplication, *assessReport, error) {
	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	if !application.IsPending() {
		return nil, nil, domain.ErrApplicationNotPending
	}

	affiliate := application.Affiliate
	if affiliate == nil {
		affiliate, err = s.affiliateRepo.GetByID(ctx, application.AffiliateID)
		if err != nil {
			return nil, nil, err
		}
		application.Affiliate = affiliate
	}

	start := time.Now()
	risk, err := s.riskCentral.Evaluate(ctx, affiliate.DocumentNumber, application.RequestedAmount, application.TermMonths)
	s.metrics.RiskEvaluationDuration(time.Since(start))
	if err != nil {
		return nil, nil, err
	}

	report := domain.EvaluateRules(application, affiliate, risk.Score, risk.Level)
	return application, &assessReport{RuleReport: report, Details: risk.Details}, nil
}
