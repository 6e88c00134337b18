package services

import (
	"context"
	"testing"
	"time"

	"coopcredit/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAffiliateRepo is an in-memory AffiliateRepository
type fakeAffiliateRepo struct {
	byID       map[uint]*domain.Affiliate
	byDocument map[string]*domain.Affiliate
	nextID     uint
}

func newFakeAffiliateRepo() *fakeAffiliateRepo {
	return &fakeAffiliateRepo{
		byID:       make(map[uint]*domain.Affiliate),
		byDocument: make(map[string]*domain.Affiliate),
		nextID:     1,
	}
}

func (f *fakeAffiliateRepo) Create(_ context.Context, affiliate *domain.Affiliate) error {
	affiliate.ID = f.nextID
	f.nextID++
	f.byID[affiliate.ID] = affiliate
	f.byDocument[affiliate.DocumentNumber] = affiliate
	return nil
}

func (f *fakeAffiliateRepo) Update(_ context.Context, affiliate *domain.Affiliate) error {
	f.byID[affiliate.ID] = affiliate
	f.byDocument[affiliate.DocumentNumber] = affiliate
	return nil
}

func (f *fakeAffiliateRepo) GetByID(_ context.Context, id uint) (*domain.Affiliate, error) {
	affiliate, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrAffiliateNotFound
	}
	return affiliate, nil
}

func (f *fakeAffiliateRepo) GetByDocumentNumber(_ context.Context, documentNumber string) (*domain.Affiliate, error) {
	affiliate, ok := f.byDocument[documentNumber]
	if !ok {
		return nil, domain.ErrAffiliateNotFound
	}
	return affiliate, nil
}

func (f *fakeAffiliateRepo) ExistsByDocumentNumber(_ context.Context, documentNumber string) (bool, error) {
	_, ok := f.byDocument[documentNumber]
	return ok, nil
}

func (f *fakeAffiliateRepo) List(_ context.Context, offset, limit int) ([]*domain.Affiliate, int64, error) {
	var all []*domain.Affiliate
	for _, a := range f.byID {
		all = append(all, a)
	}
	return all, int64(len(all)), nil
}

func (f *fakeAffiliateRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

// fakeApplicationRepo is an in-memory ApplicationRepository
type fakeApplicationRepo struct {
	applications map[uint]*domain.CreditApplication
	nextID       uint
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: make(map[uint]*domain.CreditApplication),
		nextID:       1,
	}
}

func (f *fakeApplicationRepo) Create(_ context.Context, application *domain.CreditApplication) error {
	application.ID = f.nextID
	f.nextID++
	f.applications[application.ID] = application
	return nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id uint) (*domain.CreditApplication, error) {
	application, ok := f.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return application, nil
}

func (f *fakeApplicationRepo) List(_ context.Context, offset, limit int) ([]*domain.CreditApplication, int64, error) {
	var all []*domain.CreditApplication
	for _, a := range f.applications {
		all = append(all, a)
	}
	return all, int64(len(all)), nil
}

func (f *fakeApplicationRepo) ListByStatus(_ context.Context, status domain.ApplicationStatus) ([]*domain.CreditApplication, error) {
	var matched []*domain.CreditApplication
	for _, a := range f.applications {
		if a.Status == status {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (f *fakeApplicationRepo) ListByAffiliateDocument(_ context.Context, documentNumber string) ([]*domain.CreditApplication, error) {
	var matched []*domain.CreditApplication
	for _, a := range f.applications {
		if a.Affiliate != nil && a.Affiliate.DocumentNumber == documentNumber {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (f *fakeApplicationRepo) CountByStatus(_ context.Context, status domain.ApplicationStatus) (int64, error) {
	var count int64
	for _, a := range f.applications {
		if a.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeApplicationRepo) SaveEvaluation(_ context.Context, applicationID uint, evaluation *domain.RiskEvaluation) error {
	application, ok := f.applications[applicationID]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	evaluation.ApplicationID = applicationID
	application.RiskEvaluation = evaluation
	return nil
}

func (f *fakeApplicationRepo) Finalize(_ context.Context, applicationID uint, status domain.ApplicationStatus, decision domain.Decision, reason string) error {
	application, ok := f.applications[applicationID]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	if application.Status != domain.ApplicationPending {
		return domain.ErrApplicationNotPending
	}
	application.Status = status
	if application.RiskEvaluation != nil {
		application.RiskEvaluation.Decision = decision
		application.RiskEvaluation.Reason = reason
	}
	return nil
}

// fakeRiskCentral returns a fixed response or error
type fakeRiskCentral struct {
	response *RiskResponse
	err      error
	calls    int
}

func (f *fakeRiskCentral) Evaluate(_ context.Context, documentNumber string, amount float64, termMonths int) (*RiskResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	resp := *f.response
	resp.DocumentNumber = documentNumber
	return &resp, nil
}

// countingMetrics records every signal
type countingMetrics struct {
	created, approved, rejected, affiliates int
	logins                                  []bool
	durations                               int
}

func (m *countingMetrics) ApplicationCreated()                  { m.created++ }
func (m *countingMetrics) ApplicationApproved()                 { m.approved++ }
func (m *countingMetrics) ApplicationRejected()                 { m.rejected++ }
func (m *countingMetrics) AffiliateRegistered()                 { m.affiliates++ }
func (m *countingMetrics) LoginAttempt(success bool)            { m.logins = append(m.logins, success) }
func (m *countingMetrics) RiskEvaluationDuration(time.Duration) { m.durations++ }

type serviceFixture struct {
	affiliates   *fakeAffiliateRepo
	applications *fakeApplicationRepo
	riskCentral  *fakeRiskCentral
	metrics      *countingMetrics
	service      *ApplicationService
}

func newFixture(t *testing.T, mode EvaluationMode, risk *RiskResponse) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		affiliates:   newFakeAffiliateRepo(),
		applications: newFakeApplicationRepo(),
		riskCentral:  &fakeRiskCentral{response: risk},
		metrics:      &countingMetrics{},
	}
	f.service = NewApplicationService(f.applications, f.affiliates, f.riskCentral, f.metrics, mode)

	require.NoError(t, f.affiliates.Create(context.Background(), &domain.Affiliate{
		DocumentNumber:  "1017654321",
		Name:            "Maria Rodriguez",
		Salary:          5000000,
		AffiliationDate: time.Now().AddDate(-2, 0, 0),
		Status:          domain.AffiliateActive,
	}))
	return f
}

func (f *serviceFixture) submit(t *testing.T) *domain.CreditApplication {
	t.Helper()
	application, err := f.service.Create(context.Background(), &CreateApplicationInput{
		AffiliateDocumentNumber: "1017654321",
		RequestedAmount:         10000000,
		TermMonths:              24,
		ProposedRate:            12.5,
	})
	require.NoError(t, err)
	return application
}

func lowRisk() *RiskResponse {
	return &RiskResponse{Score: 784, Level: domain.RiskLow, Details: "Low credit risk. Excellent payment history and credit behavior."}
}

func highRisk() *RiskResponse {
	return &RiskResponse{Score: 326, Level: domain.RiskHigh, Details: "High credit risk. Significant negative history detected."}
}

func TestCreateApplication(t *testing.T) {
	f := newFixture(t, ModeAuto, lowRisk())

	application := f.submit(t)

	assert.Equal(t, domain.ApplicationPending, application.Status)
	assert.NotZero(t, application.ID)
	assert.Equal(t, 1, f.metrics.created)
	assert.False(t, application.ApplicationDate.IsZero())
}

func TestCreateApplicationUnknownAffiliate(t *testing.T) {
	f := newFixture(t, ModeAuto, lowRisk())

	_, err := f.service.Create(context.Background(), &CreateApplicationInput{
		AffiliateDocumentNumber: "00000000",
		RequestedAmount:         1000000,
		TermMonths:              12,
		ProposedRate:            10,
	})

	assert.ErrorIs(t, err, domain.ErrAffiliateNotFound)
}

func TestCreateApplicationInactiveAffiliate(t *testing.T) {
	f := newFixture(t, ModeAuto, lowRisk())
	f.affiliates.byDocument["1017654321"].Status = domain.AffiliateInactive

	_, err := f.service.Create(context.Background(), &CreateApplicationInput{
		AffiliateDocumentNumber: "1017654321",
		RequestedAmount:         1000000,
		TermMonths:              12,
		ProposedRate:            10,
	})

	assert.ErrorIs(t, err, domain.ErrInactiveAffiliate)
	assert.Zero(t, f.metrics.created)
}

func TestEvaluateApproves(t *testing.T) {
	f := newFixture(t, ModeAuto, lowRisk())
	application := f.submit(t)

	evaluated, err := f.service.Evaluate(context.Background(), application.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationApproved, evaluated.Status)
	require.NotNil(t, evaluated.RiskEvaluation)
	assert.Equal(t, domain.DecisionApproved, evaluated.RiskEvaluation.Decision)
	assert.Equal(t, domain.AllCriteriaMetMessage, evaluated.RiskEvaluation.Reason)
	assert.Equal(t, 784, evaluated.RiskEvaluation.Score)
	assert.InDelta(t, 10.42, evaluated.RiskEvaluation.DebtToIncomeRatio, 0.0001)
	assert.Equal(t, 1, f.metrics.approved)
	assert.Equal(t, 1, f.metrics.durations)
}

func TestEvaluateRejectsOnHighRisk(t *testing.T) {
	f := newFixture(t, ModeAuto, highRisk())
	application := f.submit(t)

	evaluated, err := f.service.Evaluate(context.Background(), application.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationRejected, evaluated.Status)
	assert.Equal(t, domain.DecisionRejected, evaluated.RiskEvaluation.Decision)
	assert.Contains(t, evaluated.RiskEvaluation.Reason, "High risk level from credit bureau: score 326")
	assert.Equal(t, 1, f.metrics.rejected)
}

func TestEvaluateRejectsCollectsAllReasons(t *testing.T) {
	f := newFixture(t, ModeAuto, highRisk())
	f.affiliates.byDocument["1017654321"].Salary = 500000
	application := f.submit(t)

	evaluated, err := f.service.Evaluate(context.Background(), application.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationRejected, evaluated.Status)
	assert.Contains(t, evaluated.RiskEvaluation.Reason, "Requested amount exceeds maximum allowed")
	assert.Contains(t, evaluated.RiskEvaluation.Reason, "Debt-to-income ratio too high")
	assert.Contains(t, evaluated.RiskEvaluation.Reason, "High risk level from credit bureau")
	assert.Contains(t, evaluated.RiskEvaluation.Reason, "; ")
}

func TestEvaluateNotPending(t *testing.T) {
	f := newFixture(t, ModeAuto, lowRisk())
	application := f.submit(t)

	_, err := f.service.Evaluate(context.Background(), application.ID)
	require.NoError(t, err)

	_, err = f.service.Evaluate(context.Background(), application.ID)
	assert.ErrorIs(t, err, domain.ErrApplicationNotPending)
}

func TestEvaluateUnknownApplication(t *testing.T) {
	f := newFixture(t, ModeAuto, lowRisk())

	_, err := f.service.Evaluate(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
}

func TestEvaluateRiskCentralFailureLeavesApplicationUntouched(t *testing.T) {
	f := newFixture(t, ModeAuto, lowRisk())
	application := f.submit(t)
	f.riskCentral.err = domain.ErrRiskCentralUnavailable

	_, err := f.service.Evaluate(context.Background(), application.ID)

	assert.ErrorIs(t, err, domain.ErrRiskCentralUnavailable)
	stored := f.applications.applications[application.ID]
	assert.Equal(t, domain.ApplicationPending, stored.Status)
	assert.Nil(t, stored.RiskEvaluation)
}

func TestAssessRiskKeepsApplicationPending(t *testing.T) {
	f := newFixture(t, ModeAdvisory, highRisk())
	application := f.submit(t)

	assessed, err := f.service.AssessRisk(context.Background(), application.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, assessed.Status)
	require.NotNil(t, assessed.RiskEvaluation)
	assert.Equal(t, domain.DecisionUndecided, assessed.RiskEvaluation.Decision)
	assert.Contains(t, assessed.RiskEvaluation.Reason, "High risk level from credit bureau")
	assert.Zero(t, f.metrics.approved)
	assert.Zero(t, f.metrics.rejected)
}

func TestAssessRiskReplacesPriorEvaluation(t *testing.T) {
	f := newFixture(t, ModeAdvisory, highRisk())
	application := f.submit(t)

	_, err := f.service.AssessRisk(context.Background(), application.ID)
	require.NoError(t, err)

	f.riskCentral.response = lowRisk()
	assessed, err := f.service.AssessRisk(context.Background(), application.ID)

	require.NoError(t, err)
	assert.Equal(t, 784, assessed.RiskEvaluation.Score)
	assert.Equal(t, domain.AllCriteriaMetMessage, assessed.RiskEvaluation.Reason)
	assert.Equal(t, 2, f.riskCentral.calls)
}

func TestDecideRequiresEvaluation(t *testing.T) {
	f := newFixture(t, ModeAdvisory, lowRisk())
	application := f.submit(t)

	_, err := f.service.Decide(context.Background(), application.ID, &DecisionInput{Approved: true})

	assert.ErrorIs(t, err, domain.ErrEvaluationRequired)
}

func TestDecideApprovesWithComments(t *testing.T) {
	f := newFixture(t, ModeAdvisory, lowRisk())
	application := f.submit(t)
	_, err := f.service.AssessRisk(context.Background(), application.ID)
	require.NoError(t, err)

	decided, err := f.service.Decide(context.Background(), application.ID, &DecisionInput{
		Approved: true,
		Comments: "Verified employment records",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationApproved, decided.Status)
	assert.Equal(t, domain.DecisionApproved, decided.RiskEvaluation.Decision)
	assert.Equal(t,
		domain.AllCriteriaMetMessage+" | Analyst comments: Verified employment records",
		decided.RiskEvaluation.Reason)
	assert.Equal(t, 1, f.metrics.approved)
}

func TestDecideRejectsDespitePassingRules(t *testing.T) {
	f := newFixture(t, ModeAdvisory, lowRisk())
	application := f.submit(t)
	_, err := f.service.AssessRisk(context.Background(), application.ID)
	require.NoError(t, err)

	decided, err := f.service.Decide(context.Background(), application.ID, &DecisionInput{Approved: false})

	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationRejected, decided.Status)
	assert.Equal(t, domain.DecisionRejected, decided.RiskEvaluation.Decision)
	assert.Equal(t, 1, f.metrics.rejected)
}

func TestDecideIsOneShot(t *testing.T) {
	f := newFixture(t, ModeAdvisory, lowRisk())
	application := f.submit(t)
	_, err := f.service.AssessRisk(context.Background(), application.ID)
	require.NoError(t, err)

	_, err = f.service.Decide(context.Background(), application.ID, &DecisionInput{Approved: true})
	require.NoError(t, err)

	_, err = f.service.Decide(context.Background(), application.ID, &DecisionInput{Approved: false})
	assert.ErrorIs(t, err, domain.ErrApplicationNotPending)
}

func TestListByStatusAndPending(t *testing.T) {
	f := newFixture(t, ModeAuto, lowRisk())
	first := f.submit(t)
	f.submit(t)

	_, err := f.service.Evaluate(context.Background(), first.ID)
	require.NoError(t, err)

	pending, err := f.service.ListPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	approved, err := f.service.ListByStatus(context.Background(), domain.ApplicationApproved)
	require.NoError(t, err)
	assert.Len(t, approved, 1)
}
