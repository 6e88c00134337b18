package services

import (
	"context"

	"coopcredit/internal/adapters/persistence/repositories"
	"coopcredit/internal/core/domain"
)

// DashboardService aggregates portfolio statistics for analysts
type DashboardService struct {
	applicationRepo repositories.ApplicationRepository
	affiliateRepo   repositories.AffiliateRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	applicationRepo repositories.ApplicationRepository,
	affiliateRepo repositories.AffiliateRepository,
) *DashboardService {
	return &DashboardService{
		applicationRepo: applicationRepo,
		affiliateRepo:   affiliateRepo,
	}
}

// DashboardStats represents the aggregate counters shown on the
// analyst dashboard
type DashboardStats struct {
	TotalAffiliates      int64   `json:"total_affiliates"`
	TotalApplications    int64   `json:"total_applications"`
	PendingApplications  int64   `json:"pending_applications"`
	ApprovedApplications int64   `json:"approved_applications"`
	RejectedApplications int64   `json:"rejected_applications"`
	ApprovalRate         float64 `json:"approval_rate"`
}

// GetStats computes the dashboard counters. The approval rate is the
// share of approved applications among the decided ones, in percent.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalAffiliates, err = s.affiliateRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingApplications, err = s.applicationRepo.CountByStatus(ctx, domain.ApplicationPending); err != nil {
		return nil, err
	}
	if stats.ApprovedApplications, err = s.applicationRepo.CountByStatus(ctx, domain.ApplicationApproved); err != nil {
		return nil, err
	}
	if stats.RejectedApplications, err = s.applicationRepo.CountByStatus(ctx, domain.ApplicationRejected); err != nil {
		return nil, err
	}

	stats.TotalApplications = stats.PendingApplications + stats.ApprovedApplications + stats.RejectedApplications
	if decided := stats.ApprovedApplications + stats.RejectedApplications; decided > 0 {
		stats.ApprovalRate = float64(stats.ApprovedApplications) / float64(decided) * 100
	}
	return stats, nil
}
