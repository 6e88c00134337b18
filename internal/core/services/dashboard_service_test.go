package services

import (
	"context"
	"testing"

	"coopcredit/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	f := newFixture(t, ModeAuto, lowRisk())
	dashboard := NewDashboardService(f.applications, f.affiliates)

	first := f.submit(t)
	f.submit(t)
	f.submit(t)

	_, err := f.service.Evaluate(context.Background(), first.ID)
	require.NoError(t, err)

	stats, err := dashboard.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.TotalAffiliates)
	assert.Equal(t, int64(3), stats.TotalApplications)
	assert.Equal(t, int64(2), stats.PendingApplications)
	assert.Equal(t, int64(1), stats.ApprovedApplications)
	assert.Equal(t, int64(0), stats.RejectedApplications)
	assert.Equal(t, 100.0, stats.ApprovalRate)
}

func TestDashboardStatsNoDecisions(t *testing.T) {
	f := newFixture(t, ModeAdvisory, lowRisk())
	dashboard := NewDashboardService(f.applications, f.affiliates)

	f.submit(t)

	stats, err := dashboard.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.PendingApplications)
	assert.Zero(t, stats.ApprovalRate)
}

func TestDashboardStatsMixedDecisions(t *testing.T) {
	f := newFixture(t, ModeAuto, lowRisk())
	dashboard := NewDashboardService(f.applications, f.affiliates)

	approvedApp := f.submit(t)
	_, err := f.service.Evaluate(context.Background(), approvedApp.ID)
	require.NoError(t, err)

	f.riskCentral.response = highRisk()
	rejectedApp := f.submit(t)
	_, err = f.service.Evaluate(context.Background(), rejectedApp.ID)
	require.NoError(t, err)

	stats, err := dashboard.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.ApprovedApplications)
	assert.Equal(t, int64(1), stats.RejectedApplications)
	assert.Equal(t, 50.0, stats.ApprovalRate)
	assert.Equal(t, domain.ApplicationRejected, f.applications.applications[rejectedApp.ID].Status)
}
