package services

import (
	"context"
	"testing"
	"time"

	"coopcredit/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAffiliateService(t *testing.T) (*AffiliateService, *fakeAffiliateRepo, *countingMetrics) {
	t.Helper()
	repo := newFakeAffiliateRepo()
	metrics := &countingMetrics{}
	return NewAffiliateService(repo, metrics), repo, metrics
}

func TestRegisterAffiliate(t *testing.T) {
	service, _, metrics := newAffiliateService(t)
	affiliationDate := time.Now().AddDate(0, -8, 0)

	affiliate, err := service.Register(context.Background(), &RegisterAffiliateInput{
		DocumentNumber:  "52489657",
		Name:            "Carlos Gomez",
		Salary:          3200000,
		AffiliationDate: affiliationDate,
	})

	require.NoError(t, err)
	assert.NotZero(t, affiliate.ID)
	assert.Equal(t, domain.AffiliateActive, affiliate.Status)
	assert.Equal(t, 1, metrics.affiliates)

	// Querying right back by document number returns the same record
	found, err := service.GetByDocumentNumber(context.Background(), "52489657")
	require.NoError(t, err)
	assert.Equal(t, affiliate.ID, found.ID)
	assert.Equal(t, 3200000.0, found.Salary)
	assert.Equal(t, domain.AffiliateActive, found.Status)
	assert.True(t, found.AffiliationDate.Equal(affiliationDate))
}

func TestRegisterAffiliateDuplicateDocument(t *testing.T) {
	service, _, metrics := newAffiliateService(t)

	input := &RegisterAffiliateInput{
		DocumentNumber:  "52489657",
		Name:            "Carlos Gomez",
		Salary:          3200000,
		AffiliationDate: time.Now().AddDate(0, -8, 0),
	}
	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrDuplicateDocument)
	assert.Equal(t, 1, metrics.affiliates)
}

func TestUpdateAffiliate(t *testing.T) {
	service, _, _ := newAffiliateService(t)
	_, err := service.Register(context.Background(), &RegisterAffiliateInput{
		DocumentNumber:  "52489657",
		Name:            "Carlos Gomez",
		Salary:          3200000,
		AffiliationDate: time.Now().AddDate(0, -8, 0),
	})
	require.NoError(t, err)

	newSalary := 4500000.0
	updated, err := service.Update(context.Background(), "52489657", &UpdateAffiliateInput{
		Salary: &newSalary,
	})

	require.NoError(t, err)
	assert.Equal(t, 4500000.0, updated.Salary)
	assert.Equal(t, "Carlos Gomez", updated.Name) // untouched
}

func TestUpdateAffiliateNotFound(t *testing.T) {
	service, _, _ := newAffiliateService(t)

	_, err := service.Update(context.Background(), "00000000", &UpdateAffiliateInput{})
	assert.ErrorIs(t, err, domain.ErrAffiliateNotFound)
}

func TestActivateDeactivateAffiliate(t *testing.T) {
	service, repo, _ := newAffiliateService(t)
	_, err := service.Register(context.Background(), &RegisterAffiliateInput{
		DocumentNumber:  "52489657",
		Name:            "Carlos Gomez",
		Salary:          3200000,
		AffiliationDate: time.Now().AddDate(0, -8, 0),
	})
	require.NoError(t, err)

	deactivated, err := service.Deactivate(context.Background(), "52489657")
	require.NoError(t, err)
	assert.Equal(t, domain.AffiliateInactive, deactivated.Status)
	assert.False(t, repo.byDocument["52489657"].CanApplyForCredit())

	activated, err := service.Activate(context.Background(), "52489657")
	require.NoError(t, err)
	assert.Equal(t, domain.AffiliateActive, activated.Status)
}
