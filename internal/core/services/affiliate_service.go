package services

import (
	"context"
	"log"
	"time"

	"coopcredit/internal/adapters/persistence/repositories"
	"coopcredit/internal/core/domain"
)

// AffiliateService handles affiliate registration and maintenance
type AffiliateService struct {
	affiliateRepo repositories.AffiliateRepository
	metrics       MetricsSink
}

// NewAffiliateService creates a new affiliate service
func NewAffiliateService(affiliateRepo repositories.AffiliateRepository, metrics MetricsSink) *AffiliateService {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &AffiliateService{
		affiliateRepo: affiliateRepo,
		metrics:       metrics,
	}
}

// RegisterAffiliateInput represents affiliate registration input
type RegisterAffiliateInput struct {
	DocumentNumber  string    `json:"document_number" validate:"required,min=5,max=20"`
	Name            string    `json:"name" validate:"required,min=2,max=100"`
	Salary          float64   `json:"salary" validate:"required,gt=0"`
	AffiliationDate time.Time `json:"affiliation_date" validate:"required"`
}

// Register registers a new affiliate. The document number must be
// unique; status defaults to ACTIVE.
func (s *AffiliateService) Register(ctx context.Context, input *RegisterAffiliateInput) (*domain.Affiliate, error) {
	exists, err := s.affiliateRepo.ExistsByDocumentNumber(ctx, input.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateDocument
	}

	affiliate := &domain.Affiliate{
		DocumentNumber:  input.DocumentNumber,
		Name:            input.Name,
		Salary:          input.Salary,
		AffiliationDate: input.AffiliationDate,
		Status:          domain.AffiliateActive,
	}

	if err := s.affiliateRepo.Create(ctx, affiliate); err != nil {
		return nil, err
	}

	s.metrics.AffiliateRegistered()
	log.Printf("Affiliate registered with document %s", affiliate.DocumentNumber)
	return affiliate, nil
}

// UpdateAffiliateInput represents affiliate update input; nil fields
// are left unchanged
type UpdateAffiliateInput struct {
	Name   *string  `json:"name,omitempty"`
	Salary *float64 `json:"salary,omitempty"`
	Status *string  `json:"status,omitempty"`
}

// Update changes the allowed fields of an existing affiliate
func (s *AffiliateService) Update(ctx context.Context, documentNumber string, input *UpdateAffiliateInput) (*domain.Affiliate, error) {
	affiliate, err := s.affiliateRepo.GetByDocumentNumber(ctx, documentNumber)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		affiliate.Name = *input.Name
	}
	if input.Salary != nil {
		affiliate.Salary = *input.Salary
	}
	if input.Status != nil {
		affiliate.Status = domain.AffiliateStatus(*input.Status)
	}

	if err := s.affiliateRepo.Update(ctx, affiliate); err != nil {
		return nil, err
	}
	return affiliate, nil
}

// Activate marks an affiliate as ACTIVE
func (s *AffiliateService) Activate(ctx context.Context, documentNumber string) (*domain.Affiliate, error) {
	return s.setStatus(ctx, documentNumber, domain.AffiliateActive)
}

// Deactivate marks an affiliate as INACTIVE; existing applications are
// untouched, but no new ones can be submitted
func (s *AffiliateService) Deactivate(ctx context.Context, documentNumber string) (*domain.Affiliate, error) {
	return s.setStatus(ctx, documentNumber, domain.AffiliateInactive)
}

func (s *AffiliateService) setStatus(ctx context.Context, documentNumber string, status domain.AffiliateStatus) (*domain.Affiliate, error) {
	affiliate, err := s.affiliateRepo.GetByDocumentNumber(ctx, documentNumber)
	if err != nil {
		return nil, err
	}
	affiliate.Status = status
	if err := s.affiliateRepo.Update(ctx, affiliate); err != nil {
		return nil, err
	}
	return affiliate, nil
}

// GetByDocumentNumber gets an affiliate by its document number
func (s *AffiliateService) GetByDocumentNumber(ctx context.Context, documentNumber string) (*domain.Affiliate, error) {
	return s.affiliateRepo.GetByDocumentNumber(ctx, documentNumber)
}

// List lists affiliates with pagination
func (s *AffiliateService) List(ctx context.Context, offset, limit int) ([]*domain.Affiliate, int64, error) {
	return s.affiliateRepo.List(ctx, offset, limit)
}
