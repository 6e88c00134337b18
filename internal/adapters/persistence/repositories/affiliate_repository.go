package repositories

import (
	"context"
	"errors"

	"coopcredit/internal/adapters/persistence/models"
	"coopcredit/internal/core/domain"

	"gorm.io/gorm"
)

// affiliateRepository implements AffiliateRepository backed by gorm
type affiliateRepository struct {
	db *gorm.DB
}

// NewAffiliateRepository creates a new affiliate repository
func NewAffiliateRepository(db *gorm.DB) AffiliateRepository {
	return &affiliateRepository{db: db}
}

// Create inserts a new affiliate and backfills the generated ID
func (r *affiliateRepository) Create(ctx context.Context, affiliate *domain.Affiliate) error {
	model := models.AffiliateFromDomain(affiliate)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	affiliate.ID = model.ID
	affiliate.CreatedAt = model.CreatedAt
	affiliate.UpdatedAt = model.UpdatedAt
	return nil
}

// Update persists name/salary/status changes for an existing affiliate
func (r *affiliateRepository) Update(ctx context.Context, affiliate *domain.Affiliate) error {
	return r.db.WithContext(ctx).
		Model(&models.Affiliate{}).
		Where("id = ?", affiliate.ID).
		Updates(map[string]interface{}{
			"name":   affiliate.Name,
			"salary": affiliate.Salary,
			"status": string(affiliate.Status),
		}).Error
}

// GetByID gets an affiliate by ID
func (r *affiliateRepository) GetByID(ctx context.Context, id uint) (*domain.Affiliate, error) {
	var model models.Affiliate
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAffiliateNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetByDocumentNumber gets an affiliate by its unique document number
func (r *affiliateRepository) GetByDocumentNumber(ctx context.Context, documentNumber string) (*domain.Affiliate, error) {
	var model models.Affiliate
	err := r.db.WithContext(ctx).
		Where("document_number = ?", documentNumber).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAffiliateNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByDocumentNumber checks if a document number is already registered
func (r *affiliateRepository) ExistsByDocumentNumber(ctx context.Context, documentNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Affiliate{}).
		Where("document_number = ?", documentNumber).
		Count(&count).Error
	return count > 0, err
}

// Count returns the total number of affiliates
func (r *affiliateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Affiliate{}).Count(&count).Error
	return count, err
}

// List returns a page of affiliates plus the total count
func (r *affiliateRepository) List(ctx context.Context, offset, limit int) ([]*domain.Affiliate, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Affiliate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*models.Affiliate
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	affiliates := make([]*domain.Affiliate, 0, len(rows))
	for _, row := range rows {
		affiliates = append(affiliates, row.ToDomain())
	}
	return affiliates, total, nil
}
