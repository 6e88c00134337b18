package repositories

import (
	"context"
	"errors"

	"coopcredit/internal/adapters/persistence/models"
	"coopcredit/internal/core/domain"

	"gorm.io/gorm"
)

// applicationRepository implements ApplicationRepository backed by gorm
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new credit application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts a new application and backfills the generated ID
func (r *applicationRepository) Create(ctx context.Context, application *domain.CreditApplication) error {
	model := models.ApplicationFromDomain(application)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	application.ID = model.ID
	return nil
}

// GetByID gets an application with its affiliate and evaluation populated
func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*domain.CreditApplication, error) {
	var model models.CreditApplication
	err := r.db.WithContext(ctx).
		Preload("Affiliate").
		Preload("RiskEvaluation").
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of applications plus the total count
func (r *applicationRepository) List(ctx context.Context, offset, limit int) ([]*domain.CreditApplication, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.CreditApplication{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*models.CreditApplication
	err := r.db.WithContext(ctx).
		Preload("Affiliate").
		Preload("RiskEvaluation").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toDomainList(rows), total, nil
}

// ListByStatus returns all applications with the given status
func (r *applicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]*domain.CreditApplication, error) {
	var rows []*models.CreditApplication
	err := r.db.WithContext(ctx).
		Preload("Affiliate").
		Preload("RiskEvaluation").
		Where("status = ?", string(status)).
		Order("application_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// ListByAffiliateDocument returns all applications of one affiliate
func (r *applicationRepository) ListByAffiliateDocument(ctx context.Context, documentNumber string) ([]*domain.CreditApplication, error) {
	var rows []*models.CreditApplication
	err := r.db.WithContext(ctx).
		Preload("Affiliate").
		Preload("RiskEvaluation").
		Joins("JOIN affiliates ON affiliates.id = credit_applications.affiliate_id").
		Where("affiliates.document_number = ?", documentNumber).
		Order("credit_applications.application_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// CountByStatus counts applications with the given status
func (r *applicationRepository) CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CreditApplication{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}

// SaveEvaluation upserts the application's risk evaluation. The relation
// is 1:1, so a re-assessment replaces the prior row instead of adding one.
func (r *applicationRepository) SaveEvaluation(ctx context.Context, applicationID uint, evaluation *domain.RiskEvaluation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.RiskEvaluation
		err := tx.Where("application_id = ?", applicationID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			model := models.EvaluationFromDomain(evaluation)
			model.ApplicationID = applicationID
			if err := tx.Create(model).Error; err != nil {
				return err
			}
			evaluation.ID = model.ID
			return nil
		case err != nil:
			return err
		default:
			model := models.EvaluationFromDomain(evaluation)
			model.ID = existing.ID
			model.ApplicationID = applicationID
			if err := tx.Save(model).Error; err != nil {
				return err
			}
			evaluation.ID = existing.ID
			return nil
		}
	})
}

// Finalize records the decision and moves the application to a terminal
// status. The UPDATE is conditional on the row still being PENDING, which
// makes the terminal transition one-shot even under concurrent calls.
func (r *applicationRepository) Finalize(ctx context.Context, applicationID uint, status domain.ApplicationStatus, decision domain.Decision, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CreditApplication{}).
			Where("id = ? AND status = ?", applicationID, string(domain.ApplicationPending)).
			Update("status", string(status))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Either the application does not exist or it is no longer
			// PENDING; distinguish for the caller.
			var count int64
			if err := tx.Model(&models.CreditApplication{}).
				Where("id = ?", applicationID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrApplicationNotFound
			}
			return domain.ErrApplicationNotPending
		}

		return tx.Model(&models.RiskEvaluation{}).
			Where("application_id = ?", applicationID).
			Updates(map[string]interface{}{
				"decision": string(decision),
				"reason":   reason,
			}).Error
	})
}

// toDomainList converts model rows to domain applications
func toDomainList(rows []*models.CreditApplication) []*domain.CreditApplication {
	applications := make([]*domain.CreditApplication, 0, len(rows))
	for _, row := range rows {
		applications = append(applications, row.ToDomain())
	}
	return applications
}
