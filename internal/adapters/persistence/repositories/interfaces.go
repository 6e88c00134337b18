package repositories

import (
	"context"

	"coopcredit/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// AffiliateRepository defines affiliate repository interface
type AffiliateRepository interface {
	Create(ctx context.Context, affiliate *domain.Affiliate) error
	Update(ctx context.Context, affiliate *domain.Affiliate) error
	GetByID(ctx context.Context, id uint) (*domain.Affiliate, error)
	GetByDocumentNumber(ctx context.Context, documentNumber string) (*domain.Affiliate, error)
	ExistsByDocumentNumber(ctx context.Context, documentNumber string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Affiliate, int64, error)
	Count(ctx context.Context) (int64, error)
}

// ApplicationRepository defines credit application repository interface.
// GetByID returns the application with its affiliate and risk evaluation
// populated.
type ApplicationRepository interface {
	Create(ctx context.Context, application *domain.CreditApplication) error
	GetByID(ctx context.Context, id uint) (*domain.CreditApplication, error)
	List(ctx context.Context, offset, limit int) ([]*domain.CreditApplication, int64, error)
	ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]*domain.CreditApplication, error)
	ListByAffiliateDocument(ctx context.Context, documentNumber string) ([]*domain.CreditApplication, error)
	CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error)

	// SaveEvaluation attaches the evaluation to the application,
	// replacing any prior evaluation (the relation is 1:1).
	SaveEvaluation(ctx context.Context, applicationID uint, evaluation *domain.RiskEvaluation) error

	// Finalize records the analyst decision and moves the application to
	// its terminal status. The transition only succeeds while the
	// application is still PENDING; a concurrent or repeated call gets
	// domain.ErrApplicationNotPending.
	Finalize(ctx context.Context, applicationID uint, status domain.ApplicationStatus, decision domain.Decision, reason string) error
}
