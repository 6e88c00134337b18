package repositories

import (
	"context"
	"errors"

	"coopcredit/internal/adapters/persistence/models"
	"coopcredit/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository backed by gorm
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user and backfills the generated ID
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	model := models.UserFromDomain(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	return nil
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var model models.User
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetByUsername gets a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var model models.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByUsername checks if a username is taken
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if an email is taken
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}
