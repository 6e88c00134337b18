package services

import (
	"context"
	"errors"
	"log"

	"coopcredit/internal/adapters/persistence/repositories"
	"coopcredit/internal/config"
	"coopcredit/internal/core/domain"
	"coopcredit/internal/pkg/jwt"
	"coopcredit/internal/pkg/password"

	"github.com/google/uuid"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidRole        = errors.New("invalid role")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	metrics          MetricsSink
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	metrics MetricsSink,
	cfg *config.Config,
) *AuthService {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		metrics:          metrics,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	DocumentNumber string `json:"document_number,omitempty"`
	Role           string `json:"role,omitempty"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// Register registers a new user. The role defaults to AFFILIATE; an
// AFFILIATE user carries the document number that links it to its
// affiliate record.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	role := domain.RoleAffiliate
	if input.Role != "" {
		role = domain.Role(input.Role)
		switch role {
		case domain.RoleAffiliate, domain.RoleAnalyst, domain.RoleAdmin:
		default:
			return nil, ErrInvalidRole
		}
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:       input.Username,
		Email:          input.Email,
		Password:       hashedPassword,
		DocumentNumber: input.DocumentNumber,
		Role:           role,
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("User registered: %s [%s]", user.Username, user.Role)
	return s.issueTokens(ctx, user)
}

// Login authenticates a user and issues a token pair
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.LoginAttempt(false)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		s.metrics.LoginAttempt(false)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		s.metrics.LoginAttempt(false)
		return nil, ErrUserInactive
	}

	s.metrics.LoginAttempt(true)
	return s.issueTokens(ctx, user)
}

// RefreshToken validates a refresh token and rotates the token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	stored, err := s.refreshTokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if stored.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if stored.IsExpired() {
		return nil, ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// Rotate: revoke the used token before issuing a new pair
	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, stored.TokenHash); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the given refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshTokenRepo.RevokeByTokenHash(ctx, password.HashToken(refreshToken))
}

// LogoutAll revokes every active refresh token of the user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, userID)
}

// GetUserByID gets a user by ID with the password hash blanked
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sanitized := *user
	sanitized.Password = ""
	return &sanitized, nil
}

// issueTokens generates and stores an access/refresh token pair
func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*AuthResponse, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID, user.DocumentNumber, user.Username, string(user.Role),
		s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()
	refreshToken, err := jwt.GenerateRefreshToken(user.ID, tokenID, s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTokenDays)
	if err != nil {
		return nil, err
	}

	record := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	if err := s.refreshTokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	// Blank the hash on a copy so the persisted entity keeps its credential
	sanitized := *user
	sanitized.Password = ""
	return &AuthResponse{
		User:         &sanitized,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
