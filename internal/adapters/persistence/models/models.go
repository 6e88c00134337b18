package models

import (
	"time"

	"coopcredit/internal/core/domain"

	"gorm.io/gorm"
)

// User represents the users table
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email          string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password       string         `gorm:"size:255;not null" json:"-"`
	DocumentNumber string         `gorm:"size:20;index" json:"document_number"`
	Role           string         `gorm:"size:20;default:'AFFILIATE'" json:"role"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// ToDomain converts the model to its domain representation
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Password:       u.Password,
		DocumentNumber: u.DocumentNumber,
		Role:           domain.Role(u.Role),
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// UserFromDomain converts a domain user to its persistence model
func UserFromDomain(u *domain.User) *User {
	return &User{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Password:       u.Password,
		DocumentNumber: u.DocumentNumber,
		Role:           string(u.Role),
		IsActive:       u.IsActive,
	}
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// ToDomain converts the model to its domain representation
func (rt *RefreshToken) ToDomain() *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        rt.ID,
		UserID:    rt.UserID,
		TokenHash: rt.TokenHash,
		ExpiresAt: rt.ExpiresAt,
		CreatedAt: rt.CreatedAt,
		RevokedAt: rt.RevokedAt,
	}
}

// Affiliate represents the affiliates table
type Affiliate struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	DocumentNumber  string         `gorm:"uniqueIndex;size:20;not null" json:"document_number"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	Salary          float64        `gorm:"type:decimal(15,2);not null" json:"salary"`
	AffiliationDate time.Time      `gorm:"type:date;not null" json:"affiliation_date"`
	Status          string         `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Affiliate) TableName() string {
	return "affiliates"
}

// ToDomain converts the model to its domain representation
func (a *Affiliate) ToDomain() *domain.Affiliate {
	return &domain.Affiliate{
		ID:              a.ID,
		DocumentNumber:  a.DocumentNumber,
		Name:            a.Name,
		Salary:          a.Salary,
		AffiliationDate: a.AffiliationDate,
		Status:          domain.AffiliateStatus(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// AffiliateFromDomain converts a domain affiliate to its persistence model
func AffiliateFromDomain(a *domain.Affiliate) *Affiliate {
	return &Affiliate{
		ID:              a.ID,
		DocumentNumber:  a.DocumentNumber,
		Name:            a.Name,
		Salary:          a.Salary,
		AffiliationDate: a.AffiliationDate,
		Status:          string(a.Status),
	}
}

// CreditApplication represents the credit_applications table
type CreditApplication struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	AffiliateID     uint            `gorm:"not null;index" json:"affiliate_id"`
	RequestedAmount float64         `gorm:"type:decimal(15,2);not null" json:"requested_amount"`
	TermMonths      int             `gorm:"not null" json:"term_months"`
	ProposedRate    float64         `gorm:"type:decimal(5,2);not null" json:"proposed_rate"`
	ApplicationDate time.Time       `gorm:"not null" json:"application_date"`
	Status          string          `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Affiliate      *Affiliate      `gorm:"foreignKey:AffiliateID" json:"affiliate,omitempty"`
	RiskEvaluation *RiskEvaluation `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"risk_evaluation,omitempty"`
}

func (CreditApplication) TableName() string {
	return "credit_applications"
}

// ToDomain converts the model to its domain representation, including
// the affiliate and risk evaluation when loaded
func (c *CreditApplication) ToDomain() *domain.CreditApplication {
	app := &domain.CreditApplication{
		ID:              c.ID,
		AffiliateID:     c.AffiliateID,
		RequestedAmount: c.RequestedAmount,
		TermMonths:      c.TermMonths,
		ProposedRate:    c.ProposedRate,
		ApplicationDate: c.ApplicationDate,
		Status:          domain.ApplicationStatus(c.Status),
	}
	if c.Affiliate != nil {
		app.Affiliate = c.Affiliate.ToDomain()
	}
	if c.RiskEvaluation != nil {
		app.RiskEvaluation = c.RiskEvaluation.ToDomain()
	}
	return app
}

// ApplicationFromDomain converts a domain application to its persistence model
func ApplicationFromDomain(c *domain.CreditApplication) *CreditApplication {
	return &CreditApplication{
		ID:              c.ID,
		AffiliateID:     c.AffiliateID,
		RequestedAmount: c.RequestedAmount,
		TermMonths:      c.TermMonths,
		ProposedRate:    c.ProposedRate,
		ApplicationDate: c.ApplicationDate,
		Status:          string(c.Status),
	}
}

// RiskEvaluation represents the risk_evaluations table (1:1 with
// credit_applications, owned by its application)
type RiskEvaluation struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ApplicationID     uint      `gorm:"uniqueIndex;not null" json:"application_id"`
	Score             int       `gorm:"not null" json:"score"`
	RiskLevel         string    `gorm:"size:10;not null" json:"risk_level"`
	DebtToIncomeRatio float64   `gorm:"type:decimal(7,2);not null" json:"debt_to_income_ratio"`
	Reason            string    `gorm:"type:text" json:"reason"`
	Details           string    `gorm:"type:text" json:"details"`
	EvaluationDate    time.Time `gorm:"not null" json:"evaluation_date"`
	Decision          string    `gorm:"size:20;not null;default:'UNDECIDED'" json:"decision"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RiskEvaluation) TableName() string {
	return "risk_evaluations"
}

// ToDomain converts the model to its domain representation
func (r *RiskEvaluation) ToDomain() *domain.RiskEvaluation {
	return &domain.RiskEvaluation{
		ID:                r.ID,
		ApplicationID:     r.ApplicationID,
		Score:             r.Score,
		RiskLevel:         domain.RiskLevel(r.RiskLevel),
		DebtToIncomeRatio: r.DebtToIncomeRatio,
		Reason:            r.Reason,
		Details:           r.Details,
		EvaluationDate:    r.EvaluationDate,
		Decision:          domain.Decision(r.Decision),
	}
}

// EvaluationFromDomain converts a domain evaluation to its persistence model
func EvaluationFromDomain(r *domain.RiskEvaluation) *RiskEvaluation {
	return &RiskEvaluation{
		ID:                r.ID,
		ApplicationID:     r.ApplicationID,
		Score:             r.Score,
		RiskLevel:         string(r.RiskLevel),
		DebtToIncomeRatio: r.DebtToIncomeRatio,
		Reason:            r.Reason,
		Details:           r.Details,
		EvaluationDate:    r.EvaluationDate,
		Decision:          string(r.Decision),
	}
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Affiliate{},
		&CreditApplication{},
		&RiskEvaluation{},
	)
}
