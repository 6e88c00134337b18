package config

import (
	"log"
	"time"

	"coopcredit/internal/adapters/persistence/models"
	"coopcredit/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Seeding is idempotent: records that already
// exist are left untouched.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedStaffUsers(); err != nil {
		log.Printf("⚠️ Staff user seeder skipped: %v", err)
	}
	if err := s.seedDemoAffiliates(); err != nil {
		log.Printf("⚠️ Demo affiliate seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedStaffUsers seeds the default admin and analyst accounts.
// Development only; production accounts are created through a secure
// process.
func (s *Seeder) seedStaffUsers() error {
	staff := []struct {
		username string
		email    string
		role     string
		pass     string
	}{
		{"admin", "admin@coopcredit.example.com", "ADMIN", "admin123456"},
		{"analyst", "analyst@coopcredit.example.com", "ANALYST", "analyst123456"},
	}

	for _, u := range staff {
		var count int64
		s.db.Model(&models.User{}).Where("username = ?", u.username).Count(&count)
		if count > 0 {
			continue
		}

		hashed, err := password.Hash(u.pass)
		if err != nil {
			return err
		}

		user := &models.User{
			Username: u.username,
			Email:    u.email,
			Password: hashed,
			Role:     u.role,
			IsActive: true,
		}
		if err := s.db.Create(user).Error; err != nil {
			return err
		}
		log.Printf("✅ %s user created: %s", u.role, u.username)
	}
	return nil
}

// seedDemoAffiliates seeds a few affiliates for development
func (s *Seeder) seedDemoAffiliates() error {
	var count int64
	s.db.Model(&models.Affiliate{}).Count(&count)
	if count > 0 {
		return nil
	}

	now := time.Now()
	affiliates := []*models.Affiliate{
		{
			DocumentNumber:  "1017654321",
			Name:            "Maria Rodriguez",
			Salary:          5000000,
			AffiliationDate: now.AddDate(-2, 0, 0),
			Status:          "ACTIVE",
		},
		{
			DocumentNumber:  "52489657",
			Name:            "Carlos Gomez",
			Salary:          3200000,
			AffiliationDate: now.AddDate(0, -8, 0),
			Status:          "ACTIVE",
		},
		{
			DocumentNumber:  "12345678",
			Name:            "Ana Martinez",
			Salary:          2800000,
			AffiliationDate: now.AddDate(0, -3, 0),
			Status:          "ACTIVE",
		},
		{
			DocumentNumber:  "87654321",
			Name:            "Jorge Ramirez",
			Salary:          4100000,
			AffiliationDate: now.AddDate(-1, -2, 0),
			Status:          "INACTIVE",
		},
	}

	if err := s.db.Create(&affiliates).Error; err != nil {
		return err
	}
	log.Printf("✅ %d demo affiliates created", len(affiliates))
	return nil
}
