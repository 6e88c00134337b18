package services

import (
	"context"
	"log"
	"time"

	"coopcredit/internal/adapters/persistence/repositories"
	"coopcredit/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// ReminderService runs the scheduled housekeeping jobs: a daily summary
// of applications still awaiting a decision and a purge of expired
// refresh tokens.
type ReminderService struct {
	applicationRepo  repositories.ApplicationRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(
	applicationRepo repositories.ApplicationRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *ReminderService {
	return &ReminderService{
		applicationRepo:  applicationRepo,
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start registers the jobs and starts the scheduler
func (s *ReminderService) Start() error {
	// Pending-application summary every day at 08:00
	if _, err := s.cron.AddFunc("0 8 * * *", s.RemindPendingApplications); err != nil {
		return err
	}
	// Expired refresh tokens purged nightly
	if _, err := s.cron.AddFunc("30 2 * * *", s.CleanupExpiredTokens); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("⏰ Scheduled jobs started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RemindPendingApplications logs a summary of applications that have
// been waiting on an analyst for more than a day
func (s *ReminderService) RemindPendingApplications() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pending, err := s.applicationRepo.ListByStatus(ctx, domain.ApplicationPending)
	if err != nil {
		log.Printf("Pending applications reminder failed: %v", err)
		return
	}

	stale := 0
	cutoff := time.Now().AddDate(0, 0, -1)
	for _, application := range pending {
		if application.ApplicationDate.Before(cutoff) {
			stale++
		}
	}
	if stale > 0 {
		log.Printf("Reminder: %d of %d pending applications are older than 24h", stale, len(pending))
	}
}

// CleanupExpiredTokens deletes refresh tokens past their expiry
func (s *ReminderService) CleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("Expired token cleanup failed: %v", err)
		return
	}
	log.Println("Expired refresh tokens cleaned up")
}
