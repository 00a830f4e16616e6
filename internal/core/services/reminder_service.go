package services

import (
	"context"
	"log"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/core/domain"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService sends a daily digest of entities stuck in a validation
// queue so Admins do not let submissions rot.
type ReminderService struct {
	db     *gorm.DB
	notify *NotificationService
	cron   *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(db *gorm.DB, notify *NotificationService) *ReminderService {
	return &ReminderService{
		db:     db,
		notify: notify,
		cron:   cron.New(),
	}
}

// Start schedules the daily pending-validation digest (08:30)
func (s *ReminderService) Start() {
	s.cron.AddFunc("30 8 * * *", s.SendPendingDigest)
	s.cron.Start()
	log.Println("🚀 ReminderService started (daily digest at 08:30)")
}

// Stop stops the scheduler
func (s *ReminderService) Stop() {
	s.cron.Stop()
	log.Println("🛑 ReminderService stopped")
}

// SendPendingDigest counts entities awaiting either validation tier and posts
// the digest through the notification webhook
func (s *ReminderService) SendPendingDigest() {
	ctx := context.Background()
	counts := map[domain.Resource]int64{
		domain.ResourceClientFiles:    s.countAwaiting(ctx, &models.ClientFile{}),
		domain.ResourceExpenses:       s.countAwaiting(ctx, &models.Expense{}),
		domain.ResourceLeaves:         s.countAwaiting(ctx, &models.Leave{}),
		domain.ResourceSalaries:       s.countAwaiting(ctx, &models.Salary{}),
		domain.ResourceSalaryAdvances: s.countAwaiting(ctx, &models.SalaryAdvance{}),
	}

	s.notify.NotifyPendingDigest(counts)
}

func (s *ReminderService) countAwaiting(ctx context.Context, model interface{}) int64 {
	var total int64
	err := s.db.WithContext(ctx).
		Model(model).
		Where("status IN ?", []domain.ValidationStatus{
			domain.StatusAwaitingAdminValidation,
			domain.StatusAwaitingSuperAdmin,
		}).
		Count(&total).Error
	if err != nil {
		log.Printf("⚠️ Pending digest count failed: %v", err)
		return 0
	}
	return total
}
