package services

import (
	"context"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/adapters/persistence/repositories"
	"astrafin-backoffice/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService aggregates validation queue statistics for the back office
type DashboardService struct {
	db     *gorm.DB
	events *repositories.EventRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB, events *repositories.EventRepository) *DashboardService {
	return &DashboardService{db: db, events: events}
}

// ResourceStats holds per-kind status counts
type ResourceStats struct {
	Resource domain.Resource                   `json:"resource"`
	ByStatus map[domain.ValidationStatus]int64 `json:"by_status"`
}

// Overview is the back-office landing view: queue depths per entity kind plus
// the latest workflow activity
type Overview struct {
	Stats        []ResourceStats           `json:"stats"`
	RecentEvents []*models.ValidationEvent `json:"recent_events"`
}

var dashboardModels = map[domain.Resource]interface{}{
	domain.ResourceClientFiles:    &models.ClientFile{},
	domain.ResourceExpenses:       &models.Expense{},
	domain.ResourceLeaves:         &models.Leave{},
	domain.ResourceSalaries:       &models.Salary{},
	domain.ResourceSalaryAdvances: &models.SalaryAdvance{},
}

// GetOverview builds the dashboard overview
func (s *DashboardService) GetOverview(ctx context.Context) (*Overview, error) {
	stats := make([]ResourceStats, 0, len(domain.Resources))

	for _, resource := range domain.Resources {
		model := dashboardModels[resource]

		type row struct {
			Status domain.ValidationStatus
			Count  int64
		}
		var rows []row
		err := s.db.WithContext(ctx).
			Model(model).
			Select("status, count(*) as count").
			Group("status").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}

		byStatus := make(map[domain.ValidationStatus]int64, len(rows))
		for _, r := range rows {
			byStatus[r.Status] = r.Count
		}
		stats = append(stats, ResourceStats{Resource: resource, ByStatus: byStatus})
	}

	events, err := s.events.Recent(ctx, 20)
	if err != nil {
		return nil, err
	}

	return &Overview{Stats: stats, RecentEvents: events}, nil
}
