package services

import (
	"context"
	"log"
	"time"

	resp "testimonial/internal/models/response_models"
	"testimonial/internal/repositories"
	"testimonial/pkg/utils"
)

type DashboardService interface {
	GetStatistics(ctx context.Context, includeArchived bool) (*resp.StatisticsReport, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
}

func NewDashboardService(repo repositories.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) GetStatistics(ctx context.Context, includeArchived bool) (*resp.StatisticsReport, error) {
	now := time.Now()

	total, err := s.repo.CountSurveys(ctx, includeArchived)
	if err != nil {
		log.Printf("Error fetching statistics: %v", err)
		return nil, utils.ErrDatabaseError
	}

	today, err := s.repo.CountSubmittedBetween(ctx, utils.StartOfDay(now), now, includeArchived)
	if err != nil {
		log.Printf("Error fetching statistics: %v", err)
		return nil, utils.ErrDatabaseError
	}

	thisMonth, err := s.repo.CountSubmittedBetween(ctx, utils.StartOfMonth(now), now, includeArchived)
	if err != nil {
		log.Printf("Error fetching statistics: %v", err)
		return nil, utils.ErrDatabaseError
	}

	serviceStats, err := s.repo.ServiceBreakdown(ctx, includeArchived)
	if err != nil {
		log.Printf("Error fetching statistics: %v", err)
		return nil, utils.ErrDatabaseError
	}

	permissionStats, err := s.repo.PermissionBreakdown(ctx, includeArchived)
	if err != nil {
		log.Printf("Error fetching statistics: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &resp.StatisticsReport{
		TotalSubmissions: total,
		Today:            today,
		ThisMonth:        thisMonth,
		ServiceStats:     serviceStats,
		PermissionStats:  permissionStats,
	}, nil
}
