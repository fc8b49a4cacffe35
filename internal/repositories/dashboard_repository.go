package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "testimonial/internal/models/db_models"
	resp "testimonial/internal/models/response_models"
)

type DashboardRepository interface {
	CountSurveys(ctx context.Context, includeArchived bool) (int64, error)
	CountSubmittedBetween(ctx context.Context, start, end time.Time, includeArchived bool) (int64, error)
	ServiceBreakdown(ctx context.Context, includeArchived bool) ([]resp.StatBucket, error)
	PermissionBreakdown(ctx context.Context, includeArchived bool) ([]resp.StatBucket, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) visible(ctx context.Context, includeArchived bool) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&dbm.Survey{})
	if !includeArchived {
		tx = tx.Where("archived = ?", false)
	}
	return tx
}

func (r *dashboardRepository) CountSurveys(ctx context.Context, includeArchived bool) (int64, error) {
	var n int64
	err := r.visible(ctx, includeArchived).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountSubmittedBetween(ctx context.Context, start, end time.Time, includeArchived bool) (int64, error) {
	var n int64
	err := r.visible(ctx, includeArchived).
		Where("submitted_at BETWEEN ? AND ?", start, end).
		Count(&n).Error
	return n, err
}

// ServiceBreakdown unnests the service-tag array, so one record contributes
// to every tag it selected.
func (r *dashboardRepository) ServiceBreakdown(ctx context.Context, includeArchived bool) ([]resp.StatBucket, error) {
	var rows []resp.StatBucket
	tx := r.db.WithContext(ctx).
		Table("surveys").
		Select("unnest(question3) AS name, COUNT(*) AS count")
	if !includeArchived {
		tx = tx.Where("archived = ?", false)
	}
	err := tx.
		Group("name").
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) PermissionBreakdown(ctx context.Context, includeArchived bool) ([]resp.StatBucket, error) {
	var rows []resp.StatBucket
	tx := r.db.WithContext(ctx).
		Table("surveys").
		Select("question5 AS name, COUNT(*) AS count")
	if !includeArchived {
		tx = tx.Where("archived = ?", false)
	}
	err := tx.
		Group("question5").
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}
