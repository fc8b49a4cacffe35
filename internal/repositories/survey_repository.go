package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"testimonial/internal/models/db_models"
	"testimonial/internal/models/request_models"
)

type SurveyRepositoryInterface interface {
	CreateSurvey(ctx context.Context, survey *db_models.Survey) error
	ListSurveys(ctx context.Context, query request_models.SurveyListQuery, sortColumn string, sortDesc bool) ([]db_models.Survey, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Survey, error)
	SetArchived(ctx context.Context, id uuid.UUID) error
}

type surveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) SurveyRepositoryInterface {
	return &surveyRepository{db: db}
}

func (r *surveyRepository) CreateSurvey(ctx context.Context, survey *db_models.Survey) error {
	return r.db.WithContext(ctx).Create(survey).Error
}

// buildListQuery applies the archived exclusion, the free-text search and the
// structured filters. Search never touches question3 or question5.
func (r *surveyRepository) buildListQuery(ctx context.Context, query request_models.SurveyListQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&db_models.Survey{})

	if !query.IncludeArchived {
		tx = tx.Where("archived = ?", false)
	}

	if query.Search != "" {
		like := "%" + query.Search + "%"
		tx = tx.Where(
			"(name ILIKE ? OR email ILIKE ? OR question2 ILIKE ? OR question4 ILIKE ?)",
			like, like, like, like,
		)
	}

	if len(query.Filter.Question3) > 0 {
		tx = tx.Where("question3 && ?", pq.Array(query.Filter.Question3))
	}

	if query.Filter.Question5 != "" {
		tx = tx.Where("question5 = ?", query.Filter.Question5)
	}

	return tx
}

func (r *surveyRepository) ListSurveys(ctx context.Context, query request_models.SurveyListQuery, sortColumn string, sortDesc bool) ([]db_models.Survey, int64, error) {
	var total int64
	if err := r.buildListQuery(ctx, query).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if sortDesc {
		direction = "DESC"
	}

	surveys := []db_models.Survey{}
	err := r.buildListQuery(ctx, query).
		Order(fmt.Sprintf("%s %s", sortColumn, direction)).
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&surveys).Error
	if err != nil {
		return nil, 0, err
	}

	return surveys, total, nil
}

func (r *surveyRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Survey, error) {
	var survey db_models.Survey
	err := r.db.WithContext(ctx).First(&survey, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) SetArchived(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Survey{}).
		Where("id = ?", id).
		Update("archived", true).Error
}
