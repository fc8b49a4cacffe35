package survey_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"testimonial/internal/api/controllers"
	"testimonial/internal/infra"
	"testimonial/internal/repositories"
	"testimonial/internal/services"
)

var Module = fx.Provide(
	provideSurveyRepo, provideSurveyService, provideSurveyController,
)

func provideSurveyRepo(db *gorm.DB) repositories.SurveyRepositoryInterface {
	return repositories.NewSurveyRepository(db)
}

func provideSurveyService(surveyRepo repositories.SurveyRepositoryInterface, config infra.Config) services.SurveyServiceInterface {
	return services.NewSurveyService(surveyRepo, config)
}

func provideSurveyController(surveyService services.SurveyServiceInterface) *controllers.SurveyController {
	return controllers.NewSurveyController(surveyService)
}
