package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"testimonial/cmd/fx/account_fx"
	"testimonial/cmd/fx/dashboard_fx"
	"testimonial/cmd/fx/db_fx"
	"testimonial/cmd/fx/survey_fx"
	"testimonial/internal/api/controllers"
	"testimonial/internal/infra"
	"testimonial/internal/services"
	"testimonial/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		survey_fx.Module,
		account_fx.Module,
		dashboard_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(SeedOperatorAccount),
		fx.Invoke(StartServer),
	)

	app.Run()
}

// SeedOperatorAccount creates the single operator credential at startup when
// it is configured and absent.
func SeedOperatorAccount(accountService services.AccountServiceInterface, config infra.Config) {
	if err := accountService.EnsureOperatorAccount(context.Background(), config); err != nil {
		log.Printf("Error creating operator account: %v", err)
	}
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, config infra.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", config.Port)
				if err := engine.Run(":" + config.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	surveyController *controllers.SurveyController,
	accountController *controllers.AccountController,
	dashboardController *controllers.DashboardController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, surveyController, accountController, dashboardController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	surveyController *controllers.SurveyController,
	accountController *controllers.AccountController,
	dashboardController *controllers.DashboardController) {

	api := r.Group("/api")

	api.POST("/auth/login", accountController.Login)
	api.POST("/survey", surveyController.SubmitSurvey)
	api.GET("/photo/:id", surveyController.GetPhoto)

	admin := api.Group("")
	admin.Use(middleware.JWTAuthMiddleware())
	admin.GET("/surveys", surveyController.ListSurveys)
	admin.DELETE("/surveys/:id", surveyController.ArchiveSurvey)
	admin.GET("/statistics", dashboardController.GetStatistics)
}
