package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"
	twilio "github.com/twilio/twilio-go"

	"github.com/rohitpal119/district-state-watch/internal/app"
	"github.com/rohitpal119/district-state-watch/internal/config"
	"github.com/rohitpal119/district-state-watch/internal/constants"
	"github.com/rohitpal119/district-state-watch/internal/controllers"
	"github.com/rohitpal119/district-state-watch/internal/middleware"
	"github.com/rohitpal119/district-state-watch/internal/repositories"
	"github.com/rohitpal119/district-state-watch/internal/routes"
	"github.com/rohitpal119/district-state-watch/internal/services"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize:", err)
	}
	defer application.Close()

	profileRepo := repositories.NewProfileRepository(application.DB)
	projectRepo := repositories.NewProjectRepository(application.DB)
	fundRepo := repositories.NewFundUpdateRepository(application.DB)
	alertRepo := repositories.NewAlertRepository(application.DB)
	feedbackRepo := repositories.NewFeedbackRepository(application.DB)
	commRepo := repositories.NewCommunicationRepository(application.DB)
	imageRepo := repositories.NewImageUpdateRepository(application.DB)

	var twClient *twilio.RestClient
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		twClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	var sgClient *sendgrid.Client
	if cfg.SendGridAPIKey != "" {
		sgClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}

	notifier := services.NewNotificationService(
		twClient, sgClient, cfg.TwilioFromPhone, cfg.SendGridFrom, cfg.AppName,
	)
	openaiSvc := services.NewOpenAIService(cfg.OpenAIAPIKey)

	projectService := services.NewProjectService(projectRepo, profileRepo)
	fundService := services.NewFundUpdateService(fundRepo, projectRepo, profileRepo, notifier)
	alertService := services.NewAlertService(alertRepo, projectRepo, profileRepo, notifier)
	feedbackService := services.NewFeedbackService(feedbackRepo, projectRepo, profileRepo)
	commService := services.NewCommunicationService(commRepo, projectRepo, profileRepo)
	imageService := services.NewImageUpdateService(imageRepo, projectRepo, profileRepo, openaiSvc)
	dashboardService := services.NewDashboardService(
		projectRepo, alertRepo, feedbackRepo, fundRepo, imageRepo, commRepo, profileRepo,
	)
	monitorService := services.NewMonitorService(projectRepo, alertRepo, profileRepo, notifier)

	if cfg.SeedTestData {
		if err := app.SeedTestData(
			context.Background(), profileRepo, projectRepo, feedbackRepo,
		); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
	}

	healthController := controllers.NewHealthController(application)
	dashboardController := controllers.NewDashboardController(dashboardService)
	projectsController := controllers.NewProjectsController(projectService)
	fundUpdatesController := controllers.NewFundUpdatesController(fundService)
	alertsController := controllers.NewAlertsController(alertService)
	feedbackController := controllers.NewFeedbackController(feedbackService)
	commController := controllers.NewCommunicationsController(commService)
	imagesController := controllers.NewImagesController(imageService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.Dashboard, dashboardController.GetDashboardHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.FundsFlow, dashboardController.GetFundFlowHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.ProjectsBase, projectsController.ListProjectsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ProjectsAvailable, projectsController.ListAvailableHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ProjectsBase, projectsController.CreateProjectHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ProjectsClaim, projectsController.ClaimProjectHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ProjectsProgress, projectsController.ReportProgressHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.FundUpdatesBase, fundUpdatesController.ListFundUpdatesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.FundUpdatesBase, fundUpdatesController.SubmitFundUpdateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.FundUpdatesReview, fundUpdatesController.ReviewFundUpdateHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.AlertsBase, alertsController.ListAlertsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AlertsBase, alertsController.CreateAlertHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AlertsResolve, alertsController.ResolveAlertHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.FeedbackBase, feedbackController.ListFeedbackHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.FeedbackStatus, feedbackController.AdvanceFeedbackHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.CommunicationsBase, commController.ListCommunicationsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.CommunicationsBase, commController.SendMessageHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.CommunicationsRead, commController.MarkReadHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.ImagesBase, imagesController.ListImagesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ImagesBase, imagesController.SubmitImageHandler).Methods(http.MethodPost)

	c := cron.New()
	_, cronErr := c.AddFunc(constants.MonitorScanCronSpec, func() {
		if e := monitorService.RunScan(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled monitor scan failed")
		}
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule monitor scan cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Server failed to start:", err)
	}
}
