package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/course-registration-api/api/swagger"
	"github.com/noah-isme/course-registration-api/internal/handler"
	"github.com/noah-isme/course-registration-api/internal/middleware"
	"github.com/noah-isme/course-registration-api/internal/service"
	"github.com/noah-isme/course-registration-api/internal/store"
	"github.com/noah-isme/course-registration-api/pkg/config"
	"github.com/noah-isme/course-registration-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-registration-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-registration-api/pkg/middleware/requestid"
	"github.com/noah-isme/course-registration-api/pkg/storage"
)

// @title Course Registration API
// @version 0.1.0
// @description Student course registration over a JSON document store
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()

	metricsSvc := service.NewMetricsService()

	docStore := store.New(cfg.Store.DataPath, cfg.Store.SeedPath, logr).WithMetrics(metricsSvc)

	sessionSvc := service.NewSessionService(docStore, logr)
	authSvc := service.NewAuthService(
		docStore,
		sessionSvc,
		service.VerifierForScheme(cfg.Auth.PasswordScheme),
		validate,
		logr,
		service.AuthTokenConfig{
			Secret:     cfg.JWT.Secret,
			Expiration: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)
	enrollmentSvc := service.NewEnrollmentService(docStore, logr, service.EnrollmentConfig{
		EnforceCapacity: cfg.Enrollment.EnforceCapacity,
	})
	catalogSvc := service.NewCatalogService(docStore, logr)

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	exportSvc := service.NewExportService(catalogSvc, exportStore, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	courseHandler := handler.NewCourseHandler(catalogSvc)
	registrationHandler := handler.NewRegistrationHandler(enrollmentSvc, catalogSvc)
	historyHandler := handler.NewHistoryHandler(catalogSvc, exportSvc)
	studentHandler := handler.NewStudentHandler(catalogSvc)
	termHandler := handler.NewTermHandler(catalogSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/courses", courseHandler.List)
	authed.GET("/students/me", studentHandler.Me)
	authed.GET("/registrations", registrationHandler.List)
	authed.GET("/registrations/withdrawn", registrationHandler.ListWithdrawn)
	authed.POST("/registrations", registrationHandler.Create)
	authed.DELETE("/registrations/:courseId", registrationHandler.Delete)
	authed.GET("/history", historyHandler.List)
	authed.GET("/history/export", historyHandler.Export)
	authed.GET("/terms", termHandler.List)
	authed.GET("/terms/current", termHandler.Current)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
